package config

import (
	"errors"

	"github.com/andrew-solarstorm/go-packages/common"
)

type LedgerConfig struct {
	DBPath string
	// Base58 identity of the ledger itself; beneficiary of withdrawals.
	SelfAddress string

	// Per-caller request rate (req/s) and burst for the HTTP adapter.
	RateLimit int
	RateBurst int
}

func (lc *LedgerConfig) Key() string {
	return LEDGER_CONFIG_KEY
}

func (lc *LedgerConfig) Load() error {
	lc.DBPath = common.GetEnvOrDefault("LEDGER_DB_PATH", "./data/fund-router.db")
	lc.SelfAddress = common.GetEnvOrDefault("LEDGER_SELF_ADDRESS", "")
	lc.RateLimit = common.GetEnvOrDefaultInt("LEDGER_RATE_LIMIT", 10)
	lc.RateBurst = common.GetEnvOrDefaultInt("LEDGER_RATE_BURST", 20)
	return lc.Validate()
}

func (lc *LedgerConfig) Validate() error {
	if lc.DBPath == "" || lc.SelfAddress == "" {
		return errors.New("invalid ledger config")
	}
	if lc.RateLimit <= 0 || lc.RateBurst <= 0 {
		return errors.New("invalid ledger rate limit")
	}
	return nil
}
