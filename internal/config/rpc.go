package config

import (
	"errors"
	"slices"

	"github.com/andrew-solarstorm/go-packages/common"
)

// RPCConfig is optional. Without RPC_URL the forwarded queries report
// themselves unavailable.
type RPCConfig struct {
	RPCUrl     string
	Commitment string
}

func (r *RPCConfig) Key() string {
	return RPC_CONFIG_KEY
}

func (r *RPCConfig) Load() error {
	r.RPCUrl = common.GetEnvOrDefault("RPC_URL", "")
	r.Commitment = common.GetEnvOrDefault("RPC_COMMITMENT", "confirmed")
	return r.Validate()
}

func (r *RPCConfig) Enabled() bool {
	return r.RPCUrl != ""
}

func (r *RPCConfig) Validate() error {
	if !slices.Contains([]string{"processed", "confirmed", "finalized"}, r.Commitment) {
		return errors.New("invalid rpc commitment")
	}
	return nil
}
