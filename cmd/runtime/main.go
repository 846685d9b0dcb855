package main

import (
	fundrouter "github.com/hxuan190/fund-router/internal"
	"github.com/hxuan190/fund-router/internal/config"
	"github.com/hxuan190/fund-router/internal/http"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	container "github.com/thehyperflames/dicontainer-go"
)

// @title Fund Router API
// @version 1.0
// @description Ledger that splits incoming deposits between two destinations by configurable portions.
// @description
// @description ## - Usage Tips
// @description - Amounts are decimal strings in smallest units
// @description - Portions are decimal strings with at most 18 fractional digits and must sum to 1
// @description - Admin routes require the owner identity in the `X-Wallet-Address` header
// @description - Responses carry the ordered instructions the caller must dispatch
// @BasePath /
// @schemes https http
// @tag.name ledger
// @tag.description Deposits, withdrawals and read-only queries
// @tag.name admin
// @tag.description Owner-only reconfiguration

func main() {
	// load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded, using process environment")
	}

	// di container config
	conf := container.NewConf(
		&config.GeneralConfig{},
		&config.RPCConfig{},
		&config.LedgerConfig{},
	)

	// di container
	dic, err := container.New(
		// config
		conf,

		// services
		&fundrouter.Service{},

		&http.HTTPService{},
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create di container")
		return
	}

	// Run blocks until SIGINT/SIGTERM
	if err := dic.Run(); err != nil {
		log.Error().Err(err).Msg("failed to run di container")
		return
	}

	log.Info().Msg("Shutting down services...")
	if err := dic.Stop(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("Shutdown complete")
}
