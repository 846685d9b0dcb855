package fundrouter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/hxuan190/fund-router/internal/adapters/chain"
	"github.com/hxuan190/fund-router/internal/adapters/persistence"
	"github.com/hxuan190/fund-router/internal/config"
	"github.com/hxuan190/fund-router/internal/domain"
	"github.com/hxuan190/fund-router/internal/ledger"
	"github.com/hxuan190/fund-router/internal/metrics"
	"github.com/hxuan190/fund-router/internal/services"
)

const FUND_ROUTER_SERVICE = "fund-router-service"

var (
	// Error aliases
	ErrNotInitialized     = ledger.ErrNotInitialized
	ErrAlreadyInitialized = ledger.ErrAlreadyInitialized
	ErrUnauthorized       = ledger.ErrUnauthorized
	ErrInvalidPortions    = ledger.ErrInvalidPortions
	ErrInsufficientFunds  = ledger.ErrInsufficientFunds
	ErrInvalidAddress     = ledger.ErrInvalidAddress
	ErrInvalidRatio       = ledger.ErrInvalidRatio
	ErrInvalidDenom       = ledger.ErrInvalidDenom
	ErrOverflow           = ledger.ErrOverflow
	ErrQueryUnavailable   = ledger.ErrQueryUnavailable
)

// Service owns the ledger engine and serializes every invocation against it.
type Service struct {
	container.BaseDIInstance
	logger *services.ServiceLogger
	mu     sync.Mutex

	engine  *ledger.Engine
	storage *persistence.Storage

	config *config.LedgerConfig
}

func (svc *Service) ID() string {
	return FUND_ROUTER_SERVICE
}

func (svc *Service) Configure(c container.IContainer) error {
	svc.logger = services.NewServiceLogger(svc)
	generalConfig := c.GetConfig(config.GENERAL_CONFIG_KEY).(*config.GeneralConfig)
	rpcConfig := c.GetConfig(config.RPC_CONFIG_KEY).(*config.RPCConfig)
	svc.config = c.GetConfig(config.LEDGER_CONFIG_KEY).(*config.LedgerConfig)

	if level, err := zerolog.ParseLevel(strings.ToLower(generalConfig.LogLevel)); err == nil {
		zerolog.SetGlobalLevel(level)
	} else {
		log.Warn().Str("level", generalConfig.LogLevel).Msg("[fundRouterService] unknown log level, keeping default")
	}

	storage, err := persistence.NewStorage(svc.config.DBPath)
	if err != nil {
		return fmt.Errorf("open ledger storage: %w", err)
	}
	svc.storage = storage

	var querier ledger.Querier
	if rpcConfig.Enabled() {
		querier = chain.NewQuerier(rpcConfig.RPCUrl, rpcConfig.Commitment)
	} else {
		svc.logger.Warn().Msg("RPC_URL not set, forwarded queries are disabled")
	}

	engine, err := ledger.NewEngine(storage, querier, svc.config.SelfAddress)
	if err != nil {
		_ = storage.Close()
		return err
	}
	svc.engine = engine
	return nil
}

// NewService builds a service outside the container.
func NewService(store ledger.Store, querier ledger.Querier, self string) (*Service, error) {
	svc := &Service{}
	svc.logger = services.NewServiceLogger(svc)

	engine, err := ledger.NewEngine(store, querier, self)
	if err != nil {
		return nil, err
	}
	svc.engine = engine
	return svc, nil
}

func (svc *Service) Start() error {
	cfg, err := svc.Configuration(context.Background())
	switch {
	case err == nil:
		svc.logger.Info().
			Str("owner", cfg.Owner).
			Str("denom", cfg.Denom).
			Str("ratioA", cfg.RatioA.String()).
			Str("ratioB", cfg.RatioB.String()).
			Str("cumulativeDeposited", cfg.CumulativeDeposited.Dec()).
			Msg("ledger loaded")
	case errors.Is(err, ErrNotInitialized):
		svc.logger.Info().Str("self", svc.engine.Self()).Msg("ledger not initialized yet")
	default:
		return err
	}
	return nil
}

func (svc *Service) Stop() error {
	if svc.storage == nil {
		return nil
	}
	if err := svc.storage.Close(); err != nil {
		svc.logger.Error().Err(err).Msg("failed to close ledger storage")
		return err
	}
	return nil
}

func (svc *Service) Self() string {
	return svc.engine.Self()
}

// Execute runs one invocation. Invocations never overlap.
func (svc *Service) Execute(ctx context.Context, call ledger.Call, req ledger.Request) (*ledger.Response, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	action := req.Action()
	logger := svc.logger.With("action", action)

	start := time.Now()
	res, err := svc.engine.Execute(ctx, call, req)
	metrics.ExecuteDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ExecuteRequests.WithLabelValues(action, "error").Inc()
		logger.Warn().Err(err).Str("caller", call.Caller).Msg("invocation rejected")
		return nil, err
	}
	metrics.ExecuteRequests.WithLabelValues(action, "ok").Inc()

	if split := res.Split; split != nil {
		metrics.Deposits.Inc()
		metrics.RoutedAmount.WithLabelValues("a").Add(split.AmountA.Float64())
		metrics.RoutedAmount.WithLabelValues("b").Add(split.AmountB.Float64())
		metrics.DustAmount.Add(split.Remainder.Float64())

		event := logger.Info()
		if !split.Remainder.IsZero() {
			event = logger.Warn()
		}
		event.Str("caller", call.Caller).
			Str("amount", split.Amount.Dec()).
			Str("amountA", split.AmountA.Dec()).
			Str("amountB", split.AmountB.Dec()).
			Str("dust", split.Remainder.Dec()).
			Msg("deposit routed")
	} else {
		logger.Info().Str("caller", call.Caller).Int("instructions", len(res.Instructions)).Msg("invocation committed")
	}
	return res, nil
}

func (svc *Service) Configuration(ctx context.Context) (*domain.Configuration, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	cfg, err := svc.engine.Configuration(ctx)
	observeQuery("configuration", err)
	return cfg, err
}

func (svc *Service) EpochState(ctx context.Context) (*domain.EpochState, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	state, err := svc.engine.EpochState(ctx)
	observeQuery("epoch_state", err)
	return state, err
}

func (svc *Service) Balance(ctx context.Context) (*uint256.Int, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	balance, err := svc.engine.Balance(ctx)
	observeQuery("balance", err)
	return balance, err
}

func observeQuery(query string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.QueryRequests.WithLabelValues(query, status).Inc()
}
