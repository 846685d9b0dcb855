package ledger

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/hxuan190/fund-router/internal/domain"
)

// Querier forwards read-only queries to the external protocols.
type Querier interface {
	// EpochState returns the exchange state published by destination.
	EpochState(ctx context.Context, destination string) (*domain.EpochState, error)
	// Balance returns how much of asset holder owns.
	Balance(ctx context.Context, asset, holder string) (*uint256.Int, error)
}
