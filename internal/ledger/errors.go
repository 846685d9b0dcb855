package ledger

import "github.com/hxuan190/fund-router/internal/domain"

// Error aliases
var (
	ErrNotInitialized     = domain.ErrNotInitialized
	ErrAlreadyInitialized = domain.ErrAlreadyInitialized
	ErrUnauthorized       = domain.ErrUnauthorized
	ErrInvalidPortions    = domain.ErrInvalidPortions
	ErrInsufficientFunds  = domain.ErrInsufficientFunds
	ErrInvalidAddress     = domain.ErrInvalidAddress
	ErrInvalidRatio       = domain.ErrInvalidRatio
	ErrInvalidDenom       = domain.ErrInvalidDenom
	ErrOverflow           = domain.ErrOverflow
	ErrQueryUnavailable   = domain.ErrQueryUnavailable
)
