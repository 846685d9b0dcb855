package domain

import "errors"

var (
	ErrNotInitialized     = errors.New("ledger not initialized")
	ErrAlreadyInitialized = errors.New("ledger already initialized")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidPortions    = errors.New("split portions must sum to one")
	ErrInsufficientFunds  = errors.New("no funds of the tracked denomination attached")
	ErrInvalidAddress     = errors.New("invalid address")
	ErrInvalidRatio       = errors.New("invalid ratio")
	ErrInvalidDenom       = errors.New("invalid denomination")
	ErrOverflow           = errors.New("amount overflow")
	ErrQueryUnavailable   = errors.New("forwarded query unavailable")
)
