package ledger

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/hxuan190/fund-router/internal/domain"
)

// SplitResult holds the two legs of a deposit.
//
// Both legs are truncated, so AmountA + AmountB can fall short of Amount.
// Remainder is that shortfall. It stays with the ledger and is not tracked in
// CumulativeDeposited or handed to either destination.
type SplitResult struct {
	Amount    *uint256.Int
	AmountA   *uint256.Int
	AmountB   *uint256.Int
	Remainder *uint256.Int
}

// SelectFunds returns the amount of the first coin in the tracked denomination,
// or zero when none was attached.
func SelectFunds(funds []domain.Coin, denom string) *uint256.Int {
	for _, coin := range funds {
		if coin.Denom == denom && coin.Amount != nil {
			return new(uint256.Int).Set(coin.Amount)
		}
	}
	return new(uint256.Int)
}

// ValidatePortions enforces ratioA + ratioB == 1 exactly.
func ValidatePortions(ratioA, ratioB domain.Ratio) error {
	sum, overflow := ratioA.Add(ratioB)
	if overflow || !sum.IsOne() {
		return fmt.Errorf("%w: %s + %s", ErrInvalidPortions, ratioA, ratioB)
	}
	return nil
}

// ComputeSplit partitions amount into floor(amount*ratioA) and floor(amount*ratioB).
func ComputeSplit(amount *uint256.Int, ratioA, ratioB domain.Ratio) (*SplitResult, error) {
	if amount == nil || amount.IsZero() {
		return nil, ErrInsufficientFunds
	}
	if err := ValidatePortions(ratioA, ratioB); err != nil {
		return nil, err
	}

	amountA, overflowA := ratioA.MulFloor(amount)
	amountB, overflowB := ratioB.MulFloor(amount)
	if overflowA || overflowB {
		return nil, fmt.Errorf("%w: splitting %s", ErrOverflow, amount)
	}

	routed := new(uint256.Int).Add(amountA, amountB)
	return &SplitResult{
		Amount:    new(uint256.Int).Set(amount),
		AmountA:   amountA,
		AmountB:   amountB,
		Remainder: new(uint256.Int).Sub(amount, routed),
	}, nil
}
