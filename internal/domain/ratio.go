package domain

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// RatioDecimals is the number of fractional digits a Ratio can hold.
const RatioDecimals = 18

var ratioUnity = uint256.NewInt(1_000_000_000_000_000_000)

// Ratio is an unsigned fixed-point fraction with RatioDecimals fractional digits.
// The zero value is 0.
type Ratio struct {
	atomics uint256.Int
}

func RatioOne() Ratio {
	var r Ratio
	r.atomics.Set(ratioUnity)
	return r
}

// NewRatioFromAtomics builds a ratio from its raw representation (value * 10^18).
func NewRatioFromAtomics(atomics *uint256.Int) Ratio {
	var r Ratio
	if atomics != nil {
		r.atomics.Set(atomics)
	}
	return r
}

// ParseRatio parses a non-negative decimal string such as "0.8" exactly.
// Inputs with more than RatioDecimals fractional digits are rejected rather than rounded.
func ParseRatio(s string) (Ratio, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Ratio{}, fmt.Errorf("%w: %q", ErrInvalidRatio, s)
	}
	if d.IsNegative() {
		return Ratio{}, fmt.Errorf("%w: %q is negative", ErrInvalidRatio, s)
	}

	shifted := d.Shift(RatioDecimals)
	if !shifted.IsInteger() {
		return Ratio{}, fmt.Errorf("%w: %q has more than %d decimal places", ErrInvalidRatio, s, RatioDecimals)
	}

	atomics, overflow := uint256.FromBig(shifted.BigInt())
	if overflow {
		return Ratio{}, fmt.Errorf("%w: %q out of range", ErrInvalidRatio, s)
	}
	return NewRatioFromAtomics(atomics), nil
}

func MustParseRatio(s string) Ratio {
	r, err := ParseRatio(s)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Ratio) Atomics() *uint256.Int {
	return new(uint256.Int).Set(&r.atomics)
}

func (r Ratio) IsZero() bool {
	return r.atomics.IsZero()
}

func (r Ratio) IsOne() bool {
	return r.atomics.Eq(ratioUnity)
}

// Add returns r + o and whether the sum overflowed 256 bits.
func (r Ratio) Add(o Ratio) (Ratio, bool) {
	var sum Ratio
	_, overflow := sum.atomics.AddOverflow(&r.atomics, &o.atomics)
	return sum, overflow
}

// MulFloor returns floor(amount * r). The product is formed in 512 bits, so the
// only overflow possible is a result wider than 256 bits, which needs r > 1.
func (r Ratio) MulFloor(amount *uint256.Int) (*uint256.Int, bool) {
	if amount == nil || amount.IsZero() || r.atomics.IsZero() {
		return new(uint256.Int), false
	}
	return new(uint256.Int).MulDivOverflow(amount, &r.atomics, ratioUnity)
}

func (r Ratio) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(r.atomics.ToBig(), -RatioDecimals)
}

func (r Ratio) String() string {
	return r.Decimal().String()
}
