package domain

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"
)

// Slot names a reconfigurable destination in the configuration.
type Slot string

const (
	SlotDestinationA Slot = "a"
	SlotDestinationB Slot = "b"
	SlotWrappedAsset Slot = "wrapped"
)

func ParseSlot(s string) (Slot, error) {
	switch Slot(strings.ToLower(strings.TrimSpace(s))) {
	case SlotDestinationA:
		return SlotDestinationA, nil
	case SlotDestinationB:
		return SlotDestinationB, nil
	case SlotWrappedAsset:
		return SlotWrappedAsset, nil
	default:
		return "", fmt.Errorf("unknown destination slot %q", s)
	}
}

// Coin is an amount of a single denomination.
type Coin struct {
	Denom  string
	Amount *uint256.Int
}

// NewCoin copies amount; nil means zero.
func NewCoin(denom string, amount *uint256.Int) Coin {
	c := Coin{Denom: denom, Amount: new(uint256.Int)}
	if amount != nil {
		c.Amount.Set(amount)
	}
	return c
}

// Configuration is the routing record. Exactly one exists once the ledger is initialized.
type Configuration struct {
	Owner string
	Denom string

	RatioA Ratio
	RatioB Ratio

	// DestinationA receives the deposit leg; DestinationB is the asset the
	// conversion leg is swapped into.
	DestinationA string
	DestinationB string

	// WrappedAsset is what DestinationA issues for deposits.
	WrappedAsset string

	// CumulativeDeposited sums every amount routed to DestinationA.
	CumulativeDeposited *uint256.Int
}

// Clone returns a deep copy so callers can mutate without touching stored state.
func (c *Configuration) Clone() *Configuration {
	if c == nil {
		return nil
	}
	out := *c
	out.CumulativeDeposited = new(uint256.Int)
	if c.CumulativeDeposited != nil {
		out.CumulativeDeposited.Set(c.CumulativeDeposited)
	}
	return &out
}

// ValidateAddress checks that s is a base58 ed25519 public key.
func ValidateAddress(s string) error {
	if _, err := solana.PublicKeyFromBase58(s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return nil
}

func ValidateDenom(denom string) error {
	if strings.TrimSpace(denom) == "" || strings.ContainsAny(denom, " \t\n") {
		return fmt.Errorf("%w: %q", ErrInvalidDenom, denom)
	}
	return nil
}

// EpochState is the exchange state reported by destination A.
type EpochState struct {
	ExchangeRate  Ratio
	WrappedSupply *uint256.Int
}
