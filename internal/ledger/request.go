package ledger

import (
	"github.com/holiman/uint256"

	"github.com/hxuan190/fund-router/internal/domain"
)

// Request is one of the mutating entry points. The set is closed: only the
// types in this file implement it.
type Request interface {
	Action() string
	isRequest()
}

// Initialize creates the configuration. RatioA and RatioB must be given
// together; when both are nil the default split is used.
type Initialize struct {
	Owner        string
	Denom        string
	RatioA       *domain.Ratio
	RatioB       *domain.Ratio
	DestinationA string
	DestinationB string
	WrappedAsset string
}

// Deposit splits the attached funds of the tracked denomination.
type Deposit struct{}

// Withdraw redeems Amount of the wrapped asset from destination A.
type Withdraw struct {
	Amount *uint256.Int
}

// SendToWallet moves Amount of the tracked denomination to the owner.
type SendToWallet struct {
	Amount *uint256.Int
}

type SetOwner struct {
	Address string
}

type ChangeSplit struct {
	RatioA domain.Ratio
	RatioB domain.Ratio
}

type SetDestination struct {
	Slot    domain.Slot
	Address string
}

type ChangeDenom struct {
	Denom string
}

func (Initialize) Action() string     { return "initialize" }
func (Deposit) Action() string        { return "deposit" }
func (Withdraw) Action() string       { return "withdraw" }
func (SendToWallet) Action() string   { return "send_to_wallet" }
func (SetOwner) Action() string       { return "set_owner" }
func (ChangeSplit) Action() string    { return "change_split" }
func (SetDestination) Action() string { return "set_destination" }
func (ChangeDenom) Action() string    { return "change_denom" }

func (Initialize) isRequest()     {}
func (Deposit) isRequest()        {}
func (Withdraw) isRequest()       {}
func (SendToWallet) isRequest()   {}
func (SetOwner) isRequest()       {}
func (ChangeSplit) isRequest()    {}
func (SetDestination) isRequest() {}
func (ChangeDenom) isRequest()    {}
