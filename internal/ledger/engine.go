package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/hxuan190/fund-router/internal/domain"
)

var (
	DefaultRatioA = domain.MustParseRatio("0.5")
	DefaultRatioB = domain.MustParseRatio("0.5")
)

// Call is the invocation context supplied by the backend.
type Call struct {
	Caller string
	Funds  []domain.Coin
}

type Attribute struct {
	Key   string
	Value string
}

// Response is what a successful invocation commits: the instructions for the
// backend to dispatch, in order, and descriptive attributes.
type Response struct {
	Action       string
	Instructions []domain.Instruction
	Attributes   []Attribute

	// Split is set for deposits.
	Split *SplitResult
}

func (r *Response) addAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

// Engine executes requests against the configuration record. It holds no
// locks: invocations must not overlap.
type Engine struct {
	store   Store
	querier Querier
	self    string
}

// NewEngine returns an engine bound to store. self is the ledger's own
// identity, used as beneficiary of withdrawals. querier may be nil, in which
// case forwarded queries fail with ErrQueryUnavailable.
func NewEngine(store Store, querier Querier, self string) (*Engine, error) {
	if store == nil {
		return nil, errors.New("ledger store is required")
	}
	if err := domain.ValidateAddress(self); err != nil {
		return nil, fmt.Errorf("self address: %w", err)
	}
	return &Engine{store: store, querier: querier, self: self}, nil
}

func (e *Engine) Self() string {
	return e.self
}

// Execute runs req to completion. On error nothing is saved and no
// instructions are returned.
func (e *Engine) Execute(ctx context.Context, call Call, req Request) (*Response, error) {
	switch r := req.(type) {
	case Initialize:
		return e.initialize(ctx, r)
	case Deposit:
		return e.deposit(ctx, call)
	case Withdraw:
		return e.withdraw(ctx, r)
	case SendToWallet:
		return e.sendToWallet(ctx, call, r)
	case SetOwner:
		return e.setOwner(ctx, call, r)
	case ChangeSplit:
		return e.changeSplit(ctx, call, r)
	case SetDestination:
		return e.setDestination(ctx, call, r)
	case ChangeDenom:
		return e.changeDenom(ctx, call, r)
	default:
		return nil, fmt.Errorf("unsupported request %T", req)
	}
}

func (e *Engine) initialize(ctx context.Context, r Initialize) (*Response, error) {
	if _, err := e.store.Load(ctx); err == nil {
		return nil, ErrAlreadyInitialized
	} else if !errors.Is(err, ErrNotInitialized) {
		return nil, err
	}

	for _, addr := range []string{r.Owner, r.DestinationA, r.DestinationB, r.WrappedAsset} {
		if err := domain.ValidateAddress(addr); err != nil {
			return nil, err
		}
	}
	if err := domain.ValidateDenom(r.Denom); err != nil {
		return nil, err
	}

	ratioA, ratioB := DefaultRatioA, DefaultRatioB
	switch {
	case r.RatioA != nil && r.RatioB != nil:
		ratioA, ratioB = *r.RatioA, *r.RatioB
	case r.RatioA != nil || r.RatioB != nil:
		return nil, fmt.Errorf("%w: both portions must be supplied", ErrInvalidPortions)
	}
	if err := ValidatePortions(ratioA, ratioB); err != nil {
		return nil, err
	}

	cfg := &domain.Configuration{
		Owner:               r.Owner,
		Denom:               r.Denom,
		RatioA:              ratioA,
		RatioB:              ratioB,
		DestinationA:        r.DestinationA,
		DestinationB:        r.DestinationB,
		WrappedAsset:        r.WrappedAsset,
		CumulativeDeposited: new(uint256.Int),
	}
	if err := e.store.Save(ctx, cfg); err != nil {
		return nil, err
	}

	res := &Response{Action: r.Action()}
	res.addAttribute("owner", cfg.Owner).
		addAttribute("denom", cfg.Denom).
		addAttribute("ratio_a", cfg.RatioA.String()).
		addAttribute("ratio_b", cfg.RatioB.String())
	return res, nil
}

func (e *Engine) deposit(ctx context.Context, call Call) (*Response, error) {
	cfg, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	amount := SelectFunds(call.Funds, cfg.Denom)
	split, err := ComputeSplit(amount, cfg.RatioA, cfg.RatioB)
	if err != nil {
		return nil, err
	}

	instructions, err := DepositInstructions(cfg, split)
	if err != nil {
		return nil, err
	}

	cumulative, overflow := new(uint256.Int).AddOverflow(cfg.CumulativeDeposited, split.AmountA)
	if overflow {
		return nil, fmt.Errorf("%w: cumulative deposited", ErrOverflow)
	}
	cfg.CumulativeDeposited = cumulative

	if err := e.store.Save(ctx, cfg); err != nil {
		return nil, err
	}

	res := &Response{Action: Deposit{}.Action(), Instructions: instructions, Split: split}
	res.addAttribute("depositor", call.Caller).
		addAttribute("amount", split.Amount.Dec()).
		addAttribute("amount_a", split.AmountA.Dec()).
		addAttribute("amount_b", split.AmountB.Dec()).
		addAttribute("remainder", split.Remainder.Dec()).
		addAttribute("cumulative_deposited", cumulative.Dec())
	return res, nil
}

func (e *Engine) withdraw(ctx context.Context, r Withdraw) (*Response, error) {
	cfg, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	ix, err := WithdrawInstruction(cfg, e.self, r.Amount)
	if err != nil {
		return nil, err
	}

	res := &Response{Action: r.Action(), Instructions: []domain.Instruction{ix}}
	res.addAttribute("amount", ix.Funds[0].Amount.Dec())
	return res, nil
}

func (e *Engine) sendToWallet(ctx context.Context, call Call, r SendToWallet) (*Response, error) {
	cfg, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	ix, err := SendToWalletInstruction(cfg, call.Caller, r.Amount)
	if err != nil {
		return nil, err
	}

	res := &Response{Action: r.Action(), Instructions: []domain.Instruction{ix}}
	res.addAttribute("recipient", call.Caller).
		addAttribute("amount", ix.Funds[0].Amount.Dec())
	return res, nil
}

func (e *Engine) setOwner(ctx context.Context, call Call, r SetOwner) (*Response, error) {
	cfg, err := e.loadAsOwner(ctx, call)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateAddress(r.Address); err != nil {
		return nil, err
	}

	cfg.Owner = r.Address
	if err := e.store.Save(ctx, cfg); err != nil {
		return nil, err
	}

	res := &Response{Action: r.Action()}
	res.addAttribute("owner", r.Address)
	return res, nil
}

func (e *Engine) changeSplit(ctx context.Context, call Call, r ChangeSplit) (*Response, error) {
	cfg, err := e.loadAsOwner(ctx, call)
	if err != nil {
		return nil, err
	}
	if err := ValidatePortions(r.RatioA, r.RatioB); err != nil {
		return nil, err
	}

	cfg.RatioA, cfg.RatioB = r.RatioA, r.RatioB
	if err := e.store.Save(ctx, cfg); err != nil {
		return nil, err
	}

	res := &Response{Action: r.Action()}
	res.addAttribute("ratio_a", r.RatioA.String()).
		addAttribute("ratio_b", r.RatioB.String())
	return res, nil
}

func (e *Engine) setDestination(ctx context.Context, call Call, r SetDestination) (*Response, error) {
	cfg, err := e.loadAsOwner(ctx, call)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateAddress(r.Address); err != nil {
		return nil, err
	}

	switch r.Slot {
	case domain.SlotDestinationA:
		cfg.DestinationA = r.Address
	case domain.SlotDestinationB:
		cfg.DestinationB = r.Address
	case domain.SlotWrappedAsset:
		cfg.WrappedAsset = r.Address
	default:
		return nil, fmt.Errorf("%w: unknown destination slot %q", ErrInvalidAddress, r.Slot)
	}
	if err := e.store.Save(ctx, cfg); err != nil {
		return nil, err
	}

	res := &Response{Action: r.Action()}
	res.addAttribute("slot", string(r.Slot)).
		addAttribute("address", r.Address)
	return res, nil
}

func (e *Engine) changeDenom(ctx context.Context, call Call, r ChangeDenom) (*Response, error) {
	cfg, err := e.loadAsOwner(ctx, call)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateDenom(r.Denom); err != nil {
		return nil, err
	}

	cfg.Denom = r.Denom
	if err := e.store.Save(ctx, cfg); err != nil {
		return nil, err
	}

	res := &Response{Action: r.Action()}
	res.addAttribute("denom", r.Denom)
	return res, nil
}

func (e *Engine) loadAsOwner(ctx context.Context, call Call) (*domain.Configuration, error) {
	cfg, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := RequireOwner(call.Caller, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Configuration returns a copy of the stored record.
func (e *Engine) Configuration(ctx context.Context) (*domain.Configuration, error) {
	return e.store.Load(ctx)
}

// EpochState forwards to destination A.
func (e *Engine) EpochState(ctx context.Context) (*domain.EpochState, error) {
	cfg, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if e.querier == nil {
		return nil, ErrQueryUnavailable
	}
	return e.querier.EpochState(ctx, cfg.DestinationA)
}

// Balance reports the ledger's holdings of the wrapped asset.
func (e *Engine) Balance(ctx context.Context) (*uint256.Int, error) {
	cfg, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if e.querier == nil {
		return nil, ErrQueryUnavailable
	}
	return e.querier.Balance(ctx, cfg.WrappedAsset, e.self)
}
