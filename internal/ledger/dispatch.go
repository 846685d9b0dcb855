package ledger

import (
	"github.com/holiman/uint256"

	"github.com/hxuan190/fund-router/internal/domain"
)

// DepositInstructions translates a split into the deposit leg for destination A
// followed by the conversion leg into destination B's asset. Both legs are
// always emitted, zero or not, so the sequence has a fixed shape.
func DepositInstructions(cfg *domain.Configuration, split *SplitResult) ([]domain.Instruction, error) {
	deposit, err := newInstruction(domain.InstructionPayload{
		Kind:   domain.DepositInto,
		Asset:  cfg.Denom,
		Amount: split.AmountA,
	}, cfg.DestinationA, cfg.Denom)
	if err != nil {
		return nil, err
	}

	convert, err := newInstruction(domain.InstructionPayload{
		Kind:   domain.ConvertAsset,
		Asset:  cfg.DestinationB,
		Amount: split.AmountB,
	}, cfg.DestinationB, cfg.Denom)
	if err != nil {
		return nil, err
	}

	return []domain.Instruction{deposit, convert}, nil
}

// newInstruction attaches amount of fundsDenom and encodes the payload.
func newInstruction(p domain.InstructionPayload, target, fundsDenom string) (domain.Instruction, error) {
	if p.Amount == nil {
		p.Amount = new(uint256.Int)
	}
	payload, err := domain.EncodePayload(p)
	if err != nil {
		return domain.Instruction{}, err
	}
	return domain.Instruction{
		Kind:    p.Kind,
		Target:  target,
		Funds:   []domain.Coin{domain.NewCoin(fundsDenom, p.Amount)},
		Payload: payload,
	}, nil
}
