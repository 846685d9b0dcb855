package ledger

import (
	"github.com/holiman/uint256"

	"github.com/hxuan190/fund-router/internal/domain"
)

// WithdrawInstruction asks destination A to redeem amount of its wrapped asset
// back to self. Balances are not checked here; the backend rejects what the
// ledger cannot cover.
func WithdrawInstruction(cfg *domain.Configuration, self string, amount *uint256.Int) (domain.Instruction, error) {
	return newInstruction(domain.InstructionPayload{
		Kind:        domain.RequestTransferBack,
		Asset:       cfg.WrappedAsset,
		Amount:      amount,
		Beneficiary: self,
	}, cfg.DestinationA, cfg.WrappedAsset)
}

// SendToWalletInstruction transfers amount of the tracked denomination to the
// caller. The caller must be the owner.
func SendToWalletInstruction(cfg *domain.Configuration, caller string, amount *uint256.Int) (domain.Instruction, error) {
	if err := RequireOwner(caller, cfg); err != nil {
		return domain.Instruction{}, err
	}
	return newInstruction(domain.InstructionPayload{
		Kind:        domain.TransferDirect,
		Asset:       cfg.Denom,
		Amount:      amount,
		Beneficiary: caller,
	}, caller, cfg.Denom)
}
