package domain

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/holiman/uint256"
)

type InstructionKind uint8

const (
	// DepositInto invokes a destination's deposit entry point with attached funds.
	DepositInto InstructionKind = iota + 1
	// ConvertAsset swaps the attached funds into another asset through the backend.
	ConvertAsset
	// RequestTransferBack asks the wrapped asset contract to redeem through a destination.
	RequestTransferBack
	// TransferDirect sends funds straight to an account.
	TransferDirect
)

func (k InstructionKind) String() string {
	switch k {
	case DepositInto:
		return "deposit_into"
	case ConvertAsset:
		return "convert_asset"
	case RequestTransferBack:
		return "request_transfer_back"
	case TransferDirect:
		return "transfer_direct"
	default:
		return "UNKNOWN"
	}
}

// Instruction describes an outbound call for the backend to dispatch. The ledger
// never executes it.
type Instruction struct {
	Kind   InstructionKind
	Target string
	Funds  []Coin

	// Payload is the Borsh encoding of InstructionPayload.
	Payload []byte
}

// InstructionPayload is the opaque message attached to an instruction.
// Asset is the denomination or asset the instruction moves (the ask asset for
// ConvertAsset); Beneficiary is set for RequestTransferBack and TransferDirect.
type InstructionPayload struct {
	Kind        InstructionKind
	Asset       string
	Amount      *uint256.Int
	Beneficiary string
}

type wirePayload struct {
	Kind        uint8
	Asset       string
	Amount      [32]byte
	Beneficiary string
}

func EncodePayload(p InstructionPayload) ([]byte, error) {
	w := wirePayload{
		Kind:        uint8(p.Kind),
		Asset:       p.Asset,
		Beneficiary: p.Beneficiary,
	}
	if p.Amount != nil {
		w.Amount = p.Amount.Bytes32()
	}
	data, err := bin.MarshalBorsh(&w)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", p.Kind, err)
	}
	return data, nil
}

func DecodePayload(data []byte) (InstructionPayload, error) {
	var w wirePayload
	if err := bin.UnmarshalBorsh(&w, data); err != nil {
		return InstructionPayload{}, fmt.Errorf("failed to decode payload: %w", err)
	}
	return InstructionPayload{
		Kind:        InstructionKind(w.Kind),
		Asset:       w.Asset,
		Amount:      new(uint256.Int).SetBytes32(w.Amount[:]),
		Beneficiary: w.Beneficiary,
	}, nil
}
