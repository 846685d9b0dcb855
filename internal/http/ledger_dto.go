package http

import (
	"encoding/base64"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/hxuan190/fund-router/internal/domain"
	"github.com/hxuan190/fund-router/internal/ledger"
)

// Coin is an amount of one denomination. Amounts are decimal strings in base units.
type Coin struct {
	Denom  string `json:"denom" binding:"required" example:"uusd"`
	Amount string `json:"amount" binding:"required" example:"50000000"`
}

// InitializeRequest creates the ledger configuration.
type InitializeRequest struct {
	Owner string `json:"owner" binding:"required" example:"9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"`
	Denom string `json:"denom" binding:"required" example:"uusd"`

	// Portions as decimal strings. Omit both for an even split.
	RatioA *string `json:"ratioA,omitempty" example:"0.8"`
	RatioB *string `json:"ratioB,omitempty" example:"0.2"`

	DestinationA string `json:"destinationA" binding:"required" example:"vnt1u7PzorND5JjweFWmDawKe2hLWoTwHU6QKz6XX98"`
	DestinationB string `json:"destinationB" binding:"required" example:"So11111111111111111111111111111111111111112"`
	WrappedAsset string `json:"wrappedAsset" binding:"required" example:"TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"`
}

// DepositRequest carries the funds attached to the deposit.
type DepositRequest struct {
	Funds []Coin `json:"funds" binding:"omitempty,dive"`
}

type AmountRequest struct {
	Amount string `json:"amount" binding:"required" example:"1000000"`
}

type SetOwnerRequest struct {
	Address string `json:"address" binding:"required" example:"HJPjoWUrhoZzkNfRpHuieeFk9WcZWjwy6PBjZ81ngndJ"`
}

type ChangeSplitRequest struct {
	RatioA string `json:"ratioA" binding:"required" example:"0.6"`
	RatioB string `json:"ratioB" binding:"required" example:"0.4"`
}

type SetDestinationRequest struct {
	Slot    string `json:"slot" binding:"required" enums:"a,b,wrapped" example:"a"`
	Address string `json:"address" binding:"required" example:"vnt1u7PzorND5JjweFWmDawKe2hLWoTwHU6QKz6XX98"`
}

type ChangeDenomRequest struct {
	Denom string `json:"denom" binding:"required" example:"uluna"`
}

// Instruction is an outbound transfer the caller must dispatch, in order.
type Instruction struct {
	// One of deposit_into, convert_asset, request_transfer_back, transfer_direct
	Kind   string `json:"kind" example:"deposit_into"`
	Target string `json:"target" example:"vnt1u7PzorND5JjweFWmDawKe2hLWoTwHU6QKz6XX98"`
	Funds  []Coin `json:"funds"`
	// Borsh-encoded payload, base64
	Payload string `json:"payload,omitempty"`
}

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Split struct {
	Amount    string `json:"amount" example:"51"`
	AmountA   string `json:"amountA" example:"40"`
	AmountB   string `json:"amountB" example:"10"`
	Remainder string `json:"remainder" example:"1"`
}

// ExecuteResponse is the committed outcome of a mutating call.
type ExecuteResponse struct {
	Action       string        `json:"action" example:"deposit"`
	Instructions []Instruction `json:"instructions"`
	Attributes   []Attribute   `json:"attributes"`
	Split        *Split        `json:"split,omitempty"`
}

type ConfigurationResponse struct {
	Owner               string `json:"owner"`
	Denom               string `json:"denom"`
	RatioA              string `json:"ratioA"`
	RatioB              string `json:"ratioB"`
	DestinationA        string `json:"destinationA"`
	DestinationB        string `json:"destinationB"`
	WrappedAsset        string `json:"wrappedAsset,omitempty"`
	CumulativeDeposited string `json:"cumulativeDeposited"`
}

type EpochStateResponse struct {
	ExchangeRate  string `json:"exchangeRate" example:"1.0234"`
	WrappedSupply string `json:"wrappedSupply" example:"1000000000"`
}

type BalanceResponse struct {
	Asset  string `json:"asset"`
	Holder string `json:"holder"`
	Amount string `json:"amount" example:"1000000"`
}

func parseAmount(s string) (*uint256.Int, error) {
	amount, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: must be a non-negative integer", s)
	}
	return amount, nil
}

func parseCoins(coins []Coin) ([]domain.Coin, error) {
	out := make([]domain.Coin, 0, len(coins))
	for _, c := range coins {
		amount, err := parseAmount(c.Amount)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.NewCoin(c.Denom, amount))
	}
	return out, nil
}

func coinsToDTO(coins []domain.Coin) []Coin {
	out := make([]Coin, 0, len(coins))
	for _, c := range coins {
		amount := "0"
		if c.Amount != nil {
			amount = c.Amount.Dec()
		}
		out = append(out, Coin{Denom: c.Denom, Amount: amount})
	}
	return out
}

func toExecuteResponse(res *ledger.Response) *ExecuteResponse {
	out := &ExecuteResponse{
		Action:       res.Action,
		Instructions: make([]Instruction, 0, len(res.Instructions)),
		Attributes:   make([]Attribute, 0, len(res.Attributes)),
	}
	for _, ix := range res.Instructions {
		dto := Instruction{
			Kind:   ix.Kind.String(),
			Target: ix.Target,
			Funds:  coinsToDTO(ix.Funds),
		}
		if len(ix.Payload) > 0 {
			dto.Payload = base64.StdEncoding.EncodeToString(ix.Payload)
		}
		out.Instructions = append(out.Instructions, dto)
	}
	for _, attr := range res.Attributes {
		out.Attributes = append(out.Attributes, Attribute{Key: attr.Key, Value: attr.Value})
	}
	if s := res.Split; s != nil {
		out.Split = &Split{
			Amount:    s.Amount.Dec(),
			AmountA:   s.AmountA.Dec(),
			AmountB:   s.AmountB.Dec(),
			Remainder: s.Remainder.Dec(),
		}
	}
	return out
}

func toConfigurationResponse(cfg *domain.Configuration) *ConfigurationResponse {
	return &ConfigurationResponse{
		Owner:               cfg.Owner,
		Denom:               cfg.Denom,
		RatioA:              cfg.RatioA.String(),
		RatioB:              cfg.RatioB.String(),
		DestinationA:        cfg.DestinationA,
		DestinationB:        cfg.DestinationB,
		WrappedAsset:        cfg.WrappedAsset,
		CumulativeDeposited: cfg.CumulativeDeposited.Dec(),
	}
}
