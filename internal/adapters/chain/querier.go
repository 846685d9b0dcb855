package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"

	"github.com/hxuan190/fund-router/internal/domain"
)

const (
	DefaultCommitment = rpc.CommitmentConfirmed
	queryTimeout      = 10 * time.Second
)

// rpcClient is the subset of *rpc.Client the querier needs.
type rpcClient interface {
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
	GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error)
}

// epochStateLayout is the account layout published by destination A.
type epochStateLayout struct {
	ExchangeRate  bin.Uint128
	WrappedSupply bin.Uint128
}

// Querier reads destination state over Solana JSON-RPC. It satisfies ledger.Querier.
type Querier struct {
	client     rpcClient
	commitment rpc.CommitmentType
}

func NewQuerier(rpcURL string, commitment string) *Querier {
	return newQuerier(rpc.New(rpcURL), commitment)
}

func newQuerier(client rpcClient, commitment string) *Querier {
	c := rpc.CommitmentType(commitment)
	if commitment == "" {
		c = DefaultCommitment
	}
	return &Querier{client: client, commitment: c}
}

func (q *Querier) EpochState(ctx context.Context, destination string) (*domain.EpochState, error) {
	account, err := solana.PublicKeyFromBase58(destination)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAddress, err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	info, err := q.client.GetAccountInfoWithOpts(timeoutCtx, account, &rpc.GetAccountInfoOpts{
		Commitment: q.commitment,
	})
	if err != nil {
		log.Warn().Err(err).Str("account", destination).Msg("[chainQuerier] epoch state lookup failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrQueryUnavailable, err)
	}
	if info == nil || info.Value == nil {
		return nil, fmt.Errorf("%w: account %s not found", domain.ErrQueryUnavailable, destination)
	}

	return DecodeEpochState(info.Value.Data.GetBinary())
}

func DecodeEpochState(data []byte) (*domain.EpochState, error) {
	var layout epochStateLayout
	if err := bin.UnmarshalBorsh(&layout, data); err != nil {
		return nil, fmt.Errorf("%w: decode epoch state: %v", domain.ErrQueryUnavailable, err)
	}

	return &domain.EpochState{
		ExchangeRate:  domain.NewRatioFromAtomics(uint256.MustFromBig(layout.ExchangeRate.BigInt())),
		WrappedSupply: uint256.MustFromBig(layout.WrappedSupply.BigInt()),
	}, nil
}

// Balance reads the holder's associated token account for asset. A missing
// account counts as a zero balance.
func (q *Querier) Balance(ctx context.Context, asset, holder string) (*uint256.Int, error) {
	mint, err := solana.PublicKeyFromBase58(asset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAddress, err)
	}
	owner, err := solana.PublicKeyFromBase58(holder)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAddress, err)
	}

	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAddress, err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := q.client.GetTokenAccountBalance(timeoutCtx, ata, q.commitment)
	if errors.Is(err, rpc.ErrNotFound) {
		return new(uint256.Int), nil
	}
	if err != nil {
		log.Warn().Err(err).Str("account", ata.String()).Msg("[chainQuerier] balance lookup failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrQueryUnavailable, err)
	}
	if res == nil || res.Value == nil {
		return new(uint256.Int), nil
	}

	amount, err := uint256.FromDecimal(res.Value.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: bad balance %q: %v", domain.ErrQueryUnavailable, res.Value.Amount, err)
	}
	return amount, nil
}
