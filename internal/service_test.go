package fundrouter

import (
	"context"
	"sync"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hxuan190/fund-router/internal/domain"
	"github.com/hxuan190/fund-router/internal/ledger"
)

const (
	testOwner        = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"
	testDestinationA = "vnt1u7PzorND5JjweFWmDawKe2hLWoTwHU6QKz6XX98"
	testDestinationB = "So11111111111111111111111111111111111111112"
	testWrappedAsset = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"
	testSelf         = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
)

func coin(denom string, amount uint64) domain.Coin {
	return domain.NewCoin(denom, uint256.NewInt(amount))
}

func newInitializedService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(ledger.NewMemoryStore(), nil, testSelf)
	require.NoError(t, err)
	require.NoError(t, svc.Start())

	ratioA, ratioB := domain.MustParseRatio("0.8"), domain.MustParseRatio("0.2")
	_, err = svc.Execute(context.Background(), ledger.Call{Caller: testOwner}, ledger.Initialize{
		Owner:        testOwner,
		Denom:        "uusd",
		RatioA:       &ratioA,
		RatioB:       &ratioB,
		DestinationA: testDestinationA,
		DestinationB: testDestinationB,
		WrappedAsset: testWrappedAsset,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Start())
	return svc
}

func TestServiceDeposit(t *testing.T) {
	svc := newInitializedService(t)

	res, err := svc.Execute(context.Background(), ledger.Call{
		Caller: testOwner,
		Funds:  []domain.Coin{coin("uusd", 51)},
	}, ledger.Deposit{})
	require.NoError(t, err)
	require.NotNil(t, res.Split)
	assert.Equal(t, uint64(40), res.Split.AmountA.Uint64())
	assert.Equal(t, uint64(10), res.Split.AmountB.Uint64())
	assert.Equal(t, uint64(1), res.Split.Remainder.Uint64())
	require.Len(t, res.Instructions, 2)
}

func TestServiceRejectsWithoutSaving(t *testing.T) {
	svc := newInitializedService(t)

	_, err := svc.Execute(context.Background(), ledger.Call{Caller: testDestinationA}, ledger.ChangeDenom{Denom: "uluna"})
	require.ErrorIs(t, err, ErrUnauthorized)

	cfg, err := svc.Configuration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "uusd", cfg.Denom)
}

func TestServiceSerializesDeposits(t *testing.T) {
	svc := newInitializedService(t)

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Execute(context.Background(), ledger.Call{
				Caller: testOwner,
				Funds:  []domain.Coin{coin("uusd", 100)},
			}, ledger.Deposit{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cfg, err := svc.Configuration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(workers*80), cfg.CumulativeDeposited)
}

func TestServiceQueriesWithoutRPC(t *testing.T) {
	svc := newInitializedService(t)

	_, err := svc.EpochState(context.Background())
	require.ErrorIs(t, err, ErrQueryUnavailable)
}

func TestServiceStopWithoutStorage(t *testing.T) {
	svc, err := NewService(ledger.NewMemoryStore(), nil, testSelf)
	require.NoError(t, err)
	assert.NoError(t, svc.Stop())
	assert.Equal(t, testSelf, svc.Self())
}
