package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hxuan190/fund-router/internal/domain"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorageLoadBeforeSave(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrNotInitialized)
}

func TestStorageSaveLoad(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	cumulative, err := uint256.FromDecimal("123456789012345678901234567890")
	require.NoError(t, err)

	cfg := &domain.Configuration{
		Owner:               "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM",
		Denom:               "uusd",
		RatioA:              domain.MustParseRatio("0.333333333333333333"),
		RatioB:              domain.MustParseRatio("0.666666666666666667"),
		DestinationA:        "vnt1u7PzorND5JjweFWmDawKe2hLWoTwHU6QKz6XX98",
		DestinationB:        "So11111111111111111111111111111111111111112",
		WrappedAsset:        "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb",
		CumulativeDeposited: cumulative,
	}
	require.NoError(t, s.Save(ctx, cfg))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	cfg.Owner = "HJPjoWUrhoZzkNfRpHuieeFk9WcZWjwy6PBjZ81ngndJ"
	cfg.CumulativeDeposited = uint256.NewInt(1)
	require.NoError(t, s.Save(ctx, cfg))

	loaded, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg.Owner, loaded.Owner)
	assert.Equal(t, uint64(1), loaded.CumulativeDeposited.Uint64())
}

func TestStorageSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	s, err := NewStorage(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, &domain.Configuration{
		Owner:               "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM",
		Denom:               "uusd",
		RatioA:              domain.MustParseRatio("0.8"),
		RatioB:              domain.MustParseRatio("0.2"),
		CumulativeDeposited: uint256.NewInt(40),
	}))
	require.NoError(t, s.Close())

	reopened, err := NewStorage(path)
	require.NoError(t, err)
	defer reopened.Close()

	cfg, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.8", cfg.RatioA.String())
	assert.Equal(t, uint64(40), cfg.CumulativeDeposited.Uint64())
}

func TestStorageLoadAfterClose(t *testing.T) {
	s, err := NewStorage(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotInitialized)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
