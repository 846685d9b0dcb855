package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	boltdb "github.com/andrew-solarstorm/bolt-db"
	"github.com/bytedance/sonic"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"

	"github.com/hxuan190/fund-router/internal/domain"
)

const (
	LedgerBucket = "ledger"
	ConfigKey    = "config"

	DefaultDBPath = "./data/fund-router.db"
)

type StoredConfiguration struct {
	Owner               string `json:"owner"`
	Denom               string `json:"denom"`
	RatioA              string `json:"ratioA"` // 18-decimal fixed point as decimal string
	RatioB              string `json:"ratioB"`
	DestinationA        string `json:"destinationA"`
	DestinationB        string `json:"destinationB"`
	WrappedAsset        string `json:"wrappedAsset,omitempty"`
	CumulativeDeposited string `json:"cumulativeDeposited"` // uint256 as string
}

// Storage keeps the configuration record in a bolt database. It satisfies
// ledger.Store.
type Storage struct {
	db     *boltdb.BoltDatabase
	dbPath string
}

func NewStorage(dbPath string) (*Storage, error) {
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db := boltdb.NewBoltDatabase(dbPath)
	if db == nil {
		return nil, fmt.Errorf("failed to open database at %s", dbPath)
	}

	log.Info().Str("path", dbPath).Msg("[ledgerStorage] opened database")

	return &Storage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns domain.ErrNotInitialized only when no record has been saved.
// A missing bucket lists as empty; any read error is returned as is.
func (s *Storage) Load(_ context.Context) (*domain.Configuration, error) {
	data, err := s.db.List(LedgerBucket)
	if err != nil {
		log.Error().Err(err).Msg("[ledgerStorage] FAILED to read ledger bucket")
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	value, ok := data[ConfigKey]
	if !ok {
		return nil, domain.ErrNotInitialized
	}

	var stored StoredConfiguration
	if err := sonic.Unmarshal(value, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return storedToConfiguration(&stored)
}

// Save overwrites the record in a single bolt transaction.
func (s *Storage) Save(_ context.Context, cfg *domain.Configuration) error {
	data, err := sonic.Marshal(configurationToStored(cfg))
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := s.db.Set(LedgerBucket, []byte(ConfigKey), data); err != nil {
		log.Error().Err(err).Msg("[ledgerStorage] FAILED to save configuration")
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

func configurationToStored(cfg *domain.Configuration) *StoredConfiguration {
	cumulative := "0"
	if cfg.CumulativeDeposited != nil {
		cumulative = cfg.CumulativeDeposited.Dec()
	}

	return &StoredConfiguration{
		Owner:               cfg.Owner,
		Denom:               cfg.Denom,
		RatioA:              cfg.RatioA.String(),
		RatioB:              cfg.RatioB.String(),
		DestinationA:        cfg.DestinationA,
		DestinationB:        cfg.DestinationB,
		WrappedAsset:        cfg.WrappedAsset,
		CumulativeDeposited: cumulative,
	}
}

func storedToConfiguration(stored *StoredConfiguration) (*domain.Configuration, error) {
	ratioA, err := domain.ParseRatio(stored.RatioA)
	if err != nil {
		return nil, fmt.Errorf("invalid ratioA: %w", err)
	}

	ratioB, err := domain.ParseRatio(stored.RatioB)
	if err != nil {
		return nil, fmt.Errorf("invalid ratioB: %w", err)
	}

	cumulative, err := uint256.FromDecimal(stored.CumulativeDeposited)
	if err != nil {
		return nil, fmt.Errorf("invalid cumulativeDeposited: %w", err)
	}

	return &domain.Configuration{
		Owner:               stored.Owner,
		Denom:               stored.Denom,
		RatioA:              ratioA,
		RatioB:              ratioB,
		DestinationA:        stored.DestinationA,
		DestinationB:        stored.DestinationB,
		WrappedAsset:        stored.WrappedAsset,
		CumulativeDeposited: cumulative,
	}, nil
}
