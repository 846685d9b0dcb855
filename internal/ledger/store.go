package ledger

import (
	"context"
	"sync"

	"github.com/hxuan190/fund-router/internal/domain"
)

// Store persists the single configuration record.
// Load returns ErrNotInitialized when no record has been saved.
type Store interface {
	Load(ctx context.Context) (*domain.Configuration, error)
	Save(ctx context.Context, cfg *domain.Configuration) error
}

// MemoryStore keeps the record in process. Load and Save copy, so a caller
// holding a loaded record cannot change what is stored without saving it.
type MemoryStore struct {
	mu  sync.RWMutex
	cfg *domain.Configuration
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (*domain.Configuration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg == nil {
		return nil, ErrNotInitialized
	}
	return s.cfg.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, cfg *domain.Configuration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg.Clone()
	return nil
}
