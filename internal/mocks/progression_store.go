package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/store"
	"github.com/google/uuid"
)

// FakeProgressionStore is an in-memory store.ProgressionStore.
type FakeProgressionStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*domain.UserProgression
}

// NewFakeProgressionStore creates an empty fake.
func NewFakeProgressionStore() *FakeProgressionStore {
	return &FakeProgressionStore{rows: make(map[uuid.UUID]*domain.UserProgression)}
}

// Ensure FakeProgressionStore implements store.ProgressionStore
var _ store.ProgressionStore = (*FakeProgressionStore)(nil)

// Ensure implements store.ProgressionStore.Ensure.
func (f *FakeProgressionStore) Ensure(ctx context.Context, p *domain.UserProgression) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.rows[p.UserID]; ok {
		return nil
	}
	clone := *p
	f.rows[p.UserID] = &clone
	return nil
}

// Get implements store.ProgressionStore.Get.
func (f *FakeProgressionStore) Get(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserProgression, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.rows[userID]
	if !ok {
		return nil, store.ErrProgressionNotFound
	}
	clone := *p
	return &clone, nil
}

// GetForUpdate implements store.ProgressionStore.GetForUpdate. The fake has
// no row locks; the store mutex serializes access instead.
func (f *FakeProgressionStore) GetForUpdate(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserProgression, error) {
	return f.Get(ctx, userID)
}

// Update implements store.ProgressionStore.Update.
func (f *FakeProgressionStore) Update(ctx context.Context, p *domain.UserProgression) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.rows[p.UserID]; !ok {
		return store.ErrProgressionNotFound
	}
	clone := *p
	f.rows[p.UserID] = &clone
	return nil
}

// WithTx implements store.ProgressionStore.WithTx. The fake ignores the
// transaction and returns itself.
func (f *FakeProgressionStore) WithTx(tx *sql.Tx) store.ProgressionStore {
	return f
}
