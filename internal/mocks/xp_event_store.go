package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/store"
	"github.com/google/uuid"
)

// FakeXPEventStore is an in-memory store.XPEventStore.
type FakeXPEventStore struct {
	mu     sync.Mutex
	events []*domain.XPEvent
}

// NewFakeXPEventStore creates an empty fake.
func NewFakeXPEventStore() *FakeXPEventStore {
	return &FakeXPEventStore{}
}

// Ensure FakeXPEventStore implements store.XPEventStore
var _ store.XPEventStore = (*FakeXPEventStore)(nil)

// Create implements store.XPEventStore.Create.
func (f *FakeXPEventStore) Create(ctx context.Context, event *domain.XPEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	clone := *event
	f.events = append(f.events, &clone)
	return nil
}

// TotalSince implements store.XPEventStore.TotalSince.
func (f *FakeXPEventStore) TotalSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	total := 0
	for _, e := range f.events {
		if e.UserID == userID && !e.CreatedAt.Before(since) {
			total += e.Amount
		}
	}
	return total, nil
}

// ExistsDedupe implements store.XPEventStore.ExistsDedupe.
func (f *FakeXPEventStore) ExistsDedupe(
	ctx context.Context,
	userID uuid.UUID,
	source domain.XPSource,
	dedupeKey string,
) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.events {
		if e.UserID == userID && e.Source == source && e.DedupeKey == dedupeKey {
			return true, nil
		}
	}
	return false, nil
}

// WithTx implements store.XPEventStore.WithTx. The fake ignores the
// transaction and returns itself.
func (f *FakeXPEventStore) WithTx(tx *sql.Tx) store.XPEventStore {
	return f
}

// EventsFor returns copies of the user's ledger events, for assertions.
func (f *FakeXPEventStore) EventsFor(userID uuid.UUID) []domain.XPEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.XPEvent
	for _, e := range f.events {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out
}
