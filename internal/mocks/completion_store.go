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

type completionKey struct {
	userID uuid.UUID
	taskID uuid.UUID
}

// FakeQuestCompletionStore is an in-memory store.QuestCompletionStore.
type FakeQuestCompletionStore struct {
	mu   sync.Mutex
	rows map[completionKey]*domain.QuestCompletion
}

// NewFakeQuestCompletionStore creates an empty fake.
func NewFakeQuestCompletionStore() *FakeQuestCompletionStore {
	return &FakeQuestCompletionStore{rows: make(map[completionKey]*domain.QuestCompletion)}
}

// Ensure FakeQuestCompletionStore implements store.QuestCompletionStore
var _ store.QuestCompletionStore = (*FakeQuestCompletionStore)(nil)

// Create implements store.QuestCompletionStore.Create, reproducing the
// real table's (user, task) uniqueness.
func (f *FakeQuestCompletionStore) Create(ctx context.Context, c *domain.QuestCompletion) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := completionKey{c.UserID, c.TaskID}
	if _, ok := f.rows[key]; ok {
		return store.ErrCompletionExists
	}
	clone := *c
	f.rows[key] = &clone
	return nil
}

// ListSince implements store.QuestCompletionStore.ListSince.
func (f *FakeQuestCompletionStore) ListSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) ([]*domain.QuestCompletion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*domain.QuestCompletion
	for _, c := range f.rows {
		if c.UserID == userID && !c.CompletedAt.Before(since) {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

// CountSince implements store.QuestCompletionStore.CountSince.
func (f *FakeQuestCompletionStore) CountSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) (int, error) {
	list, err := f.ListSince(ctx, userID, since)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// WithTx implements store.QuestCompletionStore.WithTx. The fake ignores
// the transaction and returns itself.
func (f *FakeQuestCompletionStore) WithTx(tx *sql.Tx) store.QuestCompletionStore {
	return f
}
