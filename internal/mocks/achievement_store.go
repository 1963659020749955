package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/store"
	"github.com/google/uuid"
)

type unlockKey struct {
	userID        uuid.UUID
	achievementID string
}

// FakeAchievementStore is an in-memory store.AchievementStore.
type FakeAchievementStore struct {
	mu   sync.Mutex
	rows map[unlockKey]*domain.AchievementUnlock
}

// NewFakeAchievementStore creates an empty fake.
func NewFakeAchievementStore() *FakeAchievementStore {
	return &FakeAchievementStore{rows: make(map[unlockKey]*domain.AchievementUnlock)}
}

// Ensure FakeAchievementStore implements store.AchievementStore
var _ store.AchievementStore = (*FakeAchievementStore)(nil)

// Insert implements store.AchievementStore.Insert, reproducing the
// conflict-tolerant semantics of the real table's (user, achievement)
// uniqueness: the second insert reports false without error.
func (f *FakeAchievementStore) Insert(
	ctx context.Context,
	unlock *domain.AchievementUnlock,
) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := unlockKey{unlock.UserID, unlock.AchievementID}
	if _, ok := f.rows[key]; ok {
		return false, nil
	}
	clone := *unlock
	f.rows[key] = &clone
	return true, nil
}

// Get implements store.AchievementStore.Get.
func (f *FakeAchievementStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	achievementID string,
) (*domain.AchievementUnlock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.rows[unlockKey{userID, achievementID}]
	if !ok {
		return nil, store.ErrUnlockNotFound
	}
	clone := *u
	return &clone, nil
}

// WithTx implements store.AchievementStore.WithTx. The fake ignores the
// transaction and returns itself.
func (f *FakeAchievementStore) WithTx(tx *sql.Tx) store.AchievementStore {
	return f
}
