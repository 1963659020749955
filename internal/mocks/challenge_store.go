package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/store"
	"github.com/google/uuid"
)

var difficultyRank = map[domain.ChallengeDifficulty]int{
	domain.ChallengeEasy:   0,
	domain.ChallengeMedium: 1,
	domain.ChallengeHard:   2,
}

// FakeWeeklyChallengeStore is an in-memory store.WeeklyChallengeStore.
type FakeWeeklyChallengeStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*domain.WeeklyChallenge
}

// NewFakeWeeklyChallengeStore creates an empty fake.
func NewFakeWeeklyChallengeStore() *FakeWeeklyChallengeStore {
	return &FakeWeeklyChallengeStore{rows: make(map[uuid.UUID]*domain.WeeklyChallenge)}
}

// Ensure FakeWeeklyChallengeStore implements store.WeeklyChallengeStore
var _ store.WeeklyChallengeStore = (*FakeWeeklyChallengeStore)(nil)

// CreateBatch implements store.WeeklyChallengeStore.CreateBatch,
// reproducing the conflict tolerance of the real table's
// (user, week, type) uniqueness: a challenge whose slot is already taken
// is skipped without error.
func (f *FakeWeeklyChallengeStore) CreateBatch(
	ctx context.Context,
	challenges []*domain.WeeklyChallenge,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range challenges {
		if f.slotTakenLocked(c.UserID, c.WeekStart, c.Type) {
			continue
		}
		clone := *c
		f.rows[c.ID] = &clone
	}
	return nil
}

func (f *FakeWeeklyChallengeStore) slotTakenLocked(
	userID uuid.UUID,
	weekStart time.Time,
	ctype domain.ChallengeType,
) bool {
	for _, existing := range f.rows {
		if existing.UserID == userID &&
			existing.WeekStart.Equal(weekStart) &&
			existing.Type == ctype {
			return true
		}
	}
	return false
}

// ListWeek implements store.WeeklyChallengeStore.ListWeek.
func (f *FakeWeeklyChallengeStore) ListWeek(
	ctx context.Context,
	userID uuid.UUID,
	weekStart time.Time,
) ([]*domain.WeeklyChallenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*domain.WeeklyChallenge
	for _, c := range f.rows {
		if c.UserID == userID && c.WeekStart.Equal(weekStart) {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return difficultyRank[out[i].Difficulty] < difficultyRank[out[j].Difficulty]
	})
	return out, nil
}

// ListOpenByTypeForUpdate implements
// store.WeeklyChallengeStore.ListOpenByTypeForUpdate. The fake has no row
// locks; the store mutex serializes access instead.
func (f *FakeWeeklyChallengeStore) ListOpenByTypeForUpdate(
	ctx context.Context,
	userID uuid.UUID,
	weekStart time.Time,
	ctype domain.ChallengeType,
) ([]*domain.WeeklyChallenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*domain.WeeklyChallenge
	for _, c := range f.rows {
		if c.UserID == userID && c.WeekStart.Equal(weekStart) && c.Type == ctype && !c.Completed {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return difficultyRank[out[i].Difficulty] < difficultyRank[out[j].Difficulty]
	})
	return out, nil
}

// Update implements store.WeeklyChallengeStore.Update.
func (f *FakeWeeklyChallengeStore) Update(ctx context.Context, c *domain.WeeklyChallenge) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.rows[c.ID]; !ok {
		return store.ErrChallengeNotFound
	}
	clone := *c
	f.rows[c.ID] = &clone
	return nil
}

// WithTx implements store.WeeklyChallengeStore.WithTx. The fake ignores
// the transaction and returns itself.
func (f *FakeWeeklyChallengeStore) WithTx(tx *sql.Tx) store.WeeklyChallengeStore {
	return f
}
