package xp

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/mocks"
	"github.com/ascendapp/ascend-api/internal/platform/clock"
)

// newFakeService wires the XP service against in-memory stores. The *sql.DB
// handle is never connected; tests call AwardInTx directly with a nil
// transaction, which the fakes ignore.
func newFakeService(now time.Time) (*Service, *mocks.FakeProgressionStore, *mocks.FakeXPEventStore) {
	progressions := mocks.NewFakeProgressionStore()
	events := mocks.NewFakeXPEventStore()
	svc := NewService(mocks.NewLazyDB(), progressions, events, clock.NewFake(now), nil, nil)
	return svc, progressions, events
}

func TestAwardInTxAppendsLedgerAndUpdatesAggregate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()
	svc, progressions, events := newFakeService(time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))

	result, err := svc.AwardInTx(ctx, nil, userID, AwardParams{
		Amount: 120,
		Source: domain.XPSourceQuest,
		Coins:  10,
	})
	require.NoError(t, err)

	assert.Equal(t, 120, result.XPEarned)
	assert.Equal(t, 120, result.TotalXP)
	assert.False(t, result.Duplicate)

	p, err := progressions.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 120, p.TotalXP)
	assert.Equal(t, 10, p.Coins)
	assert.Equal(t, LevelFromXP(120), p.Level)

	assert.Len(t, events.EventsFor(userID), 1)
}

func TestAwardInTxDedupeKeyReplayIsNoOp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()
	svc, progressions, events := newFakeService(time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))

	params := AwardParams{
		Amount:    80,
		Source:    domain.XPSourceChallenge,
		DedupeKey: "challenge:f6b2", // reward-bound, pays at most once
		Coins:     30,
	}

	first, err := svc.AwardInTx(ctx, nil, userID, params)
	require.NoError(t, err)
	assert.Equal(t, 80, first.XPEarned)
	assert.False(t, first.Duplicate)

	second, err := svc.AwardInTx(ctx, nil, userID, params)
	require.NoError(t, err, "a replayed award must succeed, not error")
	assert.True(t, second.Duplicate)
	assert.Equal(t, 0, second.XPEarned)
	assert.Equal(t, 80, second.TotalXP, "replay must not move the total")
	assert.False(t, second.LeveledUp)

	p, err := progressions.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 80, p.TotalXP)
	assert.Equal(t, 30, p.Coins, "coins must credit once")

	assert.Len(t, events.EventsFor(userID), 1, "the ledger must hold a single event")
}

func TestAwardInTxEmptyDedupeKeyRepeats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()
	svc, _, events := newFakeService(time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))

	for i := 0; i < 3; i++ {
		result, err := svc.AwardInTx(ctx, nil, userID, AwardParams{
			Amount: 25,
			Source: domain.XPSourceQuest,
		})
		require.NoError(t, err)
		assert.False(t, result.Duplicate)
	}

	assert.Len(t, events.EventsFor(userID), 3, "freely repeatable awards each get a ledger row")
}
