package challenge

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/mocks"
	"github.com/ascendapp/ascend-api/internal/platform/clock"
	"github.com/ascendapp/ascend-api/internal/service/xp"
)

type fakeEnv struct {
	svc          *Service
	challenges   *mocks.FakeWeeklyChallengeStore
	events       *mocks.FakeXPEventStore
	progressions *mocks.FakeProgressionStore
	clk          *clock.Fake
}

func newFakeEnv(now time.Time) *fakeEnv {
	db := mocks.NewLazyDB()
	clk := clock.NewFake(now)
	progressions := mocks.NewFakeProgressionStore()
	events := mocks.NewFakeXPEventStore()
	challenges := mocks.NewFakeWeeklyChallengeStore()
	completions := mocks.NewFakeQuestCompletionStore()
	xpService := xp.NewService(db, progressions, events, clk, nil, nil)
	svc := NewService(db, challenges, completions, xpService, clk, nil, nil)
	return &fakeEnv{
		svc:          svc,
		challenges:   challenges,
		events:       events,
		progressions: progressions,
		clk:          clk,
	}
}

// monday is a Monday, so the UTC week starts at its midnight.
var monday = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

func TestWeeklyGeneratesThreeChallenges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newFakeEnv(monday)

	result, err := env.svc.Weekly(ctx, uuid.New(), "UTC")
	require.NoError(t, err)

	require.Len(t, result.Challenges, 3)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), result.WeekStart)
	assert.False(t, result.AllCompleted)

	// Ordered by difficulty.
	assert.Equal(t, domain.ChallengeQuestVolume, result.Challenges[0].Type)
	assert.Equal(t, domain.ChallengeReviewSprint, result.Challenges[1].Type)
	assert.Equal(t, domain.ChallengeXPTarget, result.Challenges[2].Type)

	// No completion history: targets sit at their floors.
	assert.Equal(t, 5, result.Challenges[0].TargetValue)
	assert.Equal(t, 10, result.Challenges[1].TargetValue)
	assert.Equal(t, 300, result.Challenges[2].TargetValue)
}

func TestWeeklyConcurrentGenerationLeavesOneSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newFakeEnv(monday)
	userID := uuid.New()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	results := make([]*WeeklyResult, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = env.svc.Weekly(ctx, userID, "UTC")
		}(i)
	}
	wg.Wait()

	for i := 0; i < 2; i++ {
		require.NoError(t, errs[i])
		assert.Len(t, results[i].Challenges, 3)
	}

	weekStart := env.clk.WeekStartLocal("UTC")
	stored, err := env.challenges.ListWeek(ctx, userID, weekStart)
	require.NoError(t, err)
	assert.Len(t, stored, 3, "racing generations must leave exactly one set of rows")
}

func TestIncrementInTxPaysRewardOnceAtCompletion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newFakeEnv(monday)
	userID := uuid.New()
	weekStart := env.clk.WeekStartLocal("UTC")

	seed, err := domain.NewWeeklyChallenge(
		userID, weekStart, domain.ChallengeReviewSprint, domain.ChallengeMedium,
		2, 100, 30, env.clk.Now(),
	)
	require.NoError(t, err)
	require.NoError(t, env.challenges.CreateBatch(ctx, []*domain.WeeklyChallenge{seed}))

	// First increment: progress but no completion, no reward.
	require.NoError(t, env.svc.IncrementInTx(ctx, nil, userID, "UTC", domain.ChallengeReviewSprint, 1, ""))
	assert.Empty(t, env.events.EventsFor(userID))

	// Second increment reaches the target: reward pays.
	require.NoError(t, env.svc.IncrementInTx(ctx, nil, userID, "UTC", domain.ChallengeReviewSprint, 1, ""))

	p, err := env.progressions.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 100, p.TotalXP)
	assert.Equal(t, 30, p.Coins)
	assert.Len(t, env.events.EventsFor(userID), 1)

	// Completed challenges no longer match; further progress is a no-op.
	require.NoError(t, env.svc.IncrementInTx(ctx, nil, userID, "UTC", domain.ChallengeReviewSprint, 1, ""))
	p, err = env.progressions.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 100, p.TotalXP, "a completed challenge must never pay again")
	assert.Len(t, env.events.EventsFor(userID), 1)
}

func TestIncrementInTxSkipsMismatchedSkillDomain(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newFakeEnv(monday)
	userID := uuid.New()
	weekStart := env.clk.WeekStartLocal("UTC")

	seed, err := domain.NewWeeklyChallenge(
		userID, weekStart, domain.ChallengeQuestVolume, domain.ChallengeEasy,
		1, 50, 15, env.clk.Now(),
	)
	require.NoError(t, err)
	seed.SkillDomain = "math"
	require.NoError(t, env.challenges.CreateBatch(ctx, []*domain.WeeklyChallenge{seed}))

	// Progress from another domain leaves the scoped challenge untouched.
	require.NoError(t, env.svc.IncrementInTx(ctx, nil, userID, "UTC", domain.ChallengeQuestVolume, 1, "science"))
	stored, err := env.challenges.ListWeek(ctx, userID, weekStart)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 0, stored[0].CurrentValue)
	assert.False(t, stored[0].Completed)

	// Matching progress completes it and pays the reward.
	require.NoError(t, env.svc.IncrementInTx(ctx, nil, userID, "UTC", domain.ChallengeQuestVolume, 1, "math"))
	stored, err = env.challenges.ListWeek(ctx, userID, weekStart)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Completed)

	p, err := env.progressions.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 50, p.TotalXP)
}
