package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ascendapp/ascend-api/internal/domain"
)

func newTestItem(t *testing.T, now time.Time) *domain.ReviewItem {
	t.Helper()
	item, err := domain.NewReviewItem(uuid.New(), "algebra.quadratics", "math", now)
	require.NoError(t, err, "Failed to create review item")
	return item
}

func TestAdvanceFirstCorrectAnswer(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	item := newTestItem(t, now)

	next, err := Advance(item, 5, now)
	require.NoError(t, err)

	assert.Equal(t, 1, next.IntervalDays, "first success schedules one day out")
	assert.Equal(t, 1, next.RepetitionCount)
	assert.InDelta(t, 2.6, next.EaseFactor, 1e-9, "perfect answer nudges EF up by 0.1")
	assert.Equal(t, 1, next.MasteryLevel)
	assert.Equal(t, now.AddDate(0, 0, 1), next.NextReview)
	assert.Equal(t, now, next.LastReviewedAt)
	assert.Equal(t, 5, next.LastQuality)

	// Input item must not be mutated.
	assert.Equal(t, 0, item.RepetitionCount)
	assert.InDelta(t, domain.DefaultEaseFactor, item.EaseFactor, 1e-9)
}

func TestAdvanceSecondCorrectAnswer(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	item := newTestItem(t, now)
	item.RepetitionCount = 1
	item.IntervalDays = 1
	item.EaseFactor = 2.6

	next, err := Advance(item, 5, now)
	require.NoError(t, err)

	assert.Equal(t, 6, next.IntervalDays, "second success jumps to six days")
	assert.Equal(t, 2, next.RepetitionCount)
	assert.InDelta(t, 2.7, next.EaseFactor, 1e-9)
	assert.Equal(t, 2, next.MasteryLevel)
	assert.Equal(t, now.AddDate(0, 0, 6), next.NextReview)
}

func TestAdvanceLaterRepetitionsScaleByEaseFactor(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC)
	item := newTestItem(t, now)
	item.RepetitionCount = 2
	item.IntervalDays = 6
	item.EaseFactor = 2.7

	next, err := Advance(item, 4, now)
	require.NoError(t, err)

	// round(6 * 2.7) = 16; quality 4 leaves the ease factor unchanged.
	assert.Equal(t, 16, next.IntervalDays)
	assert.Equal(t, 3, next.RepetitionCount)
	assert.InDelta(t, 2.7, next.EaseFactor, 1e-9)
	assert.Equal(t, 3, next.MasteryLevel)
}

func TestAdvanceIncorrectAnswerResetsWithoutPenalizingEase(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	item := newTestItem(t, now)
	item.RepetitionCount = 4
	item.IntervalDays = 43
	item.EaseFactor = 2.7

	next, err := Advance(item, 1, now)
	require.NoError(t, err)

	assert.Equal(t, 0, next.RepetitionCount, "miss resets the repetition streak")
	assert.Equal(t, 1, next.IntervalDays, "miss reschedules for tomorrow")
	assert.InDelta(t, 2.7, next.EaseFactor, 1e-9, "miss leaves the ease factor alone")
	assert.Equal(t, 0, next.MasteryLevel)
	assert.Equal(t, now.AddDate(0, 0, 1), next.NextReview)
}

func TestAdvanceBarelyPassingPullsEaseDown(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	item := newTestItem(t, now)
	item.RepetitionCount = 2
	item.IntervalDays = 6
	item.EaseFactor = 2.5

	next, err := Advance(item, 3, now)
	require.NoError(t, err)

	// 2.5 + (0.1 - 2*(0.08 + 2*0.02)) = 2.36
	assert.InDelta(t, 2.36, next.EaseFactor, 1e-9)
	assert.Equal(t, 3, next.RepetitionCount)
}

func TestAdvanceEaseFactorFloor(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	item := newTestItem(t, now)
	item.RepetitionCount = 3
	item.IntervalDays = 14
	item.EaseFactor = domain.MinEaseFactor

	next, err := Advance(item, 3, now)
	require.NoError(t, err)

	assert.InDelta(t, domain.MinEaseFactor, next.EaseFactor, 1e-9, "ease factor never drops below the floor")
}

func TestAdvanceRejectsOutOfRangeQuality(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()
	item := newTestItem(t, now)

	for _, quality := range []int{-1, 6, 100} {
		_, err := Advance(item, quality, now)
		assert.ErrorIs(t, err, domain.ErrInvalidQuality, "quality %d should be rejected", quality)
	}
}

func TestIsCorrect(t *testing.T) {
	t.Parallel()
	assert.False(t, IsCorrect(0))
	assert.False(t, IsCorrect(2))
	assert.True(t, IsCorrect(3))
	assert.True(t, IsCorrect(5))
}
