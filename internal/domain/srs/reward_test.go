package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysOverdue(t *testing.T) {
	t.Parallel()
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysOverdue(due, due.Add(-48*time.Hour)), "not yet due")
	assert.Equal(t, 0, DaysOverdue(due, due), "exactly due")
	assert.Equal(t, 0, DaysOverdue(due, due.Add(12*time.Hour)), "partial day does not count")
	assert.Equal(t, 1, DaysOverdue(due, due.Add(36*time.Hour)))
	assert.Equal(t, 10, DaysOverdue(due, due.AddDate(0, 0, 10)))
}

func TestReviewXP(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		easeFactor  float64
		daysOverdue int
		expected    int
	}{
		{"easy item on time pays the base", 2.5, 0, 25},
		{"hardest item on time", 1.3, 0, 43},
		{"hard item five days overdue", 1.3, 5, 64},
		{"overdue bonus caps at triple", 1.3, 30, 128},
		{"easy item at the overdue cap", 2.5, 40, 75},
		{"difficulty multiplier floors at one", 3.0, 0, 25},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ReviewXP(tc.easeFactor, tc.daysOverdue))
		})
	}
}

func TestReviewXPPaysMoreForHarderAndStalerItems(t *testing.T) {
	t.Parallel()
	assert.Greater(t, ReviewXP(1.5, 0), ReviewXP(2.5, 0), "lower ease factor pays more")
	assert.Greater(t, ReviewXP(1.5, 7), ReviewXP(1.5, 0), "overdue items pay more")
}
