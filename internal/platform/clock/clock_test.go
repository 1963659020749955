package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	t.Parallel()
	assert.Equal(t, time.UTC, Location(""), "empty timezone falls back to UTC")
	assert.Equal(t, time.UTC, Location("Not/AZone"), "unknown timezone falls back to UTC")

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, ny, Location("America/New_York"))
}

func TestMidnight(t *testing.T) {
	t.Parallel()
	ny := Location("America/New_York")

	// 2026-07-15 02:30 UTC is still the evening of July 14 in New York.
	instant := time.Date(2026, 7, 15, 2, 30, 0, 0, time.UTC)
	got := Midnight(instant, ny)
	assert.Equal(t, time.Date(2026, 7, 14, 0, 0, 0, 0, ny), got)

	assert.Equal(t,
		time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
		Midnight(instant, time.UTC))
}

func TestWeekStart(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		instant  time.Time
		expected time.Time
	}{
		{
			"monday maps to itself",
			time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC), // a Monday
			time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			"wednesday maps back to monday",
			time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			"sunday maps back six days",
			time.Date(2026, 9, 6, 23, 59, 0, 0, time.UTC),
			time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := WeekStart(tc.instant, time.UTC)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, time.Monday, got.Weekday())
		})
	}
}

func TestDaysBetween(t *testing.T) {
	t.Parallel()
	a := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetween(a, a))
	assert.Equal(t, 1, DaysBetween(a, a.AddDate(0, 0, 1)))
	assert.Equal(t, 14, DaysBetween(a, a.AddDate(0, 0, 14)))
	assert.Equal(t, -3, DaysBetween(a, a.AddDate(0, 0, -3)))
}

func TestDaysBetweenAcrossDSTTransitions(t *testing.T) {
	t.Parallel()
	ny := Location("America/New_York")

	// Spring forward: the local day is only 23 hours long.
	springBefore := time.Date(2026, 3, 7, 0, 0, 0, 0, ny)
	springDay := time.Date(2026, 3, 8, 0, 0, 0, 0, ny)
	springAfter := time.Date(2026, 3, 9, 0, 0, 0, 0, ny)
	assert.Equal(t, 1, DaysBetween(springBefore, springDay))
	assert.Equal(t, 1, DaysBetween(springDay, springAfter), "23-hour day still counts as one day")
	assert.Equal(t, 2, DaysBetween(springBefore, springAfter))

	// Fall back: the local day is 25 hours long.
	fallDay := time.Date(2026, 11, 1, 0, 0, 0, 0, ny)
	fallAfter := time.Date(2026, 11, 2, 0, 0, 0, 0, ny)
	assert.Equal(t, 1, DaysBetween(fallDay, fallAfter), "25-hour day still counts as one day")
}

func TestFakeClock(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)
	fake := NewFake(start)

	assert.Equal(t, start, fake.Now())
	assert.Equal(t, time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC), fake.TodayLocal("UTC"))

	fake.Advance(15 * time.Hour)
	assert.Equal(t, time.Date(2026, 5, 21, 0, 0, 0, 0, time.UTC), fake.TodayLocal("UTC"), "advancing past midnight moves the local day")

	fake.Set(start)
	assert.Equal(t, start, fake.Now())
}
