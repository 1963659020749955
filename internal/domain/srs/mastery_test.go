package srs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMasteryLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		repetitions  int
		easeFactor   float64
		intervalDays int
		expected     int
	}{
		{"new skill", 0, 2.5, 1, 0},
		{"single success", 1, 2.6, 1, 1},
		{"two successes short interval", 2, 2.7, 6, 2},
		{"established skill", 3, 2.2, 14, 3},
		{"advanced skill", 5, 2.1, 35, 4},
		{"mastered skill", 7, 2.3, 65, 5},
		{"long interval but weak ease stays advanced", 7, 2.1, 65, 4},
		{"many reps but short interval stays familiar", 7, 2.5, 10, 2},
		{"mid reps with low ease falls back", 4, 1.5, 20, 2},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := MasteryLevel(tc.repetitions, tc.easeFactor, tc.intervalDays)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestMasteryLevelNeverRegressesAsTripleGrows(t *testing.T) {
	t.Parallel()

	// Walking the triple upward level by level must never lower the result.
	prev := 0
	steps := []struct {
		reps     int
		ef       float64
		interval int
	}{
		{0, 2.5, 1},
		{1, 2.6, 1},
		{2, 2.7, 6},
		{3, 2.7, 16},
		{5, 2.7, 43},
		{7, 2.7, 116},
	}
	for _, s := range steps {
		level := MasteryLevel(s.reps, s.ef, s.interval)
		assert.GreaterOrEqual(t, level, prev)
		prev = level
	}
	assert.Equal(t, 5, prev)
}
