package xp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		level    int
		expected int
	}{
		{0, 0},
		{1, 0},
		{2, 282},  // floor(100 * 2^1.5)
		{3, 519},  // floor(100 * 3^1.5)
		{4, 800},  // floor(100 * 4^1.5)
		{5, 1118}, // floor(100 * 5^1.5)
		{10, 3162},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ForLevel(tc.level), "level %d", tc.level)
	}
}

func TestForLevelStrictlyIncreasing(t *testing.T) {
	t.Parallel()
	for level := 2; level <= 100; level++ {
		assert.Greater(t, ForLevel(level), ForLevel(level-1), "thresholds must grow at level %d", level)
	}
}

func TestLevelFromXP(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		totalXP  int
		expected int
	}{
		{0, 1},
		{281, 1},
		{282, 2},
		{518, 2},
		{519, 3},
		{1118, 5},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, LevelFromXP(tc.totalXP), "totalXP %d", tc.totalXP)
	}
}

func TestLevelFromXPRoundTrip(t *testing.T) {
	t.Parallel()
	for level := 2; level <= 50; level++ {
		threshold := ForLevel(level)
		assert.Equal(t, level, LevelFromXP(threshold), "exact threshold resolves to its level")
		assert.Equal(t, level-1, LevelFromXP(threshold-1), "one XP short stays a level down")
	}
}
