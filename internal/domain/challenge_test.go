package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewWeeklyChallenge(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	weekStart := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)

	c, err := NewWeeklyChallenge(userID, weekStart, ChallengeQuestVolume, ChallengeEasy, 10, 50, 15, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if c.ID == uuid.Nil {
		t.Error("Expected non-nil UUID")
	}
	if c.CurrentValue != 0 {
		t.Errorf("Expected zero current value, got %d", c.CurrentValue)
	}
	if c.Completed {
		t.Error("Expected challenge to start incomplete")
	}
	if c.CompletedAt != nil {
		t.Error("Expected nil CompletedAt on a fresh challenge")
	}

	// Invalid user
	if _, err := NewWeeklyChallenge(uuid.Nil, weekStart, ChallengeQuestVolume, ChallengeEasy, 10, 50, 15, now); !errors.Is(err, ErrEmptyChallengeUserID) {
		t.Errorf("Expected ErrEmptyChallengeUserID, got %v", err)
	}

	// Zero week start
	if _, err := NewWeeklyChallenge(userID, time.Time{}, ChallengeQuestVolume, ChallengeEasy, 10, 50, 15, now); !errors.Is(err, ErrEmptyWeekStart) {
		t.Errorf("Expected ErrEmptyWeekStart, got %v", err)
	}

	// Unknown type
	if _, err := NewWeeklyChallenge(userID, weekStart, ChallengeType("marathon"), ChallengeEasy, 10, 50, 15, now); !errors.Is(err, ErrInvalidChallengeType) {
		t.Errorf("Expected ErrInvalidChallengeType, got %v", err)
	}

	// Non-positive target
	if _, err := NewWeeklyChallenge(userID, weekStart, ChallengeXPTarget, ChallengeHard, 0, 200, 50, now); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("Expected ErrInvalidTarget, got %v", err)
	}
}

func TestWeeklyChallengeAppliesTo(t *testing.T) {
	t.Parallel()

	unscoped := &WeeklyChallenge{}
	if !unscoped.AppliesTo("math") || !unscoped.AppliesTo("") {
		t.Error("Expected an unscoped challenge to match any domain")
	}

	scoped := &WeeklyChallenge{SkillDomain: "math"}
	if !scoped.AppliesTo("math") {
		t.Error("Expected a scoped challenge to match its own domain")
	}
	if scoped.AppliesTo("science") || scoped.AppliesTo("") {
		t.Error("Expected a scoped challenge to reject other domains")
	}
}

func TestWeeklyChallengeTitle(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		ctype    ChallengeType
		target   int
		expected string
	}{
		{ChallengeQuestVolume, 25, "Complete 25 quests"},
		{ChallengeReviewSprint, 10, "Review 10 skills"},
		{ChallengeXPTarget, 300, "Earn 300 XP"},
	}

	for _, tc := range testCases {
		c := &WeeklyChallenge{Type: tc.ctype, TargetValue: tc.target}
		if got := c.Title(); got != tc.expected {
			t.Errorf("Title for %s: expected %q, got %q", tc.ctype, tc.expected, got)
		}
	}
}

func TestWeeklyChallengeProgress(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		current  int
		target   int
		expected int
	}{
		{"empty", 0, 10, 0},
		{"partial", 3, 10, 30},
		{"complete", 10, 10, 100},
		{"overshoot clamps", 17, 10, 100},
		{"zero target guards division", 5, 0, 0},
	}

	for _, tc := range testCases {
		c := &WeeklyChallenge{CurrentValue: tc.current, TargetValue: tc.target}
		if got := c.Progress(); got != tc.expected {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.expected, got)
		}
	}
}
