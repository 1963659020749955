package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewStreak(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	now := time.Now().UTC()

	s, err := NewStreak(userID, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if s.CurrentStreak != 0 || s.LongestStreak != 0 {
		t.Errorf("Expected zero streaks, got %d/%d", s.CurrentStreak, s.LongestStreak)
	}
	if !s.LastActivityDate.IsZero() {
		t.Error("Expected zero LastActivityDate before any activity")
	}
	if s.MaxFreezes != DefaultMaxFreezes {
		t.Errorf("Expected default freeze allowance %d, got %d", DefaultMaxFreezes, s.MaxFreezes)
	}

	if _, err := NewStreak(uuid.Nil, now); !errors.Is(err, ErrEmptyStreakUserID) {
		t.Errorf("Expected ErrEmptyStreakUserID, got %v", err)
	}
}

func TestStreakValidate(t *testing.T) {
	t.Parallel()
	base := func() *Streak {
		return &Streak{UserID: uuid.New(), MaxFreezes: 1}
	}

	s := base()
	s.CurrentStreak = -1
	if err := s.Validate(); !errors.Is(err, ErrNegativeStreak) {
		t.Errorf("Expected ErrNegativeStreak, got %v", err)
	}

	s = base()
	s.FreezesUsed = 2
	if err := s.Validate(); !errors.Is(err, ErrFreezesOutOfRange) {
		t.Errorf("Expected ErrFreezesOutOfRange, got %v", err)
	}
}
