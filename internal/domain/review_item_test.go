package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewReviewItem(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	item, err := NewReviewItem(userID, "go.concurrency", "programming", now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if item.EaseFactor != DefaultEaseFactor {
		t.Errorf("Expected default ease factor %v, got %v", DefaultEaseFactor, item.EaseFactor)
	}
	if item.IntervalDays != 1 {
		t.Errorf("Expected initial interval 1, got %d", item.IntervalDays)
	}
	if item.RepetitionCount != 0 || item.MasteryLevel != 0 {
		t.Errorf("Expected fresh item at zero reps and mastery, got %d/%d", item.RepetitionCount, item.MasteryLevel)
	}
	if !item.NextReview.Equal(now.AddDate(0, 0, 1)) {
		t.Errorf("Expected first review one day out, got %v", item.NextReview)
	}
	if !item.LastReviewedAt.IsZero() {
		t.Error("Expected zero LastReviewedAt before the first review")
	}

	if _, err := NewReviewItem(uuid.Nil, "go.concurrency", "", now); !errors.Is(err, ErrEmptyReviewUserID) {
		t.Errorf("Expected ErrEmptyReviewUserID, got %v", err)
	}
	if _, err := NewReviewItem(userID, "", "", now); !errors.Is(err, ErrEmptyReviewSkillID) {
		t.Errorf("Expected ErrEmptyReviewSkillID, got %v", err)
	}
}

func TestReviewItemValidate(t *testing.T) {
	t.Parallel()
	base := func() *ReviewItem {
		return &ReviewItem{
			UserID:       uuid.New(),
			SkillID:      "go.concurrency",
			EaseFactor:   DefaultEaseFactor,
			IntervalDays: 1,
		}
	}

	item := base()
	item.EaseFactor = 1.2
	if err := item.Validate(); !errors.Is(err, ErrInvalidEaseFactor) {
		t.Errorf("Expected ErrInvalidEaseFactor, got %v", err)
	}

	item = base()
	item.IntervalDays = 0
	if err := item.Validate(); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("Expected ErrInvalidInterval, got %v", err)
	}

	item = base()
	item.MasteryLevel = 6
	if err := item.Validate(); !errors.Is(err, ErrInvalidMastery) {
		t.Errorf("Expected ErrInvalidMastery, got %v", err)
	}
}

func TestMasteryLabel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		level    int
		expected string
	}{
		{0, "New"},
		{1, "Attempted"},
		{2, "Familiar"},
		{3, "Proficient"},
		{4, "Advanced"},
		{5, "Mastered"},
		{-1, "New"},
		{9, "Mastered"},
	}

	for _, tc := range testCases {
		if got := MasteryLabel(tc.level); got != tc.expected {
			t.Errorf("MasteryLabel(%d): expected %q, got %q", tc.level, tc.expected, got)
		}
	}
}
