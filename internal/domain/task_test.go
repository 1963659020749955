package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewQuestCompletion(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	taskID := uuid.New()
	now := time.Now().UTC()

	c, err := NewQuestCompletion(userID, taskID, QuestTypeLearning, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if c.ID == uuid.Nil {
		t.Error("Expected non-nil completion ID")
	}
	if c.QuestType != QuestTypeLearning {
		t.Errorf("Expected quest type learning, got %s", c.QuestType)
	}
	if !c.CompletedAt.Equal(now) {
		t.Errorf("Expected CompletedAt %v, got %v", now, c.CompletedAt)
	}

	if _, err := NewQuestCompletion(uuid.Nil, taskID, QuestTypeLearning, now); !errors.Is(err, ErrEmptyCompletionUserID) {
		t.Errorf("Expected ErrEmptyCompletionUserID, got %v", err)
	}
	if _, err := NewQuestCompletion(userID, uuid.Nil, QuestTypeLearning, now); !errors.Is(err, ErrEmptyCompletionTaskID) {
		t.Errorf("Expected ErrEmptyCompletionTaskID, got %v", err)
	}
}

func TestNewAchievementUnlock(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	now := time.Now().UTC()

	u, err := NewAchievementUnlock(userID, "first_quest", 25, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if u.XPReward != 25 {
		t.Errorf("Expected XP reward 25, got %d", u.XPReward)
	}

	if _, err := NewAchievementUnlock(uuid.Nil, "first_quest", 0, now); !errors.Is(err, ErrEmptyUnlockUserID) {
		t.Errorf("Expected ErrEmptyUnlockUserID, got %v", err)
	}
	if _, err := NewAchievementUnlock(userID, "", 0, now); !errors.Is(err, ErrEmptyUnlockAchievementID) {
		t.Errorf("Expected ErrEmptyUnlockAchievementID, got %v", err)
	}
}
