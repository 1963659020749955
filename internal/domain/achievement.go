package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for AchievementUnlock
var (
	ErrEmptyUnlockUserID        = errors.New("achievement unlock user ID cannot be empty")
	ErrEmptyUnlockAchievementID = errors.New("achievement ID cannot be empty")
)

// AchievementUnlock records that a user unlocked an achievement. The
// (UserID, AchievementID) pair is unique, which makes unlocks idempotent:
// a second unlock of the same achievement returns the existing record and
// pays no XP.
type AchievementUnlock struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	XPReward      int       `json:"xp_reward"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// NewAchievementUnlock creates an unlock record.
func NewAchievementUnlock(
	userID uuid.UUID,
	achievementID string,
	xpReward int,
	now time.Time,
) (*AchievementUnlock, error) {
	u := &AchievementUnlock{
		ID:            uuid.New(),
		UserID:        userID,
		AchievementID: achievementID,
		XPReward:      xpReward,
		UnlockedAt:    now,
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}

	return u, nil
}

// Validate checks if the AchievementUnlock has valid data.
func (u *AchievementUnlock) Validate() error {
	if u.UserID == uuid.Nil {
		return ErrEmptyUnlockUserID
	}

	if u.AchievementID == "" {
		return ErrEmptyUnlockAchievementID
	}

	return nil
}
