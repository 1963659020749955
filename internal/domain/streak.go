package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxFreezes is the freeze allowance granted to every streak.
const DefaultMaxFreezes = 1

// Common validation errors for Streak
var (
	ErrEmptyStreakUserID = errors.New("streak user ID cannot be empty")
	ErrNegativeStreak    = errors.New("streak counters cannot be negative")
	ErrFreezesOutOfRange = errors.New("freezes used must be between 0 and the maximum")
)

// Streak tracks a user's daily activity continuity. There is no stored
// "broken" state; breakage is inferred on each update from the gap between
// LastActivityDate and the current local day.
type Streak struct {
	UserID           uuid.UUID `json:"user_id"`
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
	LastActivityDate time.Time `json:"last_activity_date"` // Local midnight of the last qualifying day
	FreezesUsed      int       `json:"freezes_used"`
	MaxFreezes       int       `json:"max_freezes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewStreak creates an empty streak for a user that has not yet had any
// qualifying activity.
func NewStreak(userID uuid.UUID, now time.Time) (*Streak, error) {
	s := &Streak{
		UserID:           userID,
		CurrentStreak:    0,
		LongestStreak:    0,
		LastActivityDate: time.Time{}, // Zero time: no activity yet
		FreezesUsed:      0,
		MaxFreezes:       DefaultMaxFreezes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks if the Streak has valid data.
func (s *Streak) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyStreakUserID
	}

	if s.CurrentStreak < 0 || s.LongestStreak < 0 {
		return ErrNegativeStreak
	}

	if s.FreezesUsed < 0 || s.FreezesUsed > s.MaxFreezes {
		return ErrFreezesOutOfRange
	}

	return nil
}
