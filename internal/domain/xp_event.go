package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// XPSource identifies what kind of action earned an XP event.
type XPSource string

// Known XP sources
const (
	XPSourceQuest       XPSource = "quest_completion"
	XPSourceReview      XPSource = "skill_review"
	XPSourceAchievement XPSource = "achievement"
	XPSourceChallenge   XPSource = "weekly_challenge"
)

// Common validation errors for XPEvent
var (
	ErrEmptyEventUserID = errors.New("XP event user ID cannot be empty")
	ErrEmptyEventSource = errors.New("XP event source cannot be empty")
	ErrNegativeAmount   = errors.New("XP event amount cannot be negative")
)

// XPEvent is an immutable, append-only ledger record of a single XP award.
// Besides serving as the audit trail, the (UserID, Source, DedupeKey) triple
// is the duplicate-award guard for reward-bound XP: a reward is only paid
// when no event with the same key already exists.
type XPEvent struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Amount     int       `json:"amount"` // Post-multiplier amount actually credited
	Source     XPSource  `json:"source"`
	Multiplier float64   `json:"multiplier"`
	DedupeKey  string    `json:"dedupe_key,omitempty"` // Empty for freely repeatable awards
	CreatedAt  time.Time `json:"created_at"`
}

// NewXPEvent creates a ledger record for an award that has already been
// through the soft-cap and multiplier math.
func NewXPEvent(
	userID uuid.UUID,
	amount int,
	source XPSource,
	multiplier float64,
	dedupeKey string,
	now time.Time,
) (*XPEvent, error) {
	e := &XPEvent{
		ID:         uuid.New(),
		UserID:     userID,
		Amount:     amount,
		Source:     source,
		Multiplier: multiplier,
		DedupeKey:  dedupeKey,
		CreatedAt:  now,
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}

// Validate checks if the XPEvent has valid data.
func (e *XPEvent) Validate() error {
	if e.UserID == uuid.Nil {
		return ErrEmptyEventUserID
	}

	if e.Source == "" {
		return ErrEmptyEventSource
	}

	if e.Amount < 0 {
		return ErrNegativeAmount
	}

	return nil
}
