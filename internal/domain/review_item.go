package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SRS defaults shared between the domain and the scheduler.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

// Common validation errors for ReviewItem
var (
	ErrEmptyReviewUserID  = errors.New("review item user ID cannot be empty")
	ErrEmptyReviewSkillID = errors.New("review item skill ID cannot be empty")
	ErrInvalidEaseFactor  = errors.New("ease factor must be at least 1.3")
	ErrInvalidInterval    = errors.New("interval must be at least 1 day")
	ErrInvalidMastery     = errors.New("mastery level must be between 0 and 5")
)

// masteryLabels maps mastery levels 0-5 to their display names.
var masteryLabels = [6]string{"New", "Attempted", "Familiar", "Proficient", "Advanced", "Mastered"}

// MasteryLabel returns the display name for a mastery level, clamping
// out-of-range values to the nearest bound.
func MasteryLabel(level int) string {
	if level < 0 {
		level = 0
	}
	if level > 5 {
		level = 5
	}
	return masteryLabels[level]
}

// ReviewItem tracks a user's spaced-repetition state for a single skill.
// It implements a modified SM-2 scheme: the ease factor and interval drive
// scheduling, and MasteryLevel is always re-derived from the
// (RepetitionCount, EaseFactor, IntervalDays) triple, never stored
// independently of it.
type ReviewItem struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	SkillID         string    `json:"skill_id"`
	SkillDomain     string    `json:"skill_domain"`
	EaseFactor      float64   `json:"ease_factor"`
	IntervalDays    int       `json:"interval_days"`
	RepetitionCount int       `json:"repetition_count"`
	MasteryLevel    int       `json:"mastery_level"`
	NextReview      time.Time `json:"next_review"`
	LastReviewedAt  time.Time `json:"last_reviewed_at"` // Zero time until first review
	LastQuality     int       `json:"last_quality"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewReviewItem creates the initial review state for a newly encountered
// skill. The first review is scheduled one day out.
func NewReviewItem(userID uuid.UUID, skillID, skillDomain string, now time.Time) (*ReviewItem, error) {
	item := &ReviewItem{
		ID:              uuid.New(),
		UserID:          userID,
		SkillID:         skillID,
		SkillDomain:     skillDomain,
		EaseFactor:      DefaultEaseFactor,
		IntervalDays:    1,
		RepetitionCount: 0,
		MasteryLevel:    0,
		NextReview:      now.AddDate(0, 0, 1),
		LastReviewedAt:  time.Time{},
		LastQuality:     0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the ReviewItem has valid data.
func (r *ReviewItem) Validate() error {
	if r.UserID == uuid.Nil {
		return ErrEmptyReviewUserID
	}

	if r.SkillID == "" {
		return ErrEmptyReviewSkillID
	}

	if r.EaseFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}

	if r.IntervalDays < 1 {
		return ErrInvalidInterval
	}

	if r.MasteryLevel < 0 || r.MasteryLevel > 5 {
		return ErrInvalidMastery
	}

	return nil
}
