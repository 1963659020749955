package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ChallengeType identifies which progression events advance a challenge.
type ChallengeType string

// Possible challenge type values
const (
	ChallengeQuestVolume  ChallengeType = "quest_volume"
	ChallengeReviewSprint ChallengeType = "review_sprint"
	ChallengeXPTarget     ChallengeType = "xp_target"
)

// ChallengeDifficulty is the display tier of a weekly challenge.
type ChallengeDifficulty string

// Possible challenge difficulty values
const (
	ChallengeEasy   ChallengeDifficulty = "easy"
	ChallengeMedium ChallengeDifficulty = "medium"
	ChallengeHard   ChallengeDifficulty = "hard"
)

// Common validation errors for WeeklyChallenge
var (
	ErrEmptyChallengeUserID = errors.New("weekly challenge user ID cannot be empty")
	ErrEmptyWeekStart       = errors.New("weekly challenge week start cannot be zero")
	ErrInvalidTarget        = errors.New("weekly challenge target must be positive")
)

// WeeklyChallenge is a per-user, per-ISO-week objective with its own XP and
// coin reward. Challenges are generated lazily on first access for a week
// and are never deleted; history is retained.
type WeeklyChallenge struct {
	ID           uuid.UUID           `json:"id"`
	UserID       uuid.UUID           `json:"user_id"`
	WeekStart    time.Time           `json:"week_start"` // Monday, local midnight
	Type         ChallengeType       `json:"type"`
	Difficulty   ChallengeDifficulty `json:"difficulty"`
	SkillDomain  string              `json:"skill_domain,omitempty"` // Empty matches any domain
	TargetValue  int                 `json:"target_value"`
	CurrentValue int                 `json:"current_value"`
	Completed    bool                `json:"completed"`
	CompletedAt  *time.Time          `json:"completed_at,omitempty"`
	XPReward     int                 `json:"xp_reward"`
	CoinReward   int                 `json:"coin_reward"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// NewWeeklyChallenge creates a challenge for the given week.
func NewWeeklyChallenge(
	userID uuid.UUID,
	weekStart time.Time,
	ctype ChallengeType,
	difficulty ChallengeDifficulty,
	target, xpReward, coinReward int,
	now time.Time,
) (*WeeklyChallenge, error) {
	c := &WeeklyChallenge{
		ID:           uuid.New(),
		UserID:       userID,
		WeekStart:    weekStart,
		Type:         ctype,
		Difficulty:   difficulty,
		TargetValue:  target,
		CurrentValue: 0,
		Completed:    false,
		XPReward:     xpReward,
		CoinReward:   coinReward,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks if the WeeklyChallenge has valid data.
func (c *WeeklyChallenge) Validate() error {
	if c.UserID == uuid.Nil {
		return ErrEmptyChallengeUserID
	}

	if c.WeekStart.IsZero() {
		return ErrEmptyWeekStart
	}

	switch c.Type {
	case ChallengeQuestVolume, ChallengeReviewSprint, ChallengeXPTarget:
	default:
		return ErrInvalidChallengeType
	}

	if c.TargetValue <= 0 {
		return ErrInvalidTarget
	}

	return nil
}

// AppliesTo reports whether progress from the given skill domain counts
// toward this challenge. Domain-scoped challenges only advance on matching
// events; an unscoped challenge advances on everything.
func (c *WeeklyChallenge) AppliesTo(skillDomain string) bool {
	return c.SkillDomain == "" || c.SkillDomain == skillDomain
}

// Title derives the human-readable challenge title from its type and target.
func (c *WeeklyChallenge) Title() string {
	switch c.Type {
	case ChallengeQuestVolume:
		return fmt.Sprintf("Complete %d quests", c.TargetValue)
	case ChallengeReviewSprint:
		return fmt.Sprintf("Review %d skills", c.TargetValue)
	case ChallengeXPTarget:
		return fmt.Sprintf("Earn %d XP", c.TargetValue)
	default:
		return fmt.Sprintf("Reach %d", c.TargetValue)
	}
}

// Progress returns completion progress as a percentage clamped to 0-100.
func (c *WeeklyChallenge) Progress() int {
	if c.TargetValue <= 0 {
		return 0
	}
	pct := c.CurrentValue * 100 / c.TargetValue
	if pct > 100 {
		pct = 100
	}
	return pct
}
