package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SubscriptionTier governs the daily XP soft cap applied to a user.
type SubscriptionTier string

// Possible subscription tier values
const (
	TierFree     SubscriptionTier = "free"
	TierPro      SubscriptionTier = "pro"
	TierChampion SubscriptionTier = "champion"
)

// Default values for a freshly created progression aggregate.
const (
	DefaultMaxEnergyCrystals = 3
	DefaultTimezone          = "UTC"
)

// Common validation errors for UserProgression
var (
	ErrEmptyProgressionUserID = errors.New("progression user ID cannot be empty")
	ErrNegativeTotalXP        = errors.New("total XP cannot be negative")
	ErrInvalidLevel           = errors.New("level must be at least 1")
	ErrNegativeCoins          = errors.New("coins cannot be negative")
	ErrEnergyOutOfRange       = errors.New("energy crystals must be between 0 and the maximum")
)

// UserProgression is the per-user progression aggregate: cumulative XP, the
// level derived from it, coin and energy balances, and the subscription tier
// that selects the daily XP cap. It is the unit of consistency for every
// XP- or coin-affecting operation.
type UserProgression struct {
	UserID            uuid.UUID        `json:"user_id"`
	TotalXP           int              `json:"total_xp"`
	Level             int              `json:"level"` // Always levelFromXp(TotalXP)
	Coins             int              `json:"coins"`
	EnergyCrystals    int              `json:"energy_crystals"`
	MaxEnergyCrystals int              `json:"max_energy_crystals"`
	SubscriptionTier  SubscriptionTier `json:"subscription_tier"`
	Timezone          string           `json:"timezone"`
	EnergyRefreshedOn time.Time        `json:"energy_refreshed_on"` // Local midnight of the last refill day
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// NewUserProgression creates the default progression aggregate for a user:
// level 1, zero XP and coins, full energy, free tier.
func NewUserProgression(userID uuid.UUID, now time.Time) (*UserProgression, error) {
	p := &UserProgression{
		UserID:            userID,
		TotalXP:           0,
		Level:             1,
		Coins:             0,
		EnergyCrystals:    DefaultMaxEnergyCrystals,
		MaxEnergyCrystals: DefaultMaxEnergyCrystals,
		SubscriptionTier:  TierFree,
		Timezone:          DefaultTimezone,
		EnergyRefreshedOn: time.Time{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the UserProgression has valid data.
// Returns an error if any field fails validation.
func (p *UserProgression) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyProgressionUserID
	}

	if p.TotalXP < 0 {
		return ErrNegativeTotalXP
	}

	if p.Level < 1 {
		return ErrInvalidLevel
	}

	if p.Coins < 0 {
		return ErrNegativeCoins
	}

	if p.EnergyCrystals < 0 || p.EnergyCrystals > p.MaxEnergyCrystals {
		return ErrEnergyOutOfRange
	}

	switch p.SubscriptionTier {
	case TierFree, TierPro, TierChampion:
	default:
		return ErrInvalidTier
	}

	return nil
}
