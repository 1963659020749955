package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewUserProgression(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	now := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)

	p, err := NewUserProgression(userID, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if p.Level != 1 {
		t.Errorf("Expected level 1, got %d", p.Level)
	}
	if p.TotalXP != 0 || p.Coins != 0 {
		t.Errorf("Expected zero XP and coins, got %d/%d", p.TotalXP, p.Coins)
	}
	if p.EnergyCrystals != DefaultMaxEnergyCrystals {
		t.Errorf("Expected full energy %d, got %d", DefaultMaxEnergyCrystals, p.EnergyCrystals)
	}
	if p.SubscriptionTier != TierFree {
		t.Errorf("Expected free tier, got %s", p.SubscriptionTier)
	}
	if p.Timezone != DefaultTimezone {
		t.Errorf("Expected default timezone, got %s", p.Timezone)
	}
	if !p.EnergyRefreshedOn.IsZero() {
		t.Error("Expected zero EnergyRefreshedOn before the first refill")
	}

	if _, err := NewUserProgression(uuid.Nil, now); !errors.Is(err, ErrEmptyProgressionUserID) {
		t.Errorf("Expected ErrEmptyProgressionUserID, got %v", err)
	}
}

func TestUserProgressionValidate(t *testing.T) {
	t.Parallel()
	base := func() *UserProgression {
		return &UserProgression{
			UserID:            uuid.New(),
			Level:             1,
			EnergyCrystals:    3,
			MaxEnergyCrystals: 3,
			SubscriptionTier:  TierFree,
		}
	}

	p := base()
	p.TotalXP = -1
	if err := p.Validate(); !errors.Is(err, ErrNegativeTotalXP) {
		t.Errorf("Expected ErrNegativeTotalXP, got %v", err)
	}

	p = base()
	p.Level = 0
	if err := p.Validate(); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("Expected ErrInvalidLevel, got %v", err)
	}

	p = base()
	p.Coins = -10
	if err := p.Validate(); !errors.Is(err, ErrNegativeCoins) {
		t.Errorf("Expected ErrNegativeCoins, got %v", err)
	}

	p = base()
	p.EnergyCrystals = 4
	if err := p.Validate(); !errors.Is(err, ErrEnergyOutOfRange) {
		t.Errorf("Expected ErrEnergyOutOfRange, got %v", err)
	}

	p = base()
	p.SubscriptionTier = SubscriptionTier("platinum")
	if err := p.Validate(); !errors.Is(err, ErrInvalidTier) {
		t.Errorf("Expected ErrInvalidTier, got %v", err)
	}
}

func TestNewXPEvent(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	now := time.Now().UTC()

	e, err := NewXPEvent(userID, 55, XPSourceQuest, 1.0, "quest:"+uuid.NewString(), now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if e.ID == uuid.Nil {
		t.Error("Expected non-nil event ID")
	}

	if _, err := NewXPEvent(uuid.Nil, 10, XPSourceQuest, 1.0, "", now); !errors.Is(err, ErrEmptyEventUserID) {
		t.Errorf("Expected ErrEmptyEventUserID, got %v", err)
	}
	if _, err := NewXPEvent(userID, 10, "", 1.0, "", now); !errors.Is(err, ErrEmptyEventSource) {
		t.Errorf("Expected ErrEmptyEventSource, got %v", err)
	}
	if _, err := NewXPEvent(userID, -5, XPSourceReview, 1.0, "", now); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("Expected ErrNegativeAmount, got %v", err)
	}
}
