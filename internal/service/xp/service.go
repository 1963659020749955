package xp

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/platform/clock"
	"github.com/ascendapp/ascend-api/internal/platform/logger"
	"github.com/ascendapp/ascend-api/internal/platform/metrics"
	"github.com/ascendapp/ascend-api/internal/store"
	"github.com/google/uuid"
)

// AwardParams describes a single XP award.
type AwardParams struct {
	Amount     int             // Raw XP, already soft-capped by the caller if applicable
	Source     domain.XPSource // What earned it
	Multiplier float64         // Defaults to 1.0 when zero
	DedupeKey  string          // Non-empty for reward-bound XP that must pay at most once
	Coins      int             // Coins credited alongside, in the same transaction
}

// AwardResult reports the outcome of an award.
type AwardResult struct {
	XPEarned      int  `json:"xp_earned"`
	TotalXP       int  `json:"total_xp"`
	PreviousLevel int  `json:"previous_level"`
	CurrentLevel  int  `json:"current_level"`
	LeveledUp     bool `json:"leveled_up"`
	Duplicate     bool `json:"-"` // True when a dedupe key suppressed the award
}

// EffectiveResult reports the soft-cap computation for a prospective award.
type EffectiveResult struct {
	EffectiveXP   int  `json:"effective_xp"`
	DailyXPEarned int  `json:"daily_xp_earned"`
	Capped        bool `json:"capped"`
}

// Service is the XP ledger: it appends events, applies the level curve, and
// keeps the progression aggregate consistent with the ledger.
type Service struct {
	db           *sql.DB
	progressions store.ProgressionStore
	events       store.XPEventStore
	clock        clock.Clock
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// NewService creates the XP ledger service.
func NewService(
	db *sql.DB,
	progressions store.ProgressionStore,
	events store.XPEventStore,
	clk clock.Clock,
	m *metrics.Metrics,
	log *slog.Logger,
) *Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if progressions == nil {
		panic("progressions cannot be nil")
	}
	if events == nil {
		panic("events cannot be nil")
	}
	if clk == nil {
		panic("clock cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &Service{
		db:           db,
		progressions: progressions,
		events:       events,
		clock:        clk,
		metrics:      m,
		logger:       log.With(slog.String("component", "xp_service")),
	}
}

// Award appends an XP event and updates the progression aggregate in a
// single transaction. Either both the ledger row and the progression
// increment commit, or neither does.
func (s *Service) Award(
	ctx context.Context,
	userID uuid.UUID,
	params AwardParams,
) (*AwardResult, error) {
	var result *AwardResult
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var txErr error
		result, txErr = s.AwardInTx(ctx, tx, userID, params)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AwardInTx is the award path for callers that already hold a transaction,
// such as the quest completion flow. The progression row is locked for the
// duration so concurrent awards for the same user serialize.
//
// When params.DedupeKey is set and an event with that key already exists,
// no new ledger row is written and the result carries Duplicate=true with
// zero XP earned: re-running a reward-bound award is a no-op, so client
// retries are safe.
func (s *Service) AwardInTx(
	ctx context.Context,
	tx *sql.Tx,
	userID uuid.UUID,
	params AwardParams,
) (*AwardResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	progressions := s.progressions.WithTx(tx)
	events := s.events.WithTx(tx)

	now := s.clock.Now()

	if err := s.ensureProgression(ctx, progressions, userID, now); err != nil {
		return nil, err
	}

	p, err := progressions.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock progression: %w", err)
	}

	if params.DedupeKey != "" {
		exists, err := events.ExistsDedupe(ctx, userID, params.Source, params.DedupeKey)
		if err != nil {
			return nil, fmt.Errorf("failed to check prior award: %w", err)
		}
		if exists {
			log.Debug("duplicate award suppressed",
				slog.String("user_id", userID.String()),
				slog.String("source", string(params.Source)),
				slog.String("dedupe_key", params.DedupeKey))
			return &AwardResult{
				XPEarned:      0,
				TotalXP:       p.TotalXP,
				PreviousLevel: p.Level,
				CurrentLevel:  p.Level,
				LeveledUp:     false,
				Duplicate:     true,
			}, nil
		}
	}

	multiplier := params.Multiplier
	if multiplier == 0 {
		multiplier = 1.0
	}
	total := int(math.Floor(float64(params.Amount) * multiplier))

	event, err := domain.NewXPEvent(userID, total, params.Source, multiplier, params.DedupeKey, now)
	if err != nil {
		return nil, err
	}
	if err := events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to append XP event: %w", err)
	}

	previousLevel := p.Level
	p.TotalXP += total
	p.Coins += params.Coins
	p.Level = LevelFromXP(p.TotalXP)
	p.UpdatedAt = now

	if err := progressions.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update progression: %w", err)
	}

	leveledUp := p.Level > previousLevel
	if s.metrics != nil {
		s.metrics.XPAwarded.WithLabelValues(string(params.Source)).Add(float64(total))
		if leveledUp {
			s.metrics.LevelUps.Inc()
		}
	}

	log.Debug("XP awarded",
		slog.String("user_id", userID.String()),
		slog.String("source", string(params.Source)),
		slog.Int("xp_earned", total),
		slog.Int("total_xp", p.TotalXP),
		slog.Bool("leveled_up", leveledUp))

	return &AwardResult{
		XPEarned:      total,
		TotalXP:       p.TotalXP,
		PreviousLevel: previousLevel,
		CurrentLevel:  p.Level,
		LeveledUp:     leveledUp,
	}, nil
}

// DailyEarned returns the XP credited to the user since local midnight, as
// seen through the given stores (which may be transaction-bound).
func (s *Service) DailyEarned(
	ctx context.Context,
	progressions store.ProgressionStore,
	events store.XPEventStore,
	userID uuid.UUID,
) (int, *domain.UserProgression, error) {
	now := s.clock.Now()

	if err := s.ensureProgression(ctx, progressions, userID, now); err != nil {
		return 0, nil, err
	}

	p, err := progressions.Get(ctx, userID)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get progression: %w", err)
	}

	today := s.clock.TodayLocal(p.Timezone)
	earned, err := events.TotalSince(ctx, userID, today)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to sum daily XP: %w", err)
	}

	return earned, p, nil
}

// EffectiveXP computes how much of a prospective raw award would actually be
// credited under the user's tier cap today. Pure read; writes nothing.
func (s *Service) EffectiveXP(
	ctx context.Context,
	userID uuid.UUID,
	rawXP int,
) (*EffectiveResult, error) {
	earned, p, err := s.DailyEarned(ctx, s.progressions, s.events, userID)
	if err != nil {
		return nil, err
	}

	effective, capped := Effective(p.SubscriptionTier, earned, rawXP)
	return &EffectiveResult{
		EffectiveXP:   effective,
		DailyXPEarned: earned,
		Capped:        capped,
	}, nil
}

// Progression returns the user's progression aggregate, creating the default
// one on first touch and lazily refilling energy on the first touch of a new
// local day.
func (s *Service) Progression(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserProgression, error) {
	var result *domain.UserProgression
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		progressions := s.progressions.WithTx(tx)
		now := s.clock.Now()

		if err := s.ensureProgression(ctx, progressions, userID, now); err != nil {
			return err
		}

		p, err := progressions.GetForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to lock progression: %w", err)
		}

		today := s.clock.TodayLocal(p.Timezone)
		if p.EnergyRefreshedOn.Before(today) {
			p.EnergyCrystals = p.MaxEnergyCrystals
			p.EnergyRefreshedOn = today
			p.UpdatedAt = now
			if err := progressions.Update(ctx, p); err != nil {
				return fmt.Errorf("failed to refill energy: %w", err)
			}
		}

		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) ensureProgression(
	ctx context.Context,
	progressions store.ProgressionStore,
	userID uuid.UUID,
	now time.Time,
) error {
	p, err := domain.NewUserProgression(userID, now)
	if err != nil {
		return err
	}
	if err := progressions.Ensure(ctx, p); err != nil {
		return fmt.Errorf("failed to ensure progression: %w", err)
	}
	return nil
}
