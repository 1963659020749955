// Package streak maintains daily-continuity counters. Breakage is never
// stored; it is inferred on each update from the gap between the last
// activity day and the current local day.
package streak

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/platform/clock"
	"github.com/ascendapp/ascend-api/internal/platform/logger"
	"github.com/ascendapp/ascend-api/internal/store"
	"github.com/google/uuid"
)

// UpdateResult reports the streak after a qualifying activity.
type UpdateResult struct {
	Updated       bool `json:"updated"`
	CurrentStreak int  `json:"current_streak"`
	LongestStreak int  `json:"longest_streak"`
	FreezeUsed    bool `json:"freeze_used"`
}

// Service applies the streak transition on qualifying activity.
type Service struct {
	db      *sql.DB
	streaks store.StreakStore
	clock   clock.Clock
	logger  *slog.Logger
}

// NewService creates the streak service.
func NewService(db *sql.DB, streaks store.StreakStore, clk clock.Clock, log *slog.Logger) *Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if streaks == nil {
		panic("streaks cannot be nil")
	}
	if clk == nil {
		panic("clock cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &Service{
		db:      db,
		streaks: streaks,
		clock:   clk,
		logger:  log.With(slog.String("component", "streak_service")),
	}
}

// Get returns the user's streak, creating the empty record on first touch.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*domain.Streak, error) {
	if err := s.ensure(ctx, s.streaks, userID); err != nil {
		return nil, err
	}
	st, err := s.streaks.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}
	return st, nil
}

// Update records a qualifying activity for today and applies the streak
// transition in its own transaction.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, timezone string) (*UpdateResult, error) {
	var result *UpdateResult
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var txErr error
		result, txErr = s.UpdateInTx(ctx, tx, userID, timezone)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateInTx applies the streak transition inside an existing transaction,
// for callers like the quest completion flow that bundle the streak update
// with other writes.
//
// The transition is keyed purely on elapsed local days and the freeze
// budget:
//
//	same day            -> no-op
//	one day elapsed     -> increment
//	two days, freeze ok -> increment, consume one freeze
//	anything else       -> reset to 1
func (s *Service) UpdateInTx(ctx context.Context, tx *sql.Tx, userID uuid.UUID, timezone string) (*UpdateResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	streaks := s.streaks.WithTx(tx)

	if err := s.ensure(ctx, streaks, userID); err != nil {
		return nil, err
	}

	st, err := streaks.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock streak: %w", err)
	}

	now := s.clock.Now()
	today := s.clock.TodayLocal(timezone)

	result := apply(st, today)
	if !result.Updated {
		return result, nil
	}

	st.UpdatedAt = now
	if err := streaks.Update(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to update streak: %w", err)
	}

	log.Debug("streak updated",
		slog.String("user_id", userID.String()),
		slog.Int("current_streak", st.CurrentStreak),
		slog.Bool("freeze_used", result.FreezeUsed))

	return result, nil
}

// apply mutates st according to the transition table and reports what
// happened. A zero LastActivityDate means this is the first ever activity.
func apply(st *domain.Streak, today time.Time) *UpdateResult {
	if st.LastActivityDate.IsZero() {
		st.CurrentStreak = 1
		if st.LongestStreak < 1 {
			st.LongestStreak = 1
		}
		st.LastActivityDate = today
		return &UpdateResult{
			Updated:       true,
			CurrentStreak: st.CurrentStreak,
			LongestStreak: st.LongestStreak,
		}
	}

	diffDays := clock.DaysBetween(st.LastActivityDate, today)
	freezeUsed := false

	switch {
	case diffDays == 0:
		return &UpdateResult{
			Updated:       false,
			CurrentStreak: st.CurrentStreak,
			LongestStreak: st.LongestStreak,
		}

	case diffDays == 1:
		st.CurrentStreak++

	case diffDays == 2 && st.FreezesUsed < st.MaxFreezes:
		st.CurrentStreak++
		st.FreezesUsed++
		freezeUsed = true

	default:
		st.CurrentStreak = 1
	}

	if st.CurrentStreak > st.LongestStreak {
		st.LongestStreak = st.CurrentStreak
	}
	st.LastActivityDate = today

	return &UpdateResult{
		Updated:       true,
		CurrentStreak: st.CurrentStreak,
		LongestStreak: st.LongestStreak,
		FreezeUsed:    freezeUsed,
	}
}

func (s *Service) ensure(ctx context.Context, streaks store.StreakStore, userID uuid.UUID) error {
	st, err := domain.NewStreak(userID, s.clock.Now())
	if err != nil {
		return err
	}
	if err := streaks.Ensure(ctx, st); err != nil {
		return fmt.Errorf("failed to ensure streak: %w", err)
	}
	return nil
}
