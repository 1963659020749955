// Package achievement records achievement unlocks and pays their XP reward
// exactly once. The unlock row's uniqueness constraint, not a read-then-act
// check, is what makes replays safe.
package achievement

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/platform/clock"
	"github.com/ascendapp/ascend-api/internal/platform/logger"
	"github.com/ascendapp/ascend-api/internal/service/xp"
	"github.com/ascendapp/ascend-api/internal/store"
	"github.com/google/uuid"
)

// UnlockResult reports an unlock, whether newly created or pre-existing.
type UnlockResult struct {
	AchievementID string    `json:"achievement_id"`
	XPAwarded     int       `json:"xp_awarded"`
	UnlockedAt    time.Time `json:"unlocked_at"`
	AlreadyOwned  bool      `json:"already_owned"`
}

// SyncResult reports a bulk reconciliation of unlock records.
type SyncResult struct {
	Synced int `json:"synced"`
	Total  int `json:"total"`
}

// Service manages achievement unlocks.
type Service struct {
	db      *sql.DB
	unlocks store.AchievementStore
	xp      *xp.Service
	clock   clock.Clock
	logger  *slog.Logger
}

// NewService creates the achievement service.
func NewService(
	db *sql.DB,
	unlocks store.AchievementStore,
	xpService *xp.Service,
	clk clock.Clock,
	log *slog.Logger,
) *Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if unlocks == nil {
		panic("unlocks cannot be nil")
	}
	if xpService == nil {
		panic("xpService cannot be nil")
	}
	if clk == nil {
		panic("clock cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &Service{
		db:      db,
		unlocks: unlocks,
		xp:      xpService,
		clock:   clk,
		logger:  log.With(slog.String("component", "achievement_service")),
	}
}

// Unlock records an achievement unlock and pays its XP reward. Calling it
// again for the same achievement returns the original unlock with zero XP
// awarded; the reward can never be paid twice.
func (s *Service) Unlock(
	ctx context.Context,
	userID uuid.UUID,
	achievementID string,
	xpReward int,
) (*UnlockResult, error) {
	if achievementID == "" {
		return nil, fmt.Errorf("%w: achievement ID is required", domain.ErrValidation)
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	var result *UnlockResult
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var txErr error
		result, txErr = s.UnlockInTx(ctx, tx, userID, achievementID, xpReward)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	if !result.AlreadyOwned {
		log.Info("achievement unlocked",
			slog.String("user_id", userID.String()),
			slog.String("achievement_id", achievementID),
			slog.Int("xp_awarded", result.XPAwarded))
	}

	return result, nil
}

// UnlockInTx is the unlock path for callers that already hold a
// transaction. The insert is conflict-tolerant on (user, achievement), so
// a replay finds the existing row and pays nothing.
func (s *Service) UnlockInTx(
	ctx context.Context,
	tx *sql.Tx,
	userID uuid.UUID,
	achievementID string,
	xpReward int,
) (*UnlockResult, error) {
	unlocks := s.unlocks.WithTx(tx)
	now := s.clock.Now()

	unlock, err := domain.NewAchievementUnlock(userID, achievementID, xpReward, now)
	if err != nil {
		return nil, err
	}

	inserted, err := unlocks.Insert(ctx, unlock)
	if err != nil {
		return nil, fmt.Errorf("failed to insert unlock: %w", err)
	}

	if !inserted {
		existing, err := unlocks.Get(ctx, userID, achievementID)
		if err != nil {
			return nil, fmt.Errorf("failed to load existing unlock: %w", err)
		}
		return &UnlockResult{
			AchievementID: existing.AchievementID,
			XPAwarded:     0,
			UnlockedAt:    existing.UnlockedAt,
			AlreadyOwned:  true,
		}, nil
	}

	awarded := 0
	if xpReward > 0 {
		award, err := s.xp.AwardInTx(ctx, tx, userID, xp.AwardParams{
			Amount:    xpReward,
			Source:    domain.XPSourceAchievement,
			DedupeKey: fmt.Sprintf("achievement:%s", achievementID),
		})
		if err != nil {
			return nil, err
		}
		awarded = award.XPEarned
	}

	return &UnlockResult{
		AchievementID: achievementID,
		XPAwarded:     awarded,
		UnlockedAt:    now,
	}, nil
}

// Sync reconciles the stored unlock set against a client-supplied list,
// inserting any missing records without paying XP. Used when a client has
// unlocks the server never saw, e.g. after offline play.
func (s *Service) Sync(
	ctx context.Context,
	userID uuid.UUID,
	achievementIDs []string,
) (*SyncResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	synced := 0
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		unlocks := s.unlocks.WithTx(tx)
		now := s.clock.Now()

		for _, id := range achievementIDs {
			if id == "" {
				return fmt.Errorf("%w: achievement ID is required", domain.ErrValidation)
			}

			unlock, err := domain.NewAchievementUnlock(userID, id, 0, now)
			if err != nil {
				return err
			}

			inserted, err := unlocks.Insert(ctx, unlock)
			if err != nil {
				return fmt.Errorf("failed to sync unlock %q: %w", id, err)
			}
			if inserted {
				synced++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug("achievements synced",
		slog.String("user_id", userID.String()),
		slog.Int("synced", synced),
		slog.Int("total", len(achievementIDs)))

	return &SyncResult{Synced: synced, Total: len(achievementIDs)}, nil
}
