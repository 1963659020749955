package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/platform/logger"
	"github.com/ascendapp/ascend-api/internal/store"
	"github.com/google/uuid"
)

// PostgresAchievementStore implements the store.AchievementStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAchievementStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAchievementStore creates a new PostgreSQL implementation of the
// AchievementStore interface. If logger is nil, a default logger is used.
func NewPostgresAchievementStore(db store.DBTX, logger *slog.Logger) *PostgresAchievementStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAchievementStore{
		db:     db,
		logger: logger.With(slog.String("component", "achievement_store")),
	}
}

// Ensure PostgresAchievementStore implements store.AchievementStore interface
var _ store.AchievementStore = (*PostgresAchievementStore)(nil)

// Insert implements store.AchievementStore.Insert. The RETURNING clause only
// yields a row when this call actually created the unlock, which is how the
// inserted flag is derived without a second round trip.
func (s *PostgresAchievementStore) Insert(
	ctx context.Context,
	unlock *domain.AchievementUnlock,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := unlock.Validate(); err != nil {
		log.Warn("achievement unlock validation failed during insert",
			slog.String("error", err.Error()),
			slog.String("user_id", unlock.UserID.String()))
		return false, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO achievement_unlocks (id, user_id, achievement_id, xp_reward, unlocked_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
		RETURNING id
	`
	var insertedID uuid.UUID
	err := s.db.QueryRowContext(
		ctx,
		query,
		unlock.ID,
		unlock.UserID,
		unlock.AchievementID,
		unlock.XPReward,
		unlock.UnlockedAt,
	).Scan(&insertedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Conflict: the unlock already existed.
			return false, nil
		}
		log.Error("failed to insert achievement unlock",
			slog.String("error", err.Error()),
			slog.String("user_id", unlock.UserID.String()),
			slog.String("achievement_id", unlock.AchievementID))
		return false, MapError(err)
	}

	return true, nil
}

// Get implements store.AchievementStore.Get.
func (s *PostgresAchievementStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	achievementID string,
) (*domain.AchievementUnlock, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, achievement_id, xp_reward, unlocked_at
		FROM achievement_unlocks
		WHERE user_id = $1 AND achievement_id = $2
	`
	var unlock domain.AchievementUnlock
	err := s.db.QueryRowContext(ctx, query, userID, achievementID).Scan(
		&unlock.ID,
		&unlock.UserID,
		&unlock.AchievementID,
		&unlock.XPReward,
		&unlock.UnlockedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUnlockNotFound
		}
		log.Error("failed to get achievement unlock",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("achievement_id", achievementID))
		return nil, MapError(err)
	}

	return &unlock, nil
}

// WithTx implements store.AchievementStore.WithTx.
func (s *PostgresAchievementStore) WithTx(tx *sql.Tx) store.AchievementStore {
	return &PostgresAchievementStore{
		db:     tx,
		logger: s.logger,
	}
}
