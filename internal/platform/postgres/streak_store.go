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

// PostgresStreakStore implements the store.StreakStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStreakStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStreakStore creates a new PostgreSQL implementation of the
// StreakStore interface. If logger is nil, a default logger is used.
func NewPostgresStreakStore(db store.DBTX, logger *slog.Logger) *PostgresStreakStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStreakStore{
		db:     db,
		logger: logger.With(slog.String("component", "streak_store")),
	}
}

// Ensure PostgresStreakStore implements store.StreakStore interface
var _ store.StreakStore = (*PostgresStreakStore)(nil)

const streakColumns = `user_id, current_streak, longest_streak, last_activity_date,
	freezes_used, max_freezes, created_at, updated_at`

// Ensure implements store.StreakStore.Ensure.
func (s *PostgresStreakStore) Ensure(ctx context.Context, streak *domain.Streak) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := streak.Validate(); err != nil {
		log.Warn("streak validation failed during ensure",
			slog.String("error", err.Error()),
			slog.String("user_id", streak.UserID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	// The zero time is persisted as NULL: no qualifying activity yet.
	var lastActivity sql.NullTime
	if !streak.LastActivityDate.IsZero() {
		lastActivity = sql.NullTime{Time: streak.LastActivityDate, Valid: true}
	}

	query := `
		INSERT INTO streaks (` + streakColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		streak.UserID,
		streak.CurrentStreak,
		streak.LongestStreak,
		lastActivity,
		streak.FreezesUsed,
		streak.MaxFreezes,
		streak.CreatedAt,
		streak.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to ensure streak",
			slog.String("error", err.Error()),
			slog.String("user_id", streak.UserID.String()))
		return MapError(err)
	}

	return nil
}

// Get implements store.StreakStore.Get.
func (s *PostgresStreakStore) Get(ctx context.Context, userID uuid.UUID) (*domain.Streak, error) {
	query := `SELECT ` + streakColumns + ` FROM streaks WHERE user_id = $1`
	return s.scanOne(ctx, query, userID)
}

// GetForUpdate implements store.StreakStore.GetForUpdate.
func (s *PostgresStreakStore) GetForUpdate(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Streak, error) {
	query := `SELECT ` + streakColumns + ` FROM streaks WHERE user_id = $1 FOR UPDATE`
	return s.scanOne(ctx, query, userID)
}

func (s *PostgresStreakStore) scanOne(
	ctx context.Context,
	query string,
	userID uuid.UUID,
) (*domain.Streak, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var streak domain.Streak
	var lastActivity sql.NullTime
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&streak.UserID,
		&streak.CurrentStreak,
		&streak.LongestStreak,
		&lastActivity,
		&streak.FreezesUsed,
		&streak.MaxFreezes,
		&streak.CreatedAt,
		&streak.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStreakNotFound
		}
		log.Error("failed to get streak",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	if lastActivity.Valid {
		streak.LastActivityDate = lastActivity.Time
	}

	return &streak, nil
}

// Update implements store.StreakStore.Update.
func (s *PostgresStreakStore) Update(ctx context.Context, streak *domain.Streak) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := streak.Validate(); err != nil {
		log.Warn("streak validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", streak.UserID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	var lastActivity sql.NullTime
	if !streak.LastActivityDate.IsZero() {
		lastActivity = sql.NullTime{Time: streak.LastActivityDate, Valid: true}
	}

	query := `
		UPDATE streaks
		SET current_streak = $2, longest_streak = $3, last_activity_date = $4,
			freezes_used = $5, max_freezes = $6, updated_at = $7
		WHERE user_id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		streak.UserID,
		streak.CurrentStreak,
		streak.LongestStreak,
		lastActivity,
		streak.FreezesUsed,
		streak.MaxFreezes,
		streak.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update streak",
			slog.String("error", err.Error()),
			slog.String("user_id", streak.UserID.String()))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrStreakNotFound
	}

	return nil
}

// WithTx implements store.StreakStore.WithTx.
func (s *PostgresStreakStore) WithTx(tx *sql.Tx) store.StreakStore {
	return &PostgresStreakStore{
		db:     tx,
		logger: s.logger,
	}
}
