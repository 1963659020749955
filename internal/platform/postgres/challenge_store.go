package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/platform/logger"
	"github.com/ascendapp/ascend-api/internal/store"
	"github.com/google/uuid"
)

// PostgresWeeklyChallengeStore implements the store.WeeklyChallengeStore
// interface using a PostgreSQL database as the storage backend.
type PostgresWeeklyChallengeStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWeeklyChallengeStore creates a new PostgreSQL implementation of
// the WeeklyChallengeStore interface. If logger is nil, a default logger is
// used.
func NewPostgresWeeklyChallengeStore(
	db store.DBTX,
	logger *slog.Logger,
) *PostgresWeeklyChallengeStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWeeklyChallengeStore{
		db:     db,
		logger: logger.With(slog.String("component", "weekly_challenge_store")),
	}
}

// Ensure PostgresWeeklyChallengeStore implements store.WeeklyChallengeStore interface
var _ store.WeeklyChallengeStore = (*PostgresWeeklyChallengeStore)(nil)

const challengeColumns = `id, user_id, week_start, challenge_type, difficulty, skill_domain,
	target_value, current_value, completed, completed_at, xp_reward, coin_reward, created_at,
	updated_at`

// CreateBatch implements store.WeeklyChallengeStore.CreateBatch.
// Each insert tolerates conflicts on (user_id, week_start, challenge_type),
// which makes concurrent first-access generation produce exactly one set.
func (s *PostgresWeeklyChallengeStore) CreateBatch(
	ctx context.Context,
	challenges []*domain.WeeklyChallenge,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO weekly_challenges (` + challengeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id, week_start, challenge_type) DO NOTHING
	`
	for _, c := range challenges {
		if err := c.Validate(); err != nil {
			log.Warn("weekly challenge validation failed during create",
				slog.String("error", err.Error()),
				slog.String("user_id", c.UserID.String()))
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}

		_, err := s.db.ExecContext(
			ctx,
			query,
			c.ID,
			c.UserID,
			c.WeekStart,
			c.Type,
			c.Difficulty,
			c.SkillDomain,
			c.TargetValue,
			c.CurrentValue,
			c.Completed,
			c.CompletedAt,
			c.XPReward,
			c.CoinReward,
			c.CreatedAt,
			c.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to create weekly challenge",
				slog.String("error", err.Error()),
				slog.String("user_id", c.UserID.String()),
				slog.String("type", string(c.Type)))
			return MapError(err)
		}
	}

	return nil
}

// ListWeek implements store.WeeklyChallengeStore.ListWeek.
func (s *PostgresWeeklyChallengeStore) ListWeek(
	ctx context.Context,
	userID uuid.UUID,
	weekStart time.Time,
) ([]*domain.WeeklyChallenge, error) {
	query := `
		SELECT ` + challengeColumns + `
		FROM weekly_challenges
		WHERE user_id = $1 AND week_start = $2
		ORDER BY CASE difficulty
			WHEN 'easy' THEN 0
			WHEN 'medium' THEN 1
			ELSE 2
		END
	`
	return s.list(ctx, query, userID, weekStart)
}

// ListOpenByTypeForUpdate implements
// store.WeeklyChallengeStore.ListOpenByTypeForUpdate.
func (s *PostgresWeeklyChallengeStore) ListOpenByTypeForUpdate(
	ctx context.Context,
	userID uuid.UUID,
	weekStart time.Time,
	ctype domain.ChallengeType,
) ([]*domain.WeeklyChallenge, error) {
	query := `
		SELECT ` + challengeColumns + `
		FROM weekly_challenges
		WHERE user_id = $1 AND week_start = $2 AND challenge_type = $3 AND NOT completed
		ORDER BY created_at ASC
		FOR UPDATE
	`
	return s.list(ctx, query, userID, weekStart, ctype)
}

func (s *PostgresWeeklyChallengeStore) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.WeeklyChallenge, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list weekly challenges",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var challenges []*domain.WeeklyChallenge
	for rows.Next() {
		var c domain.WeeklyChallenge
		var completedAt sql.NullTime
		err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.WeekStart,
			&c.Type,
			&c.Difficulty,
			&c.SkillDomain,
			&c.TargetValue,
			&c.CurrentValue,
			&c.Completed,
			&completedAt,
			&c.XPReward,
			&c.CoinReward,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, MapError(err)
		}
		if completedAt.Valid {
			c.CompletedAt = &completedAt.Time
		}
		challenges = append(challenges, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return challenges, nil
}

// Update implements store.WeeklyChallengeStore.Update.
func (s *PostgresWeeklyChallengeStore) Update(
	ctx context.Context,
	c *domain.WeeklyChallenge,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := c.Validate(); err != nil {
		log.Warn("weekly challenge validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", c.UserID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE weekly_challenges
		SET current_value = $2, completed = $3, completed_at = $4, updated_at = $5
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		c.ID,
		c.CurrentValue,
		c.Completed,
		c.CompletedAt,
		c.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update weekly challenge",
			slog.String("error", err.Error()),
			slog.String("challenge_id", c.ID.String()))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrChallengeNotFound
	}

	return nil
}

// WithTx implements store.WeeklyChallengeStore.WithTx.
func (s *PostgresWeeklyChallengeStore) WithTx(tx *sql.Tx) store.WeeklyChallengeStore {
	return &PostgresWeeklyChallengeStore{
		db:     tx,
		logger: s.logger,
	}
}
