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

// PostgresProgressionStore implements the store.ProgressionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressionStore creates a new PostgreSQL implementation of the
// ProgressionStore interface. If logger is nil, a default logger is used.
func NewPostgresProgressionStore(db store.DBTX, logger *slog.Logger) *PostgresProgressionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressionStore{
		db:     db,
		logger: logger.With(slog.String("component", "progression_store")),
	}
}

// Ensure PostgresProgressionStore implements store.ProgressionStore interface
var _ store.ProgressionStore = (*PostgresProgressionStore)(nil)

const progressionColumns = `user_id, total_xp, level, coins, energy_crystals,
	max_energy_crystals, subscription_tier, timezone, energy_refreshed_on,
	created_at, updated_at`

// Ensure implements store.ProgressionStore.Ensure using a conflict-tolerant
// insert keyed on user_id.
func (s *PostgresProgressionStore) Ensure(ctx context.Context, p *domain.UserProgression) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := p.Validate(); err != nil {
		log.Warn("progression validation failed during ensure",
			slog.String("error", err.Error()),
			slog.String("user_id", p.UserID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO user_progressions (` + progressionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		p.UserID,
		p.TotalXP,
		p.Level,
		p.Coins,
		p.EnergyCrystals,
		p.MaxEnergyCrystals,
		p.SubscriptionTier,
		p.Timezone,
		nullTime(p.EnergyRefreshedOn),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to ensure progression",
			slog.String("error", err.Error()),
			slog.String("user_id", p.UserID.String()))
		return MapError(err)
	}

	return nil
}

// Get implements store.ProgressionStore.Get.
func (s *PostgresProgressionStore) Get(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserProgression, error) {
	query := `SELECT ` + progressionColumns + ` FROM user_progressions WHERE user_id = $1`
	return s.scanOne(ctx, query, userID)
}

// GetForUpdate implements store.ProgressionStore.GetForUpdate.
func (s *PostgresProgressionStore) GetForUpdate(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserProgression, error) {
	query := `SELECT ` + progressionColumns + ` FROM user_progressions WHERE user_id = $1 FOR UPDATE`
	return s.scanOne(ctx, query, userID)
}

func (s *PostgresProgressionStore) scanOne(
	ctx context.Context,
	query string,
	userID uuid.UUID,
) (*domain.UserProgression, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var p domain.UserProgression
	var refreshedOn sql.NullTime
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.TotalXP,
		&p.Level,
		&p.Coins,
		&p.EnergyCrystals,
		&p.MaxEnergyCrystals,
		&p.SubscriptionTier,
		&p.Timezone,
		&refreshedOn,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProgressionNotFound
		}
		log.Error("failed to get progression",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	if refreshedOn.Valid {
		p.EnergyRefreshedOn = refreshedOn.Time
	}

	return &p, nil
}

// Update implements store.ProgressionStore.Update.
func (s *PostgresProgressionStore) Update(ctx context.Context, p *domain.UserProgression) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := p.Validate(); err != nil {
		log.Warn("progression validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", p.UserID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE user_progressions
		SET total_xp = $2, level = $3, coins = $4, energy_crystals = $5,
			max_energy_crystals = $6, subscription_tier = $7, timezone = $8,
			energy_refreshed_on = $9, updated_at = $10
		WHERE user_id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		p.UserID,
		p.TotalXP,
		p.Level,
		p.Coins,
		p.EnergyCrystals,
		p.MaxEnergyCrystals,
		p.SubscriptionTier,
		p.Timezone,
		nullTime(p.EnergyRefreshedOn),
		p.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update progression",
			slog.String("error", err.Error()),
			slog.String("user_id", p.UserID.String()))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrProgressionNotFound
	}

	return nil
}

// WithTx implements store.ProgressionStore.WithTx.
func (s *PostgresProgressionStore) WithTx(tx *sql.Tx) store.ProgressionStore {
	return &PostgresProgressionStore{
		db:     tx,
		logger: s.logger,
	}
}
