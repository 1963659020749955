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

// PostgresXPEventStore implements the store.XPEventStore interface
// using a PostgreSQL database as the storage backend.
type PostgresXPEventStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresXPEventStore creates a new PostgreSQL implementation of the
// XPEventStore interface. If logger is nil, a default logger is used.
func NewPostgresXPEventStore(db store.DBTX, logger *slog.Logger) *PostgresXPEventStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresXPEventStore{
		db:     db,
		logger: logger.With(slog.String("component", "xp_event_store")),
	}
}

// Ensure PostgresXPEventStore implements store.XPEventStore interface
var _ store.XPEventStore = (*PostgresXPEventStore)(nil)

// Create implements store.XPEventStore.Create.
func (s *PostgresXPEventStore) Create(ctx context.Context, event *domain.XPEvent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := event.Validate(); err != nil {
		log.Warn("XP event validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", event.UserID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	// Empty dedupe keys are stored as NULL so the partial unique index
	// only constrains keyed events.
	var dedupeKey sql.NullString
	if event.DedupeKey != "" {
		dedupeKey = sql.NullString{String: event.DedupeKey, Valid: true}
	}

	query := `
		INSERT INTO xp_events (id, user_id, amount, source, multiplier, dedupe_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		event.ID,
		event.UserID,
		event.Amount,
		event.Source,
		event.Multiplier,
		dedupeKey,
		event.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create XP event",
			slog.String("error", err.Error()),
			slog.String("user_id", event.UserID.String()),
			slog.String("source", string(event.Source)))
		return MapError(err)
	}

	return nil
}

// TotalSince implements store.XPEventStore.TotalSince.
func (s *PostgresXPEventStore) TotalSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM xp_events
		WHERE user_id = $1 AND created_at >= $2
	`
	var total int
	if err := s.db.QueryRowContext(ctx, query, userID, since).Scan(&total); err != nil {
		log.Error("failed to sum XP events",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}

	return total, nil
}

// ExistsDedupe implements store.XPEventStore.ExistsDedupe.
func (s *PostgresXPEventStore) ExistsDedupe(
	ctx context.Context,
	userID uuid.UUID,
	source domain.XPSource,
	dedupeKey string,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM xp_events
			WHERE user_id = $1 AND source = $2 AND dedupe_key = $3
		)
	`
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, userID, source, dedupeKey).Scan(&exists); err != nil {
		log.Error("failed to check XP event dedupe key",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("source", string(source)))
		return false, MapError(err)
	}

	return exists, nil
}

// WithTx implements store.XPEventStore.WithTx.
func (s *PostgresXPEventStore) WithTx(tx *sql.Tx) store.XPEventStore {
	return &PostgresXPEventStore{
		db:     tx,
		logger: s.logger,
	}
}
