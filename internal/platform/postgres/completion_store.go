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

// PostgresQuestCompletionStore implements the store.QuestCompletionStore
// interface using a PostgreSQL database as the storage backend.
type PostgresQuestCompletionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresQuestCompletionStore creates a new PostgreSQL implementation of
// the QuestCompletionStore interface. If logger is nil, a default logger is
// used.
func NewPostgresQuestCompletionStore(
	db store.DBTX,
	logger *slog.Logger,
) *PostgresQuestCompletionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresQuestCompletionStore{
		db:     db,
		logger: logger.With(slog.String("component", "quest_completion_store")),
	}
}

// Ensure PostgresQuestCompletionStore implements store.QuestCompletionStore interface
var _ store.QuestCompletionStore = (*PostgresQuestCompletionStore)(nil)

// Create implements store.QuestCompletionStore.Create.
// The unique (user_id, task_id) constraint turns a double completion into
// store.ErrCompletionExists.
func (s *PostgresQuestCompletionStore) Create(
	ctx context.Context,
	completion *domain.QuestCompletion,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := completion.Validate(); err != nil {
		log.Warn("quest completion validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", completion.UserID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO quest_completions (id, user_id, task_id, quest_type, completed_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		completion.ID,
		completion.UserID,
		completion.TaskID,
		completion.QuestType,
		completion.CompletedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrCompletionExists
		}
		log.Error("failed to create quest completion",
			slog.String("error", err.Error()),
			slog.String("user_id", completion.UserID.String()),
			slog.String("task_id", completion.TaskID.String()))
		return MapError(err)
	}

	return nil
}

// ListSince implements store.QuestCompletionStore.ListSince.
func (s *PostgresQuestCompletionStore) ListSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) ([]*domain.QuestCompletion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, task_id, quest_type, completed_at
		FROM quest_completions
		WHERE user_id = $1 AND completed_at >= $2
		ORDER BY completed_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		log.Error("failed to list quest completions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var completions []*domain.QuestCompletion
	for rows.Next() {
		var c domain.QuestCompletion
		err := rows.Scan(&c.ID, &c.UserID, &c.TaskID, &c.QuestType, &c.CompletedAt)
		if err != nil {
			return nil, MapError(err)
		}
		completions = append(completions, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return completions, nil
}

// CountSince implements store.QuestCompletionStore.CountSince.
func (s *PostgresQuestCompletionStore) CountSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM quest_completions
		WHERE user_id = $1 AND completed_at >= $2
	`
	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, since).Scan(&count); err != nil {
		log.Error("failed to count quest completions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}

	return count, nil
}

// WithTx implements store.QuestCompletionStore.WithTx.
func (s *PostgresQuestCompletionStore) WithTx(tx *sql.Tx) store.QuestCompletionStore {
	return &PostgresQuestCompletionStore{
		db:     tx,
		logger: s.logger,
	}
}
