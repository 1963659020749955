package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/platform/logger"
	"github.com/ascendapp/ascend-api/internal/store"
	"github.com/google/uuid"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. If logger is nil, a default logger is used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

const taskColumns = `id, user_id, title, quest_type, task_type, xp_reward, coin_reward,
	rarity, difficulty_tier, validation_type, knowledge_check, skill_domain,
	estimated_minutes, status, position, created_at, updated_at`

// ListCandidates implements store.TaskStore.ListCandidates.
// Locked tasks are returned alongside available and in-progress ones;
// only completed and skipped tasks are excluded.
func (s *PostgresTaskStore) ListCandidates(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND status NOT IN ($2, $3)
		ORDER BY position ASC
	`
	rows, err := s.db.QueryContext(
		ctx,
		query,
		userID,
		domain.TaskStatusCompleted,
		domain.TaskStatusSkipped,
	)
	if err != nil {
		log.Error("failed to list candidate tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	return task, nil
}

// MarkCompleted implements store.TaskStore.MarkCompleted.
func (s *PostgresTaskStore) MarkCompleted(ctx context.Context, id uuid.UUID, now time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE tasks SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id, domain.TaskStatusCompleted, now)
	if err != nil {
		log.Error("failed to mark task completed",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// WithTx implements store.TaskStore.WithTx.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var knowledgeCheck []byte
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.QuestType,
		&task.TaskType,
		&task.XPReward,
		&task.CoinReward,
		&task.Rarity,
		&task.DifficultyTier,
		&task.ValidationType,
		&knowledgeCheck,
		&task.SkillDomain,
		&task.EstimatedMinutes,
		&task.Status,
		&task.Position,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(knowledgeCheck) > 0 {
		var kc domain.KnowledgeCheck
		if err := json.Unmarshal(knowledgeCheck, &kc); err != nil {
			return nil, fmt.Errorf("%w: malformed knowledge check payload: %v",
				store.ErrInvalidEntity, err)
		}
		task.KnowledgeCheck = &kc
	}

	return &task, nil
}
