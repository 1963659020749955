package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/google/uuid"
)

// TaskStore defines the read-mostly interface over roadmap tasks. The
// roadmap subsystem owns task creation and ordering; the progression core
// reads candidates and flips tasks to completed.
type TaskStore interface {
	// ListCandidates returns the user's not-yet-completed tasks in their
	// natural roadmap order. Locked tasks are included alongside available
	// ones; see the quest allocator for why this is deliberate.
	ListCandidates(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// GetByID retrieves a task.
	// Returns ErrTaskNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// MarkCompleted sets the task's status to completed.
	// Returns ErrTaskNotFound if it does not exist.
	MarkCompleted(ctx context.Context, id uuid.UUID, now time.Time) error

	// WithTx returns a TaskStore bound to the given transaction.
	WithTx(tx *sql.Tx) TaskStore
}

// QuestCompletionStore defines the interface for quest completion records.
type QuestCompletionStore interface {
	// Create writes a completion record. The (user, task) pair is unique;
	// completing the same task twice returns ErrCompletionExists.
	Create(ctx context.Context, c *domain.QuestCompletion) error

	// ListSince returns the user's completions at or after the given
	// instant, used to reconstruct "already done today" and per-type
	// counts.
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*domain.QuestCompletion, error)

	// CountSince counts the user's completions at or after the given
	// instant. The weekly challenge generator calibrates targets from a
	// two-week window of these.
	CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)

	// WithTx returns a QuestCompletionStore bound to the given transaction.
	WithTx(tx *sql.Tx) QuestCompletionStore
}
