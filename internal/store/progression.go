package store

import (
	"context"
	"database/sql"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/google/uuid"
)

// ProgressionStore defines the interface for user progression persistence.
type ProgressionStore interface {
	// Ensure creates the progression aggregate if it does not already
	// exist. The insert is conflict-tolerant: concurrent first touches of
	// the same user are safe and leave exactly one row.
	Ensure(ctx context.Context, p *domain.UserProgression) error

	// Get retrieves a user's progression aggregate.
	// Returns ErrProgressionNotFound if it does not exist.
	// NOTE: no row locking; do not use when you plan to update the row.
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserProgression, error)

	// GetForUpdate retrieves the aggregate with a row-level lock
	// (SELECT FOR UPDATE). Use within a transaction whenever totalXp,
	// coins, or energy are about to change, so concurrent requests for the
	// same user serialize their read-modify-write.
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UserProgression, error)

	// Update persists a modified aggregate.
	// Returns ErrProgressionNotFound if it does not exist.
	Update(ctx context.Context, p *domain.UserProgression) error

	// WithTx returns a ProgressionStore bound to the given transaction.
	WithTx(tx *sql.Tx) ProgressionStore
}
