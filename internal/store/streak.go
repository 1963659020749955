package store

import (
	"context"
	"database/sql"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/google/uuid"
)

// StreakStore defines the interface for streak persistence.
type StreakStore interface {
	// Ensure creates the streak record if it does not already exist.
	// Conflict-tolerant under concurrent first access.
	Ensure(ctx context.Context, s *domain.Streak) error

	// Get retrieves a user's streak.
	// Returns ErrStreakNotFound if it does not exist.
	Get(ctx context.Context, userID uuid.UUID) (*domain.Streak, error)

	// GetForUpdate retrieves the streak with a row-level lock. Streak
	// fields mutate at most once per local day, but two same-day requests
	// must still serialize.
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Streak, error)

	// Update persists a modified streak.
	// Returns ErrStreakNotFound if it does not exist.
	Update(ctx context.Context, s *domain.Streak) error

	// WithTx returns a StreakStore bound to the given transaction.
	WithTx(tx *sql.Tx) StreakStore
}
