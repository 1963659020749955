package store

import (
	"context"
	"database/sql"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/google/uuid"
)

// AchievementStore defines the interface for achievement unlock records.
type AchievementStore interface {
	// Insert writes an unlock record, tolerating conflicts on the
	// (user, achievement) pair. Returns true when this call created the
	// row and false when an unlock already existed, which is how callers
	// decide whether reward XP is owed.
	Insert(ctx context.Context, unlock *domain.AchievementUnlock) (bool, error)

	// Get retrieves an existing unlock.
	// Returns ErrUnlockNotFound if it does not exist.
	Get(ctx context.Context, userID uuid.UUID, achievementID string) (*domain.AchievementUnlock, error)

	// WithTx returns an AchievementStore bound to the given transaction.
	WithTx(tx *sql.Tx) AchievementStore
}
