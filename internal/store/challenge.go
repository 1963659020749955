package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/google/uuid"
)

// WeeklyChallengeStore defines the interface for weekly challenge
// persistence.
type WeeklyChallengeStore interface {
	// CreateBatch inserts a week's generated challenges. Inserts are
	// conflict-tolerant on (user, week, type): two requests racing to
	// generate the same week leave exactly one set of rows.
	CreateBatch(ctx context.Context, challenges []*domain.WeeklyChallenge) error

	// ListWeek returns the user's challenges for the week starting at the
	// given Monday, ordered by difficulty.
	ListWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) ([]*domain.WeeklyChallenge, error)

	// ListOpenByTypeForUpdate returns the user's not-yet-completed
	// challenges of the given type for the week, with row-level locks so
	// progress increments serialize.
	ListOpenByTypeForUpdate(
		ctx context.Context,
		userID uuid.UUID,
		weekStart time.Time,
		ctype domain.ChallengeType,
	) ([]*domain.WeeklyChallenge, error)

	// Update persists a modified challenge.
	// Returns ErrChallengeNotFound if it does not exist.
	Update(ctx context.Context, c *domain.WeeklyChallenge) error

	// WithTx returns a WeeklyChallengeStore bound to the given transaction.
	WithTx(tx *sql.Tx) WeeklyChallengeStore
}
