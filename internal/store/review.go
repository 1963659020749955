package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/google/uuid"
)

// ReviewItemStore defines the interface for spaced-repetition review state.
type ReviewItemStore interface {
	// Ensure inserts the item if no row exists for its (user, skill) pair
	// and returns the stored row either way. The insert is
	// conflict-tolerant, so duplicate "ensure exists" calls are safe under
	// concurrency.
	Ensure(ctx context.Context, item *domain.ReviewItem) (*domain.ReviewItem, error)

	// Get retrieves a user's review state for a skill.
	// Returns ErrReviewItemNotFound if it does not exist.
	Get(ctx context.Context, userID uuid.UUID, skillID string) (*domain.ReviewItem, error)

	// GetForUpdate retrieves the item with a row-level lock for the
	// submit-review read-modify-write.
	GetForUpdate(ctx context.Context, userID uuid.UUID, skillID string) (*domain.ReviewItem, error)

	// Update persists a modified item.
	// Returns ErrReviewItemNotFound if it does not exist.
	Update(ctx context.Context, item *domain.ReviewItem) error

	// ListDue returns items with nextReview <= now, ordered by nextReview
	// ascending, limited to the given page size.
	ListDue(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*domain.ReviewItem, error)

	// CountDue counts items with nextReview <= now.
	CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)

	// NextReviewAfter returns the earliest nextReview strictly after now,
	// or nil when the user has no future reviews scheduled.
	NextReviewAfter(ctx context.Context, userID uuid.UUID, now time.Time) (*time.Time, error)

	// ListByUser returns all of a user's review items, ordered by skill ID.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ReviewItem, error)

	// WithTx returns a ReviewItemStore bound to the given transaction.
	WithTx(tx *sql.Tx) ReviewItemStore
}
