package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/google/uuid"
)

// XPEventStore defines the interface for the append-only XP ledger.
type XPEventStore interface {
	// Create appends a ledger event. Events are immutable; there is no
	// update or delete.
	Create(ctx context.Context, event *domain.XPEvent) error

	// TotalSince sums the amounts of all events for the user created at or
	// after the given instant. Callers pass local midnight to get the
	// daily total the soft cap is computed from.
	TotalSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)

	// ExistsDedupe reports whether an event with the given source and
	// dedupe key already exists for the user. This is the duplicate-award
	// guard for reward-bound XP.
	ExistsDedupe(
		ctx context.Context,
		userID uuid.UUID,
		source domain.XPSource,
		dedupeKey string,
	) (bool, error)

	// WithTx returns an XPEventStore bound to the given transaction.
	WithTx(tx *sql.Tx) XPEventStore
}
