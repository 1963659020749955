package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUpdateFailed is returned when an update operation fails, for
	// example because the entity does not exist.
	ErrUpdateFailed = errors.New("update failed")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrProgressionNotFound indicates the user's progression aggregate
	// does not exist.
	ErrProgressionNotFound = fmt.Errorf("%w: user progression", ErrNotFound)

	// ErrStreakNotFound indicates the user's streak record does not exist.
	ErrStreakNotFound = fmt.Errorf("%w: streak", ErrNotFound)

	// ErrTaskNotFound indicates the requested task does not exist.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// ErrReviewItemNotFound indicates the requested review item does not exist.
	ErrReviewItemNotFound = fmt.Errorf("%w: review item", ErrNotFound)

	// ErrChallengeNotFound indicates the requested weekly challenge does not exist.
	ErrChallengeNotFound = fmt.Errorf("%w: weekly challenge", ErrNotFound)

	// ErrUnlockNotFound indicates the requested achievement unlock does not exist.
	ErrUnlockNotFound = fmt.Errorf("%w: achievement unlock", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrCompletionExists indicates the task was already completed by this user.
	ErrCompletionExists = fmt.Errorf("%w: quest completion", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
