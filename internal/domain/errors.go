package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidQuality is returned when a review quality grade is outside 0-5.
	ErrInvalidQuality = errors.New("quality must be between 0 and 5")

	// ErrInvalidTier is returned when a subscription tier is not recognized.
	ErrInvalidTier = errors.New("invalid subscription tier")

	// ErrInvalidTaskStatus is returned when a task status is not valid.
	ErrInvalidTaskStatus = errors.New("invalid task status")

	// ErrInvalidChallengeType is returned when a challenge type is not valid.
	ErrInvalidChallengeType = errors.New("invalid challenge type")

	// ErrUnauthorized is returned when an operation touches an entity owned
	// by a different user.
	ErrUnauthorized = errors.New("unauthorized operation")
)
