// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidQuality is returned when a quality rating is outside 0-5.
	ErrInvalidQuality = errors.New("quality rating must be between 0 and 5")

	// ErrInvalidResponseTime is returned when a response time is negative.
	ErrInvalidResponseTime = errors.New("response time cannot be negative")

	// ErrInvalidHintsUsed is returned when a hint count is negative.
	ErrInvalidHintsUsed = errors.New("hints used cannot be negative")
)
