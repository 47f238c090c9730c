package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/phraselab/phraselab-api/internal/domain"
)

// CardStore defines the interface for card scheduling-state persistence.
//
// The scheduling engine itself is pure; everything stateful funnels
// through this interface. Implementations must guarantee at most one
// writer per card: Update performs a compare-and-swap against the
// card's UpdatedAt timestamp and returns ErrConflict for the loser of a
// race, leaving the retry policy to the caller.
type CardStore interface {
	// Create saves a new card.
	// It handles domain validation internally.
	// Returns validation errors from the domain Card if data is invalid.
	// Returns ErrDuplicate if a card with the same ID already exists.
	Create(ctx context.Context, card *domain.Card) error

	// Get retrieves a card by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// ListByUser retrieves all cards belonging to a user, in creation order.
	// Returns an empty slice if the user has no cards.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error)

	// Update modifies an existing card using optimistic concurrency: the
	// write succeeds only if the stored card's UpdatedAt still matches
	// expectedUpdatedAt, the timestamp the caller observed when it read
	// the card.
	// Returns ErrCardNotFound if the card does not exist.
	// Returns ErrConflict if the card was modified since it was read.
	// Returns validation errors from the domain Card if data is invalid.
	Update(ctx context.Context, card *domain.Card, expectedUpdatedAt time.Time) error

	// Delete removes a card by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	// This operation is permanent and cannot be undone.
	Delete(ctx context.Context, id uuid.UUID) error
}
