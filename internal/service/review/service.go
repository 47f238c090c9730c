// Package review orchestrates card reviews and study sessions: it loads
// scheduling state from a store, runs it through the srs engine, and
// persists the result. The engine itself stays pure; this package owns
// the I/O and the concurrency policy around it.
package review

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/phraselab/phraselab-api/internal/domain"
	"github.com/phraselab/phraselab-api/internal/domain/srs"
)

// Common error types for ReviewService
var (
	// ErrCardNotFound indicates that the card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrCardNotOwned indicates that the user does not own the card.
	ErrCardNotOwned = errors.New("unauthorized access: card not owned by user")

	// ErrReviewContention indicates that concurrent submissions for the
	// same card kept colliding and the submission was given up on.
	ErrReviewContention = errors.New("review submission lost repeated concurrent updates")
)

// StudyQueue is today's recommended review session for one user.
type StudyQueue struct {
	// Cards holds the due cards, most urgent first, truncated to the
	// recommended load.
	Cards []*domain.Card `json:"cards"`

	// RecommendedLoad is the suggested number of reviews for today.
	RecommendedLoad int `json:"recommended_load"`

	// Backlog is the total number of due cards before truncation.
	Backlog int `json:"backlog"`
}

// ReviewService provides the application-facing review operations.
type ReviewService interface {
	// CreateCard creates and persists the scheduling record for a phrase
	// the user encounters for the first time.
	// Returns domain validation errors for an invalid difficulty.
	CreateCard(
		ctx context.Context,
		phraseID, userID uuid.UUID,
		difficulty domain.DifficultyLevel,
		category domain.Category,
	) (*domain.Card, error)

	// SubmitReview records one review outcome for a card and persists
	// the rescheduled state.
	// Returns ErrCardNotFound if the card does not exist.
	// Returns ErrCardNotOwned if the user does not own the card.
	// Returns validation errors from the ReviewResult if it is invalid.
	SubmitReview(
		ctx context.Context,
		userID, cardID uuid.UUID,
		result domain.ReviewResult,
	) (*domain.Card, error)

	// PostponeCard pushes a card's next review forward by the given
	// number of days.
	// Returns ErrCardNotFound / ErrCardNotOwned as SubmitReview does.
	PostponeCard(
		ctx context.Context,
		userID, cardID uuid.UUID,
		days int,
	) (*domain.Card, error)

	// GetStudyQueue builds today's review session for a user at the
	// given level: due cards in priority order, truncated to the
	// recommended daily load.
	GetStudyQueue(
		ctx context.Context,
		userID uuid.UUID,
		level domain.DifficultyLevel,
	) (*StudyQueue, error)

	// GetStatistics summarizes the user's card collection for dashboards.
	GetStatistics(ctx context.Context, userID uuid.UUID) (*srs.Statistics, error)
}
