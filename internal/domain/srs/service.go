package srs

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/phraselab/phraselab-api/internal/domain"
)

// Common errors
var (
	ErrNilCard       = errors.New("card cannot be nil")
	ErrNilParams     = errors.New("params cannot be nil")
	ErrInvalidParams = errors.New("invalid params")
	ErrInvalidDays   = errors.New("postpone days must be at least 1")
)

// Service defines the interface for SRS algorithm operations.
//
// Every method takes the current time explicitly and performs no I/O, so
// results are fully determined by the inputs. Card arguments are never
// modified; methods that change state return new instances.
type Service interface {
	// InitializeCard creates the scheduling record for a phrase a user
	// encounters for the first time, seeded by difficulty.
	InitializeCard(
		phraseID, userID uuid.UUID,
		difficulty domain.DifficultyLevel,
		category domain.Category,
		now time.Time,
	) (*domain.Card, error)

	// CalculateNextReview computes the card state that follows one review.
	CalculateNextReview(
		card *domain.Card,
		result domain.ReviewResult,
		now time.Time,
	) (*domain.Card, error)

	// PostponeReview pushes the next review time forward by a specified number of days
	PostponeReview(
		card *domain.Card,
		days int,
		now time.Time,
	) (*domain.Card, error)

	// IsDue reports whether the card's next review time has passed
	IsDue(card *domain.Card, now time.Time) bool

	// SortByPriority filters to due cards and orders them most urgent first
	SortByPriority(cards []*domain.Card, now time.Time) []*domain.Card

	// RecommendDailyLoad suggests how many reviews a learner at the given
	// level should do today, given their backlog of due cards.
	RecommendDailyLoad(
		cards []*domain.Card,
		level domain.DifficultyLevel,
		now time.Time,
	) (int, error)

	// GenerateStatistics summarizes a card collection for dashboards
	GenerateStatistics(cards []*domain.Card, now time.Time) *Statistics
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters
func NewServiceWithParams(params *Params) (Service, error) {
	if params == nil {
		return nil, ErrNilParams
	}

	if params.MinEaseFactor <= 1.0 || params.MaxEaseFactor <= params.MinEaseFactor {
		return nil, ErrInvalidParams
	}
	if params.RelearnInterval < 1 || params.EarlyReviewInterval < 1 {
		return nil, ErrInvalidParams
	}

	return &defaultService{
		params: params,
	}, nil
}

// InitializeCard implements the Service interface for creating new cards
func (s *defaultService) InitializeCard(
	phraseID, userID uuid.UUID,
	difficulty domain.DifficultyLevel,
	category domain.Category,
	now time.Time,
) (*domain.Card, error) {
	if !difficulty.IsValid() {
		return nil, domain.ErrInvalidDifficulty
	}

	interval := s.params.InitialInterval[difficulty]

	card := &domain.Card{
		ID:          uuid.New(),
		PhraseID:    phraseID,
		UserID:      userID,
		EaseFactor:  s.params.InitialEaseFactor[difficulty],
		Interval:    interval,
		Repetitions: 0,
		QualityHist: []domain.Quality{},
		NextReview:  now.AddDate(0, 0, interval),
		Difficulty:  difficulty,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// CalculateNextReview implements the Service interface for calculating updated cards
func (s *defaultService) CalculateNextReview(
	card *domain.Card,
	result domain.ReviewResult,
	now time.Time,
) (*domain.Card, error) {
	// Validate inputs
	if card == nil {
		return nil, ErrNilCard
	}

	if err := result.Validate(); err != nil {
		return nil, err
	}

	// Use the pure calculation function to get the new card state
	return calculateNextCard(card, result, now, s.params), nil
}

// PostponeReview implements the Service interface for postponing reviews
func (s *defaultService) PostponeReview(
	card *domain.Card,
	days int,
	now time.Time,
) (*domain.Card, error) {
	// Validate inputs
	if card == nil {
		return nil, ErrNilCard
	}

	if days < 1 {
		return nil, ErrInvalidDays
	}

	next := card.Clone()
	next.NextReview = card.NextReview.AddDate(0, 0, days)
	next.UpdatedAt = now

	return next, nil
}
