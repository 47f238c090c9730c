package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/phraselab/phraselab-api/internal/domain"
	"github.com/phraselab/phraselab-api/internal/domain/srs"
	"github.com/phraselab/phraselab-api/internal/platform/logger"
	"github.com/phraselab/phraselab-api/internal/store"
)

// maxSubmitRetries bounds how often a review submission is retried when
// it loses an optimistic-concurrency race.
const maxSubmitRetries = 3

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	cards      store.CardStore
	srsService srs.Service
	logger     *slog.Logger
	now        func() time.Time
}

// NewReviewService creates a new ReviewService implementation.
// The now function is the service's clock; passing nil uses UTC wall
// time. Tests inject a fixed clock to keep scheduling deterministic.
func NewReviewService(
	cards store.CardStore,
	srsService srs.Service,
	log *slog.Logger,
	now func() time.Time,
) ReviewService {
	if cards == nil {
		panic("cards store cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	return &reviewServiceImpl{
		cards:      cards,
		srsService: srsService,
		logger:     log.With(slog.String("component", "review_service")),
		now:        now,
	}
}

// CreateCard implements ReviewService.CreateCard.
func (s *reviewServiceImpl) CreateCard(
	ctx context.Context,
	phraseID, userID uuid.UUID,
	difficulty domain.DifficultyLevel,
	category domain.Category,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.srsService.InitializeCard(phraseID, userID, difficulty, category, s.now())
	if err != nil {
		log.Warn("failed to initialize card",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("phrase_id", phraseID.String()))
		return nil, err
	}

	if err := s.cards.Create(ctx, card); err != nil {
		log.Error("failed to persist new card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return nil, fmt.Errorf("failed to persist new card: %w", err)
	}

	log.Debug("created card",
		slog.String("card_id", card.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("difficulty", string(difficulty)))
	return card, nil
}

// SubmitReview implements ReviewService.SubmitReview.
//
// The update runs as an optimistic read-modify-write: load the card,
// compute the next state with the engine, and write back conditioned on
// the card being unchanged. A lost race reloads fresh state and retries
// a bounded number of times; the engine requires only that each attempt
// sees a single consistent prior state.
func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	userID, cardID uuid.UUID,
	result domain.ReviewResult,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := result.Validate(); err != nil {
		log.Warn("invalid review result",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return nil, err
	}

	for attempt := 0; attempt < maxSubmitRetries; attempt++ {
		card, err := s.loadOwnedCard(ctx, userID, cardID, log)
		if err != nil {
			return nil, err
		}

		updated, err := s.srsService.CalculateNextReview(card, result, s.now())
		if err != nil {
			return nil, err
		}

		err = s.cards.Update(ctx, updated, card.UpdatedAt)
		if err == nil {
			log.Debug("review submitted",
				slog.String("card_id", cardID.String()),
				slog.Int("quality", int(result.Quality)),
				slog.Int("next_interval_days", updated.Interval))
			return updated, nil
		}
		if !store.IsConflictError(err) {
			log.Error("failed to persist review",
				slog.String("error", err.Error()),
				slog.String("card_id", cardID.String()))
			return nil, fmt.Errorf("failed to persist review: %w", err)
		}

		log.Debug("review submission lost a concurrent update, retrying",
			slog.String("card_id", cardID.String()),
			slog.Int("attempt", attempt+1))
	}

	log.Warn("review submission exhausted retries",
		slog.String("card_id", cardID.String()))
	return nil, ErrReviewContention
}

// PostponeCard implements ReviewService.PostponeCard.
func (s *reviewServiceImpl) PostponeCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	days int,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.loadOwnedCard(ctx, userID, cardID, log)
	if err != nil {
		return nil, err
	}

	postponed, err := s.srsService.PostponeReview(card, days, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.cards.Update(ctx, postponed, card.UpdatedAt); err != nil {
		if store.IsConflictError(err) {
			return nil, fmt.Errorf("%w: %w", ErrReviewContention, err)
		}
		return nil, fmt.Errorf("failed to persist postponed card: %w", err)
	}

	log.Debug("card postponed",
		slog.String("card_id", cardID.String()),
		slog.Int("days", days))
	return postponed, nil
}

// GetStudyQueue implements ReviewService.GetStudyQueue.
func (s *reviewServiceImpl) GetStudyQueue(
	ctx context.Context,
	userID uuid.UUID,
	level domain.DifficultyLevel,
) (*StudyQueue, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now()

	cards, err := s.cards.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list cards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	due := s.srsService.SortByPriority(cards, now)
	load, err := s.srsService.RecommendDailyLoad(cards, level, now)
	if err != nil {
		return nil, err
	}

	queue := &StudyQueue{
		Cards:           due,
		RecommendedLoad: load,
		Backlog:         len(due),
	}
	if len(queue.Cards) > load {
		queue.Cards = queue.Cards[:load]
	}

	log.Debug("built study queue",
		slog.String("user_id", userID.String()),
		slog.Int("backlog", queue.Backlog),
		slog.Int("recommended_load", load))
	return queue, nil
}

// GetStatistics implements ReviewService.GetStatistics.
func (s *reviewServiceImpl) GetStatistics(
	ctx context.Context,
	userID uuid.UUID,
) (*srs.Statistics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cards.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list cards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	return s.srsService.GenerateStatistics(cards, s.now()), nil
}

// loadOwnedCard fetches a card and verifies ownership.
func (s *reviewServiceImpl) loadOwnedCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	log *slog.Logger,
) (*domain.Card, error) {
	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("card not found",
				slog.String("user_id", userID.String()),
				slog.String("card_id", cardID.String()))
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	if card.UserID != userID {
		log.Warn("user does not own card",
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()),
			slog.String("owner_id", card.UserID.String()))
		return nil, ErrCardNotOwned
	}

	return card, nil
}
