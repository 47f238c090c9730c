package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/phraselab/phraselab-api/internal/domain"
	"github.com/phraselab/phraselab-api/internal/store"
)

func newCard(userID uuid.UUID, now time.Time) *domain.Card {
	return &domain.Card{
		ID:          uuid.New(),
		PhraseID:    uuid.New(),
		UserID:      userID,
		EaseFactor:  2.5,
		Interval:    1,
		QualityHist: []domain.Quality{},
		NextReview:  now.AddDate(0, 0, 1),
		Difficulty:  domain.DifficultyBeginner,
		Category:    domain.CategoryVocabulary,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestCardStoreCreateAndGet(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	s := New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	card := newCard(uuid.New(), now)
	require.NoError(t, s.Create(ctx, card))

	// Duplicate IDs are rejected
	require.ErrorIs(t, s.Create(ctx, card), store.ErrDuplicate)

	got, err := s.Get(ctx, card.ID)
	require.NoError(t, err)
	require.Equal(t, card, got)

	// The stored copy is isolated from later mutations of the original
	card.Interval = 99
	got, err = s.Get(ctx, card.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Interval)

	_, err = s.Get(ctx, uuid.New())
	require.ErrorIs(t, err, store.ErrCardNotFound)
	require.True(t, store.IsNotFoundError(err))
}

func TestCardStoreCreateRejectsInvalid(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	s := New()

	card := newCard(uuid.New(), time.Now().UTC())
	card.EaseFactor = 0.5

	err := s.Create(ctx, card)
	require.ErrorIs(t, err, store.ErrInvalidEntity)
	require.ErrorIs(t, err, domain.ErrInvalidEaseFactor)
}

func TestCardStoreListByUser(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	s := New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	userID := uuid.New()
	first := newCard(userID, now)
	second := newCard(userID, now)
	other := newCard(uuid.New(), now)

	require.NoError(t, s.Create(ctx, first))
	require.NoError(t, s.Create(ctx, other))
	require.NoError(t, s.Create(ctx, second))

	cards, err := s.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	require.Equal(t, first.ID, cards[0].ID, "listing preserves creation order")
	require.Equal(t, second.ID, cards[1].ID)

	empty, err := s.ListByUser(ctx, uuid.New())
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestCardStoreUpdateOptimisticConcurrency(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	s := New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	card := newCard(uuid.New(), now)
	require.NoError(t, s.Create(ctx, card))

	// First writer wins
	winner := card.Clone()
	winner.Interval = 6
	winner.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, s.Update(ctx, winner, now))

	// Second writer read the same original state and must lose
	loser := card.Clone()
	loser.Interval = 12
	loser.UpdatedAt = now.Add(2 * time.Minute)
	err := s.Update(ctx, loser, now)
	require.ErrorIs(t, err, store.ErrConflict)
	require.True(t, store.IsConflictError(err))

	// The winner's write survived
	got, err := s.Get(ctx, card.ID)
	require.NoError(t, err)
	require.Equal(t, 6, got.Interval)

	// Updating a missing card reports not found
	missing := newCard(uuid.New(), now)
	require.ErrorIs(t, s.Update(ctx, missing, now), store.ErrCardNotFound)
}

func TestCardStoreDelete(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ctx := context.Background()
	s := New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	card := newCard(uuid.New(), now)
	require.NoError(t, s.Create(ctx, card))
	require.NoError(t, s.Delete(ctx, card.ID))

	_, err := s.Get(ctx, card.ID)
	require.ErrorIs(t, err, store.ErrCardNotFound)

	require.ErrorIs(t, s.Delete(ctx, card.ID), store.ErrCardNotFound)

	cards, err := s.ListByUser(ctx, card.UserID)
	require.NoError(t, err)
	require.Empty(t, cards)
}
