// Package memstore provides an in-memory CardStore implementation.
// It honors the same optimistic-concurrency contract a database-backed
// store would, which makes it suitable for tests and local tooling.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phraselab/phraselab-api/internal/domain"
	"github.com/phraselab/phraselab-api/internal/store"
)

// CardStore is a thread-safe, map-backed implementation of store.CardStore.
type CardStore struct {
	mu    sync.RWMutex
	cards map[uuid.UUID]*domain.Card
	order []uuid.UUID // Insertion order, so listings are deterministic
}

// Ensure CardStore satisfies the interface
var _ store.CardStore = (*CardStore)(nil)

// New creates an empty in-memory card store.
func New() *CardStore {
	return &CardStore{
		cards: make(map[uuid.UUID]*domain.Card),
	}
}

// Create implements store.CardStore.
func (s *CardStore) Create(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cards[card.ID]; exists {
		return store.ErrDuplicate
	}

	s.cards[card.ID] = card.Clone()
	s.order = append(s.order, card.ID)
	return nil
}

// Get implements store.CardStore. The returned card is a copy; callers
// may modify it freely without affecting the stored state.
func (s *CardStore) Get(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	card, exists := s.cards[id]
	if !exists {
		return nil, store.ErrCardNotFound
	}

	return card.Clone(), nil
}

// ListByUser implements store.CardStore.
func (s *CardStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cards := make([]*domain.Card, 0)
	for _, id := range s.order {
		if card, exists := s.cards[id]; exists && card.UserID == userID {
			cards = append(cards, card.Clone())
		}
	}

	return cards, nil
}

// Update implements store.CardStore. The write succeeds only when the
// stored card's UpdatedAt still equals expectedUpdatedAt.
func (s *CardStore) Update(ctx context.Context, card *domain.Card, expectedUpdatedAt time.Time) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.cards[card.ID]
	if !exists {
		return store.ErrCardNotFound
	}

	if !existing.UpdatedAt.Equal(expectedUpdatedAt) {
		return store.ErrConflict
	}

	s.cards[card.ID] = card.Clone()
	return nil
}

// Delete implements store.CardStore.
func (s *CardStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cards[id]; !exists {
		return store.ErrCardNotFound
	}

	delete(s.cards, id)
	for i, orderedID := range s.order {
		if orderedID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
