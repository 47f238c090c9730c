package srs

import (
	"math"
	"sort"
	"time"

	"github.com/phraselab/phraselab-api/internal/domain"
)

// Priority score weights. Overdue time is measured in fractional days
// and summed directly with the dimensionless mistake and ease penalties;
// the scheduling behavior downstream was tuned against exactly this
// scoring, so the mixed units are kept as-is.
const (
	mistakePriorityWeight = 0.1
	easePriorityWeight    = 0.05
	priorityEaseCeiling   = 3.0
)

// Backlog thresholds and scaling for the daily load recommendation.
const (
	heavyBacklogRatio = 1.5
	lightBacklogRatio = 0.5
	surgeLoadFactor   = 1.3
	reducedLoadFactor = 0.7
)

// IsDue implements the Service interface. A card is due once its next
// review time is no longer in the future.
func (s *defaultService) IsDue(card *domain.Card, now time.Time) bool {
	return card != nil && !card.NextReview.After(now)
}

// priorityScore ranks a due card's urgency: how long it has been
// overdue, how often the learner has missed it, and how hard it is
// (lower ease factor scores higher).
func priorityScore(card *domain.Card, now time.Time) float64 {
	overdueDays := now.Sub(card.NextReview).Hours() / 24

	return overdueDays +
		float64(card.MistakeCount)*mistakePriorityWeight +
		(priorityEaseCeiling-card.EaseFactor)*easePriorityWeight
}

// SortByPriority implements the Service interface. It filters the input
// to due cards and returns them most urgent first. The sort is stable,
// so cards with equal scores keep their input order, and the input slice
// is left untouched.
func (s *defaultService) SortByPriority(cards []*domain.Card, now time.Time) []*domain.Card {
	due := make([]*domain.Card, 0, len(cards))
	for _, card := range cards {
		if s.IsDue(card, now) {
			due = append(due, card)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return priorityScore(due[i], now) > priorityScore(due[j], now)
	})

	return due
}

// RecommendDailyLoad implements the Service interface.
//
// Algorithm behavior:
//   - A heavy backlog (more than 1.5x the level's base target) raises
//     the target by 30%, capped at the backlog itself.
//   - A light backlog (less than half the base target) lowers the
//     target by 30%, but never below the backlog.
//   - Otherwise the learner reviews the smaller of base and backlog.
func (s *defaultService) RecommendDailyLoad(
	cards []*domain.Card,
	level domain.DifficultyLevel,
	now time.Time,
) (int, error) {
	if !level.IsValid() {
		return 0, domain.ErrInvalidDifficulty
	}

	base := s.params.DailyLoadTarget[level]

	backlog := 0
	for _, card := range cards {
		if s.IsDue(card, now) {
			backlog++
		}
	}

	switch {
	case float64(backlog) > heavyBacklogRatio*float64(base):
		return min(int(math.Round(float64(base)*surgeLoadFactor)), backlog), nil
	case float64(backlog) < lightBacklogRatio*float64(base):
		return max(int(math.Round(float64(base)*reducedLoadFactor)), backlog), nil
	default:
		return min(base, backlog), nil
	}
}
