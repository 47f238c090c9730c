package srs

import (
	"time"

	"github.com/phraselab/phraselab-api/internal/domain"
)

// Statistics summarizes the scheduling state of a card collection.
type Statistics struct {
	TotalCards        int     `json:"total_cards"`
	DueToday          int     `json:"due_today"`          // Cards whose next review time has passed
	Overdue           int     `json:"overdue"`            // Cards more than a day past due
	Mastered          int     `json:"mastered"`           // Cards meeting the mastery thresholds
	Learning          int     `json:"learning"`           // Everything not yet mastered
	AverageEaseFactor float64 `json:"average_easiness"`
	AverageInterval   float64 `json:"average_interval"`
	SuccessRate       float64 `json:"success_rate"` // Share of recorded reviews with passing quality
}

// GenerateStatistics implements the Service interface. An empty
// collection yields all-zero statistics; the averages and success rate
// never divide by zero.
func (s *defaultService) GenerateStatistics(cards []*domain.Card, now time.Time) *Statistics {
	stats := &Statistics{
		TotalCards: len(cards),
	}

	overdueCutoff := now.AddDate(0, 0, -1)

	var easeSum, intervalSum float64
	var passingResponses, totalResponses int

	for _, card := range cards {
		if s.IsDue(card, now) {
			stats.DueToday++
		}
		if card.NextReview.Before(overdueCutoff) {
			stats.Overdue++
		}
		if card.IsMastered() {
			stats.Mastered++
		}

		easeSum += card.EaseFactor
		intervalSum += float64(card.Interval)

		totalResponses += len(card.QualityHist)
		for _, quality := range card.QualityHist {
			if quality.IsPassing() {
				passingResponses++
			}
		}
	}

	stats.Learning = stats.TotalCards - stats.Mastered

	if stats.TotalCards > 0 {
		stats.AverageEaseFactor = easeSum / float64(stats.TotalCards)
		stats.AverageInterval = intervalSum / float64(stats.TotalCards)
	}

	if totalResponses > 0 {
		stats.SuccessRate = float64(passingResponses) / float64(totalResponses)
	}

	return stats
}
