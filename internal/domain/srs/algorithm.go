package srs

import (
	"math"
	"time"

	"github.com/phraselab/phraselab-api/internal/domain"
)

// Response-time adjustment bands. The ratio of actual to expected answer
// time maps to an interval multiplier: fast answers stretch the interval,
// slow answers shrink it.
const (
	fastResponseRatio   = 0.5
	quickResponseRatio  = 0.8
	normalResponseRatio = 1.2
	slowResponseRatio   = 2.0
)

// Consistency adjustment thresholds, computed over the most recent
// quality ratings once enough history exists.
const (
	consistencyMinHistory = 3
	consistencyWindow     = 5
)

// calculateNewEaseFactor applies the SM-2 ease factor formula for the
// quality just received:
//
//	EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02))
//
// The result is clamped to [params.MinEaseFactor, params.MaxEaseFactor]
// and rounded to two decimal places so repeated updates stay
// bit-reproducible across platforms.
func calculateNewEaseFactor(currentEF float64, quality domain.Quality, params *Params) float64 {
	q := float64(quality)
	newEF := currentEF + (0.1 - (5-q)*(0.08+(5-q)*0.02))

	// Ensure ease factor stays within configured limits
	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}
	if newEF > params.MaxEaseFactor {
		newEF = params.MaxEaseFactor
	}

	return math.Round(newEF*100) / 100
}

// calculateBaseInterval determines the interval before the secondary
// adjustments are applied.
//
// Algorithm behavior:
//   - Failed reviews (quality < 3) reset to the relearn interval.
//   - The first and second successful repetitions both use the early
//     review interval. Canonical SM-2 distinguishes these two steps; the
//     shared constant here matches the scheduling behavior the rest of
//     the product was built against, so it is pinned by tests rather
//     than changed.
//   - Later repetitions grow the previous interval by the new ease factor.
func calculateBaseInterval(
	currentInterval int,
	repetitions int,
	quality domain.Quality,
	easeFactor float64,
	params *Params,
) int {
	if !quality.IsPassing() {
		return params.RelearnInterval
	}

	if repetitions == 1 || repetitions == 2 {
		return params.EarlyReviewInterval
	}

	return int(math.Round(float64(currentInterval) * easeFactor))
}

// responseTimeFactor maps the ratio of actual to expected answer time to
// an interval multiplier.
func responseTimeFactor(responseMs, expectedMs int64) float64 {
	ratio := float64(responseMs) / float64(expectedMs)

	switch {
	case ratio < fastResponseRatio:
		return 1.10
	case ratio < quickResponseRatio:
		return 1.05
	case ratio < normalResponseRatio:
		return 1.00
	case ratio < slowResponseRatio:
		return 0.95
	default:
		return 0.90
	}
}

// consistencyFactor rewards stable, high-quality recall and penalizes
// erratic recall. It computes the mean and population variance over the
// last consistencyWindow entries of the (already updated) history.
func consistencyFactor(history []domain.Quality) float64 {
	window := history
	if len(window) > consistencyWindow {
		window = window[len(window)-consistencyWindow:]
	}

	var sum float64
	for _, q := range window {
		sum += float64(q)
	}
	mean := sum / float64(len(window))

	var sumSquares float64
	for _, q := range window {
		diff := float64(q) - mean
		sumSquares += diff * diff
	}
	variance := sumSquares / float64(len(window))

	switch {
	case variance < 0.5 && mean >= 4:
		return 1.10
	case variance < 1.0 && mean >= 3:
		return 1.05
	case variance > 2.0:
		return 0.90
	default:
		return 1.00
	}
}

// scaleInterval applies a multiplier to an interval, rounding to the
// nearest whole day at every step. Rounding per step rather than once at
// the end matches the reference scheduler's arithmetic exactly.
func scaleInterval(interval int, factor float64) int {
	return int(math.Round(float64(interval) * factor))
}

// calculateNextCard produces the card state that follows one review.
//
// The steps run in a fixed order, each consuming the output of the
// previous one:
//
//  1. Append the quality rating to the history (capped at
//     domain.QualityHistorySize) and stamp the review time.
//  2. Update streak, mistake, and repetition counters.
//  3. Update the ease factor from the prior ease factor and the new
//     quality rating.
//  4. Compute the base interval from the updated repetition count.
//  5. Scale by the response-time factor, if a response time was reported.
//  6. Scale by the category factor.
//  7. Scale by the difficulty factor.
//  8. Scale by the consistency factor, once enough history exists.
//  9. Floor the interval at one day.
//  10. Schedule the next review that many days from now.
//
// The input card is never modified; a new instance is returned.
func calculateNextCard(
	card *domain.Card,
	result domain.ReviewResult,
	now time.Time,
	params *Params,
) *domain.Card {
	next := card.Clone()

	// Step 1: record the review in the bounded history
	next.QualityHist = append(next.QualityHist, result.Quality)
	if len(next.QualityHist) > domain.QualityHistorySize {
		next.QualityHist = next.QualityHist[len(next.QualityHist)-domain.QualityHistorySize:]
	}
	next.LastReviewed = now

	// Step 2: counters. The study streak tracks passing quality alone;
	// repetitions additionally require the answer to have been correct.
	if result.Quality.IsPassing() {
		next.StudyStreak++
		if result.WasCorrect {
			next.Repetitions++
		}
	} else {
		next.StudyStreak = 0
		next.MistakeCount++
		next.Repetitions = 0
	}

	// Step 3: ease factor from the prior ease factor
	next.EaseFactor = calculateNewEaseFactor(card.EaseFactor, result.Quality, params)

	// Step 4: base interval from the updated repetition count
	interval := calculateBaseInterval(
		card.Interval,
		next.Repetitions,
		result.Quality,
		next.EaseFactor,
		params,
	)

	// Step 5: response-time adjustment, only when a time was reported
	if result.ResponseTimeMs != nil {
		factor := responseTimeFactor(*result.ResponseTimeMs, params.expectedResponseMs(card.Difficulty))
		interval = scaleInterval(interval, factor)
	}

	// Steps 6-7: category and difficulty adjustments
	interval = scaleInterval(interval, params.categoryFactor(card.Category))
	interval = scaleInterval(interval, params.difficultyFactor(card.Difficulty))

	// Step 8: consistency adjustment over the updated history
	if len(next.QualityHist) >= consistencyMinHistory {
		interval = scaleInterval(interval, consistencyFactor(next.QualityHist))
	}

	// Step 9: never schedule less than a day out
	if interval < 1 {
		interval = 1
	}
	next.Interval = interval

	// Step 10: schedule the next review
	next.NextReview = now.AddDate(0, 0, interval)
	next.UpdatedAt = now

	return next
}
