package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Card
var (
	ErrEmptyCardID       = errors.New("card ID cannot be empty")
	ErrEmptyCardPhraseID = errors.New("card phrase ID cannot be empty")
	ErrEmptyCardUserID   = errors.New("card user ID cannot be empty")
	ErrInvalidInterval   = errors.New("interval must be at least 1 day")
	ErrInvalidEaseFactor = errors.New("ease factor must be between 1.3 and 2.5")
	ErrInvalidDifficulty = errors.New("invalid difficulty level")
)

// DifficultyLevel classifies how hard a phrase is expected to be for a
// learner. It is fixed when the card is created and never changes.
type DifficultyLevel string

// Possible difficulty levels
const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)

// IsValid reports whether the difficulty level is one of the known values.
func (d DifficultyLevel) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	default:
		return false
	}
}

// Category labels the kind of vocabulary item a card covers. It is a
// free-form label from the scheduler's point of view: known values get a
// specific interval multiplier, anything else falls back to a neutral one.
type Category string

// Known categories
const (
	CategoryVocabulary        Category = "vocabulary"
	CategoryExpression        Category = "expression"
	CategoryIdiom             Category = "idiom"
	CategoryPhrase            Category = "phrase"
	CategoryGrammarPattern    Category = "grammar_pattern"
	CategoryCollocation       Category = "collocation"
	CategoryVerbConjugation   Category = "verb_conjugation"
	CategoryCulturalReference Category = "cultural_reference"
)

// Stage is the derived learning stage of a card. It is computed from the
// numeric scheduling fields and never persisted separately, so it cannot
// drift out of sync with them.
type Stage string

// Possible learning stages
const (
	StageNew        Stage = "new"
	StageLearning   Stage = "learning"
	StageReview     Stage = "review"
	StageRelearning Stage = "relearning"
	StageMastered   Stage = "mastered"
)

// Mastery thresholds shared by Card.Stage and the statistics aggregator.
const (
	MasteredMinEaseFactor  = 2.2
	MasteredMinInterval    = 21
	MasteredMinRepetitions = 3
)

// QualityHistorySize bounds how many recent quality ratings a card keeps.
const QualityHistorySize = 10

// Card tracks the spaced-repetition scheduling state for one
// (phrase, user) pair. It implements a modified SM-2 algorithm: an ease
// factor drives interval growth, while response time, category,
// difficulty, and answer consistency apply secondary adjustments.
//
// Cards follow the immutable update pattern: the srs package returns new
// instances rather than modifying existing ones.
type Card struct {
	ID           uuid.UUID       `json:"id"`
	PhraseID     uuid.UUID       `json:"phrase_id"`
	UserID       uuid.UUID       `json:"user_id"`
	EaseFactor   float64         `json:"easiness_factor"`   // Ease factor (1.3-2.5)
	Interval     int             `json:"interval"`          // Days until next review, >= 1
	Repetitions  int             `json:"repetitions"`       // Consecutive successful reviews
	QualityHist  []Quality       `json:"quality_responses"` // Most recent last, capped at QualityHistorySize
	LastReviewed time.Time       `json:"last_reviewed"`     // Zero until the first review
	NextReview   time.Time       `json:"next_review"`       // When the card should be reviewed next
	Difficulty   DifficultyLevel `json:"difficulty_level"`
	Category     Category        `json:"category"`
	StudyStreak  int             `json:"study_streak"`  // Consecutive quality >= 3 answers
	MistakeCount int             `json:"mistake_count"` // Lifetime quality < 3 answers
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCardID
	}

	if c.PhraseID == uuid.Nil {
		return ErrEmptyCardPhraseID
	}

	if c.UserID == uuid.Nil {
		return ErrEmptyCardUserID
	}

	if c.Interval < 1 {
		return ErrInvalidInterval
	}

	if c.EaseFactor < 1.3 || c.EaseFactor > 2.5 {
		return ErrInvalidEaseFactor
	}

	if !c.Difficulty.IsValid() {
		return ErrInvalidDifficulty
	}

	return nil
}

// Clone returns a deep copy of the card. The quality history backing
// array is not shared with the original.
func (c *Card) Clone() *Card {
	clone := *c
	clone.QualityHist = make([]Quality, len(c.QualityHist))
	copy(clone.QualityHist, c.QualityHist)
	return &clone
}

// IsMastered reports whether the card meets the long-term retention
// thresholds: high ease factor, long interval, and enough consecutive
// successful repetitions.
func (c *Card) IsMastered() bool {
	return c.EaseFactor >= MasteredMinEaseFactor &&
		c.Interval >= MasteredMinInterval &&
		c.Repetitions >= MasteredMinRepetitions
}

// Stage derives the card's learning stage from its numeric fields.
func (c *Card) Stage() Stage {
	switch {
	case len(c.QualityHist) == 0:
		return StageNew
	case c.Repetitions == 0:
		return StageRelearning
	case c.IsMastered():
		return StageMastered
	case c.Interval >= 7:
		return StageReview
	default:
		return StageLearning
	}
}
