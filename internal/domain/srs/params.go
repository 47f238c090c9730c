package srs

import (
	"github.com/phraselab/phraselab-api/internal/domain"
)

// Params defines all configurable parameters for the SRS algorithm
type Params struct {
	// Core limits
	MinEaseFactor float64
	MaxEaseFactor float64

	// Per-difficulty seeds for new cards
	InitialEaseFactor map[domain.DifficultyLevel]float64
	InitialInterval   map[domain.DifficultyLevel]int

	// Base interval special cases
	RelearnInterval     int // Interval after a failed review (quality < 3)
	EarlyReviewInterval int // Interval for the first two successful repetitions

	// Expected answer time per difficulty, in milliseconds. The ratio of
	// actual to expected time drives the response-time adjustment.
	ExpectedResponseMs map[domain.DifficultyLevel]int64

	// Interval multipliers. Category lookups fall back to a neutral 1.0
	// for unknown labels.
	CategoryFactor   map[domain.Category]float64
	DifficultyFactor map[domain.DifficultyLevel]float64

	// Daily review targets per learner level
	DailyLoadTarget map[domain.DifficultyLevel]int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	// Core limits
	MinEaseFactor float64
	MaxEaseFactor float64

	// Base interval special cases
	RelearnInterval     int
	EarlyReviewInterval int

	// Daily review targets
	BeginnerDailyTarget     int
	IntermediateDailyTarget int
	AdvancedDailyTarget     int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor: 1.3,
		MaxEaseFactor: 2.5,

		// Easier material starts with a higher ease factor but a
		// shorter first interval
		InitialEaseFactor: map[domain.DifficultyLevel]float64{
			domain.DifficultyBeginner:     2.5,
			domain.DifficultyIntermediate: 2.3,
			domain.DifficultyAdvanced:     2.1,
		},
		InitialInterval: map[domain.DifficultyLevel]int{
			domain.DifficultyBeginner:     1,
			domain.DifficultyIntermediate: 2,
			domain.DifficultyAdvanced:     3,
		},

		RelearnInterval:     1,
		EarlyReviewInterval: 6,

		ExpectedResponseMs: map[domain.DifficultyLevel]int64{
			domain.DifficultyBeginner:     8000,
			domain.DifficultyIntermediate: 6000,
			domain.DifficultyAdvanced:     4000,
		},

		CategoryFactor: map[domain.Category]float64{
			domain.CategoryVocabulary:        1.0,
			domain.CategoryExpression:        0.9,
			domain.CategoryIdiom:             0.8,
			domain.CategoryPhrase:            1.0,
			domain.CategoryGrammarPattern:    0.85,
			domain.CategoryCollocation:       0.9,
			domain.CategoryVerbConjugation:   0.7,
			domain.CategoryCulturalReference: 0.95,
		},

		DifficultyFactor: map[domain.DifficultyLevel]float64{
			domain.DifficultyBeginner:     1.1,
			domain.DifficultyIntermediate: 1.0,
			domain.DifficultyAdvanced:     0.9,
		},

		DailyLoadTarget: map[domain.DifficultyLevel]int{
			domain.DifficultyBeginner:     15,
			domain.DifficultyIntermediate: 25,
			domain.DifficultyAdvanced:     35,
		},
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	// Override core limits if provided
	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.MaxEaseFactor > 0 {
		params.MaxEaseFactor = config.MaxEaseFactor
	}

	// Override base interval special cases if provided
	if config.RelearnInterval > 0 {
		params.RelearnInterval = config.RelearnInterval
	}
	if config.EarlyReviewInterval > 0 {
		params.EarlyReviewInterval = config.EarlyReviewInterval
	}

	// Override daily review targets if provided
	if config.BeginnerDailyTarget > 0 {
		params.DailyLoadTarget[domain.DifficultyBeginner] = config.BeginnerDailyTarget
	}
	if config.IntermediateDailyTarget > 0 {
		params.DailyLoadTarget[domain.DifficultyIntermediate] = config.IntermediateDailyTarget
	}
	if config.AdvancedDailyTarget > 0 {
		params.DailyLoadTarget[domain.DifficultyAdvanced] = config.AdvancedDailyTarget
	}

	return params
}

// categoryFactor looks up the interval multiplier for a category.
// Unknown categories deliberately fall back to a neutral multiplier
// rather than being treated as errors.
func (p *Params) categoryFactor(category domain.Category) float64 {
	if factor, ok := p.CategoryFactor[category]; ok {
		return factor
	}
	return 1.0
}

// difficultyFactor looks up the interval multiplier for a difficulty level.
func (p *Params) difficultyFactor(difficulty domain.DifficultyLevel) float64 {
	if factor, ok := p.DifficultyFactor[difficulty]; ok {
		return factor
	}
	return 1.0
}

// expectedResponseMs looks up the expected answer time for a difficulty level.
func (p *Params) expectedResponseMs(difficulty domain.DifficultyLevel) int64 {
	if expected, ok := p.ExpectedResponseMs[difficulty]; ok {
		return expected
	}
	return p.ExpectedResponseMs[domain.DifficultyIntermediate]
}
