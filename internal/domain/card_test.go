package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func validCard() *Card {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &Card{
		ID:          uuid.New(),
		PhraseID:    uuid.New(),
		UserID:      uuid.New(),
		EaseFactor:  2.5,
		Interval:    1,
		QualityHist: []Quality{},
		NextReview:  now.AddDate(0, 0, 1),
		Difficulty:  DifficultyBeginner,
		Category:    CategoryVocabulary,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestCardValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		mutate   func(*Card)
		expected error
	}{
		{
			name:     "valid card passes",
			mutate:   func(c *Card) {},
			expected: nil,
		},
		{
			name:     "empty ID is rejected",
			mutate:   func(c *Card) { c.ID = uuid.Nil },
			expected: ErrEmptyCardID,
		},
		{
			name:     "empty phrase ID is rejected",
			mutate:   func(c *Card) { c.PhraseID = uuid.Nil },
			expected: ErrEmptyCardPhraseID,
		},
		{
			name:     "empty user ID is rejected",
			mutate:   func(c *Card) { c.UserID = uuid.Nil },
			expected: ErrEmptyCardUserID,
		},
		{
			name:     "interval below one day is rejected",
			mutate:   func(c *Card) { c.Interval = 0 },
			expected: ErrInvalidInterval,
		},
		{
			name:     "ease factor below floor is rejected",
			mutate:   func(c *Card) { c.EaseFactor = 1.2 },
			expected: ErrInvalidEaseFactor,
		},
		{
			name:     "ease factor above ceiling is rejected",
			mutate:   func(c *Card) { c.EaseFactor = 2.6 },
			expected: ErrInvalidEaseFactor,
		},
		{
			name:     "unknown difficulty is rejected",
			mutate:   func(c *Card) { c.Difficulty = "expert" },
			expected: ErrInvalidDifficulty,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			card := validCard()
			tc.mutate(card)

			err := card.Validate()
			if tc.expected == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.expected)
			}
		})
	}
}

func TestCardClone(t *testing.T) {
	t.Parallel() // Enable parallel execution

	card := validCard()
	card.QualityHist = []Quality{QualityPerfect, QualityCorrectDifficult}

	clone := card.Clone()

	if clone == card {
		t.Fatal("Clone returned the same object, not a new one")
	}

	// Mutating the clone's history must not leak into the original
	clone.QualityHist[0] = QualityBlackout
	if card.QualityHist[0] != QualityPerfect {
		t.Errorf("Clone shares history backing array with original")
	}
}

func TestCardStage(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		mutate   func(*Card)
		expected Stage
	}{
		{
			name:     "no history means new",
			mutate:   func(c *Card) {},
			expected: StageNew,
		},
		{
			name: "history without repetitions means relearning",
			mutate: func(c *Card) {
				c.QualityHist = []Quality{QualityIncorrect}
				c.Repetitions = 0
			},
			expected: StageRelearning,
		},
		{
			name: "high ease, long interval and repetitions means mastered",
			mutate: func(c *Card) {
				c.QualityHist = []Quality{QualityPerfect, QualityPerfect, QualityPerfect}
				c.EaseFactor = 2.4
				c.Interval = 30
				c.Repetitions = 4
			},
			expected: StageMastered,
		},
		{
			name: "week-plus interval means review",
			mutate: func(c *Card) {
				c.QualityHist = []Quality{QualityCorrectHesitation}
				c.Repetitions = 1
				c.Interval = 8
			},
			expected: StageReview,
		},
		{
			name: "short interval means learning",
			mutate: func(c *Card) {
				c.QualityHist = []Quality{QualityCorrectDifficult}
				c.Repetitions = 1
				c.Interval = 3
			},
			expected: StageLearning,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			card := validCard()
			tc.mutate(card)

			if got := card.Stage(); got != tc.expected {
				t.Errorf("Expected stage %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestIsMastered(t *testing.T) {
	t.Parallel() // Enable parallel execution

	card := validCard()
	card.EaseFactor = 2.2
	card.Interval = 21
	card.Repetitions = 3
	require.True(t, card.IsMastered(), "thresholds are inclusive")

	card.Interval = 20
	require.False(t, card.IsMastered(), "short interval disqualifies")
}
