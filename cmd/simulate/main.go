// Command simulate drives the scheduling engine through a synthetic
// review history and reports the resulting collection statistics. It is
// a tuning aid: change the scheduling parameters in config (or via
// PHRASELAB_* environment variables), rerun with the same seed, and
// compare outcomes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/phraselab/phraselab-api/internal/config"
	"github.com/phraselab/phraselab-api/internal/domain"
	"github.com/phraselab/phraselab-api/internal/domain/srs"
	"github.com/phraselab/phraselab-api/internal/platform/logger"
	"github.com/phraselab/phraselab-api/internal/platform/memstore"
	"github.com/phraselab/phraselab-api/internal/service/review"
)

// simulationStart anchors the simulated clock. A fixed date keeps runs
// with the same seed and parameters byte-identical.
var simulationStart = time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

type options struct {
	days  int
	cards int
	seed  int64
	level string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "simulate",
		Short:        "Run a deterministic spaced-repetition simulation",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.days, "days", 90, "number of days to simulate")
	flags.IntVar(&opts.cards, "cards", 50, "number of cards in the deck")
	flags.Int64Var(&opts.seed, "seed", 1, "seed for the simulated learner's behavior")
	flags.StringVar(&opts.level, "level", "intermediate",
		"learner level (beginner, intermediate, advanced)")

	return cmd
}

func run(opts *options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.Setup(cfg.Log)

	level := domain.DifficultyLevel(opts.level)
	if !level.IsValid() {
		return fmt.Errorf("unknown level %q", opts.level)
	}

	engine, err := srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		MinEaseFactor:           cfg.SRS.MinEaseFactor,
		MaxEaseFactor:           cfg.SRS.MaxEaseFactor,
		RelearnInterval:         cfg.SRS.RelearnIntervalDays,
		EarlyReviewInterval:     cfg.SRS.EarlyReviewIntervalDays,
		BeginnerDailyTarget:     cfg.SRS.BeginnerDailyTarget,
		IntermediateDailyTarget: cfg.SRS.IntermediateDailyTarget,
		AdvancedDailyTarget:     cfg.SRS.AdvancedDailyTarget,
	}))
	if err != nil {
		return err
	}

	now := simulationStart
	svc := review.NewReviewService(memstore.New(), engine, log, func() time.Time { return now })

	ctx := context.Background()
	rng := rand.New(rand.NewSource(opts.seed))
	userID := uuid.New()

	difficulties := []domain.DifficultyLevel{
		domain.DifficultyBeginner,
		domain.DifficultyIntermediate,
		domain.DifficultyAdvanced,
	}
	categories := []domain.Category{
		domain.CategoryVocabulary,
		domain.CategoryExpression,
		domain.CategoryIdiom,
		domain.CategoryPhrase,
		domain.CategoryGrammarPattern,
		domain.CategoryCollocation,
		domain.CategoryVerbConjugation,
		domain.CategoryCulturalReference,
	}

	for i := 0; i < opts.cards; i++ {
		difficulty := difficulties[rng.Intn(len(difficulties))]
		category := categories[rng.Intn(len(categories))]
		if _, err := svc.CreateCard(ctx, uuid.New(), userID, difficulty, category); err != nil {
			return err
		}
	}

	reviews := 0
	for day := 1; day <= opts.days; day++ {
		now = simulationStart.AddDate(0, 0, day)

		queue, err := svc.GetStudyQueue(ctx, userID, level)
		if err != nil {
			return err
		}

		for _, card := range queue.Cards {
			quality := simulatedQuality(rng, card)
			result := domain.ReviewResult{
				Quality:        quality,
				WasCorrect:     quality.IsPassing(),
				ResponseTimeMs: simulatedResponseTime(rng),
			}
			if _, err := svc.SubmitReview(ctx, userID, card.ID, result); err != nil {
				return err
			}
			reviews++
		}

		log.Debug("simulated day",
			slog.Int("day", day),
			slog.Int("backlog", queue.Backlog),
			slog.Int("reviewed", len(queue.Cards)))
	}

	stats, err := svc.GetStatistics(ctx, userID)
	if err != nil {
		return err
	}

	log.Info("simulation complete",
		slog.Int("days", opts.days),
		slog.Int("reviews", reviews),
		slog.Int("total_cards", stats.TotalCards),
		slog.Int("mastered", stats.Mastered),
		slog.Int("learning", stats.Learning),
		slog.Int("due_at_end", stats.DueToday),
		slog.Float64("average_easiness", stats.AverageEaseFactor),
		slog.Float64("average_interval_days", stats.AverageInterval),
		slog.Float64("success_rate", stats.SuccessRate))

	return nil
}

// simulatedQuality models a learner whose recall tracks the card's ease
// factor: easy cards are mostly remembered, hard ones fail more often.
func simulatedQuality(rng *rand.Rand, card *domain.Card) domain.Quality {
	p := rng.Float64() * card.EaseFactor / 2.5

	switch {
	case p > 0.80:
		return domain.QualityPerfect
	case p > 0.60:
		return domain.QualityCorrectHesitation
	case p > 0.35:
		return domain.QualityCorrectDifficult
	case p > 0.20:
		return domain.QualityIncorrectFamiliar
	case p > 0.10:
		return domain.QualityIncorrect
	default:
		return domain.QualityBlackout
	}
}

// simulatedResponseTime scatters answer times around a few seconds,
// occasionally omitting the measurement the way a real client would.
func simulatedResponseTime(rng *rand.Rand) *int64 {
	if rng.Intn(10) == 0 {
		return nil
	}

	ms := int64(2000 + rng.Intn(10000))
	return &ms
}
