package domain

// Quality is a learner's self-assessed recall score for one review,
// from 0 (complete blackout) to 5 (perfect, instant recall).
type Quality int

// Possible quality ratings
const (
	QualityBlackout          Quality = 0 // No memory of the answer
	QualityIncorrect         Quality = 1 // Wrong, but recognized the answer
	QualityIncorrectFamiliar Quality = 2 // Wrong, but the answer felt familiar
	QualityCorrectDifficult  Quality = 3 // Correct with significant effort
	QualityCorrectHesitation Quality = 4 // Correct after some hesitation
	QualityPerfect           Quality = 5 // Perfect recall with no hesitation
)

// Passing is the lowest quality rating counted as a successful recall.
const Passing = QualityCorrectDifficult

// IsValid reports whether the quality rating is within the 0-5 scale.
func (q Quality) IsValid() bool {
	return q >= QualityBlackout && q <= QualityPerfect
}

// IsPassing reports whether the rating counts as a successful recall.
func (q Quality) IsPassing() bool {
	return q >= Passing
}

// ReviewResult captures the outcome of a single review of a card. It is
// ephemeral input to the scheduler and is not persisted.
//
// ResponseTimeMs and HintsUsed are pointers so that absent is
// distinguishable from zero: a nil ResponseTimeMs skips the
// response-time adjustment entirely. HintsUsed is recorded for
// analytics only and does not influence scheduling.
type ReviewResult struct {
	Quality        Quality `json:"quality"`
	ResponseTimeMs *int64  `json:"response_time_ms,omitempty"`
	WasCorrect     bool    `json:"was_correct"`
	HintsUsed      *int    `json:"hints_used,omitempty"`
}

// Validate checks if the ReviewResult has valid data.
// Returns an error if any field fails validation.
func (r *ReviewResult) Validate() error {
	if !r.Quality.IsValid() {
		return ErrInvalidQuality
	}

	if r.ResponseTimeMs != nil && *r.ResponseTimeMs < 0 {
		return ErrInvalidResponseTime
	}

	if r.HintsUsed != nil && *r.HintsUsed < 0 {
		return ErrInvalidHintsUsed
	}

	return nil
}
