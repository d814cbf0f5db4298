package review

import (
	"time"

	"github.com/studymate/recall-backend/internal/domain"
)

// IntervalInput holds all data needed for interval calculation. Pure value,
// no side effects.
type IntervalInput struct {
	MasteryScore         float64
	PreviousIntervalDays int // 0 on first review
	ReviewedAt           time.Time
	Config               domain.ScheduleConfig
}

// IntervalOutput is the result of interval calculation.
type IntervalOutput struct {
	IntervalDays   int
	NextReviewDate time.Time
}

// NextInterval is a pure, deterministic function: identical inputs always
// produce identical outputs. High mastery doubles the interval, medium holds
// it, low halves it; the result is always within
// [MinIntervalDays, MaxIntervalDays].
func NextInterval(input IntervalInput) IntervalOutput {
	cfg := input.Config

	prev := input.PreviousIntervalDays
	if prev < cfg.MinIntervalDays {
		// First review, or corrupted state: start from the floor.
		prev = cfg.MinIntervalDays
	}

	var interval int
	switch {
	case input.MasteryScore >= cfg.HighMasteryThreshold:
		interval = min(prev*2, cfg.MaxIntervalDays)
	case input.MasteryScore >= cfg.LowMasteryThreshold:
		interval = prev
	default:
		interval = max(prev/2, cfg.MinIntervalDays)
	}

	return IntervalOutput{
		IntervalDays:   interval,
		NextReviewDate: input.ReviewedAt.AddDate(0, 0, interval),
	}
}
