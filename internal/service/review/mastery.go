package review

import (
	"github.com/studymate/recall-backend/internal/domain"
)

// MasteryResult is the output of mastery estimation for one item.
type MasteryResult struct {
	Score         float64
	TotalAttempts int
	LastIncorrect bool
}

// EstimateMastery converts an item's attempt history into a mastery score in
// [0, 1]. Pure function, no DB and no clock.
//
// With no attempts the score is the configured neutral default (0.5), so
// never-attempted items rank as medium priority instead of crowding out
// everything else. LastIncorrect is decided by timestamp, not slice order,
// since attempts may arrive out of order; equal timestamps fall back to the
// insertion sequence (later-inserted wins).
func EstimateMastery(attempts []*domain.Attempt, cfg domain.ScheduleConfig) MasteryResult {
	if len(attempts) == 0 {
		return MasteryResult{Score: cfg.NeutralMastery}
	}

	correct := 0
	latest := attempts[0]
	for _, a := range attempts {
		if a.Correct {
			correct++
		}
		if a.AttemptedAt.After(latest.AttemptedAt) {
			latest = a
		} else if a.AttemptedAt.Equal(latest.AttemptedAt) && a.Seq >= latest.Seq {
			latest = a
		}
	}

	return MasteryResult{
		Score:         float64(correct) / float64(len(attempts)),
		TotalAttempts: len(attempts),
		LastIncorrect: !latest.Correct,
	}
}
