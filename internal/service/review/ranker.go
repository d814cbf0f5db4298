package review

import (
	"sort"
	"time"

	"github.com/studymate/recall-backend/internal/domain"
)

// PoolEntry is one candidate for ranking: an item plus its estimated mastery.
type PoolEntry struct {
	Item    *domain.Item
	Mastery MasteryResult
}

// RankPool computes a priority score for every pool entry and returns the
// entries sorted by descending urgency. Pure function: identical input pool
// and now always produce the identical order.
//
// The composite weighs performance deficit against recency:
//
//	incorrectPct  = (1 - mastery) * 100
//	recencyFactor = min(window, daysSinceSeen) / window   // unseen → 1.0
//	score         = incorrectPct*0.7 + recencyFactor*100*0.3
//
// An item whose most recent attempt was wrong overrides to score 100 and
// therefore ranks above everything without that flag.
//
// Tie-break on equal scores: staler lastReviewedAt first; never-reviewed
// items sort before items reviewed today.
func RankPool(pool []PoolEntry, now time.Time, cfg domain.ScheduleConfig) []domain.PriorityItem {
	ranked := make([]domain.PriorityItem, 0, len(pool))
	for _, entry := range pool {
		score, reason := prioritize(entry, now, cfg)
		ranked = append(ranked, domain.PriorityItem{
			Item:           entry.Item,
			PriorityScore:  score,
			PriorityReason: reason,
			MasteryScore:   entry.Mastery.Score,
			LastIncorrect:  entry.Mastery.LastIncorrect,
			TotalAttempts:  entry.Mastery.TotalAttempts,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].PriorityScore != ranked[j].PriorityScore {
			return ranked[i].PriorityScore > ranked[j].PriorityScore
		}
		return staleBefore(ranked[i].Item.LastReviewedAt, ranked[j].Item.LastReviewedAt)
	})

	return ranked
}

func prioritize(entry PoolEntry, now time.Time, cfg domain.ScheduleConfig) (float64, domain.PriorityReason) {
	incorrectPct := (1 - entry.Mastery.Score) * 100
	daysSince := daysSinceSeen(entry.Item.LastReviewedAt, now, cfg.RecencyWindowDays)
	recencyFactor := float64(daysSince) / float64(cfg.RecencyWindowDays)

	score := incorrectPct*cfg.PerformanceWeight + recencyFactor*100*cfg.RecencyWeight
	if entry.Mastery.LastIncorrect {
		score = 100
	}

	// Reason labels are mutually exclusive; first match wins.
	var reason domain.PriorityReason
	switch {
	case entry.Mastery.LastIncorrect:
		reason = domain.PriorityReasonLowPerformance
	case incorrectPct > cfg.LowPerformancePct:
		reason = domain.PriorityReasonLowPerformance
	case daysSince < cfg.RecentAttemptDays:
		reason = domain.PriorityReasonRecentAttempt
	default:
		reason = domain.PriorityReasonSpacedRepetitionDue
	}

	return score, reason
}

// daysSinceSeen returns whole days between lastReviewedAt and now, clamped to
// [0, window]. Never-reviewed items count as the full window.
func daysSinceSeen(lastReviewedAt *time.Time, now time.Time, window int) int {
	if lastReviewedAt == nil {
		return window
	}
	days := int(now.Sub(*lastReviewedAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return min(days, window)
}

// staleBefore orders a before b when a is the staler (or never-reviewed) side.
func staleBefore(a, b *time.Time) bool {
	switch {
	case a == nil && b == nil:
		return false
	case a == nil:
		return true
	case b == nil:
		return false
	default:
		return a.Before(*b)
	}
}
