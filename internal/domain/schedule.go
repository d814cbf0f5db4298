package domain

// ScheduleConfig holds the spaced-repetition and ranking parameters
// (pure domain type).
type ScheduleConfig struct {
	MinIntervalDays      int
	MaxIntervalDays      int
	HighMasteryThreshold float64
	LowMasteryThreshold  float64
	NeutralMastery       float64
	RecencyWindowDays    int
	PerformanceWeight    float64
	RecencyWeight        float64
	LowPerformancePct    float64 // incorrect-percentage above which the reason is LOW_PERFORMANCE
	RecentAttemptDays    int     // days-since-seen below which the reason is RECENT_ATTEMPT
	DefaultSessionSize   int
	MaxSessionSize       int
	Timezone             string
}

// DefaultScheduleConfig returns the production defaults. Intervals are bounded
// to [1, 30] days; priority weighs performance 70% and recency 30%.
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		MinIntervalDays:      1,
		MaxIntervalDays:      30,
		HighMasteryThreshold: 0.8,
		LowMasteryThreshold:  0.5,
		NeutralMastery:       0.5,
		RecencyWindowDays:    30,
		PerformanceWeight:    0.7,
		RecencyWeight:        0.3,
		LowPerformancePct:    30,
		RecentAttemptDays:    7,
		DefaultSessionSize:   5,
		MaxSessionSize:       100,
		Timezone:             "UTC",
	}
}
