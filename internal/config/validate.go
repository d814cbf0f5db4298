package config

import (
	"fmt"
	"math"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Schedule.validate(); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}

	return nil
}

func (s *ScheduleConfig) validate() error {
	if s.MinIntervalDays < 1 {
		return fmt.Errorf("min_interval_days must be >= 1 (got %d)", s.MinIntervalDays)
	}
	if s.MaxIntervalDays < s.MinIntervalDays {
		return fmt.Errorf("max_interval_days must be >= min_interval_days (got %d < %d)", s.MaxIntervalDays, s.MinIntervalDays)
	}
	if s.LowMasteryThreshold <= 0 || s.LowMasteryThreshold > s.HighMasteryThreshold {
		return fmt.Errorf("low_mastery_threshold must be in (0, high_mastery_threshold] (got %v)", s.LowMasteryThreshold)
	}
	if s.HighMasteryThreshold > 1 {
		return fmt.Errorf("high_mastery_threshold must be <= 1 (got %v)", s.HighMasteryThreshold)
	}
	if s.NeutralMastery < 0 || s.NeutralMastery > 1 {
		return fmt.Errorf("neutral_mastery must be in [0, 1] (got %v)", s.NeutralMastery)
	}
	if s.RecencyWindowDays < 1 {
		return fmt.Errorf("recency_window_days must be >= 1 (got %d)", s.RecencyWindowDays)
	}
	if sum := s.PerformanceWeight + s.RecencyWeight; math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("performance_weight + recency_weight must equal 1.0 (got %v)", sum)
	}
	if s.DefaultSessionSize < 1 || s.DefaultSessionSize > s.MaxSessionSize {
		return fmt.Errorf("default_session_size must be in [1, max_session_size] (got %d)", s.DefaultSessionSize)
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	return nil
}
