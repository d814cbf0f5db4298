package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Auth: AuthConfig{
			JWTSecret: "0123456789abcdef0123456789abcdef",
			JWTIssuer: "studymate",
		},
		Schedule: ScheduleConfig{
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
		},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_ShortJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "short"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestValidate_Schedule(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ScheduleConfig)
		wantErr string
	}{
		{
			name:    "zero min interval",
			mutate:  func(s *ScheduleConfig) { s.MinIntervalDays = 0 },
			wantErr: "min_interval_days",
		},
		{
			name:    "max below min",
			mutate:  func(s *ScheduleConfig) { s.MaxIntervalDays = 0 },
			wantErr: "max_interval_days",
		},
		{
			name:    "weights do not sum to one",
			mutate:  func(s *ScheduleConfig) { s.PerformanceWeight = 0.9 },
			wantErr: "performance_weight",
		},
		{
			name:    "high threshold above one",
			mutate:  func(s *ScheduleConfig) { s.HighMasteryThreshold = 1.5 },
			wantErr: "high_mastery_threshold",
		},
		{
			name:    "low threshold above high",
			mutate:  func(s *ScheduleConfig) { s.LowMasteryThreshold = 0.9 },
			wantErr: "low_mastery_threshold",
		},
		{
			name:    "bogus timezone",
			mutate:  func(s *ScheduleConfig) { s.Timezone = "Mars/Olympus" },
			wantErr: "timezone",
		},
		{
			name:    "session size zero",
			mutate:  func(s *ScheduleConfig) { s.DefaultSessionSize = 0 },
			wantErr: "default_session_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg.Schedule)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
