package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// WriteRateLimit caps mutating requests per minute per client IP.
	WriteRateLimit int `yaml:"write_rate_limit" env:"SERVER_WRITE_RATE_LIMIT" env-default:"120"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds bearer-token verification settings. Token issuance is an
// external collaborator concern; this service only verifies.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"studymate"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ScheduleConfig holds spaced-repetition and ranking parameters.
type ScheduleConfig struct {
	MinIntervalDays      int     `yaml:"min_interval_days"      env:"SCHEDULE_MIN_INTERVAL_DAYS"      env-default:"1"`
	MaxIntervalDays      int     `yaml:"max_interval_days"      env:"SCHEDULE_MAX_INTERVAL_DAYS"      env-default:"30"`
	HighMasteryThreshold float64 `yaml:"high_mastery_threshold" env:"SCHEDULE_HIGH_MASTERY_THRESHOLD" env-default:"0.8"`
	LowMasteryThreshold  float64 `yaml:"low_mastery_threshold"  env:"SCHEDULE_LOW_MASTERY_THRESHOLD"  env-default:"0.5"`
	NeutralMastery       float64 `yaml:"neutral_mastery"        env:"SCHEDULE_NEUTRAL_MASTERY"        env-default:"0.5"`
	RecencyWindowDays    int     `yaml:"recency_window_days"    env:"SCHEDULE_RECENCY_WINDOW_DAYS"    env-default:"30"`
	PerformanceWeight    float64 `yaml:"performance_weight"     env:"SCHEDULE_PERFORMANCE_WEIGHT"     env-default:"0.7"`
	RecencyWeight        float64 `yaml:"recency_weight"         env:"SCHEDULE_RECENCY_WEIGHT"         env-default:"0.3"`
	LowPerformancePct    float64 `yaml:"low_performance_pct"    env:"SCHEDULE_LOW_PERFORMANCE_PCT"    env-default:"30"`
	RecentAttemptDays    int     `yaml:"recent_attempt_days"    env:"SCHEDULE_RECENT_ATTEMPT_DAYS"    env-default:"7"`
	DefaultSessionSize   int     `yaml:"default_session_size"   env:"SCHEDULE_DEFAULT_SESSION_SIZE"   env-default:"5"`
	MaxSessionSize       int     `yaml:"max_session_size"       env:"SCHEDULE_MAX_SESSION_SIZE"       env-default:"100"`
	Timezone             string  `yaml:"timezone"               env:"SCHEDULE_TIMEZONE"               env-default:"UTC"`
}
