package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/studymate/recall-backend/internal/adapter/postgres"
	attemptrepo "github.com/studymate/recall-backend/internal/adapter/postgres/attempt"
	itemrepo "github.com/studymate/recall-backend/internal/adapter/postgres/item"
	questionrepo "github.com/studymate/recall-backend/internal/adapter/postgres/question"
	"github.com/studymate/recall-backend/internal/auth"
	"github.com/studymate/recall-backend/internal/config"
	"github.com/studymate/recall-backend/internal/domain"
	"github.com/studymate/recall-backend/internal/service/review"
	"github.com/studymate/recall-backend/internal/transport/middleware"
	"github.com/studymate/recall-backend/internal/transport/rest"
)

// Run is the application entry point: it loads configuration, wires the
// repositories and the review service, and serves HTTP until ctx is
// cancelled, then drains in-flight requests within the shutdown timeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	items := itemrepo.New(pool)
	attempts := attemptrepo.New(pool)
	questions := questionrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	svc, err := review.NewService(
		logger,
		items,
		attempts,
		questions,
		txManager,
		clockwork.NewRealClock(),
		toScheduleConfig(cfg.Schedule),
	)
	if err != nil {
		return fmt.Errorf("create review service: %w", err)
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Review: rest.NewReviewHandler(svc, logger),
		Health: rest.NewHealthHandler(pool, BuildVersion()),
		Base: middleware.Chain(
			middleware.Recovery(logger),
			middleware.RequestID,
			middleware.CORS(cfg.CORS),
			middleware.Logger(logger),
			middleware.Auth(jwtManager),
		),
		Limiter: limiter.Limit(cfg.Server.WriteRateLimit),
	})

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}

func toScheduleConfig(cfg config.ScheduleConfig) domain.ScheduleConfig {
	return domain.ScheduleConfig{
		MinIntervalDays:      cfg.MinIntervalDays,
		MaxIntervalDays:      cfg.MaxIntervalDays,
		HighMasteryThreshold: cfg.HighMasteryThreshold,
		LowMasteryThreshold:  cfg.LowMasteryThreshold,
		NeutralMastery:       cfg.NeutralMastery,
		RecencyWindowDays:    cfg.RecencyWindowDays,
		PerformanceWeight:    cfg.PerformanceWeight,
		RecencyWeight:        cfg.RecencyWeight,
		LowPerformancePct:    cfg.LowPerformancePct,
		RecentAttemptDays:    cfg.RecentAttemptDays,
		DefaultSessionSize:   cfg.DefaultSessionSize,
		MaxSessionSize:       cfg.MaxSessionSize,
		Timezone:             cfg.Timezone,
	}
}
