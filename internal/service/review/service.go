package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/studymate/recall-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type itemRepo interface {
	GetByID(ctx context.Context, learnerID, itemID uuid.UUID) (*domain.Item, error)
	GetByIDForUpdate(ctx context.Context, learnerID, itemID uuid.UUID) (*domain.Item, error)
	ListForLearner(ctx context.Context, learnerID uuid.UUID) ([]*domain.Item, error)
	ListScheduledBetween(ctx context.Context, learnerID uuid.UUID, from, to time.Time) ([]*domain.Item, error)
	UpdateSchedule(ctx context.Context, learnerID, itemID uuid.UUID, version int, params domain.ScheduleUpdateParams) (*domain.Item, error)
}

type attemptRepo interface {
	Create(ctx context.Context, a *domain.Attempt) (*domain.Attempt, error)
	ListByItemID(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*domain.Attempt, int, error)
	ListByItemIDs(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]*domain.Attempt, error)
}

type questionRepo interface {
	ListByQuizID(ctx context.Context, quizID uuid.UUID) ([]*domain.Question, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the adaptive review engine: mastery estimation, interval
// scheduling, priority ranking, session building, and calendar projection.
// All computation is pure over an injected clock; the single mutation point
// is the schedule write-back in RecordAttemptAndReschedule.
type Service struct {
	items     itemRepo
	attempts  attemptRepo
	questions questionRepo
	tx        txManager
	clock     clockwork.Clock
	log       *slog.Logger
	cfg       domain.ScheduleConfig
}

// NewService creates a new review service.
func NewService(
	log *slog.Logger,
	items itemRepo,
	attempts attemptRepo,
	questions questionRepo,
	tx txManager,
	clock clockwork.Clock,
	cfg domain.ScheduleConfig,
) (*Service, error) {
	if cfg.MinIntervalDays < 1 || cfg.MaxIntervalDays < cfg.MinIntervalDays {
		return nil, fmt.Errorf("invalid interval bounds [%d, %d]", cfg.MinIntervalDays, cfg.MaxIntervalDays)
	}
	if cfg.RecencyWindowDays < 1 {
		return nil, fmt.Errorf("invalid recency window %d", cfg.RecencyWindowDays)
	}

	return &Service{
		items:     items,
		attempts:  attempts,
		questions: questions,
		tx:        tx,
		clock:     clock,
		log:       log.With("service", "review"),
		cfg:       cfg,
	}, nil
}
