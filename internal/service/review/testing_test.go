package review

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/studymate/recall-backend/internal/domain"
	"github.com/studymate/recall-backend/pkg/ctxutil"
)

// Stubs with function fields so each test wires only what it touches.

type stubItemRepo struct {
	getByID              func(ctx context.Context, learnerID, itemID uuid.UUID) (*domain.Item, error)
	getByIDForUpdate     func(ctx context.Context, learnerID, itemID uuid.UUID) (*domain.Item, error)
	listForLearner       func(ctx context.Context, learnerID uuid.UUID) ([]*domain.Item, error)
	listScheduledBetween func(ctx context.Context, learnerID uuid.UUID, from, to time.Time) ([]*domain.Item, error)
	updateSchedule       func(ctx context.Context, learnerID, itemID uuid.UUID, version int, params domain.ScheduleUpdateParams) (*domain.Item, error)
}

func (s *stubItemRepo) GetByID(ctx context.Context, learnerID, itemID uuid.UUID) (*domain.Item, error) {
	return s.getByID(ctx, learnerID, itemID)
}

func (s *stubItemRepo) GetByIDForUpdate(ctx context.Context, learnerID, itemID uuid.UUID) (*domain.Item, error) {
	return s.getByIDForUpdate(ctx, learnerID, itemID)
}

func (s *stubItemRepo) ListForLearner(ctx context.Context, learnerID uuid.UUID) ([]*domain.Item, error) {
	return s.listForLearner(ctx, learnerID)
}

func (s *stubItemRepo) ListScheduledBetween(ctx context.Context, learnerID uuid.UUID, from, to time.Time) ([]*domain.Item, error) {
	return s.listScheduledBetween(ctx, learnerID, from, to)
}

func (s *stubItemRepo) UpdateSchedule(ctx context.Context, learnerID, itemID uuid.UUID, version int, params domain.ScheduleUpdateParams) (*domain.Item, error) {
	return s.updateSchedule(ctx, learnerID, itemID, version, params)
}

type stubAttemptRepo struct {
	create        func(ctx context.Context, a *domain.Attempt) (*domain.Attempt, error)
	listByItemID  func(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*domain.Attempt, int, error)
	listByItemIDs func(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]*domain.Attempt, error)
}

func (s *stubAttemptRepo) Create(ctx context.Context, a *domain.Attempt) (*domain.Attempt, error) {
	return s.create(ctx, a)
}

func (s *stubAttemptRepo) ListByItemID(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*domain.Attempt, int, error) {
	return s.listByItemID(ctx, itemID, limit, offset)
}

func (s *stubAttemptRepo) ListByItemIDs(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]*domain.Attempt, error) {
	return s.listByItemIDs(ctx, itemIDs)
}

type stubQuestionRepo struct {
	listByQuizID func(ctx context.Context, quizID uuid.UUID) ([]*domain.Question, error)
}

func (s *stubQuestionRepo) ListByQuizID(ctx context.Context, quizID uuid.UUID) ([]*domain.Question, error) {
	return s.listByQuizID(ctx, quizID)
}

// passthroughTx runs the function without a real transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type serviceDeps struct {
	items     *stubItemRepo
	attempts  *stubAttemptRepo
	questions *stubQuestionRepo
	clock     *clockwork.FakeClock
}

func newTestService(t *testing.T, now time.Time) (*Service, *serviceDeps) {
	t.Helper()
	return newTestServiceWithConfig(t, now, domain.DefaultScheduleConfig())
}

func newTestServiceWithConfig(t *testing.T, now time.Time, cfg domain.ScheduleConfig) (*Service, *serviceDeps) {
	t.Helper()

	deps := &serviceDeps{
		items:     &stubItemRepo{},
		attempts:  &stubAttemptRepo{},
		questions: &stubQuestionRepo{},
		clock:     clockwork.NewFakeClockAt(now),
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := NewService(log, deps.items, deps.attempts, deps.questions, passthroughTx{}, deps.clock, cfg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, deps
}

func learnerCtx(learnerID uuid.UUID) context.Context {
	return ctxutil.WithLearnerID(context.Background(), learnerID)
}
