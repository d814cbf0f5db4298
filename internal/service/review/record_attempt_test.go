package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/studymate/recall-backend/internal/domain"
)

func TestRecordAttemptAndReschedule(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	learnerID := uuid.New()
	itemID := uuid.New()

	earlier := now.AddDate(0, 0, -4)
	item := &domain.Item{
		ID:                 itemID,
		LearnerID:          learnerID,
		Kind:               domain.ItemKindQuestion,
		MasteryScore:       0.75,
		ReviewIntervalDays: 4,
		LastReviewedAt:     &earlier,
		Version:            3,
	}

	// Three prior correct attempts; the new correct one pushes mastery to 1.0
	// and doubles the interval.
	history := []*domain.Attempt{
		{ItemID: itemID, Correct: true, AttemptedAt: earlier, Seq: 1},
		{ItemID: itemID, Correct: true, AttemptedAt: earlier.Add(time.Minute), Seq: 2},
		{ItemID: itemID, Correct: true, AttemptedAt: earlier.Add(2 * time.Minute), Seq: 3},
	}

	svc, deps := newTestService(t, now)
	deps.items.getByIDForUpdate = func(_ context.Context, gotLearner, gotItem uuid.UUID) (*domain.Item, error) {
		if gotLearner != learnerID || gotItem != itemID {
			t.Errorf("locked (%s, %s), want (%s, %s)", gotLearner, gotItem, learnerID, itemID)
		}
		return item, nil
	}

	var created *domain.Attempt
	deps.attempts.create = func(_ context.Context, a *domain.Attempt) (*domain.Attempt, error) {
		created = a
		stored := *a
		stored.Seq = 4
		return &stored, nil
	}
	deps.attempts.listByItemID = func(_ context.Context, _ uuid.UUID, limit, offset int) ([]*domain.Attempt, int, error) {
		if limit != 0 || offset != 0 {
			t.Errorf("history query limit=%d offset=%d, want full history", limit, offset)
		}
		full := append(history, created)
		return full, len(full), nil
	}

	var gotVersion int
	var gotParams domain.ScheduleUpdateParams
	deps.items.updateSchedule = func(_ context.Context, _, _ uuid.UUID, version int, params domain.ScheduleUpdateParams) (*domain.Item, error) {
		gotVersion = version
		gotParams = params
		updated := *item
		updated.MasteryScore = params.MasteryScore
		updated.ReviewIntervalDays = params.ReviewIntervalDays
		updated.LastReviewedAt = &params.LastReviewedAt
		updated.NextReviewDate = &params.NextReviewDate
		updated.Version = version + 1
		return &updated, nil
	}

	result, err := svc.RecordAttemptAndReschedule(learnerCtx(learnerID), RecordAttemptInput{
		ItemID:              itemID,
		Correct:             true,
		SelectedOptionIndex: 2,
	})
	if err != nil {
		t.Fatalf("RecordAttemptAndReschedule: %v", err)
	}

	if created == nil {
		t.Fatal("attempt was not created")
	}
	if created.LearnerID != learnerID || created.ItemID != itemID || !created.Correct {
		t.Errorf("created attempt = %+v", created)
	}
	if !created.AttemptedAt.Equal(now) {
		t.Errorf("AttemptedAt = %v, want clock time %v", created.AttemptedAt, now)
	}

	if gotVersion != 3 {
		t.Errorf("version check = %d, want 3", gotVersion)
	}
	if gotParams.MasteryScore != 1.0 {
		t.Errorf("mastery = %v, want 1.0", gotParams.MasteryScore)
	}
	if gotParams.ReviewIntervalDays != 8 {
		t.Errorf("interval = %d, want 8", gotParams.ReviewIntervalDays)
	}
	wantNext := now.AddDate(0, 0, 8)
	if !gotParams.NextReviewDate.Equal(wantNext) {
		t.Errorf("next review = %v, want %v", gotParams.NextReviewDate, wantNext)
	}

	if result.Item.Version != 4 {
		t.Errorf("result version = %d, want 4", result.Item.Version)
	}
	if result.Attempt.Seq != 4 {
		t.Errorf("result attempt seq = %d, want the stored row", result.Attempt.Seq)
	}
}

func TestRecordAttemptIncorrectHalvesInterval(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	learnerID := uuid.New()
	itemID := uuid.New()
	item := &domain.Item{ID: itemID, LearnerID: learnerID, ReviewIntervalDays: 8, Version: 1}

	svc, deps := newTestService(t, now)
	deps.items.getByIDForUpdate = func(_ context.Context, _, _ uuid.UUID) (*domain.Item, error) {
		return item, nil
	}
	deps.attempts.create = func(_ context.Context, a *domain.Attempt) (*domain.Attempt, error) {
		return a, nil
	}
	deps.attempts.listByItemID = func(_ context.Context, _ uuid.UUID, _, _ int) ([]*domain.Attempt, int, error) {
		attempts := []*domain.Attempt{
			{ItemID: itemID, Correct: true, AttemptedAt: now.Add(-time.Hour), Seq: 1},
			{ItemID: itemID, Correct: false, AttemptedAt: now.Add(-30 * time.Minute), Seq: 2},
			{ItemID: itemID, Correct: false, AttemptedAt: now, Seq: 3},
		}
		return attempts, len(attempts), nil
	}

	var gotParams domain.ScheduleUpdateParams
	deps.items.updateSchedule = func(_ context.Context, _, _ uuid.UUID, version int, params domain.ScheduleUpdateParams) (*domain.Item, error) {
		gotParams = params
		updated := *item
		updated.Version = version + 1
		updated.MasteryScore = params.MasteryScore
		updated.ReviewIntervalDays = params.ReviewIntervalDays
		return &updated, nil
	}

	if _, err := svc.RecordAttemptAndReschedule(learnerCtx(learnerID), RecordAttemptInput{ItemID: itemID}); err != nil {
		t.Fatalf("RecordAttemptAndReschedule: %v", err)
	}

	if gotParams.ReviewIntervalDays != 4 {
		t.Errorf("interval = %d, want 4", gotParams.ReviewIntervalDays)
	}
}

func TestRecordAttemptConflictPropagates(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	learnerID := uuid.New()
	itemID := uuid.New()

	svc, deps := newTestService(t, now)
	deps.items.getByIDForUpdate = func(_ context.Context, _, _ uuid.UUID) (*domain.Item, error) {
		return &domain.Item{ID: itemID, LearnerID: learnerID, ReviewIntervalDays: 1, Version: 1}, nil
	}
	deps.attempts.create = func(_ context.Context, a *domain.Attempt) (*domain.Attempt, error) {
		return a, nil
	}
	deps.attempts.listByItemID = func(_ context.Context, _ uuid.UUID, _, _ int) ([]*domain.Attempt, int, error) {
		return []*domain.Attempt{{ItemID: itemID, Correct: true, AttemptedAt: now, Seq: 1}}, 1, nil
	}
	deps.items.updateSchedule = func(_ context.Context, _, _ uuid.UUID, _ int, _ domain.ScheduleUpdateParams) (*domain.Item, error) {
		return nil, domain.ErrConflict
	}

	_, err := svc.RecordAttemptAndReschedule(learnerCtx(learnerID), RecordAttemptInput{ItemID: itemID})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestRecordAttemptUnknownItem(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, deps := newTestService(t, now)
	deps.items.getByIDForUpdate = func(_ context.Context, _, _ uuid.UUID) (*domain.Item, error) {
		return nil, domain.ErrNotFound
	}

	_, err := svc.RecordAttemptAndReschedule(learnerCtx(uuid.New()), RecordAttemptInput{ItemID: uuid.New()})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListAttempts(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	learnerID := uuid.New()
	itemID := uuid.New()

	svc, deps := newTestService(t, now)
	deps.items.getByID = func(_ context.Context, gotLearner, gotItem uuid.UUID) (*domain.Item, error) {
		if gotLearner != learnerID || gotItem != itemID {
			t.Errorf("looked up (%s, %s), want (%s, %s)", gotLearner, gotItem, learnerID, itemID)
		}
		return &domain.Item{ID: itemID, LearnerID: learnerID}, nil
	}
	deps.attempts.listByItemID = func(_ context.Context, _ uuid.UUID, limit, offset int) ([]*domain.Attempt, int, error) {
		if limit != 10 || offset != 20 {
			t.Errorf("page limit=%d offset=%d, want 10/20", limit, offset)
		}
		return []*domain.Attempt{{ItemID: itemID, Seq: 21}}, 45, nil
	}

	history, err := svc.ListAttempts(learnerCtx(learnerID), ListAttemptsInput{ItemID: itemID, Limit: 10, Offset: 20})
	if err != nil {
		t.Fatalf("ListAttempts: %v", err)
	}
	if history.Total != 45 || len(history.Attempts) != 1 {
		t.Errorf("history = %d/%d, want 1 attempt of 45", len(history.Attempts), history.Total)
	}
}

func TestListAttemptsForeignItem(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, deps := newTestService(t, now)
	deps.items.getByID = func(_ context.Context, _, _ uuid.UUID) (*domain.Item, error) {
		return nil, domain.ErrNotFound
	}

	_, err := svc.ListAttempts(learnerCtx(uuid.New()), ListAttemptsInput{ItemID: uuid.New()})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
