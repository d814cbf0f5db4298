package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/studymate/recall-backend/internal/domain"
	"github.com/studymate/recall-backend/pkg/ctxutil"
)

// RecordAttemptResult is the outcome of recording one scored attempt: the
// stored attempt plus the item's recomputed schedule.
type RecordAttemptResult struct {
	Attempt *domain.Attempt
	Item    *domain.Item
}

// RecordAttemptAndReschedule appends a scored attempt to the item's history
// and recomputes its schedule in one transaction. The item row is locked for
// the duration so concurrent attempts against the same item serialize; the
// version check on write-back catches anything that slipped past the lock and
// surfaces it as a conflict instead of silently losing an update.
func (s *Service) RecordAttemptAndReschedule(ctx context.Context, input RecordAttemptInput) (*RecordAttemptResult, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()

	var result RecordAttemptResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		item, err := s.items.GetByIDForUpdate(ctx, learnerID, input.ItemID)
		if err != nil {
			return fmt.Errorf("lock item: %w", err)
		}

		attempt, err := s.attempts.Create(ctx, &domain.Attempt{
			ID:                  uuid.New(),
			ItemID:              item.ID,
			LearnerID:           learnerID,
			Correct:             input.Correct,
			SelectedOptionIndex: input.SelectedOptionIndex,
			AttemptedAt:         now,
		})
		if err != nil {
			return fmt.Errorf("create attempt: %w", err)
		}

		// Full history including the attempt just written.
		history, _, err := s.attempts.ListByItemID(ctx, item.ID, 0, 0)
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}

		mastery := EstimateMastery(history, s.cfg)
		next := NextInterval(IntervalInput{
			MasteryScore:         mastery.Score,
			PreviousIntervalDays: item.ReviewIntervalDays,
			ReviewedAt:           now,
			Config:               s.cfg,
		})

		updated, err := s.items.UpdateSchedule(ctx, learnerID, item.ID, item.Version, domain.ScheduleUpdateParams{
			MasteryScore:       mastery.Score,
			ReviewIntervalDays: next.IntervalDays,
			LastReviewedAt:     now,
			NextReviewDate:     next.NextReviewDate,
		})
		if err != nil {
			return fmt.Errorf("update schedule: %w", err)
		}

		result.Attempt = attempt
		result.Item = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "attempt recorded",
		slog.String("learner_id", learnerID.String()),
		slog.String("item_id", input.ItemID.String()),
		slog.Bool("correct", input.Correct),
		slog.Float64("mastery", result.Item.MasteryScore),
		slog.Int("interval_days", result.Item.ReviewIntervalDays),
	)

	return &result, nil
}

// AttemptHistory is a page of an item's attempt log plus the total count.
type AttemptHistory struct {
	Attempts []*domain.Attempt
	Total    int
}

// ListAttempts returns a page of the item's attempt history, oldest first.
// The item lookup doubles as the ownership check.
func (s *Service) ListAttempts(ctx context.Context, input ListAttemptsInput) (*AttemptHistory, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.items.GetByID(ctx, learnerID, input.ItemID); err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	attempts, total, err := s.attempts.ListByItemID(ctx, input.ItemID, input.Limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}

	return &AttemptHistory{Attempts: attempts, Total: total}, nil
}
