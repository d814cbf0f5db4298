package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/studymate/recall-backend/internal/domain"
	"github.com/studymate/recall-backend/pkg/ctxutil"
)

// ReviewToday returns the items whose next review falls on the current local
// calendar date.
func (s *Service) ReviewToday(ctx context.Context) ([]*domain.Item, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	loc := ParseTimezone(s.cfg.Timezone)
	now := s.clock.Now()

	items, err := s.items.ListScheduledBetween(ctx, learnerID, DayStart(now, loc), NextDayStart(now, loc))
	if err != nil {
		return nil, fmt.Errorf("list due today: %w", err)
	}

	s.log.InfoContext(ctx, "due items listed",
		slog.String("learner_id", learnerID.String()),
		slog.String("date", DateKey(now, loc)),
		slog.Int("count", len(items)),
	)

	return items, nil
}

// ReviewByDate returns the items due on the given local calendar date.
func (s *Service) ReviewByDate(ctx context.Context, input ReviewByDateInput) ([]*domain.Item, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// The input carries a calendar date, not an instant: bounds come from its
	// own year-month-day in the configured zone.
	loc := ParseTimezone(s.cfg.Timezone)

	items, err := s.items.ListScheduledBetween(ctx, learnerID, DateStart(input.Date, loc), NextDateStart(input.Date, loc))
	if err != nil {
		return nil, fmt.Errorf("list due on date: %w", err)
	}

	return items, nil
}

// ReviewDateRange returns the items due between start and end, both bounds
// inclusive calendar dates.
func (s *Service) ReviewDateRange(ctx context.Context, input ReviewRangeInput) ([]*domain.Item, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	loc := ParseTimezone(s.cfg.Timezone)

	items, err := s.items.ListScheduledBetween(ctx, learnerID, DateStart(input.Start, loc), NextDateStart(input.End, loc))
	if err != nil {
		return nil, fmt.Errorf("list due in range: %w", err)
	}

	return items, nil
}

// ReviewCalendar returns a month of review buckets: local date key → items
// due that day. Each item lands in exactly one bucket (its next review is a
// single day, not a range).
func (s *Service) ReviewCalendar(ctx context.Context, input ReviewCalendarInput) (domain.CalendarBucket, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	loc := ParseTimezone(s.cfg.Timezone)
	monthStart := time.Date(input.Year, time.Month(input.Month), 1, 0, 0, 0, 0, loc)
	nextMonthStart := monthStart.AddDate(0, 1, 0)

	items, err := s.items.ListScheduledBetween(ctx, learnerID, monthStart.UTC(), nextMonthStart.UTC())
	if err != nil {
		return nil, fmt.Errorf("list due in month: %w", err)
	}

	buckets := make(domain.CalendarBucket)
	for _, item := range items {
		key := DateKey(*item.NextReviewDate, loc)
		buckets[key] = append(buckets[key], item)
	}

	s.log.InfoContext(ctx, "review calendar built",
		slog.String("learner_id", learnerID.String()),
		slog.Int("year", input.Year),
		slog.Int("month", input.Month),
		slog.Int("days", len(buckets)),
		slog.Int("items", len(items)),
	)

	return buckets, nil
}
