package domain

import (
	"time"

	"github.com/google/uuid"
)

// Item is a reviewable unit: a whole document (calendar-based review) or an
// individual question (active-recall sessions). The schedule fields
// (MasteryScore, ReviewIntervalDays, LastReviewedAt, NextReviewDate) are the
// only long-lived state the engine owns; they change exactly once per
// completed review.
type Item struct {
	ID                 uuid.UUID
	LearnerID          uuid.UUID
	OwnerDocumentID    uuid.UUID
	Kind               ItemKind
	MasteryScore       float64
	ReviewIntervalDays int
	LastReviewedAt     *time.Time
	NextReviewDate     *time.Time
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasSchedule reports whether the item has been reviewed at least once.
// Never-reviewed items carry no next review date and are excluded from
// calendar queries; they surface through active-recall sessions instead.
func (i *Item) HasSchedule() bool {
	return i.LastReviewedAt != nil && i.NextReviewDate != nil
}

// IsDueOn reports whether the item's next review falls on the given local
// calendar date. Comparison is by year-month-day in loc, not by UTC instant,
// so a review scheduled for "tonight" never slips into the next bucket.
func (i *Item) IsDueOn(date time.Time, loc *time.Location) bool {
	if i.NextReviewDate == nil {
		return false
	}
	due := i.NextReviewDate.In(loc)
	d := date.In(loc)
	return due.Year() == d.Year() && due.Month() == d.Month() && due.Day() == d.Day()
}

// Attempt is one historical answer event for an item. Attempts are immutable
// once recorded; ordering is by AttemptedAt with Seq as the insertion
// tie-break.
type Attempt struct {
	ID                  uuid.UUID
	ItemID              uuid.UUID
	LearnerID           uuid.UUID
	Correct             bool
	SelectedOptionIndex int
	AttemptedAt         time.Time
	Seq                 int64
}

// PriorityItem is a derived, ephemeral view of an item with its computed
// priority. Never persisted; recomputed per request.
type PriorityItem struct {
	Item           *Item
	PriorityScore  float64
	PriorityReason PriorityReason
	MasteryScore   float64
	LastIncorrect  bool
	TotalAttempts  int
}

// ScheduleUpdateParams holds the schedule fields written back after a scored
// attempt is recorded.
type ScheduleUpdateParams struct {
	MasteryScore       float64
	ReviewIntervalDays int
	LastReviewedAt     time.Time
	NextReviewDate     time.Time
}
