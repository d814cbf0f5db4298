package review

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studymate/recall-backend/internal/domain"
)

// maxSessionItems is the absolute ceiling on session-size requests. The
// configured max_session_size is enforced separately in the session builder
// and is usually lower.
const maxSessionItems = 100

// ReviewByDateInput holds the parameters for a single-date review query.
type ReviewByDateInput struct {
	Date time.Time
}

// Validate checks all fields and collects all errors.
func (i *ReviewByDateInput) Validate() error {
	var errs []domain.FieldError

	if i.Date.IsZero() {
		errs = append(errs, domain.FieldError{Field: "date", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ReviewRangeInput holds the parameters for a date-range review query.
// Both bounds are inclusive calendar dates.
type ReviewRangeInput struct {
	Start time.Time
	End   time.Time
}

// Validate checks all fields and collects all errors.
func (i *ReviewRangeInput) Validate() error {
	var errs []domain.FieldError

	if i.Start.IsZero() {
		errs = append(errs, domain.FieldError{Field: "start", Message: "required"})
	}
	if i.End.IsZero() {
		errs = append(errs, domain.FieldError{Field: "end", Message: "required"})
	}
	if !i.Start.IsZero() && !i.End.IsZero() && i.End.Before(i.Start) {
		errs = append(errs, domain.FieldError{Field: "end", Message: "must not precede start"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ReviewCalendarInput holds the parameters for a month calendar query.
type ReviewCalendarInput struct {
	Year  int
	Month int
}

// Validate checks all fields and collects all errors.
func (i *ReviewCalendarInput) Validate() error {
	var errs []domain.FieldError

	if i.Year < 1970 || i.Year > 9999 {
		errs = append(errs, domain.FieldError{Field: "year", Message: "must be between 1970 and 9999"})
	}
	if i.Month < 1 || i.Month > 12 {
		errs = append(errs, domain.FieldError{Field: "month", Message: "must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// BuildSessionInput holds the parameters for building an active-recall session.
type BuildSessionInput struct {
	MaxItems int // 0 means the configured default
}

// Validate checks all fields and collects all errors.
func (i *BuildSessionInput) Validate() error {
	var errs []domain.FieldError

	if i.MaxItems < 0 || i.MaxItems > maxSessionItems {
		errs = append(errs, domain.FieldError{Field: "max_items", Message: fmt.Sprintf("must be between 0 and %d", maxSessionItems)})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RetakeSessionInput holds the parameters for building a retake session from
// a prior quiz run. Prior answers are passed in-process, never round-tripped
// through client-side storage.
type RetakeSessionInput struct {
	QuizID          uuid.UUID
	PreviousAnswers []domain.PreviousAnswer
}

// Validate checks all fields and collects all errors.
func (i *RetakeSessionInput) Validate() error {
	var errs []domain.FieldError

	if i.QuizID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "quiz_id", Message: "required"})
	}
	for _, a := range i.PreviousAnswers {
		if a.QuestionID == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "previous_answers", Message: "question_id required on every answer"})
			break
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RecordAttemptInput holds the parameters for recording a scored attempt.
type RecordAttemptInput struct {
	ItemID              uuid.UUID
	Correct             bool
	SelectedOptionIndex int
}

// Validate checks all fields and collects all errors.
func (i *RecordAttemptInput) Validate() error {
	var errs []domain.FieldError

	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	if i.SelectedOptionIndex < 0 {
		errs = append(errs, domain.FieldError{Field: "selected_option_index", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListAttemptsInput holds the parameters for fetching an item's attempt history.
type ListAttemptsInput struct {
	ItemID uuid.UUID
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i *ListAttemptsInput) Validate() error {
	var errs []domain.FieldError

	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	if i.Limit < 0 || i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
