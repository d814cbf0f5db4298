package domain

import (
	"time"

	"github.com/google/uuid"
)

// Question is a single quiz question, read from the external quiz store.
type Question struct {
	ID                 uuid.UUID
	QuizID             uuid.UUID
	Prompt             string
	Options            []string
	CorrectOptionIndex int
	Hint               string
	Explanation        string
}

// PreviousAnswer is a learner's recorded answer from a prior quiz run, used to
// seed retake sessions.
type PreviousAnswer struct {
	QuestionID          uuid.UUID
	SelectedOptionIndex int
	Correct             bool
}

// SessionEntry is one position in a review session. For retake sessions the
// Question field is populated and the Was* flags carry the learner's prior
// performance for highlighting.
type SessionEntry struct {
	ItemID             uuid.UUID
	Question           *Question
	PriorityScore      float64
	PriorityReason     PriorityReason
	MasteryScore       float64
	WasIncorrect       bool
	UserPreviousAnswer *int
}

// Session is an ordered, bounded batch of entries for one active-recall run.
// Sessions are built on demand and discarded after completion; results come
// back as new Attempts, never as session state.
type Session struct {
	ID             uuid.UUID
	LearnerID      uuid.UUID
	RetakeOfQuizID *uuid.UUID
	Entries        []SessionEntry
	CreatedAt      time.Time
}

// IsRetake reports whether the session was seeded from a prior quiz run.
func (s *Session) IsRetake() bool { return s.RetakeOfQuizID != nil }

// CalendarBucket maps a local calendar date (ISO "2006-01-02" key) to the
// items due on that date. Derived per query, never stored.
type CalendarBucket map[string][]*Item
