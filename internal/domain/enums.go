package domain

// ItemKind distinguishes whole-document review items from individual questions.
type ItemKind string

const (
	ItemKindDocument ItemKind = "DOCUMENT"
	ItemKindQuestion ItemKind = "QUESTION"
)

func (k ItemKind) String() string { return string(k) }

func (k ItemKind) IsValid() bool {
	switch k {
	case ItemKindDocument, ItemKindQuestion:
		return true
	}
	return false
}

// PriorityReason explains why an item was surfaced by the ranker.
type PriorityReason string

const (
	PriorityReasonLowPerformance      PriorityReason = "LOW_PERFORMANCE"
	PriorityReasonRecentAttempt       PriorityReason = "RECENT_ATTEMPT"
	PriorityReasonSpacedRepetitionDue PriorityReason = "SPACED_REPETITION_DUE"
	PriorityReasonReview              PriorityReason = "REVIEW"
)

func (r PriorityReason) String() string { return string(r) }

func (r PriorityReason) IsValid() bool {
	switch r {
	case PriorityReasonLowPerformance, PriorityReasonRecentAttempt,
		PriorityReasonSpacedRepetitionDue, PriorityReasonReview:
		return true
	}
	return false
}
