package domain

import "testing"

func TestItemKind_IsValid(t *testing.T) {
	valid := []ItemKind{ItemKindDocument, ItemKindQuestion}
	for _, k := range valid {
		if !k.IsValid() {
			t.Errorf("IsValid(%s) = false, want true", k)
		}
	}
	if ItemKind("FLASHCARD").IsValid() {
		t.Error("IsValid(FLASHCARD) = true, want false")
	}
	if ItemKind("").IsValid() {
		t.Error("IsValid(empty) = true, want false")
	}
}

func TestPriorityReason_IsValid(t *testing.T) {
	valid := []PriorityReason{
		PriorityReasonLowPerformance,
		PriorityReasonRecentAttempt,
		PriorityReasonSpacedRepetitionDue,
		PriorityReasonReview,
	}
	for _, r := range valid {
		if !r.IsValid() {
			t.Errorf("IsValid(%s) = false, want true", r)
		}
	}
	if PriorityReason("URGENT").IsValid() {
		t.Error("IsValid(URGENT) = true, want false")
	}
}
