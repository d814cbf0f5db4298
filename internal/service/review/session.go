package review

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/studymate/recall-backend/internal/domain"
	"github.com/studymate/recall-backend/pkg/ctxutil"
)

// Retake scoring: previously-incorrect questions always precede
// previously-correct ones.
const (
	retakeIncorrectScore = 100
	retakeCorrectScore   = 50
)

// BuildActiveRecallSession selects a bounded, priority-ordered queue of items
// for one active-recall run. An empty candidate pool yields an empty session,
// not an error; the caller decides how to present "nothing to review".
func (s *Service) BuildActiveRecallSession(ctx context.Context, input BuildSessionInput) (*domain.Session, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.MaxItems > s.cfg.MaxSessionSize {
		return nil, domain.NewValidationErrors([]domain.FieldError{{
			Field:   "max_items",
			Message: fmt.Sprintf("must be at most %d", s.cfg.MaxSessionSize),
		}})
	}

	maxItems := input.MaxItems
	if maxItems == 0 {
		maxItems = s.cfg.DefaultSessionSize
	}

	now := s.clock.Now()

	items, err := s.items.ListForLearner(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	session := &domain.Session{
		ID:        uuid.New(),
		LearnerID: learnerID,
		CreatedAt: now,
	}
	if len(items) == 0 {
		return session, nil
	}

	itemIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}

	attemptsByItem, err := s.attempts.ListByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}

	pool := make([]PoolEntry, len(items))
	for i, item := range items {
		pool[i] = PoolEntry{
			Item:    item,
			Mastery: EstimateMastery(attemptsByItem[item.ID], s.cfg),
		}
	}

	ranked := RankPool(pool, now, s.cfg)
	if len(ranked) > maxItems {
		ranked = ranked[:maxItems]
	}

	for _, p := range ranked {
		session.Entries = append(session.Entries, domain.SessionEntry{
			ItemID:         p.Item.ID,
			PriorityScore:  p.PriorityScore,
			PriorityReason: p.PriorityReason,
			MasteryScore:   p.MasteryScore,
			WasIncorrect:   p.LastIncorrect,
		})
	}

	s.log.InfoContext(ctx, "active recall session built",
		slog.String("learner_id", learnerID.String()),
		slog.String("session_id", session.ID.String()),
		slog.Int("pool_size", len(pool)),
		slog.Int("selected", len(session.Entries)),
	)

	return session, nil
}

// BuildRetakeSession reconstructs a quiz's questions and orders them so the
// previously-incorrect ones come first. Prior answers arrive as arguments;
// the session carries each entry's WasIncorrect flag and the learner's prior
// answer for highlighting.
func (s *Service) BuildRetakeSession(ctx context.Context, input RetakeSessionInput) (*domain.Session, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	questions, err := s.questions.ListByQuizID(ctx, input.QuizID)
	if err != nil {
		return nil, fmt.Errorf("list quiz questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz %s has no questions: %w", input.QuizID, domain.ErrNotFound)
	}

	quizID := input.QuizID
	session := &domain.Session{
		ID:             uuid.New(),
		LearnerID:      learnerID,
		RetakeOfQuizID: &quizID,
		CreatedAt:      s.clock.Now(),
	}

	for _, q := range questions {
		wasIncorrect := false
		var prevAnswer *int
		for _, a := range input.PreviousAnswers {
			if a.QuestionID != q.ID {
				continue
			}
			if !a.Correct {
				wasIncorrect = true
			}
			if prevAnswer == nil {
				idx := a.SelectedOptionIndex
				prevAnswer = &idx
			}
		}

		entry := domain.SessionEntry{
			ItemID:             q.ID,
			Question:           q,
			PriorityScore:      retakeCorrectScore,
			PriorityReason:     domain.PriorityReasonReview,
			WasIncorrect:       wasIncorrect,
			UserPreviousAnswer: prevAnswer,
		}
		if wasIncorrect {
			entry.PriorityScore = retakeIncorrectScore
			entry.PriorityReason = domain.PriorityReasonLowPerformance
		}
		session.Entries = append(session.Entries, entry)
	}

	// Stable sort keeps original quiz order within each score band.
	sort.SliceStable(session.Entries, func(i, j int) bool {
		return session.Entries[i].PriorityScore > session.Entries[j].PriorityScore
	})

	s.log.InfoContext(ctx, "retake session built",
		slog.String("learner_id", learnerID.String()),
		slog.String("quiz_id", input.QuizID.String()),
		slog.Int("questions", len(session.Entries)),
	)

	return session, nil
}
