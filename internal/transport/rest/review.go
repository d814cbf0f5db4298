package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/studymate/recall-backend/internal/domain"
	"github.com/studymate/recall-backend/internal/service/review"
)

const dateLayout = "2006-01-02"

// reviewService defines the minimal interface needed by ReviewHandler.
type reviewService interface {
	ReviewToday(ctx context.Context) ([]*domain.Item, error)
	ReviewByDate(ctx context.Context, input review.ReviewByDateInput) ([]*domain.Item, error)
	ReviewDateRange(ctx context.Context, input review.ReviewRangeInput) ([]*domain.Item, error)
	ReviewCalendar(ctx context.Context, input review.ReviewCalendarInput) (domain.CalendarBucket, error)
	BuildActiveRecallSession(ctx context.Context, input review.BuildSessionInput) (*domain.Session, error)
	BuildRetakeSession(ctx context.Context, input review.RetakeSessionInput) (*domain.Session, error)
	RecordAttemptAndReschedule(ctx context.Context, input review.RecordAttemptInput) (*review.RecordAttemptResult, error)
	ListAttempts(ctx context.Context, input review.ListAttemptsInput) (*review.AttemptHistory, error)
}

// ReviewHandler serves the review engine's REST endpoints.
type ReviewHandler struct {
	svc reviewService
	log *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(svc reviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{svc: svc, log: logger.With("handler", "review")}
}

type itemResponse struct {
	ID                 string     `json:"id"`
	OwnerDocumentID    string     `json:"ownerDocumentId"`
	Kind               string     `json:"kind"`
	MasteryScore       float64    `json:"masteryScore"`
	ReviewIntervalDays int        `json:"reviewIntervalDays"`
	LastReviewedAt     *time.Time `json:"lastReviewedAt,omitempty"`
	NextReviewDate     *time.Time `json:"nextReviewDate,omitempty"`
}

type itemsResponse struct {
	Items []itemResponse `json:"items"`
}

type sessionEntryResponse struct {
	ItemID             string            `json:"itemId"`
	Question           *questionResponse `json:"question,omitempty"`
	PriorityScore      float64           `json:"priorityScore"`
	PriorityReason     string            `json:"priorityReason"`
	MasteryScore       float64           `json:"masteryScore"`
	WasIncorrect       bool              `json:"wasIncorrect"`
	UserPreviousAnswer *int              `json:"userPreviousAnswer,omitempty"`
}

type questionResponse struct {
	ID                 string   `json:"id"`
	Prompt             string   `json:"prompt"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correctOptionIndex"`
	Hint               string   `json:"hint,omitempty"`
	Explanation        string   `json:"explanation,omitempty"`
}

type sessionResponse struct {
	ID             string                 `json:"id"`
	RetakeOfQuizID *string                `json:"retakeOfQuizId,omitempty"`
	Entries        []sessionEntryResponse `json:"entries"`
	CreatedAt      time.Time              `json:"createdAt"`
}

type buildSessionRequest struct {
	MaxItems int `json:"maxItems"`
}

type previousAnswerRequest struct {
	QuestionID          string `json:"questionId"`
	SelectedOptionIndex int    `json:"selectedOptionIndex"`
	Correct             bool   `json:"correct"`
}

type retakeSessionRequest struct {
	QuizID          string                  `json:"quizId"`
	PreviousAnswers []previousAnswerRequest `json:"previousAnswers"`
}

type recordAttemptRequest struct {
	Correct             bool `json:"correct"`
	SelectedOptionIndex int  `json:"selectedOptionIndex"`
}

type attemptResponse struct {
	ID                  string    `json:"id"`
	ItemID              string    `json:"itemId"`
	Correct             bool      `json:"correct"`
	SelectedOptionIndex int       `json:"selectedOptionIndex"`
	AttemptedAt         time.Time `json:"attemptedAt"`
}

type recordAttemptResponse struct {
	Attempt attemptResponse `json:"attempt"`
	Item    itemResponse    `json:"item"`
}

type attemptsPageResponse struct {
	Attempts []attemptResponse `json:"attempts"`
	Total    int               `json:"total"`
}

// Today handles GET /api/v1/review/today.
func (h *ReviewHandler) Today(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ReviewToday(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemsResponse(items))
}

// ByDate handles GET /api/v1/review/date?date=2026-03-10.
func (h *ReviewHandler) ByDate(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(dateLayout, r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	items, err := h.svc.ReviewByDate(r.Context(), review.ReviewByDateInput{Date: date})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemsResponse(items))
}

// Range handles GET /api/v1/review/range?start=2026-03-10&end=2026-03-14.
func (h *ReviewHandler) Range(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(dateLayout, r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return
	}

	items, err := h.svc.ReviewDateRange(r.Context(), review.ReviewRangeInput{Start: start, End: end})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemsResponse(items))
}

// Calendar handles GET /api/v1/review/calendar?year=2026&month=3.
func (h *ReviewHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month")
		return
	}

	buckets, err := h.svc.ReviewCalendar(r.Context(), review.ReviewCalendarInput{Year: year, Month: month})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make(map[string][]itemResponse, len(buckets))
	for day, items := range buckets {
		out[day] = toItemsResponse(items).Items
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": out})
}

// ActiveRecallSession handles POST /api/v1/sessions/active-recall.
func (h *ReviewHandler) ActiveRecallSession(w http.ResponseWriter, r *http.Request) {
	req := buildSessionRequest{}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	session, err := h.svc.BuildActiveRecallSession(r.Context(), review.BuildSessionInput{MaxItems: req.MaxItems})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

// RetakeSession handles POST /api/v1/sessions/retake.
func (h *ReviewHandler) RetakeSession(w http.ResponseWriter, r *http.Request) {
	var req retakeSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quizID, err := uuid.Parse(req.QuizID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quizId")
		return
	}

	answers := make([]domain.PreviousAnswer, 0, len(req.PreviousAnswers))
	for _, a := range req.PreviousAnswers {
		questionID, err := uuid.Parse(a.QuestionID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid questionId in previousAnswers")
			return
		}
		answers = append(answers, domain.PreviousAnswer{
			QuestionID:          questionID,
			SelectedOptionIndex: a.SelectedOptionIndex,
			Correct:             a.Correct,
		})
	}

	session, err := h.svc.BuildRetakeSession(r.Context(), review.RetakeSessionInput{
		QuizID:          quizID,
		PreviousAnswers: answers,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

// RecordAttempt handles POST /api/v1/items/{id}/attempts.
func (h *ReviewHandler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req recordAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.RecordAttemptAndReschedule(r.Context(), review.RecordAttemptInput{
		ItemID:              itemID,
		Correct:             req.Correct,
		SelectedOptionIndex: req.SelectedOptionIndex,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, recordAttemptResponse{
		Attempt: toAttemptResponse(result.Attempt),
		Item:    toItemResponse(result.Item),
	})
}

// ListAttempts handles GET /api/v1/items/{id}/attempts?limit=50&offset=0.
func (h *ReviewHandler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	limit := 50
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
	}

	history, err := h.svc.ListAttempts(r.Context(), review.ListAttemptsInput{
		ItemID: itemID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	attempts := make([]attemptResponse, 0, len(history.Attempts))
	for _, a := range history.Attempts {
		attempts = append(attempts, toAttemptResponse(a))
	}
	writeJSON(w, http.StatusOK, attemptsPageResponse{Attempts: attempts, Total: history.Total})
}

func (h *ReviewHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeValidationError(w, vErr)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict, retry the request")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toItemResponse(item *domain.Item) itemResponse {
	return itemResponse{
		ID:                 item.ID.String(),
		OwnerDocumentID:    item.OwnerDocumentID.String(),
		Kind:               item.Kind.String(),
		MasteryScore:       item.MasteryScore,
		ReviewIntervalDays: item.ReviewIntervalDays,
		LastReviewedAt:     item.LastReviewedAt,
		NextReviewDate:     item.NextReviewDate,
	}
}

func toItemsResponse(items []*domain.Item) itemsResponse {
	out := itemsResponse{Items: make([]itemResponse, 0, len(items))}
	for _, item := range items {
		out.Items = append(out.Items, toItemResponse(item))
	}
	return out
}

func toSessionResponse(session *domain.Session) sessionResponse {
	resp := sessionResponse{
		ID:        session.ID.String(),
		Entries:   make([]sessionEntryResponse, 0, len(session.Entries)),
		CreatedAt: session.CreatedAt,
	}
	if session.RetakeOfQuizID != nil {
		s := session.RetakeOfQuizID.String()
		resp.RetakeOfQuizID = &s
	}
	for _, e := range session.Entries {
		entry := sessionEntryResponse{
			ItemID:             e.ItemID.String(),
			PriorityScore:      e.PriorityScore,
			PriorityReason:     e.PriorityReason.String(),
			MasteryScore:       e.MasteryScore,
			WasIncorrect:       e.WasIncorrect,
			UserPreviousAnswer: e.UserPreviousAnswer,
		}
		if e.Question != nil {
			entry.Question = &questionResponse{
				ID:                 e.Question.ID.String(),
				Prompt:             e.Question.Prompt,
				Options:            e.Question.Options,
				CorrectOptionIndex: e.Question.CorrectOptionIndex,
				Hint:               e.Question.Hint,
				Explanation:        e.Question.Explanation,
			}
		}
		resp.Entries = append(resp.Entries, entry)
	}
	return resp
}

func toAttemptResponse(a *domain.Attempt) attemptResponse {
	return attemptResponse{
		ID:                  a.ID.String(),
		ItemID:              a.ItemID.String(),
		Correct:             a.Correct,
		SelectedOptionIndex: a.SelectedOptionIndex,
		AttemptedAt:         a.AttemptedAt,
	}
}

func writeValidationError(w http.ResponseWriter, vErr *domain.ValidationError) {
	fields := make([]map[string]string, 0, len(vErr.Errors))
	for _, fe := range vErr.Errors {
		fields = append(fields, map[string]string{"field": fe.Field, "message": fe.Message})
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": fields,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
