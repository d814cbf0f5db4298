package rest

import (
	"net/http"

	"github.com/studymate/recall-backend/internal/transport/middleware"
)

// RouterDeps carries everything the router needs.
type RouterDeps struct {
	Review  *ReviewHandler
	Health  *HealthHandler
	Base    middleware.Middleware // recovery, request id, cors, logging, auth
	Limiter middleware.Middleware // applied to mutating endpoints only
}

// NewRouter builds the HTTP routing table. Health probes bypass auth and
// rate limiting; everything under /api/v1 goes through the base chain.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", deps.Health.Health)
	mux.HandleFunc("GET /ready", deps.Health.Ready)
	mux.HandleFunc("GET /live", deps.Health.Live)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/v1/review/today", deps.Review.Today)
	api.HandleFunc("GET /api/v1/review/date", deps.Review.ByDate)
	api.HandleFunc("GET /api/v1/review/range", deps.Review.Range)
	api.HandleFunc("GET /api/v1/review/calendar", deps.Review.Calendar)
	api.HandleFunc("GET /api/v1/items/{id}/attempts", deps.Review.ListAttempts)

	limited := deps.Limiter
	if limited == nil {
		limited = func(next http.Handler) http.Handler { return next }
	}
	api.Handle("POST /api/v1/sessions/active-recall", limited(http.HandlerFunc(deps.Review.ActiveRecallSession)))
	api.Handle("POST /api/v1/sessions/retake", limited(http.HandlerFunc(deps.Review.RetakeSession)))
	api.Handle("POST /api/v1/items/{id}/attempts", limited(http.HandlerFunc(deps.Review.RecordAttempt)))

	mux.Handle("/api/v1/", deps.Base(api))

	return mux
}
