package http

import (
	"errors"
	"net/http"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/log"
	"expensetracker/internal/middleware/ratelimit"
	"expensetracker/internal/middleware/security"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().JSON(map[string]any{
		"status":    "ok",
		"timestamp": s.now().Format(time.RFC3339),
		"uptime":    s.now().Sub(s.started).Round(time.Second).String(),
	}).Write(w)
}

// handleReady reports whether the initial collection has been loaded
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	count, rev := s.expenses.Count()
	body := map[string]any{
		"status":   "ready",
		"expenses": count,
		"revision": rev,
	}
	if !s.ready.Load() {
		body["status"] = "not_ready"
		NewJSONResponse().Status(http.StatusServiceUnavailable).JSON(body).Write(w)
		return
	}
	NewJSONResponse().JSON(body).Write(w)
}

type categoryInfo struct {
	Name  core.Category `json:"name"`
	Color string        `json:"color"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats := core.Categories()
	out := make([]categoryInfo, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryInfo{Name: c, Color: c.Color()})
	}
	NewJSONResponse().JSON(out).Write(w)
}

func (s *Server) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().JSON(core.Currencies).Write(w)
}

type statsResponse struct {
	Expenses  int                       `json:"expenses"`
	Revision  uint64                    `json:"revision"`
	RateLimit ratelimit.Metrics         `json:"rateLimit"`
	Security  security.DetectionMetrics `json:"security"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	count, rev := s.expenses.Count()
	NewJSONResponse().JSON(statsResponse{
		Expenses:  count,
		Revision:  rev,
		RateLimit: s.rateLimiter.GetMetrics(),
		Security:  s.detector.GetMetrics(),
	}).Write(w)
}

// writeError maps a service error onto a response. Validation failures name
// the rejected field; unexpected errors are logged and hidden.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr):
		FieldError(verr.Field, verr.Error()).Write(w)
	case errors.Is(err, core.ErrNotFound):
		NotFoundError("Expense not found").Write(w)
	case errors.Is(err, ErrMalformedBody), errors.Is(err, ErrEmptyPatch):
		BadRequestError(err.Error()).Write(w)
	default:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			log.NewFields().
				WithOperation(op).
				WithError(err).
				WithErrorType(log.ErrorTypeInternal).
				ToSlice()...)
		InternalServerError("Internal server error").Write(w)
	}
}
