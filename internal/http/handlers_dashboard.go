package http

import (
	"net/http"

	"expensetracker/internal/log"
)

// Dashboard endpoints accept the same start, end and category filters as the
// expense list; aggregates are computed over the matching expenses.

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	f, err := ParseFilter(r.URL.Query())
	if err != nil {
		s.writeError(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().JSON(s.dashboard.Summary(r.Context(), f)).Write(w)
}

func (s *Server) handleSummaryCategories(w http.ResponseWriter, r *http.Request) {
	f, err := ParseFilter(r.URL.Query())
	if err != nil {
		s.writeError(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().JSON(s.dashboard.Categories(r.Context(), f)).Write(w)
}

func (s *Server) handleSummaryMonthly(w http.ResponseWriter, r *http.Request) {
	f, err := ParseFilter(r.URL.Query())
	if err != nil {
		s.writeError(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().JSON(s.dashboard.Monthly(r.Context(), f)).Write(w)
}
