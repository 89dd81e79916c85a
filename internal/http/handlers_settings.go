package http

import (
	"net/http"

	"expensetracker/internal/log"
	"expensetracker/internal/services"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().JSON(s.expenses.Settings()).Write(w)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, log.OpUpdate, err)
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		s.writeError(w, r, log.OpUpdate, err)
		return
	}

	next, err := s.expenses.UpdateSettings(r.Context(), patch)
	if err != nil {
		s.writeError(w, r, log.OpUpdate, err)
		return
	}

	NewJSONResponse().
		JSON(next).
		SuccessNotification(services.MsgSettingsUpdated).
		Write(w)
}

func (s *Server) handleResetSettings(w http.ResponseWriter, r *http.Request) {
	def, err := s.expenses.ResetSettings(r.Context())
	if err != nil {
		s.writeError(w, r, log.OpReset, err)
		return
	}

	NewJSONResponse().
		JSON(def).
		SuccessNotification(services.MsgSettingsReset).
		Write(w)
}
