package http

import (
	"net/http"

	"expensetracker/internal/log"
	"expensetracker/internal/services"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	f, err := ParseFilter(r.URL.Query())
	if err != nil {
		s.writeError(w, r, log.OpList, err)
		return
	}
	NewJSONResponse().JSON(s.expenses.List(r.Context(), f)).Write(w)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, log.OpCreate, err)
		return
	}

	in, err := req.toInput(s.today())
	if err != nil {
		s.writeError(w, r, log.OpCreate, err)
		return
	}

	e, err := s.expenses.Add(r.Context(), in)
	if err != nil {
		s.writeError(w, r, log.OpCreate, err)
		return
	}

	NewJSONResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/expenses/"+e.ID).
		JSON(e).
		SuccessNotification(services.MsgExpenseAdded).
		Write(w)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	e, err := s.expenses.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().JSON(e).Write(w)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, log.OpUpdate, err)
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		s.writeError(w, r, log.OpUpdate, err)
		return
	}

	e, err := s.expenses.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		s.writeError(w, r, log.OpUpdate, err)
		return
	}

	NewJSONResponse().
		JSON(e).
		SuccessNotification(services.MsgExpenseUpdated).
		Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, log.OpDelete, err)
		return
	}

	NewJSONResponse().
		Status(http.StatusNoContent).
		SuccessNotification(services.MsgExpenseDeleted).
		Write(w)
}
