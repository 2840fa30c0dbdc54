package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/pennybank/pennybank/internal/adapter/http/dto"
	"github.com/pennybank/pennybank/internal/adapter/http/middleware"
	"github.com/pennybank/pennybank/internal/usecase"
)

// ExpenseHandler handles the expense note endpoints.
type ExpenseHandler struct {
	expenseUC *usecase.ExpenseUseCase
	logger    zerolog.Logger
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC *usecase.ExpenseUseCase, logger zerolog.Logger) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC, logger: logger}
}

// Create records an expense for the user.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.expenseUC.CreateExpense(r.Context(), user.ID, req.Name, req.Amount)
	if err != nil {
		respondDomainError(w, r, h.logger, err, "failed to create expense")
		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense))
}

// Delete removes an expense owned by the user.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	if err := h.expenseUC.DeleteExpense(r.Context(), user.ID, id); err != nil {
		respondDomainError(w, r, h.logger, err, "failed to delete expense")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// List returns the user's expenses, newest first.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	expenses, err := h.expenseUC.ListExpenses(r.Context(), user.ID)
	if err != nil {
		respondDomainError(w, r, h.logger, err, "failed to list expenses")
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpensesFromDomain(expenses))
}
