package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finplan/internal/adapter/http/dto"
	"github.com/iho/finplan/internal/domain"
	"github.com/iho/finplan/internal/ledger"
)

// BudgetService defines the behavior needed by BudgetHandler.
type BudgetService interface {
	AddBudget(ctx context.Context, in ledger.BudgetInput) (domain.Budget, error)
	UpdateBudget(ctx context.Context, id string, in ledger.BudgetInput)
	DeleteBudget(ctx context.Context, id string)
	Budgets() []domain.Budget
	ExpensesByCategory() []ledger.CategoryBreakdown
}

// BudgetHandler handles budget-related HTTP requests.
type BudgetHandler struct {
	svc BudgetService
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(svc BudgetService) *BudgetHandler {
	return &BudgetHandler{svc: svc}
}

// Create adds a budget for a category.
func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.BudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	b, err := h.svc.AddBudget(r.Context(), req.ToInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add budget", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// Update applies changes to an existing budget.
func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req dto.BudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	h.svc.UpdateBudget(r.Context(), id, req.ToInput())
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a budget.
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.svc.DeleteBudget(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// List returns all budgets.
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewListResponse(h.svc.Budgets()))
}

// Spending returns the current month's expenses per category.
func (h *BudgetHandler) Spending(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewListResponse(h.svc.ExpensesByCategory()))
}
