package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/finplan/internal/adapter/http/dto"
	"github.com/iho/finplan/internal/domain"
	"github.com/iho/finplan/internal/infrastructure/metrics"
	"github.com/iho/finplan/internal/ledger"
)

// GoalService defines the behavior needed by GoalHandler.
type GoalService interface {
	AddGoal(ctx context.Context, in ledger.GoalInput) (domain.Goal, error)
	UpdateGoal(ctx context.Context, id string, in ledger.GoalInput)
	DeleteGoal(ctx context.Context, id string)
	Goals() []domain.Goal
	AddMoneyToGoal(ctx context.Context, id string, amount decimal.Decimal) decimal.Decimal
	AutoAllocate(ctx context.Context, surplus decimal.Decimal) decimal.Decimal
	SetGoalPriority(ctx context.Context, goalIDs []string)
	UpdateAutoAllocation(ctx context.Context, settings domain.AutoAllocationSettings) error
	AutoAllocation() domain.AutoAllocationSettings
	Achievements() []domain.Achievement
}

// GoalHandler handles goal-related HTTP requests.
type GoalHandler struct {
	svc GoalService
	m   *metrics.Metrics
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(svc GoalService, m *metrics.Metrics) *GoalHandler {
	return &GoalHandler{svc: svc, m: m}
}

// Create creates a savings goal.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.GoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	g, err := h.svc.AddGoal(r.Context(), req.ToInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add goal", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

// Update applies changes to an existing goal.
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req dto.GoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	h.svc.UpdateGoal(r.Context(), id, req.ToInput())
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a goal.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.svc.DeleteGoal(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// List returns all goals.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewListResponse(h.svc.Goals()))
}

// AddMoney contributes to a goal, clamped at its target.
func (h *GoalHandler) AddMoney(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req dto.AddMoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	applied := h.svc.AddMoneyToGoal(r.Context(), id, req.Amount)
	writeJSON(w, http.StatusOK, dto.AppliedResponse{Applied: applied})
}

// Allocate distributes a share of surplus income across incomplete goals.
func (h *GoalHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	var req dto.AllocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	allocated := h.svc.AutoAllocate(r.Context(), req.Surplus)
	if h.m != nil && allocated.IsPositive() {
		h.m.GoalAllocations.Inc()
	}
	writeJSON(w, http.StatusOK, dto.AppliedResponse{Applied: allocated})
}

// SetPriority replaces the goal funding order.
func (h *GoalHandler) SetPriority(w http.ResponseWriter, r *http.Request) {
	var req dto.PriorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	h.svc.SetGoalPriority(r.Context(), req.GoalIDs)
	w.WriteHeader(http.StatusNoContent)
}

// GetAutoAllocation returns the allocation settings.
func (h *GoalHandler) GetAutoAllocation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.AutoAllocation())
}

// UpdateAutoAllocation replaces the allocation settings.
func (h *GoalHandler) UpdateAutoAllocation(w http.ResponseWriter, r *http.Request) {
	var req dto.AutoAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.svc.UpdateAutoAllocation(r.Context(), req.ToSettings()); err != nil {
		writeError(w, mapDomainError(err), "failed to update allocation settings", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Achievements returns the earned achievement list.
func (h *GoalHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewListResponse(h.svc.Achievements()))
}
