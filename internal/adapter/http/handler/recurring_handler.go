package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finplan/internal/adapter/http/dto"
	"github.com/iho/finplan/internal/domain"
	"github.com/iho/finplan/internal/infrastructure/metrics"
	"github.com/iho/finplan/internal/ledger"
)

// RecurringService defines the behavior needed by RecurringHandler.
type RecurringService interface {
	AddObligation(ctx context.Context, in ledger.ObligationInput) (domain.RecurringObligation, error)
	UpdateObligation(ctx context.Context, id string, in ledger.ObligationInput)
	DeleteObligation(ctx context.Context, id string)
	Obligations() []domain.RecurringObligation
	ProcessDueObligations(ctx context.Context) []domain.RecurringObligation
	UpcomingBills() []domain.RecurringObligation
	OverdueBills() []domain.RecurringObligation
}

// RecurringHandler handles recurring obligation HTTP requests.
type RecurringHandler struct {
	svc RecurringService
	m   *metrics.Metrics
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(svc RecurringService, m *metrics.Metrics) *RecurringHandler {
	return &RecurringHandler{svc: svc, m: m}
}

// Create registers a recurring obligation.
func (h *RecurringHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ObligationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ob, err := h.svc.AddObligation(r.Context(), req.ToInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add obligation", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, ob)
}

// Update applies changes to an existing obligation.
func (h *RecurringHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req dto.ObligationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	h.svc.UpdateObligation(r.Context(), id, req.ToInput())
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes an obligation.
func (h *RecurringHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.svc.DeleteObligation(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// List returns all obligations.
func (h *RecurringHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewListResponse(h.svc.Obligations()))
}

// Process materializes one due cycle per obligation.
func (h *RecurringHandler) Process(w http.ResponseWriter, r *http.Request) {
	processed := h.svc.ProcessDueObligations(r.Context())
	if h.m != nil {
		h.m.ObligationsProcessed.Add(float64(len(processed)))
	}
	writeJSON(w, http.StatusOK, dto.ProcessedResponse{Processed: processed, Count: len(processed)})
}

// Upcoming returns bills due within the reminder window.
func (h *RecurringHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewListResponse(h.svc.UpcomingBills()))
}

// Overdue returns bills past their due date.
func (h *RecurringHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewListResponse(h.svc.OverdueBills()))
}
