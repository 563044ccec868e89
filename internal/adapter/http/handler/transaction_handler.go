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

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	AddTransaction(ctx context.Context, in ledger.TransactionInput) (domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, in ledger.TransactionInput)
	DeleteTransaction(ctx context.Context, id string)
	Transactions() []domain.Transaction
	Totals() ledger.Totals
	Categories() []domain.Category
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	svc TransactionService
	m   *metrics.Metrics
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc TransactionService, m *metrics.Metrics) *TransactionHandler {
	return &TransactionHandler{svc: svc, m: m}
}

// Create records a new transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tx, err := h.svc.AddTransaction(r.Context(), req.ToInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add transaction", err.Error())
		return
	}
	if h.m != nil {
		h.m.TransactionsRecorded.WithLabelValues(string(tx.Type)).Inc()
	}

	writeJSON(w, http.StatusCreated, tx)
}

// Update applies changes to an existing transaction.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req dto.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	h.svc.UpdateTransaction(r.Context(), id, req.ToInput())
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a transaction.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.svc.DeleteTransaction(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// List returns all transactions.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewListResponse(h.svc.Transactions()))
}

// Totals returns the converted income/expense/net-worth view.
func (h *TransactionHandler) Totals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Totals())
}

// Categories returns the category catalog.
func (h *TransactionHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewListResponse(h.svc.Categories()))
}
