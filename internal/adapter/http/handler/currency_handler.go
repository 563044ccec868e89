package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/finplan/internal/adapter/http/dto"
	"github.com/iho/finplan/internal/domain"
)

// CurrencyService defines the behavior needed by CurrencyHandler.
type CurrencyService interface {
	Currencies() []domain.CurrencyDefinition
	Convert(amount decimal.Decimal, from, to string) decimal.Decimal
	FormatAmount(amount decimal.Decimal, code string) string
	SetUserCurrency(ctx context.Context, code string)
	AddCurrency(ctx context.Context, def domain.CurrencyDefinition) error
	RemoveCurrency(ctx context.Context, code string) error
	RefreshRates(ctx context.Context, rates map[string]decimal.Decimal) error
	LastRateUpdate() *time.Time
}

// CurrencyHandler handles currency HTTP requests.
type CurrencyHandler struct {
	svc CurrencyService
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(svc CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{svc: svc}
}

// List returns the currency table with the last refresh time.
func (h *CurrencyHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.RatesResponse{
		Currencies: h.svc.Currencies(),
		LastUpdate: h.svc.LastRateUpdate(),
	})
}

// Add registers a currency definition.
func (h *CurrencyHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.CurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.svc.AddCurrency(r.Context(), req.ToDefinition()); err != nil {
		writeError(w, mapDomainError(err), "failed to add currency", err.Error())
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// Remove deletes a currency. The base currency cannot be removed.
func (h *CurrencyHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveCurrency(r.Context(), chi.URLParam(r, "code")); err != nil {
		writeError(w, mapDomainError(err), "failed to remove currency", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Refresh replaces exchange rates in bulk.
func (h *CurrencyHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.svc.RefreshRates(r.Context(), req.Rates); err != nil {
		writeError(w, mapDomainError(err), "failed to refresh rates", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Convert converts an amount between two currencies.
func (h *CurrencyHandler) Convert(w http.ResponseWriter, r *http.Request) {
	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "missing currency", "from and to query parameters are required")
		return
	}

	converted := h.svc.Convert(amount, from, to)
	writeJSON(w, http.StatusOK, dto.ConversionResponse{
		Amount:    amount,
		From:      from,
		To:        to,
		Converted: converted,
		Formatted: h.svc.FormatAmount(converted, to),
	})
}

// SetUserCurrency switches the display currency.
func (h *CurrencyHandler) SetUserCurrency(w http.ResponseWriter, r *http.Request) {
	h.svc.SetUserCurrency(r.Context(), chi.URLParam(r, "code"))
	w.WriteHeader(http.StatusNoContent)
}
