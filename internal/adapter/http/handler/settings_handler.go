package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/finplan/internal/adapter/http/dto"
	"github.com/iho/finplan/internal/domain"
)

// SettingsService defines the behavior needed by SettingsHandler.
type SettingsService interface {
	Settings() domain.UserSettings
	UpdateSettings(ctx context.Context, settings domain.UserSettings)
	ClearAll(ctx context.Context)
}

// SettingsHandler handles user settings HTTP requests.
type SettingsHandler struct {
	svc SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(svc SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// Get returns the user settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Settings())
}

// Update replaces the user settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	h.svc.UpdateSettings(r.Context(), req.ToSettings())
	writeJSON(w, http.StatusOK, h.svc.Settings())
}

// ClearAll wipes the ledger back to its defaults.
func (h *SettingsHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
