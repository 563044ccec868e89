package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finplan/internal/adapter/http/dto"
	"github.com/iho/finplan/internal/domain"
	"github.com/iho/finplan/internal/infrastructure/metrics"
)

// NotificationService defines the behavior needed by NotificationHandler.
type NotificationService interface {
	GenerateNotifications(ctx context.Context) []domain.Notification
	Notifications() []domain.Notification
	UnreadNotificationCount() int
	HighPriorityNotifications() []domain.Notification
	MarkNotificationRead(ctx context.Context, id string)
	MarkAllNotificationsRead(ctx context.Context)
	DeleteNotification(ctx context.Context, id string)
	ClearNotifications(ctx context.Context)
	UpdateNotificationSettings(ctx context.Context, settings domain.NotificationSettings) error
	NotificationSettings() domain.NotificationSettings
}

// NotificationHandler handles notification HTTP requests.
type NotificationHandler struct {
	svc NotificationService
	m   *metrics.Metrics
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(svc NotificationService, m *metrics.Metrics) *NotificationHandler {
	return &NotificationHandler{svc: svc, m: m}
}

// Generate runs all notification generators and returns the new batch.
func (h *NotificationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	generated := h.svc.GenerateNotifications(r.Context())
	if h.m != nil {
		for _, n := range generated {
			h.m.NotificationsGenerated.WithLabelValues(string(n.Type)).Inc()
			if n.Type == domain.NotifyAchievement {
				h.m.AchievementsEarned.Inc()
			}
		}
	}
	writeJSON(w, http.StatusOK, dto.NewListResponse(generated))
}

// List returns all stored notifications, newest and most urgent first.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewListResponse(h.svc.Notifications()))
}

// Unread returns the unread count.
func (h *NotificationHandler) Unread(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.UnreadResponse{Unread: h.svc.UnreadNotificationCount()})
}

// HighPriority returns only high priority notifications.
func (h *NotificationHandler) HighPriority(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewListResponse(h.svc.HighPriorityNotifications()))
}

// MarkRead marks one notification as read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.svc.MarkNotificationRead(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead marks every notification as read.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	h.svc.MarkAllNotificationsRead(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes one notification.
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.svc.DeleteNotification(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Clear removes all notifications.
func (h *NotificationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearNotifications(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// GetSettings returns the notification settings.
func (h *NotificationHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.NotificationSettings())
}

// UpdateSettings replaces the notification settings.
func (h *NotificationHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.NotificationSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.svc.UpdateNotificationSettings(r.Context(), req.ToSettings()); err != nil {
		writeError(w, mapDomainError(err), "failed to update notification settings", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
