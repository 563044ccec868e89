package domain

import "time"

// NotificationType identifies the generator that produced a notification.
type NotificationType string

const (
	NotifyBillReminder NotificationType = "bill_reminder"
	NotifyBudgetAlert  NotificationType = "budget_alert"
	NotifySavings      NotificationType = "savings_encouragement"
	NotifySavingsDue   NotificationType = "savings_urgent"
	NotifyAchievement  NotificationType = "achievement"
)

// Notification priorities, highest first.
const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

// NotificationAction is an optional navigation hint for consumers.
type NotificationAction struct {
	Type  string `json:"type"`
	Route string `json:"route"`
	Label string `json:"label"`
}

// Notification is one alert derived from ledger state. The ID is
// deterministic — built from the source event and its date — so
// regeneration is idempotent: an id already present in the list is
// never re-inserted.
type Notification struct {
	ID        string              `json:"id"`
	Type      NotificationType    `json:"type"`
	Priority  int                 `json:"priority"`
	Title     string              `json:"title"`
	Message   string              `json:"message"`
	Icon      string              `json:"icon"`
	Color     string              `json:"color"`
	Action    *NotificationAction `json:"action,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	Read      bool                `json:"read"`
	ReadAt    *time.Time          `json:"read_at,omitempty"`
	Data      map[string]any      `json:"data,omitempty"`
}
