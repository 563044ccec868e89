package domain

import "github.com/shopspring/decimal"

// UserSettings holds ledger-wide preferences.
type UserSettings struct {
	Currency        string          `json:"currency"`
	StartingBalance decimal.Decimal `json:"starting_balance"`
}

// DefaultUserSettings returns settings for a fresh ledger.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		Currency:        "UGX",
		StartingBalance: decimal.Zero,
	}
}

// AutoAllocationSettings controls how surplus income is spread across goals.
type AutoAllocationSettings struct {
	Enabled bool `json:"enabled"`
	// Percentage of a surplus offered to the allocation pool, 0..100.
	Percentage decimal.Decimal `json:"percentage"`
	// PriorityOrder lists goal ids funded first, in order. Goals absent
	// from the list are funded afterwards by ascending target date.
	PriorityOrder []string `json:"priority_order"`
}

// DefaultAutoAllocationSettings returns allocation defaults (disabled, 10%).
func DefaultAutoAllocationSettings() AutoAllocationSettings {
	return AutoAllocationSettings{
		Enabled:       false,
		Percentage:    decimal.NewFromInt(10),
		PriorityOrder: []string{},
	}
}

// NotificationSettings gates and tunes the notification generators.
type NotificationSettings struct {
	BillReminders            bool `json:"bill_reminders"`
	BudgetAlerts             bool `json:"budget_alerts"`
	SavingsEncouragement     bool `json:"savings_encouragement"`
	AchievementNotifications bool `json:"achievement_notifications"`
	// ReminderDays is how many days before a due date bills are flagged.
	ReminderDays int `json:"reminder_days"`
	// BudgetThreshold is the spend percentage that triggers a budget alert.
	BudgetThreshold decimal.Decimal `json:"budget_threshold"`
	// SavingsThreshold is the goal percentage that triggers encouragement.
	SavingsThreshold decimal.Decimal `json:"savings_threshold"`
}

// DefaultNotificationSettings returns the notification defaults.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		BillReminders:            true,
		BudgetAlerts:             true,
		SavingsEncouragement:     true,
		AchievementNotifications: true,
		ReminderDays:             3,
		BudgetThreshold:          decimal.NewFromInt(80),
		SavingsThreshold:         decimal.NewFromInt(50),
	}
}
