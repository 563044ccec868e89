package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finplan/internal/domain"
	"github.com/iho/finplan/internal/ledger"
)

// TransactionRequest is the payload for creating or updating a transaction.
type TransactionRequest struct {
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency_code,omitempty"`
	CategoryID   int             `json:"category_id"`
	Date         string          `json:"date,omitempty"`
	Type         string          `json:"type"`
	Notes        string          `json:"notes,omitempty"`
}

// ToInput converts to a service input.
func (r *TransactionRequest) ToInput() ledger.TransactionInput {
	return ledger.TransactionInput{
		Description:  r.Description,
		Amount:       r.Amount,
		CurrencyCode: r.CurrencyCode,
		CategoryID:   r.CategoryID,
		Date:         parseDate(r.Date),
		Type:         domain.TransactionType(r.Type),
		Notes:        r.Notes,
	}
}

// BudgetRequest is the payload for creating or updating a budget.
type BudgetRequest struct {
	CategoryID int             `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Period     string          `json:"period"`
}

// ToInput converts to a service input.
func (r *BudgetRequest) ToInput() ledger.BudgetInput {
	return ledger.BudgetInput{
		CategoryID: r.CategoryID,
		Amount:     r.Amount,
		Period:     domain.BudgetPeriod(r.Period),
	}
}

// GoalRequest is the payload for creating or updating a goal.
type GoalRequest struct {
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    string          `json:"target_date"`
	Description   string          `json:"description,omitempty"`
}

// ToInput converts to a service input.
func (r *GoalRequest) ToInput() ledger.GoalInput {
	return ledger.GoalInput{
		Name:          r.Name,
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
		TargetDate:    parseDate(r.TargetDate),
		Description:   r.Description,
	}
}

// ObligationRequest is the payload for creating or updating a recurring
// obligation.
type ObligationRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	CategoryID  int             `json:"category_id"`
	Frequency   string          `json:"frequency"`
	StartDate   string          `json:"start_date"`
	IsActive    *bool           `json:"is_active,omitempty"`
}

// ToInput converts to a service input.
func (r *ObligationRequest) ToInput() ledger.ObligationInput {
	return ledger.ObligationInput{
		Description: r.Description,
		Amount:      r.Amount,
		Type:        domain.TransactionType(r.Type),
		CategoryID:  r.CategoryID,
		Frequency:   domain.Frequency(r.Frequency),
		StartDate:   parseDate(r.StartDate),
		IsActive:    r.IsActive,
	}
}

// AddMoneyRequest is the payload for contributing to a goal.
type AddMoneyRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// AllocateRequest is the payload for auto-allocating a surplus.
type AllocateRequest struct {
	Surplus decimal.Decimal `json:"surplus"`
}

// PriorityRequest replaces the goal priority order.
type PriorityRequest struct {
	GoalIDs []string `json:"goal_ids"`
}

// AutoAllocationRequest replaces the auto-allocation settings.
type AutoAllocationRequest struct {
	Enabled       bool            `json:"enabled"`
	Percentage    decimal.Decimal `json:"percentage"`
	PriorityOrder []string        `json:"priority_order"`
}

// ToSettings converts to domain settings.
func (r *AutoAllocationRequest) ToSettings() domain.AutoAllocationSettings {
	return domain.AutoAllocationSettings{
		Enabled:       r.Enabled,
		Percentage:    r.Percentage,
		PriorityOrder: r.PriorityOrder,
	}
}

// CurrencyRequest adds a currency definition.
type CurrencyRequest struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Symbol string          `json:"symbol"`
	Rate   decimal.Decimal `json:"rate"`
}

// ToDefinition converts to a domain definition.
func (r *CurrencyRequest) ToDefinition() domain.CurrencyDefinition {
	return domain.CurrencyDefinition{
		Code:   r.Code,
		Name:   r.Name,
		Symbol: r.Symbol,
		Rate:   r.Rate,
	}
}

// RefreshRatesRequest carries replacement exchange rates keyed by code.
type RefreshRatesRequest struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

// SettingsRequest replaces the user settings.
type SettingsRequest struct {
	Currency        string          `json:"currency"`
	StartingBalance decimal.Decimal `json:"starting_balance"`
}

// ToSettings converts to domain settings.
func (r *SettingsRequest) ToSettings() domain.UserSettings {
	return domain.UserSettings{
		Currency:        r.Currency,
		StartingBalance: r.StartingBalance,
	}
}

// NotificationSettingsRequest replaces the notification settings.
type NotificationSettingsRequest struct {
	BillReminders            bool            `json:"bill_reminders"`
	BudgetAlerts             bool            `json:"budget_alerts"`
	SavingsEncouragement     bool            `json:"savings_encouragement"`
	AchievementNotifications bool            `json:"achievement_notifications"`
	ReminderDays             int             `json:"reminder_days"`
	BudgetThreshold          decimal.Decimal `json:"budget_threshold"`
	SavingsThreshold         decimal.Decimal `json:"savings_threshold"`
}

// ToSettings converts to domain settings.
func (r *NotificationSettingsRequest) ToSettings() domain.NotificationSettings {
	return domain.NotificationSettings{
		BillReminders:            r.BillReminders,
		BudgetAlerts:             r.BudgetAlerts,
		SavingsEncouragement:     r.SavingsEncouragement,
		AchievementNotifications: r.AchievementNotifications,
		ReminderDays:             r.ReminderDays,
		BudgetThreshold:          r.BudgetThreshold,
		SavingsThreshold:         r.SavingsThreshold,
	}
}

// ScenarioRequest scales a forecast without touching stored state.
type ScenarioRequest struct {
	Months             int                        `json:"months"`
	HistoricalIncome   decimal.Decimal            `json:"historical_income,omitempty"`
	HistoricalExpenses decimal.Decimal            `json:"historical_expenses,omitempty"`
	Obligations        map[string]decimal.Decimal `json:"obligations,omitempty"`
}

// ToScenario converts to a forecast scenario.
func (r *ScenarioRequest) ToScenario() *ledger.Scenario {
	return &ledger.Scenario{
		HistoricalIncome:   r.HistoricalIncome,
		HistoricalExpenses: r.HistoricalExpenses,
		Obligations:        r.Obligations,
	}
}

// parseDate parses a YYYY-MM-DD string, zero time on failure.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
