package ledger

import (
	"time"

	"github.com/iho/finplan/internal/domain"
)

// State is the whole-ledger aggregate: every entity the engine derives
// from, in one snapshot-shaped struct. All derived computations are pure
// functions over a State; nothing here is cached.
type State struct {
	Transactions         []domain.Transaction          `json:"transactions"`
	Budgets              []domain.Budget               `json:"budgets"`
	Goals                []domain.Goal                 `json:"goals"`
	Obligations          []domain.RecurringObligation  `json:"obligations"`
	Categories           []domain.Category             `json:"categories"`
	Achievements         []domain.Achievement          `json:"achievements"`
	AutoAllocation       domain.AutoAllocationSettings `json:"auto_allocation"`
	NotificationSettings domain.NotificationSettings   `json:"notification_settings"`
	Notifications        []domain.Notification         `json:"notifications"`
	Currencies           []domain.CurrencyDefinition   `json:"currencies"`
	ExchangeRates        map[string]domain.RateUpdate  `json:"exchange_rates"`
	LastRateUpdate       *time.Time                    `json:"last_rate_update,omitempty"`
	Settings             domain.UserSettings           `json:"settings"`
}

// NewState returns a fresh ledger with catalog defaults.
func NewState() *State {
	return &State{
		Transactions:         []domain.Transaction{},
		Budgets:              []domain.Budget{},
		Goals:                []domain.Goal{},
		Obligations:          []domain.RecurringObligation{},
		Categories:           domain.DefaultCategories(),
		Achievements:         []domain.Achievement{},
		AutoAllocation:       domain.DefaultAutoAllocationSettings(),
		NotificationSettings: domain.DefaultNotificationSettings(),
		Notifications:        []domain.Notification{},
		Currencies:           domain.DefaultCurrencies(),
		ExchangeRates:        map[string]domain.RateUpdate{},
		Settings:             domain.DefaultUserSettings(),
	}
}

// Normalize fills in defaults for every field a decoded snapshot left
// empty. Each field defaults independently so a partially damaged blob
// degrades to "missing pieces", not a failed load. It returns an error
// only when the currency table violates the rate invariant, in which
// case the table has already been reset to defaults.
func (s *State) Normalize() error {
	if s.Transactions == nil {
		s.Transactions = []domain.Transaction{}
	}
	if s.Budgets == nil {
		s.Budgets = []domain.Budget{}
	}
	if s.Goals == nil {
		s.Goals = []domain.Goal{}
	}
	if s.Obligations == nil {
		s.Obligations = []domain.RecurringObligation{}
	}
	if len(s.Categories) == 0 {
		s.Categories = domain.DefaultCategories()
	}
	if s.Achievements == nil {
		s.Achievements = []domain.Achievement{}
	}
	if s.AutoAllocation.PriorityOrder == nil {
		s.AutoAllocation.PriorityOrder = []string{}
	}
	if s.AutoAllocation.Percentage.IsZero() && !s.AutoAllocation.Enabled {
		s.AutoAllocation.Percentage = domain.DefaultAutoAllocationSettings().Percentage
	}
	if s.NotificationSettings.ReminderDays == 0 && s.NotificationSettings.BudgetThreshold.IsZero() {
		s.NotificationSettings = domain.DefaultNotificationSettings()
	}
	if s.Notifications == nil {
		s.Notifications = []domain.Notification{}
	}
	if s.ExchangeRates == nil {
		s.ExchangeRates = map[string]domain.RateUpdate{}
	}
	if s.Settings.Currency == "" {
		s.Settings = domain.DefaultUserSettings()
	}
	if len(s.Currencies) == 0 {
		s.Currencies = domain.DefaultCurrencies()
	}
	if err := domain.ValidateRates(s.Currencies); err != nil {
		s.Currencies = domain.DefaultCurrencies()
		return err
	}
	return nil
}

func (s *State) transaction(id string) *domain.Transaction {
	for i := range s.Transactions {
		if s.Transactions[i].ID == id {
			return &s.Transactions[i]
		}
	}
	return nil
}

func (s *State) goal(id string) *domain.Goal {
	for i := range s.Goals {
		if s.Goals[i].ID == id {
			return &s.Goals[i]
		}
	}
	return nil
}

func (s *State) budget(id string) *domain.Budget {
	for i := range s.Budgets {
		if s.Budgets[i].ID == id {
			return &s.Budgets[i]
		}
	}
	return nil
}

func (s *State) obligation(id string) *domain.RecurringObligation {
	for i := range s.Obligations {
		if s.Obligations[i].ID == id {
			return &s.Obligations[i]
		}
	}
	return nil
}

func (s *State) notification(id string) *domain.Notification {
	for i := range s.Notifications {
		if s.Notifications[i].ID == id {
			return &s.Notifications[i]
		}
	}
	return nil
}

func (s *State) achievement(id string) *domain.Achievement {
	for i := range s.Achievements {
		if s.Achievements[i].ID == id {
			return &s.Achievements[i]
		}
	}
	return nil
}
