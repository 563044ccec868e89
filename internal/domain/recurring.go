package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the cycle length of a recurring obligation.
type Frequency string

const (
	Daily     Frequency = "daily"
	Weekly    Frequency = "weekly"
	Biweekly  Frequency = "biweekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

// Next advances from by exactly one cycle. Monthly, quarterly and yearly
// cycles use calendar-aware arithmetic with end-of-month clamping.
// An unknown frequency cycles monthly.
func (f Frequency) Next(from time.Time) time.Time {
	from = DateOnly(from)
	switch f {
	case Daily:
		return from.AddDate(0, 0, 1)
	case Weekly:
		return from.AddDate(0, 0, 7)
	case Biweekly:
		return from.AddDate(0, 0, 14)
	case Monthly:
		return AddMonthsClamped(from, 1)
	case Quarterly:
		return AddMonthsClamped(from, 3)
	case Yearly:
		return AddMonthsClamped(from, 12)
	default:
		return AddMonthsClamped(from, 1)
	}
}

// RecurringObligation is a scheduled income or expense that the ledger
// materializes into transactions as it falls due.
type RecurringObligation struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Type          TransactionType `json:"type"`
	CategoryID    int             `json:"category_id"`
	Frequency     Frequency       `json:"frequency"`
	StartDate     time.Time       `json:"start_date"`
	NextDue       time.Time       `json:"next_due"`
	LastProcessed *time.Time      `json:"last_processed,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Validate checks the obligation invariants.
func (r *RecurringObligation) Validate() error {
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// DueOn reports whether the obligation is due on or before the given day.
func (r *RecurringObligation) DueOn(today time.Time) bool {
	return r.IsActive && !r.NextDue.After(DateOnly(today))
}
