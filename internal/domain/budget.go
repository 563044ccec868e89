package domain

import "github.com/shopspring/decimal"

// BudgetPeriod is the nominal period a budget amount covers.
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// Budget caps spending for one category. Spend against the budget is
// always derived live from transactions; it is never stored here.
type Budget struct {
	ID         string          `json:"id"`
	CategoryID int             `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Period     BudgetPeriod    `json:"period"`
}

// Validate checks the budget invariants.
func (b *Budget) Validate() error {
	if b.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}
