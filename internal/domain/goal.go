package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings target. The invariant 0 <= CurrentAmount <= TargetAmount
// holds at all times; contributions are clamped, never rejected.
type Goal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    time.Time       `json:"target_date"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Validate checks the goal invariants.
func (g *Goal) Validate() error {
	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// Completed reports whether the goal has reached its target.
func (g *Goal) Completed() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// Remaining returns the amount still needed to reach the target.
func (g *Goal) Remaining() decimal.Decimal {
	if g.Completed() {
		return decimal.Zero
	}
	return g.TargetAmount.Sub(g.CurrentAmount)
}

// Progress returns completion as a percentage of the target.
func (g *Goal) Progress() decimal.Decimal {
	if g.TargetAmount.IsZero() {
		return decimal.Zero
	}
	return g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100))
}

// Contribute adds amount to the goal, clamped at the target, and returns
// the amount actually applied.
func (g *Goal) Contribute(amount decimal.Decimal) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	applied := decimal.Min(amount, g.Remaining())
	g.CurrentAmount = g.CurrentAmount.Add(applied)
	return applied
}
