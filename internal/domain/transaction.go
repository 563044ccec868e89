package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction as money in or money out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction is a single ledger entry. Once created it changes only
// through an explicit update; deletion is permanent.
type Transaction struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency_code"`
	CategoryID   int             `json:"category_id"`
	Date         time.Time       `json:"date"`
	Type         TransactionType `json:"type"`
	Notes        string          `json:"notes,omitempty"`
	// ObligationID tags transactions materialized by the recurring
	// scheduler so derived computations can exclude them.
	ObligationID string `json:"obligation_id,omitempty"`
}

// Validate checks the transaction invariants.
func (t *Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// Signed returns the amount with expense transactions negated.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
