package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finplan/internal/domain"
)

// ErrorResponse is the error envelope for all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ListResponse wraps a collection with its size.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewListResponse builds a ListResponse over items.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// AppliedResponse reports how much of a requested amount took effect.
type AppliedResponse struct {
	Applied decimal.Decimal `json:"applied"`
}

// ProcessedResponse lists obligations advanced by a scheduler run.
type ProcessedResponse struct {
	Processed []domain.RecurringObligation `json:"processed"`
	Count     int                          `json:"count"`
}

// UnreadResponse carries the unread notification count.
type UnreadResponse struct {
	Unread int `json:"unread"`
}

// ConversionResponse is the result of a currency conversion.
type ConversionResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Converted decimal.Decimal `json:"converted"`
	Formatted string          `json:"formatted"`
}

// RatesResponse reports the currency table and last refresh time.
type RatesResponse struct {
	Currencies []domain.CurrencyDefinition `json:"currencies"`
	LastUpdate *time.Time                  `json:"last_update,omitempty"`
}
