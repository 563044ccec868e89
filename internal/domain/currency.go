package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyDefinition describes one configured currency. Rate is expressed
// as units of this currency per one unit of the base currency; the base
// currency itself carries rate 1.
type CurrencyDefinition struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Symbol string          `json:"symbol"`
	Rate   decimal.Decimal `json:"rate"`
}

// DefaultCurrencies returns the built-in currency table. The first entry
// is the base currency.
func DefaultCurrencies() []CurrencyDefinition {
	return []CurrencyDefinition{
		{Code: "UGX", Name: "Ugandan Shilling", Symbol: "USh", Rate: decimal.NewFromInt(1)},
		{Code: "USD", Name: "US Dollar", Symbol: "$", Rate: decimal.NewFromFloat(0.00027)},
		{Code: "EUR", Name: "Euro", Symbol: "€", Rate: decimal.NewFromFloat(0.00025)},
		{Code: "GBP", Name: "British Pound", Symbol: "£", Rate: decimal.NewFromFloat(0.00021)},
		{Code: "KES", Name: "Kenyan Shilling", Symbol: "KSh", Rate: decimal.NewFromFloat(0.35)},
		{Code: "TZS", Name: "Tanzanian Shilling", Symbol: "TSh", Rate: decimal.NewFromFloat(0.63)},
		{Code: "RWF", Name: "Rwandan Franc", Symbol: "RF", Rate: decimal.NewFromFloat(0.98)},
	}
}

// CurrencyByCode finds a currency definition, nil if the code is unknown.
func CurrencyByCode(defs []CurrencyDefinition, code string) *CurrencyDefinition {
	for i := range defs {
		if defs[i].Code == code {
			return &defs[i]
		}
	}
	return nil
}

// BaseCurrency returns the pivot currency: the first definition with
// rate 1, falling back to the first entry.
func BaseCurrency(defs []CurrencyDefinition) CurrencyDefinition {
	one := decimal.NewFromInt(1)
	for _, d := range defs {
		if d.Rate.Equal(one) {
			return d
		}
	}
	return defs[0]
}

// ValidateRates enforces the rate-direction invariant: every rate must be
// positive and the base currency's rate must be exactly 1. A misconfigured
// rate would otherwise silently corrupt every conversion.
func ValidateRates(defs []CurrencyDefinition) error {
	if len(defs) == 0 {
		return fmt.Errorf("%w: empty currency table", ErrInvalidRate)
	}
	for _, d := range defs {
		if d.Rate.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: %s", ErrInvalidRate, d.Code)
		}
	}
	if base := BaseCurrency(defs); !base.Rate.Equal(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: %s has rate %s", ErrInvalidBaseRate, base.Code, base.Rate)
	}
	return nil
}

// RateUpdate records one refreshed exchange rate.
type RateUpdate struct {
	Rate      decimal.Decimal `json:"rate"`
	UpdatedAt time.Time       `json:"updated_at"`
}
