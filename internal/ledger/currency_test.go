package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finplan/internal/domain"
)

func TestConvert(t *testing.T) {
	svc, _, _ := newTestService(date(2024, time.June, 1))

	tests := []struct {
		name   string
		amount string
		from   string
		to     string
		want   string
	}{
		{name: "base to usd", amount: "10000", from: "UGX", to: "USD", want: "2.7"},
		{name: "usd to base", amount: "2.7", from: "USD", to: "UGX", want: "10000"},
		{name: "kes to base", amount: "70", from: "KES", to: "UGX", want: "200"},
		{name: "identity", amount: "42", from: "EUR", to: "EUR", want: "42"},
		{name: "unknown source treated as base", amount: "10", from: "XXX", to: "UGX", want: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			want := decimal.RequireFromString(tt.want)
			if got := svc.Convert(amount, tt.from, tt.to); !got.Equal(want) {
				t.Errorf("Convert(%s, %s, %s) = %s, want %s", tt.amount, tt.from, tt.to, got, want)
			}
		})
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	svc, _, _ := newTestService(date(2024, time.June, 1))

	original := decimal.NewFromInt(250000)
	there := svc.Convert(original, "UGX", "EUR")
	back := svc.Convert(there, "EUR", "UGX")
	if !back.Equal(original) {
		t.Errorf("round trip UGX->EUR->UGX: got %s, want %s", back, original)
	}
}

func TestFormatAmount(t *testing.T) {
	svc, _, _ := newTestService(date(2024, time.June, 1))

	tests := []struct {
		name   string
		amount string
		code   string
		want   string
	}{
		{name: "base currency no decimals", amount: "1234567", code: "UGX", want: "USh 1,234,567"},
		{name: "usd two decimals", amount: "1234.5", code: "USD", want: "$ 1,234.50"},
		{name: "negative", amount: "-9500", code: "UGX", want: "USh -9,500"},
		{name: "unknown code bare", amount: "12.5", code: "XXX", want: "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			if got := svc.FormatAmount(amount, tt.code); got != tt.want {
				t.Errorf("FormatAmount(%s, %s) = %q, want %q", tt.amount, tt.code, got, tt.want)
			}
		})
	}
}

func TestSetUserCurrency(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(date(2024, time.June, 1))

	svc.SetUserCurrency(ctx, "USD")
	if got := svc.Settings().Currency; got != "USD" {
		t.Errorf("currency = %q, want USD", got)
	}

	svc.SetUserCurrency(ctx, "XXX")
	if got := svc.Settings().Currency; got != "USD" {
		t.Errorf("unknown code must be ignored, currency = %q", got)
	}
}

func TestAddRemoveCurrency(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(date(2024, time.June, 1))

	err := svc.AddCurrency(ctx, domain.CurrencyDefinition{
		Code: "NGN", Name: "Nigerian Naira", Symbol: "₦", Rate: decimal.NewFromFloat(0.42),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if domain.CurrencyByCode(svc.Currencies(), "NGN") == nil {
		t.Fatal("added currency missing from the table")
	}

	// Existing code is left untouched.
	if err := svc.AddCurrency(ctx, domain.CurrencyDefinition{
		Code: "USD", Name: "Duplicate Dollar", Rate: decimal.NewFromInt(5),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := domain.CurrencyByCode(svc.Currencies(), "USD"); got == nil || !got.Rate.Equal(decimal.NewFromFloat(0.00027)) {
		t.Errorf("duplicate add must not overwrite, got %+v", got)
	}

	// Non-positive rate is rejected.
	if err := svc.AddCurrency(ctx, domain.CurrencyDefinition{Code: "BAD", Rate: decimal.Zero}); err == nil {
		t.Error("expected error for zero rate")
	}

	if err := svc.RemoveCurrency(ctx, "NGN"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if domain.CurrencyByCode(svc.Currencies(), "NGN") != nil {
		t.Error("removed currency still present")
	}

	if err := svc.RemoveCurrency(ctx, "UGX"); err != domain.ErrBaseCurrency {
		t.Errorf("removing the base currency must fail, got %v", err)
	}
}

func TestRefreshRates(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestService(date(2024, time.June, 1))

	if got := svc.LastRateUpdate(); got != nil {
		t.Fatalf("fresh ledger has no rate update, got %v", got)
	}

	clock.Set(date(2024, time.June, 2))
	err := svc.RefreshRates(ctx, map[string]decimal.Decimal{
		"USD": decimal.NewFromFloat(0.00028),
		"UGX": decimal.NewFromInt(7),   // base, ignored
		"XXX": decimal.NewFromFloat(3), // unknown, ignored
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := domain.CurrencyByCode(svc.Currencies(), "USD"); !got.Rate.Equal(decimal.NewFromFloat(0.00028)) {
		t.Errorf("usd rate = %s, want 0.00028", got.Rate)
	}
	if got := domain.BaseCurrency(svc.Currencies()); !got.Rate.Equal(decimal.NewFromInt(1)) {
		t.Errorf("base rate must stay 1, got %s", got.Rate)
	}
	if got := svc.LastRateUpdate(); got == nil || !got.Equal(date(2024, time.June, 2)) {
		t.Errorf("last rate update = %v, want 2024-06-02", got)
	}

	if err := svc.RefreshRates(ctx, map[string]decimal.Decimal{"EUR": decimal.Zero}); err != domain.ErrInvalidRate {
		t.Errorf("non-positive rate must be rejected, got %v", err)
	}
}

func TestRefreshRates_RejectedBatchLeavesRatesUntouched(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(date(2024, time.June, 1))

	before := domain.CurrencyByCode(svc.Currencies(), "USD").Rate

	err := svc.RefreshRates(ctx, map[string]decimal.Decimal{
		"USD": decimal.NewFromFloat(0.0005),
		"EUR": decimal.NewFromInt(-1),
	})
	if err != domain.ErrInvalidRate {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}

	if got := domain.CurrencyByCode(svc.Currencies(), "USD").Rate; !got.Equal(before) {
		t.Errorf("rejected refresh must not change any rate, usd = %s, want %s", got, before)
	}
	if got := svc.LastRateUpdate(); got != nil {
		t.Errorf("rejected refresh must not record an update time, got %v", got)
	}
}
