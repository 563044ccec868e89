package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finplan/internal/domain"
)

// convert moves amount from one currency to another by normalizing
// through the base currency: amount / fromRate * toRate. An unknown code
// falls back to an implicit 1:1 rate rather than failing.
func (st *State) convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	if from == to {
		return amount
	}
	fromRate := st.rate(from)
	toRate := st.rate(to)
	return amount.Div(fromRate).Mul(toRate)
}

func (st *State) rate(code string) decimal.Decimal {
	if def := domain.CurrencyByCode(st.Currencies, code); def != nil {
		return def.Rate
	}
	return decimal.NewFromInt(1)
}

// Convert converts amount between two configured currencies.
func (s *Service) Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.convert(amount, from, to)
}

// FormatAmount renders an amount with the currency's symbol, grouped
// thousands, and 0 fractional digits for the base currency or 2 for any
// other.
func (s *Service) FormatAmount(amount decimal.Decimal, code string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.formatAmount(amount, code)
}

func (st *State) formatAmount(amount decimal.Decimal, code string) string {
	def := domain.CurrencyByCode(st.Currencies, code)
	if def == nil {
		return amount.String()
	}
	digits := int32(2)
	if code == domain.BaseCurrency(st.Currencies).Code {
		digits = 0
	}
	return def.Symbol + " " + groupThousands(amount.StringFixed(digits))
}

// groupThousands inserts comma separators into the integer part of a
// fixed-point decimal string.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if hasFrac {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// Currencies returns a copy of the configured currency table.
func (s *Service) Currencies() []domain.CurrencyDefinition {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CurrencyDefinition, len(s.state.Currencies))
	copy(out, s.state.Currencies)
	return out
}

// SetUserCurrency switches the display currency. Unknown codes are
// ignored.
func (s *Service) SetUserCurrency(ctx context.Context, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if domain.CurrencyByCode(s.state.Currencies, code) == nil {
		return
	}
	s.state.Settings.Currency = code
	s.persist(ctx)
}

// AddCurrency adds a custom currency definition. A code that already
// exists is ignored; the new rate must satisfy the rate invariant.
func (s *Service) AddCurrency(ctx context.Context, def domain.CurrencyDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if domain.CurrencyByCode(s.state.Currencies, def.Code) != nil {
		return nil
	}
	if def.Rate.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidRate
	}
	s.state.Currencies = append(s.state.Currencies, def)
	s.persist(ctx)
	return nil
}

// RemoveCurrency removes a custom currency. The base currency cannot be
// removed; unknown codes are silent no-ops.
func (s *Service) RemoveCurrency(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if code == domain.BaseCurrency(s.state.Currencies).Code {
		return domain.ErrBaseCurrency
	}
	for i := range s.state.Currencies {
		if s.state.Currencies[i].Code == code {
			s.state.Currencies = append(s.state.Currencies[:i], s.state.Currencies[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return nil
}

// RefreshRates overwrites non-base currency rates and records the update
// timestamp. Rates for codes absent from the table are ignored. Without a
// live feed this is the only way rates change.
func (s *Service) RefreshRates(ctx context.Context, rates map[string]decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := domain.BaseCurrency(s.state.Currencies).Code
	now := s.clock.Now()

	// Validate the whole batch before touching any rate, so a rejected
	// refresh leaves the table exactly as it was.
	for code, rate := range rates {
		if code == base || domain.CurrencyByCode(s.state.Currencies, code) == nil {
			continue
		}
		if rate.LessThanOrEqual(decimal.Zero) {
			return domain.ErrInvalidRate
		}
	}

	for code, rate := range rates {
		if code == base {
			continue
		}
		def := domain.CurrencyByCode(s.state.Currencies, code)
		if def == nil {
			continue
		}
		def.Rate = rate
		s.state.ExchangeRates[code] = domain.RateUpdate{Rate: rate, UpdatedAt: now}
	}
	s.state.LastRateUpdate = &now
	s.persist(ctx)
	return nil
}

// LastRateUpdate returns the time of the last rate refresh, nil if never.
func (s *Service) LastRateUpdate() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.LastRateUpdate
}
