package ledger

import (
	"iter"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finplan/internal/domain"
)

// DefaultLookbackMonths is the trailing window of the historical average.
const DefaultLookbackMonths = 6

// Scenario scales a projection without touching ledger state. A nil
// scenario, or any zero multiplier, means "unchanged".
type Scenario struct {
	// HistoricalIncome and HistoricalExpenses scale the historical
	// average contributions.
	HistoricalIncome   decimal.Decimal `json:"historical_income,omitempty"`
	HistoricalExpenses decimal.Decimal `json:"historical_expenses,omitempty"`
	// Obligations scales individual obligations by id.
	Obligations map[string]decimal.Decimal `json:"obligations,omitempty"`
}

func (sc *Scenario) historicalIncome() decimal.Decimal {
	if sc == nil || sc.HistoricalIncome.IsZero() {
		return decimal.NewFromInt(1)
	}
	return sc.HistoricalIncome
}

func (sc *Scenario) historicalExpenses() decimal.Decimal {
	if sc == nil || sc.HistoricalExpenses.IsZero() {
		return decimal.NewFromInt(1)
	}
	return sc.HistoricalExpenses
}

func (sc *Scenario) obligation(id string) decimal.Decimal {
	if sc == nil {
		return decimal.NewFromInt(1)
	}
	if m, ok := sc.Obligations[id]; ok && !m.IsZero() {
		return m
	}
	return decimal.NewFromInt(1)
}

// MonthlyFlow is an income/expense pair for one month.
type MonthlyFlow struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// historicalAverage scans the lookback calendar months strictly before
// month and returns mean income and expenses per occupied month.
// Transactions tagged with an obligation id are excluded — the scheduler
// already projects those — and months with no transactions at all are
// excluded from the denominator rather than counted as zero.
func (st *State) historicalAverage(month time.Time, lookback int, sc *Scenario) MonthlyFlow {
	income := decimal.Zero
	expenses := decimal.Zero
	occupied := 0

	for i := 1; i <= lookback; i++ {
		target := domain.MonthStart(domain.AddMonthsClamped(domain.MonthStart(month), -i))

		monthIncome := decimal.Zero
		monthExpenses := decimal.Zero
		seen := false
		for _, tx := range st.Transactions {
			if tx.ObligationID != "" || !domain.SameMonth(tx.Date, target) {
				continue
			}
			seen = true
			switch tx.Type {
			case domain.TypeIncome:
				monthIncome = monthIncome.Add(tx.Amount)
			case domain.TypeExpense:
				monthExpenses = monthExpenses.Add(tx.Amount)
			}
		}
		if seen {
			income = income.Add(monthIncome)
			expenses = expenses.Add(monthExpenses)
			occupied++
		}
	}

	if occupied == 0 {
		return MonthlyFlow{Income: decimal.Zero, Expenses: decimal.Zero}
	}
	months := decimal.NewFromInt(int64(occupied))
	return MonthlyFlow{
		Income:   income.Div(months).Mul(sc.historicalIncome()),
		Expenses: expenses.Div(months).Mul(sc.historicalExpenses()),
	}
}

// HistoricalAverage exposes the estimator for a given month.
func (s *Service) HistoricalAverage(month time.Time, lookback int, sc *Scenario) MonthlyFlow {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lookback <= 0 {
		lookback = DefaultLookbackMonths
	}
	return s.state.historicalAverage(month, lookback, sc)
}

// monthlyRecurring sums the active obligations contributing to a month,
// each scaled by its scenario multiplier.
func (st *State) monthlyRecurring(month time.Time, sc *Scenario) MonthlyFlow {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, ob := range st.Obligations {
		if !ob.IsActive || !ShouldIncludeInMonth(ob, month) {
			continue
		}
		amount := ob.Amount.Mul(sc.obligation(ob.ID))
		if ob.Type == domain.TypeIncome {
			income = income.Add(amount)
		} else {
			expenses = expenses.Add(amount)
		}
	}
	return MonthlyFlow{Income: income, Expenses: expenses}
}

// MonthProjection is one month of the cash-flow forecast.
type MonthProjection struct {
	Month              time.Time       `json:"month"`
	MonthName          string          `json:"month_name"`
	StartingBalance    decimal.Decimal `json:"starting_balance"`
	RecurringIncome    decimal.Decimal `json:"recurring_income"`
	RecurringExpenses  decimal.Decimal `json:"recurring_expenses"`
	HistoricalIncome   decimal.Decimal `json:"historical_income"`
	HistoricalExpenses decimal.Decimal `json:"historical_expenses"`
	TotalIncome        decimal.Decimal `json:"total_income"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	NetCashFlow        decimal.Decimal `json:"net_cash_flow"`
	EndingBalance      decimal.Decimal `json:"ending_balance"`
}

// projectCashFlow yields months of forecast in order, chaining each
// month's ending balance into the next month's start. The sequence is
// lazy and restartable: every iteration recomputes from the state it
// was built over.
func (st *State) projectCashFlow(today time.Time, months int, sc *Scenario) iter.Seq[MonthProjection] {
	return func(yield func(MonthProjection) bool) {
		balance := st.netWorth(today)
		for i := 0; i < months; i++ {
			month := domain.MonthStart(domain.AddMonthsClamped(domain.MonthStart(today), i))

			recurring := st.monthlyRecurring(month, sc)
			historical := st.historicalAverage(month, DefaultLookbackMonths, sc)

			totalIncome := recurring.Income.Add(historical.Income)
			totalExpenses := recurring.Expenses.Add(historical.Expenses)
			net := totalIncome.Sub(totalExpenses)

			p := MonthProjection{
				Month:              month,
				MonthName:          month.Format("January 2006"),
				StartingBalance:    balance,
				RecurringIncome:    recurring.Income,
				RecurringExpenses:  recurring.Expenses,
				HistoricalIncome:   historical.Income,
				HistoricalExpenses: historical.Expenses,
				TotalIncome:        totalIncome,
				TotalExpenses:      totalExpenses,
				NetCashFlow:        net,
				EndingBalance:      balance.Add(net),
			}
			if !yield(p) {
				return
			}
			balance = p.EndingBalance
		}
	}
}

// ProjectCashFlow forecasts the given number of future months. The
// projection is recomputed fresh on every call; no state is carried
// between calls.
func (s *Service) ProjectCashFlow(months int, sc *Scenario) []MonthProjection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Collect(s.state.projectCashFlow(s.today(), months, sc))
}
