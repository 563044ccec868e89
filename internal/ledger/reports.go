package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finplan/internal/domain"
)

// CategoryBreakdown is one category's share of a report.
type CategoryBreakdown struct {
	CategoryID   int             `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Color        string          `json:"color,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Percentage   decimal.Decimal `json:"percentage"`
}

// MonthlyReport summarizes one calendar month.
type MonthlyReport struct {
	Year               int                 `json:"year"`
	Month              time.Month          `json:"month"`
	MonthName          string              `json:"month_name"`
	Income             decimal.Decimal     `json:"income"`
	Expenses           decimal.Decimal     `json:"expenses"`
	NetIncome          decimal.Decimal     `json:"net_income"`
	TransactionCount   int                 `json:"transaction_count"`
	ExpensesByCategory []CategoryBreakdown `json:"expenses_by_category"`
	AverageTransaction decimal.Decimal     `json:"average_transaction"`
}

// MonthlyReport derives the report for one calendar month.
func (s *Service) MonthlyReport(year int, month time.Month) MonthlyReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.monthlyReport(year, month)
}

func (st *State) monthlyReport(year int, month time.Month) MonthlyReport {
	target := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	income := decimal.Zero
	expenses := decimal.Zero
	count := 0
	perCategory := map[int]decimal.Decimal{}

	for _, tx := range st.Transactions {
		if !domain.SameMonth(tx.Date, target) {
			continue
		}
		count++
		switch tx.Type {
		case domain.TypeIncome:
			income = income.Add(tx.Amount)
		case domain.TypeExpense:
			expenses = expenses.Add(tx.Amount)
			perCategory[tx.CategoryID] = perCategory[tx.CategoryID].Add(tx.Amount)
		}
	}

	var breakdown []CategoryBreakdown
	for _, c := range st.Categories {
		amount, ok := perCategory[c.ID]
		if !ok || !amount.IsPositive() {
			continue
		}
		pct := decimal.Zero
		if expenses.IsPositive() {
			pct = amount.Div(expenses).Mul(intDecimal(100))
		}
		breakdown = append(breakdown, CategoryBreakdown{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			Amount:       amount,
			Percentage:   pct,
		})
	}

	avg := decimal.Zero
	if count > 0 {
		avg = income.Add(expenses).Div(intDecimal(int64(count)))
	}

	return MonthlyReport{
		Year:               year,
		Month:              month,
		MonthName:          target.Format("January 2006"),
		Income:             income,
		Expenses:           expenses,
		NetIncome:          income.Sub(expenses),
		TransactionCount:   count,
		ExpensesByCategory: breakdown,
		AverageTransaction: avg,
	}
}

// YearlyReport aggregates twelve monthly reports.
type YearlyReport struct {
	Year                   int             `json:"year"`
	TotalIncome            decimal.Decimal `json:"total_income"`
	TotalExpenses          decimal.Decimal `json:"total_expenses"`
	NetIncome              decimal.Decimal `json:"net_income"`
	TotalTransactions      int             `json:"total_transactions"`
	MonthlyReports         []MonthlyReport `json:"monthly_reports"`
	AverageMonthlyIncome   decimal.Decimal `json:"average_monthly_income"`
	AverageMonthlyExpenses decimal.Decimal `json:"average_monthly_expenses"`
	AverageMonthlyNet      decimal.Decimal `json:"average_monthly_net"`
}

// YearlyReport derives the report for one calendar year.
func (s *Service) YearlyReport(year int) YearlyReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := YearlyReport{
		Year:          year,
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for m := time.January; m <= time.December; m++ {
		monthly := s.state.monthlyReport(year, m)
		report.MonthlyReports = append(report.MonthlyReports, monthly)
		report.TotalIncome = report.TotalIncome.Add(monthly.Income)
		report.TotalExpenses = report.TotalExpenses.Add(monthly.Expenses)
		report.TotalTransactions += monthly.TransactionCount
	}
	twelve := intDecimal(12)
	report.NetIncome = report.TotalIncome.Sub(report.TotalExpenses)
	report.AverageMonthlyIncome = report.TotalIncome.Div(twelve)
	report.AverageMonthlyExpenses = report.TotalExpenses.Div(twelve)
	report.AverageMonthlyNet = report.NetIncome.Div(twelve)
	return report
}

// NetWorthPoint is one month of the net-worth history.
type NetWorthPoint struct {
	Month     time.Time       `json:"month"`
	MonthName string          `json:"month_name"`
	Income    decimal.Decimal `json:"income"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetIncome decimal.Decimal `json:"net_income"`
	NetWorth  decimal.Decimal `json:"net_worth"`
}

// NetWorthHistory derives the trailing twelve months of income,
// expenses, and cumulative net worth.
func (s *Service) NetWorthHistory() []NetWorthPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.netWorthHistory(s.today())
}

func (st *State) netWorthHistory(today time.Time) []NetWorthPoint {
	var history []NetWorthPoint
	start := domain.AddMonthsClamped(domain.MonthStart(today), -11)

	for i := 0; i < 12; i++ {
		month := domain.MonthStart(domain.AddMonthsClamped(start, i))
		monthEnd := domain.MonthEnd(month)

		income := decimal.Zero
		expenses := decimal.Zero
		cumulative := st.Settings.StartingBalance

		for _, tx := range st.Transactions {
			if domain.SameMonth(tx.Date, month) {
				if tx.Type == domain.TypeIncome {
					income = income.Add(tx.Amount)
				} else {
					expenses = expenses.Add(tx.Amount)
				}
			}
			if !tx.Date.After(monthEnd) {
				cumulative = cumulative.Add(tx.Signed())
			}
		}

		history = append(history, NetWorthPoint{
			Month:     month,
			MonthName: month.Format("Jan 06"),
			Income:    income,
			Expenses:  expenses,
			NetIncome: income.Sub(expenses),
			NetWorth:  cumulative,
		})
	}
	return history
}

// Trend is one metric's current value with month-over-month movement.
type Trend struct {
	Current         decimal.Decimal `json:"current"`
	Previous        decimal.Decimal `json:"previous"`
	TrendPercent    decimal.Decimal `json:"trend_percent"`
	ThreeMonthTrend decimal.Decimal `json:"three_month_trend,omitempty"`
}

// TrendAnalysis summarizes income, expense, and net-worth movement over
// the trailing history.
type TrendAnalysis struct {
	Income   Trend `json:"income"`
	Expenses Trend `json:"expenses"`
	NetWorth Trend `json:"net_worth"`
}

// TrendAnalysis derives trend percentages from the net-worth history.
func (s *Service) TrendAnalysis() TrendAnalysis {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.state.netWorthHistory(s.today())
	current := history[len(history)-1]
	previous := history[len(history)-2]
	threeAgo := history[len(history)-4]

	return TrendAnalysis{
		Income: Trend{
			Current:         current.Income,
			Previous:        previous.Income,
			TrendPercent:    percentChange(previous.Income, current.Income),
			ThreeMonthTrend: percentChange(threeAgo.Income, current.Income),
		},
		Expenses: Trend{
			Current:         current.Expenses,
			Previous:        previous.Expenses,
			TrendPercent:    percentChange(previous.Expenses, current.Expenses),
			ThreeMonthTrend: percentChange(threeAgo.Expenses, current.Expenses),
		},
		NetWorth: Trend{
			Current:      current.NetWorth,
			Previous:     previous.NetWorth,
			TrendPercent: netWorthChange(previous.NetWorth, current.NetWorth),
		},
	}
}

// percentChange returns the percentage change from base to value, zero
// when the base is zero.
func percentChange(base, value decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return value.Sub(base).Div(base).Mul(intDecimal(100))
}

// netWorthChange divides by the absolute previous value so the sign of
// the trend is meaningful even when net worth crosses zero.
func netWorthChange(previous, current decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous.Abs()).Mul(intDecimal(100))
}

// CategoryAnalysisEntry is one category's trailing-window expense profile.
type CategoryAnalysisEntry struct {
	CategoryID         int             `json:"category_id"`
	CategoryName       string          `json:"category_name"`
	Color              string          `json:"color"`
	Amount             decimal.Decimal `json:"amount"`
	TransactionCount   int             `json:"transaction_count"`
	AverageTransaction decimal.Decimal `json:"average_transaction"`
	Percentage         decimal.Decimal `json:"percentage"`
}

// CategoryAnalysis profiles expense categories over a trailing window of
// months, largest spend first.
func (s *Service) CategoryAnalysis(months int) []CategoryAnalysisEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if months <= 0 {
		months = DefaultLookbackMonths
	}
	cutoff := domain.AddMonthsClamped(s.today(), -months)

	type bucket struct {
		amount decimal.Decimal
		count  int
	}
	buckets := map[int]*bucket{}
	total := decimal.Zero

	for _, tx := range s.state.Transactions {
		if tx.Type != domain.TypeExpense || tx.Date.Before(cutoff) {
			continue
		}
		b, ok := buckets[tx.CategoryID]
		if !ok {
			b = &bucket{amount: decimal.Zero}
			buckets[tx.CategoryID] = b
		}
		b.amount = b.amount.Add(tx.Amount)
		b.count++
		total = total.Add(tx.Amount)
	}

	var out []CategoryAnalysisEntry
	for _, c := range s.state.Categories {
		b, ok := buckets[c.ID]
		if !ok || !b.amount.IsPositive() {
			continue
		}
		pct := decimal.Zero
		if total.IsPositive() {
			pct = b.amount.Div(total).Mul(intDecimal(100))
		}
		out = append(out, CategoryAnalysisEntry{
			CategoryID:         c.ID,
			CategoryName:       c.Name,
			Color:              c.Color,
			Amount:             b.amount,
			TransactionCount:   b.count,
			AverageTransaction: b.amount.Div(intDecimal(int64(b.count))),
			Percentage:         pct,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount.GreaterThan(out[j].Amount) })
	return out
}

// ExpensesByCategory sums the current month's expenses per category.
func (s *Service) ExpensesByCategory() []CategoryBreakdown {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	perCategory := map[int]decimal.Decimal{}
	total := decimal.Zero
	for _, tx := range s.state.Transactions {
		if tx.Type == domain.TypeExpense && domain.SameMonth(tx.Date, today) {
			perCategory[tx.CategoryID] = perCategory[tx.CategoryID].Add(tx.Amount)
			total = total.Add(tx.Amount)
		}
	}

	var out []CategoryBreakdown
	for _, c := range s.state.Categories {
		amount, ok := perCategory[c.ID]
		if !ok {
			continue
		}
		pct := decimal.Zero
		if total.IsPositive() {
			pct = amount.Div(total).Mul(intDecimal(100))
		}
		out = append(out, CategoryBreakdown{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			Color:        c.Color,
			Amount:       amount,
			Percentage:   pct,
		})
	}
	return out
}
