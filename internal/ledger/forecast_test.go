package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/finplan/internal/domain"
	"github.com/iho/finplan/internal/ledger"
)

// seedHistory adds three months of plain income/expense history before
// July 2024 plus one active monthly rent obligation.
func seedHistory(t *testing.T, svc *ledger.Service) domain.RecurringObligation {
	t.Helper()
	ctx := context.Background()

	for _, month := range []time.Month{time.April, time.May, time.June} {
		_, err := svc.AddTransaction(ctx, ledger.TransactionInput{
			Description: "salary",
			Amount:      decimal.NewFromInt(3000),
			CategoryID:  10,
			Type:        domain.TypeIncome,
			Date:        date(2024, month, 1),
		})
		require.NoError(t, err)
		_, err = svc.AddTransaction(ctx, ledger.TransactionInput{
			Description: "groceries",
			Amount:      decimal.NewFromInt(1000),
			CategoryID:  1,
			Type:        domain.TypeExpense,
			Date:        date(2024, month, 10),
		})
		require.NoError(t, err)
	}

	ob, err := svc.AddObligation(ctx, ledger.ObligationInput{
		Description: "rent",
		Amount:      decimal.NewFromInt(500),
		Type:        domain.TypeExpense,
		CategoryID:  6,
		Frequency:   domain.Monthly,
		StartDate:   date(2024, time.January, 1),
	})
	require.NoError(t, err)
	return ob
}

func TestHistoricalAverage(t *testing.T) {
	svc, _, _ := newTestService(date(2024, time.July, 1))
	seedHistory(t, svc)

	flow := svc.HistoricalAverage(date(2024, time.July, 1), 0, nil)
	require.True(t, flow.Income.Equal(decimal.NewFromInt(3000)), "income avg = %s", flow.Income)
	require.True(t, flow.Expenses.Equal(decimal.NewFromInt(1000)), "expense avg = %s", flow.Expenses)
}

func TestHistoricalAverage_SkipsEmptyMonths(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(date(2024, time.July, 1))

	// Only two of the six lookback months carry data; the average must
	// divide by two, not six.
	for _, month := range []time.Month{time.February, time.June} {
		_, err := svc.AddTransaction(ctx, ledger.TransactionInput{
			Description: "salary",
			Amount:      decimal.NewFromInt(1200),
			CategoryID:  10,
			Type:        domain.TypeIncome,
			Date:        date(2024, month, 1),
		})
		require.NoError(t, err)
	}

	flow := svc.HistoricalAverage(date(2024, time.July, 1), 6, nil)
	require.True(t, flow.Income.Equal(decimal.NewFromInt(1200)), "income avg = %s", flow.Income)
}

func TestHistoricalAverage_ExcludesMaterializedObligations(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestService(date(2024, time.May, 20))
	seedHistory(t, svc)

	// Materialize the rent obligation into tagged transactions. They must
	// not leak into the historical estimate.
	clock.Set(date(2024, time.June, 5))
	for len(svc.ProcessDueObligations(ctx)) > 0 {
	}
	clock.Set(date(2024, time.July, 1))

	flow := svc.HistoricalAverage(date(2024, time.July, 1), 6, nil)
	require.True(t, flow.Expenses.Equal(decimal.NewFromInt(1000)),
		"materialized obligations must be excluded, expense avg = %s", flow.Expenses)
}

func TestProjectCashFlow(t *testing.T) {
	svc, _, _ := newTestService(date(2024, time.July, 1))
	seedHistory(t, svc)

	months := svc.ProjectCashFlow(3, nil)
	require.Len(t, months, 3)

	// Seed balance: 3*3000 income - 3*1000 expenses = 6000.
	require.True(t, months[0].StartingBalance.Equal(decimal.NewFromInt(6000)),
		"starting balance = %s", months[0].StartingBalance)
	require.Equal(t, "July 2024", months[0].MonthName)

	for i, m := range months {
		require.True(t, m.RecurringExpenses.Equal(decimal.NewFromInt(500)), "month %d recurring = %s", i, m.RecurringExpenses)
		require.True(t, m.TotalIncome.Equal(decimal.NewFromInt(3000)), "month %d income = %s", i, m.TotalIncome)
		require.True(t, m.TotalExpenses.Equal(decimal.NewFromInt(1500)), "month %d expenses = %s", i, m.TotalExpenses)
		require.True(t, m.NetCashFlow.Equal(decimal.NewFromInt(1500)), "month %d net = %s", i, m.NetCashFlow)
	}

	// Balances chain month to month.
	require.True(t, months[0].EndingBalance.Equal(decimal.NewFromInt(7500)))
	require.True(t, months[1].StartingBalance.Equal(months[0].EndingBalance))
	require.True(t, months[2].EndingBalance.Equal(decimal.NewFromInt(10500)))
}

func TestProjectCashFlow_Scenario(t *testing.T) {
	svc, _, _ := newTestService(date(2024, time.July, 1))
	ob := seedHistory(t, svc)

	sc := &ledger.Scenario{
		HistoricalExpenses: decimal.NewFromFloat(0.5),
		Obligations:        map[string]decimal.Decimal{ob.ID: decimal.NewFromInt(2)},
	}
	months := svc.ProjectCashFlow(1, sc)
	require.Len(t, months, 1)

	m := months[0]
	require.True(t, m.HistoricalExpenses.Equal(decimal.NewFromInt(500)),
		"halved historical expenses = %s", m.HistoricalExpenses)
	require.True(t, m.RecurringExpenses.Equal(decimal.NewFromInt(1000)),
		"doubled obligation = %s", m.RecurringExpenses)
	require.True(t, m.TotalExpenses.Equal(decimal.NewFromInt(1500)))

	// The scenario never touches stored state.
	baseline := svc.ProjectCashFlow(1, nil)
	require.True(t, baseline[0].RecurringExpenses.Equal(decimal.NewFromInt(500)))
	require.True(t, baseline[0].HistoricalExpenses.Equal(decimal.NewFromInt(1000)))
}

func TestProjectCashFlow_NoHistory(t *testing.T) {
	svc, _, _ := newTestService(date(2024, time.July, 1))

	months := svc.ProjectCashFlow(2, nil)
	require.Len(t, months, 2)
	require.True(t, months[0].TotalIncome.IsZero())
	require.True(t, months[0].TotalExpenses.IsZero())
	require.True(t, months[1].EndingBalance.IsZero())
}
