package ledger_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finplan/internal/domain"
	"github.com/iho/finplan/internal/ledger"
)

func TestGenerateNotifications_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestService(date(2024, time.June, 1))

	ob, err := svc.AddObligation(ctx, ledger.ObligationInput{
		Description: "rent",
		Amount:      decimal.NewFromInt(500),
		Type:        domain.TypeExpense,
		CategoryID:  6,
		Frequency:   domain.Monthly,
		StartDate:   date(2024, time.May, 10), // due 2024-06-10
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock.Set(date(2024, time.June, 8)) // 2 days out, inside the window

	first := svc.GenerateNotifications(ctx)
	if len(first) != 1 {
		t.Fatalf("expected 1 bill reminder, got %d", len(first))
	}
	wantID := fmt.Sprintf("bill_%s_2024-06-10", ob.ID)
	if first[0].ID != wantID {
		t.Errorf("notification id = %q, want %q", first[0].ID, wantID)
	}

	// Same state, same day: nothing new.
	if again := svc.GenerateNotifications(ctx); len(again) != 0 {
		t.Errorf("regeneration over unchanged state must insert nothing, got %d", len(again))
	}
	if got := len(svc.Notifications()); got != 1 {
		t.Errorf("stored notifications = %d, want 1", got)
	}
}

func TestBillReminders(t *testing.T) {
	tests := []struct {
		name         string
		start        time.Time // monthly, so due one month later
		wantTitle    string
		wantPriority int
	}{
		{name: "overdue", start: date(2024, time.May, 8), wantTitle: "Overdue Bill", wantPriority: domain.PriorityHigh},
		{name: "due today", start: date(2024, time.May, 10), wantTitle: "Bill Due Today", wantPriority: domain.PriorityHigh},
		{name: "due tomorrow", start: date(2024, time.May, 11), wantTitle: "Bill Due Soon", wantPriority: domain.PriorityMedium},
		{name: "due in three days", start: date(2024, time.May, 13), wantTitle: "Upcoming Bill", wantPriority: domain.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, _, clock := newTestService(date(2024, time.June, 1))

			if _, err := svc.AddObligation(ctx, ledger.ObligationInput{
				Description: "bill",
				Amount:      decimal.NewFromInt(100),
				Type:        domain.TypeExpense,
				CategoryID:  6,
				Frequency:   domain.Monthly,
				StartDate:   tt.start,
			}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			clock.Set(date(2024, time.June, 10))
			got := svc.GenerateNotifications(ctx)
			if len(got) != 1 {
				t.Fatalf("expected 1 notification, got %d", len(got))
			}
			if got[0].Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", got[0].Title, tt.wantTitle)
			}
			if got[0].Priority != tt.wantPriority {
				t.Errorf("priority = %d, want %d", got[0].Priority, tt.wantPriority)
			}
			if got[0].Type != domain.NotifyBillReminder {
				t.Errorf("type = %q, want bill_reminder", got[0].Type)
			}
		})
	}
}

func TestBillReminders_OutsideWindow(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestService(date(2024, time.June, 1))

	if _, err := svc.AddObligation(ctx, ledger.ObligationInput{
		Description: "far away",
		Amount:      decimal.NewFromInt(100),
		Type:        domain.TypeExpense,
		CategoryID:  6,
		Frequency:   domain.Monthly,
		StartDate:   date(2024, time.May, 20), // due 2024-06-20
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock.Set(date(2024, time.June, 10))
	if got := svc.GenerateNotifications(ctx); len(got) != 0 {
		t.Errorf("bills outside the reminder window must not alert, got %d", len(got))
	}
}

func TestBudgetAlerts(t *testing.T) {
	tests := []struct {
		name         string
		spent        int64
		wantCount    int
		wantTitle    string
		wantPriority int
	}{
		{name: "below threshold", spent: 700, wantCount: 0},
		{name: "warning", spent: 850, wantCount: 1, wantTitle: "Budget Warning", wantPriority: domain.PriorityLow},
		{name: "critical", spent: 950, wantCount: 1, wantTitle: "Budget Critical", wantPriority: domain.PriorityMedium},
		{name: "exceeded", spent: 1100, wantCount: 1, wantTitle: "Budget Exceeded", wantPriority: domain.PriorityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, _, _ := newTestService(date(2024, time.June, 10))

			if _, err := svc.AddBudget(ctx, ledger.BudgetInput{
				CategoryID: 1,
				Amount:     decimal.NewFromInt(1000),
				Period:     domain.PeriodMonthly,
			}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := svc.AddTransaction(ctx, ledger.TransactionInput{
				Description: "groceries",
				Amount:      decimal.NewFromInt(tt.spent),
				CategoryID:  1,
				Type:        domain.TypeExpense,
			}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := svc.GenerateNotifications(ctx)
			if len(got) != tt.wantCount {
				t.Fatalf("expected %d notifications, got %d", tt.wantCount, len(got))
			}
			if tt.wantCount == 0 {
				return
			}
			if got[0].Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", got[0].Title, tt.wantTitle)
			}
			if got[0].Priority != tt.wantPriority {
				t.Errorf("priority = %d, want %d", got[0].Priority, tt.wantPriority)
			}
		})
	}
}

func TestBudgetAlerts_ZeroAmountBudgetEmitsNothing(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(date(2024, time.June, 10))

	b, err := svc.AddBudget(ctx, ledger.BudgetInput{
		CategoryID: 1,
		Amount:     decimal.NewFromInt(100),
		Period:     domain.PeriodMonthly,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.AddTransaction(ctx, ledger.TransactionInput{
		Description: "groceries",
		Amount:      decimal.NewFromInt(50),
		CategoryID:  1,
		Type:        domain.TypeExpense,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The update guard keeps the stored amount positive, so the
	// percentage division stays defined.
	svc.UpdateBudget(ctx, b.ID, ledger.BudgetInput{CategoryID: 1, Amount: decimal.Zero, Period: domain.PeriodMonthly})

	got := svc.GenerateNotifications(ctx)
	if len(got) != 0 {
		t.Fatalf("expected no alerts at 50%% spend, got %d", len(got))
	}
}

func TestBudgetAlerts_SkipsZeroAmountBudgetFromSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(date(2024, time.June, 10))

	// A snapshot written by an older build can carry a zero-amount
	// budget; generation must skip it rather than divide by it.
	store.Seed([]byte(`{
		"budgets": [{"id": "b1", "category_id": 1, "amount": "0", "period": "monthly"}],
		"transactions": [{
			"id": "tx1", "description": "groceries", "amount": "50",
			"currency_code": "UGX", "category_id": 1,
			"date": "2024-06-05T00:00:00Z", "type": "expense"
		}]
	}`))
	svc.Load(ctx)

	got := svc.GenerateNotifications(ctx)
	for _, n := range got {
		if n.Type == domain.NotifyBudgetAlert {
			t.Fatalf("zero-amount budget must not alert, got %+v", n)
		}
	}
}

func TestSavingsNotifications(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(date(2024, time.June, 1))

	// 50% progress sits exactly on the default encouragement threshold.
	g := addGoal(t, svc, "vacation", 1000, 500, date(2025, time.June, 1))

	got := svc.GenerateNotifications(ctx)

	var savings *domain.Notification
	for i := range got {
		if got[i].Type == domain.NotifySavings {
			savings = &got[i]
		}
	}
	if savings == nil {
		t.Fatal("expected a savings encouragement notification")
	}
	wantID := fmt.Sprintf("savings_%s_5", g.ID)
	if savings.ID != wantID {
		t.Errorf("id = %q, want %q", savings.ID, wantID)
	}
	if savings.Priority != domain.PriorityLow {
		t.Errorf("priority = %d, want low", savings.Priority)
	}
}

func TestSavingsDeadlineNotification(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(date(2024, time.June, 1))

	// Due in 20 days at 40% funded: urgent.
	g := addGoal(t, svc, "phone", 1000, 400, date(2024, time.June, 21))

	got := svc.GenerateNotifications(ctx)

	var urgent *domain.Notification
	for i := range got {
		if got[i].Type == domain.NotifySavingsDue {
			urgent = &got[i]
		}
	}
	if urgent == nil {
		t.Fatal("expected an urgent savings notification")
	}
	wantID := fmt.Sprintf("savings_urgent_%s_20", g.ID)
	if urgent.ID != wantID {
		t.Errorf("id = %q, want %q", urgent.ID, wantID)
	}
	if urgent.Priority != domain.PriorityMedium {
		t.Errorf("priority = %d, want medium", urgent.Priority)
	}
}

func TestAchievementNotifications(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(date(2024, time.June, 1))
	addGoal(t, svc, "vacation", 1000, 0, date(2025, time.June, 1))

	got := svc.GenerateNotifications(ctx)
	var achievement *domain.Notification
	for i := range got {
		if got[i].Type == domain.NotifyAchievement {
			achievement = &got[i]
		}
	}
	if achievement == nil {
		t.Fatal("expected an achievement notification")
	}
	if achievement.ID != "achievement_"+domain.AchieveFirstGoal {
		t.Errorf("unexpected id %q", achievement.ID)
	}
	if achievement.Priority != domain.PriorityMedium {
		t.Errorf("priority = %d, want medium", achievement.Priority)
	}

	// The achievement is marked notified; regeneration stays quiet.
	for _, n := range svc.GenerateNotifications(ctx) {
		if n.Type == domain.NotifyAchievement {
			t.Error("achievement must only be notified once")
		}
	}
}

func TestNotificationSettingsGateGenerators(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestService(date(2024, time.June, 1))

	settings := domain.DefaultNotificationSettings()
	settings.BillReminders = false
	if err := svc.UpdateNotificationSettings(ctx, settings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.AddObligation(ctx, ledger.ObligationInput{
		Description: "rent",
		Amount:      decimal.NewFromInt(500),
		Type:        domain.TypeExpense,
		CategoryID:  6,
		Frequency:   domain.Monthly,
		StartDate:   date(2024, time.May, 10),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock.Set(date(2024, time.June, 10))
	if got := svc.GenerateNotifications(ctx); len(got) != 0 {
		t.Errorf("disabled generator must stay silent, got %d", len(got))
	}
}

func TestUpdateNotificationSettings_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(date(2024, time.June, 1))

	bad := domain.DefaultNotificationSettings()
	bad.BudgetThreshold = decimal.NewFromInt(150)
	if err := svc.UpdateNotificationSettings(ctx, bad); err == nil {
		t.Error("expected error for threshold above 100")
	}

	bad = domain.DefaultNotificationSettings()
	bad.SavingsThreshold = decimal.NewFromInt(-5)
	if err := svc.UpdateNotificationSettings(ctx, bad); err == nil {
		t.Error("expected error for negative threshold")
	}
}

func TestNotificationReadTracking(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(date(2024, time.June, 1))

	addGoal(t, svc, "one", 1000, 500, date(2025, time.June, 1))
	generated := svc.GenerateNotifications(ctx)
	if len(generated) < 2 {
		t.Fatalf("expected at least 2 notifications, got %d", len(generated))
	}

	if got := svc.UnreadNotificationCount(); got != len(generated) {
		t.Errorf("unread = %d, want %d", got, len(generated))
	}

	svc.MarkNotificationRead(ctx, generated[0].ID)
	if got := svc.UnreadNotificationCount(); got != len(generated)-1 {
		t.Errorf("unread after one read = %d, want %d", got, len(generated)-1)
	}

	svc.MarkAllNotificationsRead(ctx)
	if got := svc.UnreadNotificationCount(); got != 0 {
		t.Errorf("unread after mark-all = %d, want 0", got)
	}

	svc.DeleteNotification(ctx, generated[0].ID)
	if got := len(svc.Notifications()); got != len(generated)-1 {
		t.Errorf("notifications after delete = %d, want %d", got, len(generated)-1)
	}

	svc.ClearNotifications(ctx)
	if got := len(svc.Notifications()); got != 0 {
		t.Errorf("notifications after clear = %d, want 0", got)
	}
}

func TestNotificationOrdering(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestService(date(2024, time.June, 1))

	// A low-priority savings note and a high-priority overdue bill.
	addGoal(t, svc, "vacation", 1000, 500, date(2025, time.June, 1))
	if _, err := svc.AddObligation(ctx, ledger.ObligationInput{
		Description: "rent",
		Amount:      decimal.NewFromInt(500),
		Type:        domain.TypeExpense,
		CategoryID:  6,
		Frequency:   domain.Monthly,
		StartDate:   date(2024, time.May, 5),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock.Set(date(2024, time.June, 10))
	svc.GenerateNotifications(ctx)

	stored := svc.Notifications()
	for i := 1; i < len(stored); i++ {
		if stored[i-1].Priority < stored[i].Priority {
			t.Fatalf("notifications must sort by descending priority: %d before %d",
				stored[i-1].Priority, stored[i].Priority)
		}
	}
	if stored[0].Type != domain.NotifyBillReminder || stored[0].Priority != domain.PriorityHigh {
		t.Errorf("overdue bill must sort first, got %q (priority %d)", stored[0].Type, stored[0].Priority)
	}

	high := svc.HighPriorityNotifications()
	if len(high) != 1 || high[0].Type != domain.NotifyBillReminder {
		t.Errorf("expected exactly the overdue bill in high-priority view, got %+v", high)
	}
}
