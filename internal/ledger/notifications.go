package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finplan/internal/domain"
)

// GenerateNotifications runs the four alert generators — bill reminders,
// budget alerts, savings encouragement, achievement notifications — each
// gated by its settings flag, inserts the results into the stored
// notification list with dedup by id, and re-sorts the list by
// descending priority then descending creation time. Because every id is
// deterministic, repeated invocations with unchanged ledger state insert
// nothing: the engine is safe to call on every app open.
func (s *Service) GenerateNotifications(ctx context.Context) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	now := s.clock.Now()

	var candidates []domain.Notification
	if s.state.NotificationSettings.BillReminders {
		candidates = append(candidates, s.state.billReminders(today, now)...)
	}
	if s.state.NotificationSettings.BudgetAlerts {
		candidates = append(candidates, s.state.budgetAlerts(today, now)...)
	}
	if s.state.NotificationSettings.SavingsEncouragement {
		candidates = append(candidates, s.state.savingsEncouragement(today, now)...)
	}
	if s.state.NotificationSettings.AchievementNotifications {
		candidates = append(candidates, s.state.achievementAlerts(now)...)
	}

	var inserted []domain.Notification
	for _, n := range candidates {
		if s.state.notification(n.ID) != nil {
			continue
		}
		s.state.Notifications = append(s.state.Notifications, n)
		inserted = append(inserted, n)
	}

	sort.SliceStable(s.state.Notifications, func(i, j int) bool {
		a, b := s.state.Notifications[i], s.state.Notifications[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	s.persist(ctx)
	return inserted
}

// billReminders flags active obligations due within the reminder window
// or already overdue. One alert per (obligation, due date) pair.
func (st *State) billReminders(today, now time.Time) []domain.Notification {
	var out []domain.Notification
	window := st.NotificationSettings.ReminderDays

	for _, ob := range st.Obligations {
		if !ob.IsActive || ob.NextDue.IsZero() {
			continue
		}
		days := domain.DaysUntil(today, ob.NextDue)
		if days > window {
			continue
		}

		priority := domain.PriorityLow
		icon, color, tone := "notifications", "info", "is due"
		title := "Upcoming Bill"
		switch {
		case days < 0:
			priority, title, icon, color, tone = domain.PriorityHigh, "Overdue Bill", "warning", "negative", "was due"
		case days == 0:
			priority, title, icon, color = domain.PriorityHigh, "Bill Due Today", "warning", "negative"
		case days == 1:
			priority, title, icon, color = domain.PriorityMedium, "Bill Due Soon", "schedule", "warning"
		}

		out = append(out, domain.Notification{
			ID:       fmt.Sprintf("bill_%s_%s", ob.ID, ob.NextDue.Format(domain.DateFormat)),
			Type:     domain.NotifyBillReminder,
			Priority: priority,
			Title:    title,
			Message: fmt.Sprintf("%s (%s) %s %s", ob.Description,
				st.formatAmount(ob.Amount, domain.BaseCurrency(st.Currencies).Code), tone, dueWording(days)),
			Icon:      icon,
			Color:     color,
			Action:    &domain.NotificationAction{Type: "navigate", Route: "/recurring", Label: "View Bills"},
			CreatedAt: now,
			Data: map[string]any{
				"obligation_id": ob.ID,
				"due_date":      ob.NextDue.Format(domain.DateFormat),
				"amount":        ob.Amount,
			},
		})
	}
	return out
}

func dueWording(days int) string {
	switch {
	case days < -1:
		return fmt.Sprintf("%d days ago", -days)
	case days == -1:
		return "1 day ago"
	case days == 0:
		return "today"
	case days == 1:
		return "in 1 day"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

// budgetAlerts flags budgets whose live-derived category spend crosses
// the alert threshold. One alert per (budget, day) pair.
func (st *State) budgetAlerts(today, now time.Time) []domain.Notification {
	var out []domain.Notification
	hundred := intDecimal(100)
	ninety := intDecimal(90)

	for _, b := range st.Budgets {
		// A snapshot may carry a budget with a non-positive amount;
		// percentage is undefined for it, so no alert.
		if !b.Amount.IsPositive() {
			continue
		}
		category := domain.CategoryByID(st.Categories, b.CategoryID)
		if category == nil {
			continue
		}

		spent := st.categorySpend(b.CategoryID)
		percentage := spent.Div(b.Amount).Mul(hundred)
		if percentage.LessThan(st.NotificationSettings.BudgetThreshold) {
			continue
		}

		priority := domain.PriorityLow
		severity, icon, color := "warning", "info", "info"
		switch {
		case percentage.GreaterThanOrEqual(hundred):
			priority, severity, icon, color = domain.PriorityHigh, "exceeded", "error", "negative"
		case percentage.GreaterThanOrEqual(ninety):
			priority, severity, icon, color = domain.PriorityMedium, "critical", "warning", "warning"
		}

		base := domain.BaseCurrency(st.Currencies).Code
		out = append(out, domain.Notification{
			ID:       fmt.Sprintf("budget_%s_%s", b.ID, today.Format(domain.DateFormat)),
			Type:     domain.NotifyBudgetAlert,
			Priority: priority,
			Title:    "Budget " + titleCase(severity),
			Message: fmt.Sprintf("%s budget: %s / %s (%s%%)", category.Name,
				st.formatAmount(spent, base), st.formatAmount(b.Amount, base), percentage.StringFixed(1)),
			Icon:      icon,
			Color:     color,
			Action:    &domain.NotificationAction{Type: "navigate", Route: "/transactions", Label: "View Transactions"},
			CreatedAt: now,
			Data: map[string]any{
				"budget_id":   b.ID,
				"category_id": b.CategoryID,
				"severity":    severity,
				"spent":       spent,
				"budget":      b.Amount,
				"percentage":  percentage,
			},
		})
	}
	return out
}

// savingsEncouragement emits a positive alert when an incomplete goal
// enters a new 10-point band above the savings threshold, and an urgent
// alert for goals due within 30 days that are under 80% funded.
func (st *State) savingsEncouragement(today, now time.Time) []domain.Notification {
	var out []domain.Notification
	threshold := st.NotificationSettings.SavingsThreshold

	for _, g := range st.Goals {
		if g.Completed() {
			continue
		}

		percentage := g.Progress()
		daysRemaining := domain.DaysUntil(today, g.TargetDate)

		if percentage.GreaterThanOrEqual(threshold) && percentage.LessThan(threshold.Add(intDecimal(10))) {
			band := percentage.Div(intDecimal(10)).IntPart()
			out = append(out, domain.Notification{
				ID:       fmt.Sprintf("savings_%s_%d", g.ID, band),
				Type:     domain.NotifySavings,
				Priority: domain.PriorityLow,
				Title:    "Great Progress!",
				Message: fmt.Sprintf("You're %s%% towards your %s goal. Keep it up!",
					percentage.StringFixed(1), g.Name),
				Icon:      "trending_up",
				Color:     "positive",
				Action:    &domain.NotificationAction{Type: "navigate", Route: "/goals", Label: "View Goals"},
				CreatedAt: now,
				Data: map[string]any{
					"goal_id":        g.ID,
					"percentage":     percentage,
					"days_remaining": daysRemaining,
				},
			})
		}

		if daysRemaining > 0 && daysRemaining <= 30 && percentage.LessThan(intDecimal(80)) {
			perDay := g.Remaining().Div(intDecimal(int64(daysRemaining)))
			base := domain.BaseCurrency(st.Currencies).Code
			out = append(out, domain.Notification{
				ID:       fmt.Sprintf("savings_urgent_%s_%d", g.ID, daysRemaining),
				Type:     domain.NotifySavingsDue,
				Priority: domain.PriorityMedium,
				Title:    "Goal Deadline Approaching",
				Message: fmt.Sprintf("%s is due in %d days. You need to save %s per day to reach your goal.",
					g.Name, daysRemaining, st.formatAmount(perDay, base)),
				Icon:      "schedule",
				Color:     "warning",
				Action:    &domain.NotificationAction{Type: "navigate", Route: "/goals", Label: "Add Money"},
				CreatedAt: now,
				Data: map[string]any{
					"goal_id":        g.ID,
					"days_remaining": daysRemaining,
					"needed_per_day": perDay,
				},
			})
		}
	}
	return out
}

// achievementAlerts emits one alert per earned-but-unnotified
// achievement and marks it notified.
func (st *State) achievementAlerts(now time.Time) []domain.Notification {
	var out []domain.Notification
	for i := range st.Achievements {
		a := &st.Achievements[i]
		if a.Notified {
			continue
		}
		out = append(out, domain.Notification{
			ID:        "achievement_" + a.ID,
			Type:      domain.NotifyAchievement,
			Priority:  domain.PriorityMedium,
			Title:     "Achievement Unlocked!",
			Message:   a.Title + " - " + a.Description,
			Icon:      a.Icon,
			Color:     "accent",
			Action:    &domain.NotificationAction{Type: "navigate", Route: "/goals", Label: "View Achievements"},
			CreatedAt: now,
			Data:      map[string]any{"achievement_id": a.ID},
		})
		a.Notified = true
	}
	return out
}

// categorySpend sums expense transactions for one category.
func (st *State) categorySpend(categoryID int) decimal.Decimal {
	spent := decimal.Zero
	for _, tx := range st.Transactions {
		if tx.Type == domain.TypeExpense && tx.CategoryID == categoryID {
			spent = spent.Add(tx.Amount)
		}
	}
	return spent
}

func intDecimal(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Notifications returns a copy of the notification list, already sorted
// by priority then recency.
func (s *Service) Notifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Notification, len(s.state.Notifications))
	copy(out, s.state.Notifications)
	return out
}

// UnreadNotificationCount returns the number of unread notifications.
func (s *Service) UnreadNotificationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.state.Notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// HighPriorityNotifications returns unread notifications of priority 2
// or higher.
func (s *Service) HighPriorityNotifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Notification
	for _, n := range s.state.Notifications {
		if !n.Read && n.Priority >= domain.PriorityMedium {
			out = append(out, n)
		}
	}
	return out
}

// MarkNotificationRead marks one notification read.
// An unknown id is a silent no-op.
func (s *Service) MarkNotificationRead(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.state.notification(id)
	if n == nil || n.Read {
		return
	}
	now := s.clock.Now()
	n.Read = true
	n.ReadAt = &now
	s.persist(ctx)
}

// MarkAllNotificationsRead marks every unread notification read.
func (s *Service) MarkAllNotificationsRead(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	changed := false
	for i := range s.state.Notifications {
		if !s.state.Notifications[i].Read {
			s.state.Notifications[i].Read = true
			s.state.Notifications[i].ReadAt = &now
			changed = true
		}
	}
	if changed {
		s.persist(ctx)
	}
}

// DeleteNotification removes one notification.
// An unknown id is a silent no-op.
func (s *Service) DeleteNotification(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Notifications {
		if s.state.Notifications[i].ID == id {
			s.state.Notifications = append(s.state.Notifications[:i], s.state.Notifications[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// ClearNotifications empties the notification list.
func (s *Service) ClearNotifications(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Notifications = []domain.Notification{}
	s.persist(ctx)
}

// UpdateNotificationSettings replaces the notification settings.
func (s *Service) UpdateNotificationSettings(ctx context.Context, settings domain.NotificationSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hundred := intDecimal(100)
	if settings.BudgetThreshold.IsNegative() || settings.BudgetThreshold.GreaterThan(hundred) ||
		settings.SavingsThreshold.IsNegative() || settings.SavingsThreshold.GreaterThan(hundred) {
		return domain.ErrInvalidThreshold
	}
	s.state.NotificationSettings = settings
	s.persist(ctx)
	return nil
}

// NotificationSettings returns the current notification settings.
func (s *Service) NotificationSettings() domain.NotificationSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.NotificationSettings
}
