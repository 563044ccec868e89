package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finplan/internal/domain"
)

func earnedIDs(achievements []domain.Achievement) map[string]bool {
	ids := make(map[string]bool, len(achievements))
	for _, a := range achievements {
		ids[a.ID] = true
	}
	return ids
}

func TestAchievements_FirstGoal(t *testing.T) {
	svc, _, _ := newTestService(date(2024, time.January, 1))

	addGoal(t, svc, "vacation", 1000, 0, date(2025, time.June, 1))

	got := earnedIDs(svc.Achievements())
	if !got[domain.AchieveFirstGoal] {
		t.Error("creating the first goal must earn first_goal_created")
	}
	if got[domain.AchieveGoal25] {
		t.Error("an empty goal must not earn progress achievements")
	}
}

func TestAchievements_ProgressMilestones(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(date(2024, time.January, 1))
	g := addGoal(t, svc, "vacation", 1000, 0, date(2025, time.June, 1))

	svc.AddMoneyToGoal(ctx, g.ID, decimal.NewFromInt(300))
	got := earnedIDs(svc.Achievements())
	if !got[domain.AchieveGoal25] {
		t.Error("30% progress must earn goal_25_percent")
	}
	if got[domain.AchieveGoal50] {
		t.Error("30% progress must not earn goal_50_percent")
	}

	// A single contribution can cross several milestones at once.
	svc.AddMoneyToGoal(ctx, g.ID, decimal.NewFromInt(500))
	got = earnedIDs(svc.Achievements())
	for _, id := range []string{domain.AchieveGoal50, domain.AchieveGoal75} {
		if !got[id] {
			t.Errorf("80%% progress must earn %s", id)
		}
	}
	if got[domain.AchieveGoalCompleted] {
		t.Error("80% progress must not earn goal_completed")
	}
}

func TestAchievements_EarlyBird(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(date(2024, time.January, 1))
	g := addGoal(t, svc, "vacation", 1000, 0, date(2025, time.June, 1))

	// Completed well before the target date.
	svc.AddMoneyToGoal(ctx, g.ID, decimal.NewFromInt(1000))

	got := earnedIDs(svc.Achievements())
	if !got[domain.AchieveGoalCompleted] {
		t.Error("completion must earn goal_completed")
	}
	if !got[domain.AchieveEarly] {
		t.Error("completion before the target date must earn early_achiever")
	}
}

func TestAchievements_LateCompletionIsNotEarly(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestService(date(2024, time.January, 1))
	g := addGoal(t, svc, "vacation", 1000, 0, date(2024, time.March, 1))

	clock.Set(date(2024, time.June, 1))
	svc.AddMoneyToGoal(ctx, g.ID, decimal.NewFromInt(1000))

	got := earnedIDs(svc.Achievements())
	if !got[domain.AchieveGoalCompleted] {
		t.Error("late completion still earns goal_completed")
	}
	if got[domain.AchieveEarly] {
		t.Error("completion after the target date must not earn early_achiever")
	}
}

func TestAchievements_MultipleGoals(t *testing.T) {
	svc, _, _ := newTestService(date(2024, time.January, 1))

	addGoal(t, svc, "one", 100, 0, date(2025, time.June, 1))
	addGoal(t, svc, "two", 100, 0, date(2025, time.June, 1))
	if earnedIDs(svc.Achievements())[domain.AchieveMultipleGoals] {
		t.Fatal("two active goals must not earn multiple_goals")
	}

	addGoal(t, svc, "three", 100, 0, date(2025, time.June, 1))
	if !earnedIDs(svc.Achievements())[domain.AchieveMultipleGoals] {
		t.Error("three active goals must earn multiple_goals")
	}
}

func TestAchievements_EarnedOnce(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(date(2024, time.January, 1))

	g := addGoal(t, svc, "one", 100, 0, date(2025, time.June, 1))
	addGoal(t, svc, "two", 100, 0, date(2025, time.June, 1))
	svc.AddMoneyToGoal(ctx, g.ID, decimal.NewFromInt(100))
	svc.AddMoneyToGoal(ctx, g.ID, decimal.NewFromInt(100))

	seen := map[string]int{}
	for _, a := range svc.Achievements() {
		seen[a.ID]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("achievement %s earned %d times, want once", id, n)
		}
	}
}
