package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/finplan/internal/domain"
)

// achievementRule is one entry of the fixed achievement catalog: a
// stable id, display metadata, and a predicate over the triggering goal
// and current ledger state. Rules are evaluated in catalog order; a rule
// that holds and is not yet in the earned set is appended exactly once.
type achievementRule struct {
	id          string
	title       string
	description func(g *domain.Goal) string
	icon        string
	predicate   func(g *domain.Goal, st *State) bool
}

func progressAtLeast(pct int64) func(g *domain.Goal, st *State) bool {
	threshold := decimal.NewFromInt(pct)
	return func(g *domain.Goal, st *State) bool {
		return g.Progress().GreaterThanOrEqual(threshold)
	}
}

var achievementCatalog = []achievementRule{
	{
		id:          domain.AchieveFirstGoal,
		title:       "Goal Setter",
		description: func(*domain.Goal) string { return "Created your first savings goal" },
		icon:        "flag",
		predicate:   func(g *domain.Goal, st *State) bool { return len(st.Goals) >= 1 },
	},
	{
		id:          domain.AchieveGoal25,
		title:       "Quarter Way There",
		description: func(g *domain.Goal) string { return fmt.Sprintf("Reached 25%% of %s", g.Name) },
		icon:        "trending_up",
		predicate:   progressAtLeast(25),
	},
	{
		id:          domain.AchieveGoal50,
		title:       "Halfway Hero",
		description: func(g *domain.Goal) string { return fmt.Sprintf("Reached 50%% of %s", g.Name) },
		icon:        "star_half",
		predicate:   progressAtLeast(50),
	},
	{
		id:          domain.AchieveGoal75,
		title:       "Almost There",
		description: func(g *domain.Goal) string { return fmt.Sprintf("Reached 75%% of %s", g.Name) },
		icon:        "star",
		predicate:   progressAtLeast(75),
	},
	{
		id:          domain.AchieveGoalCompleted,
		title:       "Goal Crusher",
		description: func(g *domain.Goal) string { return fmt.Sprintf("Completed %s", g.Name) },
		icon:        "emoji_events",
		predicate:   func(g *domain.Goal, st *State) bool { return g.Completed() },
	},
	{
		id:          domain.AchieveMultipleGoals,
		title:       "Multi-Goal Master",
		description: func(*domain.Goal) string { return "Have 3 or more active goals" },
		icon:        "flag",
		predicate: func(g *domain.Goal, st *State) bool {
			active := 0
			for _, other := range st.Goals {
				if !other.Completed() {
					active++
				}
			}
			return active >= 3
		},
	},
	{
		id:          domain.AchieveEarly,
		title:       "Early Bird",
		description: func(*domain.Goal) string { return "Completed a goal before its target date" },
		icon:        "schedule",
		predicate:   nil, // needs the clock, handled in evaluateAchievements
	},
}

// evaluateAchievements runs the catalog against the given goal and
// current state, appending any newly earned achievements. Already-earned
// achievements are never re-evaluated or revoked.
// Must be called with the lock held.
func (s *Service) evaluateAchievements(g *domain.Goal) {
	if g == nil {
		return
	}
	now := s.clock.Now()

	for _, rule := range achievementCatalog {
		if s.state.achievement(rule.id) != nil {
			continue
		}

		earned := false
		if rule.id == domain.AchieveEarly {
			earned = g.Completed() && now.Before(g.TargetDate)
		} else if rule.predicate != nil {
			earned = rule.predicate(g, s.state)
		}
		if !earned {
			continue
		}

		s.state.Achievements = append(s.state.Achievements, domain.Achievement{
			ID:          rule.id,
			Title:       rule.title,
			Description: rule.description(g),
			Icon:        rule.icon,
			Earned:      true,
			EarnedAt:    now,
			GoalID:      g.ID,
		})
		s.log.Info().Str("achievement", rule.id).Str("goal_id", g.ID).Msg("achievement earned")
	}
}

// Achievements returns a copy of the earned achievement list.
func (s *Service) Achievements() []domain.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Achievement, len(s.state.Achievements))
	copy(out, s.state.Achievements)
	return out
}
