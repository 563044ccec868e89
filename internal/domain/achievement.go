package domain

import "time"

// Achievement catalog keys. Each key can be earned at most once.
const (
	AchieveFirstGoal     = "first_goal_created"
	AchieveGoal25        = "goal_25_percent"
	AchieveGoal50        = "goal_50_percent"
	AchieveGoal75        = "goal_75_percent"
	AchieveGoalCompleted = "goal_completed"
	AchieveMultipleGoals = "multiple_goals"
	AchieveEarly         = "early_achiever"
)

// Achievement is an earned entry from the fixed achievement catalog.
// Earned achievements are never revoked; Notified flags whether an alert
// has already been raised for it.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Earned      bool      `json:"earned"`
	EarnedAt    time.Time `json:"earned_at"`
	GoalID      string    `json:"goal_id,omitempty"`
	Notified    bool      `json:"notified"`
}
