package models

import "time"

// Goal is a long-running user objective tracked by the mentoring flow.
type Goal struct {
	Base
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	Completed   bool       `json:"completed"`
	Archived    bool       `json:"archived"`
}

// GoalProgress is one dated progress note against a goal.
type GoalProgress struct {
	Base
	GoalID  string    `json:"goal_id"`
	Date    time.Time `json:"date"`
	Percent int       `json:"percent"`
	Note    string    `json:"note,omitempty"`
}

// Milestone marks a named achievement point inside a goal.
type Milestone struct {
	Base
	GoalID    string     `json:"goal_id"`
	Title     string     `json:"title"`
	ReachedAt *time.Time `json:"reached_at,omitempty"`
}

// Achievement is a gamification badge earned by the user.
type Achievement struct {
	Base
	Key      string    `json:"key"`
	Title    string    `json:"title"`
	EarnedAt time.Time `json:"earned_at"`
}
