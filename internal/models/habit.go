package models

import "time"

// Habit is a recurring behavior the user wants to build or break.
type Habit struct {
	Base
	Name      string `json:"name"`
	Schedule  string `json:"schedule,omitempty"` // "daily", "weekly", cron-like
	Positive  bool   `json:"positive"`
	Archived  bool   `json:"archived"`
	Color     string `json:"color,omitempty"`
	IconName  string `json:"icon_name,omitempty"`
	SortOrder int    `json:"sort_order"`
}

// HabitLog is one check-in against a habit.
type HabitLog struct {
	Base
	HabitID string    `json:"habit_id"`
	Date    time.Time `json:"date"`
	Done    bool      `json:"done"`
	Note    string    `json:"note,omitempty"`
}

// Reminder schedules a local notification for a habit or medication.
type Reminder struct {
	Base
	TargetKind string `json:"target_kind"` // "habit", "medication", "journal"
	TargetID   string `json:"target_id,omitempty"`
	TimeOfDay  string `json:"time_of_day"` // "HH:MM"
	Weekdays   []int  `json:"weekdays,omitempty"`
	Enabled    bool   `json:"enabled"`
}
