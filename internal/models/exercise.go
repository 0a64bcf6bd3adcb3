package models

import "time"

// ExerciseLog is one completed exercise activity.
type ExerciseLog struct {
	Base
	Date         time.Time `json:"date"`
	WorkoutID    string    `json:"workout_id,omitempty"`
	Activity     string    `json:"activity"`
	DurationMins int       `json:"duration_mins"`
	Calories     int       `json:"calories,omitempty"`
	Distance     int       `json:"distance_meters,omitempty"`
}

// Workout is a reusable named exercise plan.
type Workout struct {
	Base
	Name      string   `json:"name"`
	Exercises []string `json:"exercises,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// StepCount is a daily aggregated step total.
type StepCount struct {
	Base
	Date  time.Time `json:"date"`
	Steps int       `json:"steps"`
}

// FocusSession is a completed focus/pomodoro block.
type FocusSession struct {
	Base
	StartedAt    time.Time `json:"started_at"`
	DurationMins int       `json:"duration_mins"`
	Label        string    `json:"label,omitempty"`
}

// MeditationLog is a completed guided or unguided meditation.
type MeditationLog struct {
	Base
	Date         time.Time `json:"date"`
	DurationMins int       `json:"duration_mins"`
	Program      string    `json:"program,omitempty"`
}
