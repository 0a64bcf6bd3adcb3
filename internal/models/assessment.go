package models

import "time"

// Assessment is a clinical questionnaire definition (PHQ-9, GAD-7, custom).
type Assessment struct {
	Base
	Key       string   `json:"key"`
	Title     string   `json:"title"`
	Questions []string `json:"questions,omitempty"`
}

// AssessmentResult is one completed questionnaire with the total score.
type AssessmentResult struct {
	Base
	AssessmentID string    `json:"assessment_id"`
	TakenAt      time.Time `json:"taken_at"`
	Answers      []int     `json:"answers,omitempty"`
	Score        int       `json:"score"`
}

// Mentor is a human or AI mentoring persona configured by the user.
type Mentor struct {
	Base
	Name   string `json:"name"`
	Kind   string `json:"kind"` // "human", "ai"
	Focus  string `json:"focus,omitempty"`
	Active bool   `json:"active"`
}

// MentorSession is one recorded mentoring conversation or meeting.
type MentorSession struct {
	Base
	MentorID string    `json:"mentor_id"`
	HeldAt   time.Time `json:"held_at"`
	Summary  string    `json:"summary,omitempty"`
}

// MentorNote is a follow-up note attached to a mentor.
type MentorNote struct {
	Base
	MentorID string `json:"mentor_id"`
	Text     string `json:"text"`
}
