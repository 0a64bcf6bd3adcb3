package models

import "time"

// JournalEntry is a free-form markdown journal page.
type JournalEntry struct {
	Base
	Date    time.Time `json:"date"`
	Title   string    `json:"title,omitempty"`
	Text    string    `json:"text"`
	Mood    string    `json:"mood,omitempty"`
	Tags    []string  `json:"tags,omitempty"`
	Starred bool      `json:"starred"`
}

// GratitudeEntry is a short daily gratitude note.
type GratitudeEntry struct {
	Base
	Date time.Time `json:"date"`
	Text string    `json:"text"`
}

// Affirmation is a user-authored or suggested affirmation phrase.
type Affirmation struct {
	Base
	Text     string `json:"text"`
	Favorite bool   `json:"favorite"`
}
