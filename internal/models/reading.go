package models

import "time"

// MoodReading is a point-in-time mood score with optional context.
type MoodReading struct {
	Base
	RecordedAt time.Time `json:"recorded_at"`
	Score      int       `json:"score"` // 1..10
	Note       string    `json:"note,omitempty"`
	Triggers   []string  `json:"triggers,omitempty"`
}

// PulseReading is a resting heart-rate sample.
type PulseReading struct {
	Base
	RecordedAt time.Time `json:"recorded_at"`
	BPM        int       `json:"bpm"`
	Source     string    `json:"source,omitempty"` // "manual", "wearable"
}

// EnergyReading is a subjective energy-level sample.
type EnergyReading struct {
	Base
	RecordedAt time.Time `json:"recorded_at"`
	Level      int       `json:"level"` // 1..5
}

// SleepLog records one night of sleep.
type SleepLog struct {
	Base
	Date         time.Time `json:"date"`
	DurationMins int       `json:"duration_mins"`
	Quality      int       `json:"quality,omitempty"` // 1..5
	Note         string    `json:"note,omitempty"`
}

// WeightReading is a body-weight sample in grams.
type WeightReading struct {
	Base
	RecordedAt time.Time `json:"recorded_at"`
	Grams      int       `json:"grams"`
}

// BloodPressureReading is a systolic/diastolic sample.
type BloodPressureReading struct {
	Base
	RecordedAt time.Time `json:"recorded_at"`
	Systolic   int       `json:"systolic"`
	Diastolic  int       `json:"diastolic"`
}

// GlucoseReading is a blood-glucose sample in mg/dL.
type GlucoseReading struct {
	Base
	RecordedAt time.Time `json:"recorded_at"`
	MgDL       int       `json:"mg_dl"`
	Fasting    bool      `json:"fasting"`
}
