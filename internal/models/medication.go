package models

import "time"

// Medication is a tracked prescription or OTC drug.
type Medication struct {
	Base
	Name     string     `json:"name"`
	Dosage   string     `json:"dosage,omitempty"`
	Schedule string     `json:"schedule,omitempty"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	Active   bool       `json:"active"`
}

// MedicationLog is one confirmed (or skipped) dose.
type MedicationLog struct {
	Base
	MedicationID string    `json:"medication_id"`
	TakenAt      time.Time `json:"taken_at"`
	Skipped      bool      `json:"skipped"`
	Note         string    `json:"note,omitempty"`
}

// Supplement is a tracked non-prescription supplement.
type Supplement struct {
	Base
	Name   string `json:"name"`
	Dosage string `json:"dosage,omitempty"`
	Active bool   `json:"active"`
}

// Symptom is a user-defined symptom being observed.
type Symptom struct {
	Base
	Name string `json:"name"`
}

// SymptomLog is one dated symptom observation with severity.
type SymptomLog struct {
	Base
	SymptomID  string    `json:"symptom_id"`
	RecordedAt time.Time `json:"recorded_at"`
	Severity   int       `json:"severity"` // 1..5
	Note       string    `json:"note,omitempty"`
}
