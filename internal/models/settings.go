package models

// Settings is the app-wide settings object stored as one section.
//
// APIKey, OnboardingCompleted, AutoBackupEnabled and BackupFolderURI are
// installation-local: an imported snapshot must never overwrite the first
// three and must never carry the last one at all.
type Settings struct {
	Theme               string `json:"theme,omitempty"`
	Locale              string `json:"locale,omitempty"`
	ReminderSound       string `json:"reminder_sound,omitempty"`
	WeekStartsOn        int    `json:"week_starts_on"`
	DailyReviewTime     string `json:"daily_review_time,omitempty"`
	APIKey              string `json:"api_key,omitempty"`
	OnboardingCompleted bool   `json:"onboarding_completed"`
	AutoBackupEnabled   bool   `json:"auto_backup_enabled"`
	BackupFolderURI     string `json:"backup_folder_uri,omitempty"`
}

// AIContextProfile is the profile the AI mentor prompts are assembled from.
type AIContextProfile struct {
	DisplayName   string   `json:"display_name,omitempty"`
	Pronouns      string   `json:"pronouns,omitempty"`
	FocusAreas    []string `json:"focus_areas,omitempty"`
	Tone          string   `json:"tone,omitempty"`
	Boundaries    []string `json:"boundaries,omitempty"`
	SummaryDigest string   `json:"summary_digest,omitempty"`
}

// OnboardingState tracks which onboarding steps have been completed.
type OnboardingState struct {
	CompletedSteps []string `json:"completed_steps,omitempty"`
	SkippedAt      string   `json:"skipped_at,omitempty"`
}
