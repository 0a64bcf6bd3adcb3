package snapshot

import (
	"encoding/json"

	"github.com/wellspring-app/core/internal/models"
)

// SectionKey identifies one domain collection inside a snapshot. The set of
// keys is closed: every key the persistence store may carry is declared here,
// either in Sections (exported) or in ExcludedKeys (never exported). Writing
// through the store with a key outside both sets is rejected, so a new
// collection cannot be added without registering it.
type SectionKey string

const (
	SectionGoals                 SectionKey = "goals"
	SectionGoalProgress          SectionKey = "goal_progress"
	SectionMilestones            SectionKey = "milestones"
	SectionAchievements          SectionKey = "achievements"
	SectionHabits                SectionKey = "habits"
	SectionHabitLogs             SectionKey = "habit_logs"
	SectionReminders             SectionKey = "reminders"
	SectionJournalEntries        SectionKey = "journal_entries"
	SectionGratitudeEntries      SectionKey = "gratitude_entries"
	SectionAffirmations          SectionKey = "affirmations"
	SectionMoodReadings          SectionKey = "mood_readings"
	SectionPulseReadings         SectionKey = "pulse_readings"
	SectionEnergyReadings        SectionKey = "energy_readings"
	SectionSleepLogs             SectionKey = "sleep_logs"
	SectionWeightReadings        SectionKey = "weight_readings"
	SectionBloodPressureReadings SectionKey = "blood_pressure_readings"
	SectionGlucoseReadings       SectionKey = "glucose_readings"
	SectionNutritionLogs         SectionKey = "nutrition_logs"
	SectionWaterLogs             SectionKey = "water_logs"
	SectionMeals                 SectionKey = "meals"
	SectionRecipes               SectionKey = "recipes"
	SectionExerciseLogs          SectionKey = "exercise_logs"
	SectionWorkouts              SectionKey = "workouts"
	SectionStepCounts            SectionKey = "step_counts"
	SectionFocusSessions         SectionKey = "focus_sessions"
	SectionMeditationLogs        SectionKey = "meditation_logs"
	SectionMedications           SectionKey = "medications"
	SectionMedicationLogs        SectionKey = "medication_logs"
	SectionSupplements           SectionKey = "supplements"
	SectionSymptoms              SectionKey = "symptoms"
	SectionSymptomLogs           SectionKey = "symptom_logs"
	SectionAssessments           SectionKey = "assessments"
	SectionAssessmentResults     SectionKey = "assessment_results"
	SectionMentors               SectionKey = "mentors"
	SectionMentorSessions        SectionKey = "mentor_sessions"
	SectionMentorNotes           SectionKey = "mentor_notes"
	SectionSettings              SectionKey = "settings"
	SectionAIContextProfile      SectionKey = "ai_context_profile"
	SectionOnboardingState       SectionKey = "onboarding_state"
	SectionStreakCounter         SectionKey = "streak_counter"
	SectionLastReviewDate        SectionKey = "last_review_date"
)

// Installation-specific keys. They live in the store but are never exported,
// and an imported snapshot that still carries one (old exports did) has it
// stripped rather than restored.
const (
	SectionAPICredentials     SectionKey = "api_credentials"
	SectionBackupFolderURI    SectionKey = "backup_folder_uri"
	SectionDeviceRegistration SectionKey = "device_registration"
	SectionPushToken          SectionKey = "push_token"
)

// PayloadKind classifies how a section's value is encoded in the document.
type PayloadKind int

const (
	// KindList is an opaque string containing a JSON array of records.
	KindList PayloadKind = iota
	// KindObject is an opaque string containing one JSON object.
	KindObject
	// KindScalarInt is a bare JSON number.
	KindScalarInt
	// KindScalarString is a bare JSON string.
	KindScalarString
)

// Section describes one registered collection: its key, payload encoding,
// the statistics counter it feeds (empty = none) and its record decoder.
type Section struct {
	Key       SectionKey
	Kind      PayloadKind
	StatLabel string

	// decode parses a non-null payload into its typed records and returns
	// the record count (1 for objects). Used both for export statistics and
	// as the per-section admission check during import.
	decode func(data []byte) (int, error)
}

func listOf[T any]() func([]byte) (int, error) {
	return func(data []byte) (int, error) {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return 0, err
		}
		return len(items), nil
	}
}

func objectOf[T any]() func([]byte) (int, error) {
	return func(data []byte) (int, error) {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return 0, err
		}
		return 1, nil
	}
}

// Sections is the canonical ordered registry. Import iterates it in this
// order; export emits sections in this order. Order is part of the contract:
// it keeps artifacts diffable across exports.
var Sections = []Section{
	{Key: SectionGoals, Kind: KindList, StatLabel: "goals_total", decode: listOf[models.Goal]()},
	{Key: SectionGoalProgress, Kind: KindList, decode: listOf[models.GoalProgress]()},
	{Key: SectionMilestones, Kind: KindList, decode: listOf[models.Milestone]()},
	{Key: SectionAchievements, Kind: KindList, decode: listOf[models.Achievement]()},
	{Key: SectionHabits, Kind: KindList, StatLabel: "habits_total", decode: listOf[models.Habit]()},
	{Key: SectionHabitLogs, Kind: KindList, decode: listOf[models.HabitLog]()},
	{Key: SectionReminders, Kind: KindList, decode: listOf[models.Reminder]()},
	{Key: SectionJournalEntries, Kind: KindList, StatLabel: "journal_entries_total", decode: listOf[models.JournalEntry]()},
	{Key: SectionGratitudeEntries, Kind: KindList, decode: listOf[models.GratitudeEntry]()},
	{Key: SectionAffirmations, Kind: KindList, decode: listOf[models.Affirmation]()},
	{Key: SectionMoodReadings, Kind: KindList, StatLabel: "mood_readings_total", decode: listOf[models.MoodReading]()},
	{Key: SectionPulseReadings, Kind: KindList, decode: listOf[models.PulseReading]()},
	{Key: SectionEnergyReadings, Kind: KindList, decode: listOf[models.EnergyReading]()},
	{Key: SectionSleepLogs, Kind: KindList, decode: listOf[models.SleepLog]()},
	{Key: SectionWeightReadings, Kind: KindList, decode: listOf[models.WeightReading]()},
	{Key: SectionBloodPressureReadings, Kind: KindList, decode: listOf[models.BloodPressureReading]()},
	{Key: SectionGlucoseReadings, Kind: KindList, decode: listOf[models.GlucoseReading]()},
	{Key: SectionNutritionLogs, Kind: KindList, decode: listOf[models.NutritionLog]()},
	{Key: SectionWaterLogs, Kind: KindList, decode: listOf[models.WaterLog]()},
	{Key: SectionMeals, Kind: KindList, decode: listOf[models.Meal]()},
	{Key: SectionRecipes, Kind: KindList, decode: listOf[models.Recipe]()},
	{Key: SectionExerciseLogs, Kind: KindList, StatLabel: "exercise_logs_total", decode: listOf[models.ExerciseLog]()},
	{Key: SectionWorkouts, Kind: KindList, decode: listOf[models.Workout]()},
	{Key: SectionStepCounts, Kind: KindList, decode: listOf[models.StepCount]()},
	{Key: SectionFocusSessions, Kind: KindList, decode: listOf[models.FocusSession]()},
	{Key: SectionMeditationLogs, Kind: KindList, decode: listOf[models.MeditationLog]()},
	{Key: SectionMedications, Kind: KindList, StatLabel: "medications_total", decode: listOf[models.Medication]()},
	{Key: SectionMedicationLogs, Kind: KindList, decode: listOf[models.MedicationLog]()},
	{Key: SectionSupplements, Kind: KindList, decode: listOf[models.Supplement]()},
	{Key: SectionSymptoms, Kind: KindList, decode: listOf[models.Symptom]()},
	{Key: SectionSymptomLogs, Kind: KindList, decode: listOf[models.SymptomLog]()},
	{Key: SectionAssessments, Kind: KindList, decode: listOf[models.Assessment]()},
	{Key: SectionAssessmentResults, Kind: KindList, StatLabel: "assessment_results_total", decode: listOf[models.AssessmentResult]()},
	{Key: SectionMentors, Kind: KindList, decode: listOf[models.Mentor]()},
	{Key: SectionMentorSessions, Kind: KindList, decode: listOf[models.MentorSession]()},
	{Key: SectionMentorNotes, Kind: KindList, decode: listOf[models.MentorNote]()},
	{Key: SectionSettings, Kind: KindObject, decode: objectOf[models.Settings]()},
	{Key: SectionAIContextProfile, Kind: KindObject, StatLabel: "has_ai_context", decode: objectOf[models.AIContextProfile]()},
	{Key: SectionOnboardingState, Kind: KindObject, decode: objectOf[models.OnboardingState]()},
	{Key: SectionStreakCounter, Kind: KindScalarInt},
	{Key: SectionLastReviewDate, Kind: KindScalarString},
}

// ExcludedKeys are store keys that must never leave the device.
var ExcludedKeys = []SectionKey{
	SectionAPICredentials,
	SectionBackupFolderURI,
	SectionDeviceRegistration,
	SectionPushToken,
}

var sectionByKey = func() map[SectionKey]*Section {
	m := make(map[SectionKey]*Section, len(Sections))
	for i := range Sections {
		m[Sections[i].Key] = &Sections[i]
	}
	return m
}()

var excludedKeySet = func() map[SectionKey]struct{} {
	set := make(map[SectionKey]struct{}, len(ExcludedKeys))
	for _, k := range ExcludedKeys {
		set[k] = struct{}{}
	}
	return set
}()

// DecodePayload parses a non-null list or object payload, returning the
// record count. Sections without a decoder (scalars) accept any payload.
func (s *Section) DecodePayload(data []byte) (int, error) {
	if s.decode == nil {
		return 0, nil
	}
	return s.decode(data)
}

// SectionByKey returns the registered descriptor for an exported key.
func SectionByKey(key SectionKey) (*Section, bool) {
	s, ok := sectionByKey[key]
	return s, ok
}

// Exported reports whether key belongs to the exported section set.
func Exported(key SectionKey) bool {
	_, ok := sectionByKey[key]
	return ok
}

// Excluded reports whether key is registered as never-exported.
func Excluded(key SectionKey) bool {
	_, ok := excludedKeySet[key]
	return ok
}

// Known reports whether key is registered at all (exported or excluded).
// The persistence store rejects writes for unknown keys.
func Known(key SectionKey) bool {
	return Exported(key) || Excluded(key)
}
