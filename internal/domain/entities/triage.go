package entities

// DurationBucket is how long the main symptom has been present.
type DurationBucket string

const (
	DurationUnderDay  DurationBucket = "less_than_a_day"
	DurationFewDays   DurationBucket = "1_3_days"
	DurationWeek      DurationBucket = "4_7_days"
	DurationFewWeeks  DurationBucket = "1_4_weeks"
	DurationOverMonth DurationBucket = "more_than_a_month"
)

// UrgencyLevel is the coarse triage classification.
type UrgencyLevel string

const (
	UrgencyHigh   UrgencyLevel = "HIGH"
	UrgencyMedium UrgencyLevel = "MEDIUM"
	UrgencyLow    UrgencyLevel = "LOW"
)

// TriageAnswers is one completed symptom-intake session.
type TriageAnswers struct {
	MainSymptom        string         `json:"main_symptom"`
	Duration           DurationBucket `json:"duration"`
	Severity           int            `json:"severity"` // 1-10; <=0 defaults to 5
	AdditionalSymptoms []string       `json:"additional_symptoms"`
}

// TriageVerdict is the assessment returned to the intake flow. Actions always
// holds exactly three entries, whether the verdict came from the remote model
// or the rule table.
type TriageVerdict struct {
	Urgency        UrgencyLevel `json:"urgency"`
	Recommendation string       `json:"recommendation"`
	Actions        []string     `json:"actions"`
	Color          string       `json:"color"`
	Icon           string       `json:"icon"`
}
