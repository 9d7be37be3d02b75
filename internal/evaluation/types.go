package evaluation

import "time"

// Surface identifies which assistant surface a golden case exercises.
type Surface string

const (
	SurfaceChat   Surface = "chat"   // keyword responder / chat orchestrator
	SurfaceTriage Surface = "triage" // rule-based triage verdicts
)

// ValidSurfaces returns all valid surface values.
func ValidSurfaces() []Surface {
	return []Surface{SurfaceChat, SurfaceTriage}
}

// IsValid checks if the surface value is one of the defined constants.
func (s Surface) IsValid() bool {
	switch s {
	case SurfaceChat, SurfaceTriage:
		return true
	}
	return false
}

// GoldenCase represents a labeled intake with its expected outcome.
type GoldenCase struct {
	ID      string  `json:"id"`
	Surface Surface `json:"surface"`

	// Chat cases.
	Message         string `json:"message,omitempty"`
	ExpectTopic     string `json:"expect_topic,omitempty"`
	ExpectEmergency bool   `json:"expect_emergency,omitempty"`

	// Triage cases.
	MainSymptom        string   `json:"main_symptom,omitempty"`
	Duration           string   `json:"duration,omitempty"`
	Severity           int      `json:"severity,omitempty"`
	AdditionalSymptoms []string `json:"additional_symptoms,omitempty"`
	ExpectUrgency      string   `json:"expect_urgency,omitempty"`

	Difficulty string `json:"difficulty"` // easy, medium, hard
}

// CaseResult holds the evaluation outcome for a single golden case.
type CaseResult struct {
	CaseID            string
	Surface           Surface
	Correct           bool
	ExpectedEmergency bool
	GotEmergency      bool
	GotTopic          string
	GotUrgency        string
	Violations        []string
	Latency           time.Duration
}

// Summary holds aggregate metrics across all golden cases.
type Summary struct {
	TotalCases          int
	Accuracy            float64
	EmergencyRecall     float64
	GuardrailViolations int
	AvgLatency          time.Duration
	BySurface           map[Surface]*SurfaceSummary
}

// SurfaceSummary holds metrics grouped by surface.
type SurfaceSummary struct {
	Count    int
	Accuracy float64
}
