package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/careloop/backend/internal/domain/entities"
)

// TriageOrchestrator defines the triage operation used by the handler.
type TriageOrchestrator interface {
	Assess(ctx context.Context, answers entities.TriageAnswers) entities.TriageVerdict
}

// TriageHandler handles symptom intake assessments.
type TriageHandler struct {
	orchestrator TriageOrchestrator
}

// NewTriageHandler creates a new triage handler.
func NewTriageHandler(orchestrator TriageOrchestrator) *TriageHandler {
	return &TriageHandler{orchestrator: orchestrator}
}

var validDurations = map[entities.DurationBucket]struct{}{
	entities.DurationUnderDay:  {},
	entities.DurationFewDays:   {},
	entities.DurationWeek:      {},
	entities.DurationFewWeeks:  {},
	entities.DurationOverMonth: {},
}

// Assess handles POST /api/triage
func (h *TriageHandler) Assess(w http.ResponseWriter, r *http.Request) {
	var answers entities.TriageAnswers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	answers.MainSymptom = strings.TrimSpace(answers.MainSymptom)
	if answers.MainSymptom == "" {
		respondWithError(w, http.StatusBadRequest, "main_symptom is required")
		return
	}
	if _, ok := validDurations[answers.Duration]; !ok {
		respondWithError(w, http.StatusBadRequest, "unknown duration bucket")
		return
	}
	if answers.Severity > 10 {
		respondWithError(w, http.StatusBadRequest, "severity must be between 1 and 10")
		return
	}

	verdict := h.orchestrator.Assess(r.Context(), answers)

	respondWithJSON(w, http.StatusOK, verdict)
}
