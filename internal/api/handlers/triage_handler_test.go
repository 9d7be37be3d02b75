package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/careloop/backend/internal/api/handlers"
	"github.com/careloop/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTriageOrchestrator struct {
	lastAnswers entities.TriageAnswers
	verdict     entities.TriageVerdict
}

func (s *stubTriageOrchestrator) Assess(ctx context.Context, answers entities.TriageAnswers) entities.TriageVerdict {
	s.lastAnswers = answers
	return s.verdict
}

func TestTriageHandler_Assess_Success(t *testing.T) {
	orchestrator := &stubTriageOrchestrator{
		verdict: entities.TriageVerdict{
			Urgency:        entities.UrgencyMedium,
			Recommendation: "Book a visit within 48 hours.",
			Actions:        []string{"a", "b", "c"},
			Color:          "orange",
			Icon:           "clock",
		},
	}
	handler := handlers.NewTriageHandler(orchestrator)

	body := `{"main_symptom":"headache","duration":"1_3_days","severity":6,"additional_symptoms":["nausea"]}`
	req := httptest.NewRequest("POST", "/api/triage", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Assess(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "headache", orchestrator.lastAnswers.MainSymptom)
	assert.Equal(t, 6, orchestrator.lastAnswers.Severity)

	var verdict entities.TriageVerdict
	require.NoError(t, json.NewDecoder(w.Body).Decode(&verdict))
	assert.Equal(t, entities.UrgencyMedium, verdict.Urgency)
	assert.Len(t, verdict.Actions, 3)
}

func TestTriageHandler_Assess_MissingMainSymptom(t *testing.T) {
	handler := handlers.NewTriageHandler(&stubTriageOrchestrator{})

	body := `{"main_symptom":"  ","duration":"1_3_days","severity":6}`
	req := httptest.NewRequest("POST", "/api/triage", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Assess(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTriageHandler_Assess_UnknownDuration(t *testing.T) {
	handler := handlers.NewTriageHandler(&stubTriageOrchestrator{})

	body := `{"main_symptom":"headache","duration":"forever","severity":6}`
	req := httptest.NewRequest("POST", "/api/triage", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Assess(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTriageHandler_Assess_SeverityOutOfRange(t *testing.T) {
	handler := handlers.NewTriageHandler(&stubTriageOrchestrator{})

	body := `{"main_symptom":"headache","duration":"1_3_days","severity":11}`
	req := httptest.NewRequest("POST", "/api/triage", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Assess(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
