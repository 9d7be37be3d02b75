package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/careloop/backend/internal/application/queue"
	"github.com/careloop/backend/internal/domain/entities"
	"github.com/careloop/backend/internal/domain/providers"
	"github.com/rs/zerolog/log"
)

const triageSystemPrompt = `You are a triage assistant for a consumer health app. Given a symptom intake,
classify how urgently the person should seek care. Return ONLY valid JSON with this schema:
{
  "urgency_level": "HIGH" | "MEDIUM" | "LOW",
  "recommendation": string (1-2 short sentences, plain language, non-alarmist),
  "actions": string[] (exactly 3 concrete next steps)
}
Err on the side of caution: when in doubt, choose the higher urgency. Do not diagnose.`

// defaultSeverity is used when the intake arrives without a usable severity.
const defaultSeverity = 5

// emergencySymptoms force a HIGH rule verdict when the main symptom matches.
var emergencySymptoms = []string{
	"chest pain",
	"difficulty breathing",
	"severe bleeding",
	"loss of consciousness",
	"sudden weakness",
	"slurred speech",
}

// urgencyIntensifiers force a HIGH rule verdict when present in any
// additional symptom.
var urgencyIntensifiers = []string{"severe", "extreme", "unbearable", "emergency", "worst"}

type verdictTemplate struct {
	recommendation string
	actions        [3]string
	color          string
	icon           string
}

var verdictTemplates = map[entities.UrgencyLevel]verdictTemplate{
	entities.UrgencyHigh: {
		recommendation: "Your answers suggest symptoms that should be checked urgently. Please seek medical care now.",
		actions: [3]string{
			"Call your local emergency number or go to the nearest emergency room",
			"Do not drive yourself if you feel faint or short of breath",
			"Bring a list of your current medications",
		},
		color: "red",
		icon:  "alert-triangle",
	},
	entities.UrgencyMedium: {
		recommendation: "Your symptoms deserve attention soon. Book a medical appointment within the next day or two.",
		actions: [3]string{
			"Schedule a telemedicine or in-person visit within 24-48 hours",
			"Monitor your symptoms and note any changes",
			"Rest and stay hydrated in the meantime",
		},
		color: "orange",
		icon:  "clock",
	},
	entities.UrgencyLow: {
		recommendation: "Your symptoms can usually be managed at home with self-care.",
		actions: [3]string{
			"Use supportive self-care such as rest and fluids",
			"Watch for new or worsening symptoms over the next few days",
			"See a doctor if symptoms persist beyond a week",
		},
		color: "green",
		icon:  "check-circle",
	},
}

// TriageService turns a completed symptom intake into a verdict. It first
// computes a rule-based verdict so a fallback is ready instantly, then
// attempts a remote structured assessment through the outbound queue. Any
// failure on the remote path returns the rule verdict; the caller never sees
// an error.
type TriageService struct {
	queue     *queue.Queue
	generator providers.TextGenerator
}

// NewTriageService creates a triage orchestrator. generator may be nil, in
// which case every assessment is rule-based.
func NewTriageService(q *queue.Queue, generator providers.TextGenerator) *TriageService {
	return &TriageService{
		queue:     q,
		generator: generator,
	}
}

// Assess classifies one intake session.
func (s *TriageService) Assess(ctx context.Context, answers entities.TriageAnswers) (verdict entities.TriageVerdict) {
	ruleVerdict := s.ruleBasedVerdict(answers)

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("triage orchestrator failure")
			verdict = ruleVerdict
		}
	}()

	if s.generator == nil {
		return ruleVerdict
	}

	reply, err := s.queue.Submit(ctx, func(ctx context.Context) (string, error) {
		return s.generator.Generate(ctx, providers.TextRequest{
			System:      triageSystemPrompt,
			Prompt:      buildTriagePrompt(answers),
			Temperature: 0.2,
			MaxTokens:   400,
		})
	})
	if err != nil {
		log.Warn().Err(err).Msg("remote triage call failed, using rule verdict")
		return ruleVerdict
	}

	remote, err := parseTriageReply(reply)
	if err != nil {
		log.Warn().Err(err).Msg("unparseable triage reply, using rule verdict")
		return ruleVerdict
	}

	return remote
}

// ruleBasedVerdict is the fixed severity-threshold fallback.
func (s *TriageService) ruleBasedVerdict(answers entities.TriageAnswers) entities.TriageVerdict {
	severity := answers.Severity
	if severity <= 0 {
		severity = defaultSeverity
	}

	level := entities.UrgencyLow
	switch {
	case severity >= 8 || isEmergencySymptom(answers.MainSymptom) || hasIntensifier(answers.AdditionalSymptoms):
		level = entities.UrgencyHigh
	case severity >= 5:
		level = entities.UrgencyMedium
	}

	return buildVerdict(level)
}

func isEmergencySymptom(symptom string) bool {
	s := strings.ToLower(strings.TrimSpace(symptom))
	if s == "" {
		return false
	}
	for _, emergency := range emergencySymptoms {
		if strings.Contains(s, emergency) {
			return true
		}
	}
	return false
}

func hasIntensifier(symptoms []string) bool {
	for _, symptom := range symptoms {
		s := strings.ToLower(symptom)
		for _, word := range urgencyIntensifiers {
			if strings.Contains(s, word) {
				return true
			}
		}
	}
	return false
}

func buildVerdict(level entities.UrgencyLevel) entities.TriageVerdict {
	tmpl := verdictTemplates[level]
	return entities.TriageVerdict{
		Urgency:        level,
		Recommendation: tmpl.recommendation,
		Actions:        []string{tmpl.actions[0], tmpl.actions[1], tmpl.actions[2]},
		Color:          tmpl.color,
		Icon:           tmpl.icon,
	}
}

func buildTriagePrompt(answers entities.TriageAnswers) string {
	severity := answers.Severity
	if severity <= 0 {
		severity = defaultSeverity
	}
	return fmt.Sprintf(
		"Main symptom: %s\nDuration: %s\nSeverity (1-10): %d\nAdditional symptoms: %s\n",
		answers.MainSymptom,
		answers.Duration,
		severity,
		strings.Join(answers.AdditionalSymptoms, ", "),
	)
}

type triageReply struct {
	UrgencyLevel   string   `json:"urgency_level"`
	Recommendation string   `json:"recommendation"`
	Actions        []string `json:"actions"`
}

// parseTriageReply interprets the model's structured reply. A reply with an
// unrecognized urgency level, a missing recommendation or fewer than three
// actions is rejected so the rule verdict is used instead; extra actions are
// truncated to keep the three-action invariant.
func parseTriageReply(raw string) (entities.TriageVerdict, error) {
	cleaned := stripMarkdownFences(raw)

	var reply triageReply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		return entities.TriageVerdict{}, fmt.Errorf("failed to parse triage reply: %w", err)
	}

	level := entities.UrgencyLevel(strings.ToUpper(strings.TrimSpace(reply.UrgencyLevel)))
	tmpl, ok := verdictTemplates[level]
	if !ok {
		return entities.TriageVerdict{}, fmt.Errorf("unrecognized urgency level %q", reply.UrgencyLevel)
	}
	if strings.TrimSpace(reply.Recommendation) == "" {
		return entities.TriageVerdict{}, fmt.Errorf("triage reply missing recommendation")
	}
	if len(reply.Actions) < 3 {
		return entities.TriageVerdict{}, fmt.Errorf("triage reply has %d actions, need 3", len(reply.Actions))
	}

	return entities.TriageVerdict{
		Urgency:        level,
		Recommendation: strings.TrimSpace(reply.Recommendation),
		Actions:        reply.Actions[:3],
		Color:          tmpl.color,
		Icon:           tmpl.icon,
	}, nil
}

// stripMarkdownFences removes a ```json ... ``` wrapper some models add.
func stripMarkdownFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}
