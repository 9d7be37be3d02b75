package evaluation

import (
	"context"
	"strings"
	"time"

	"github.com/careloop/backend/internal/domain/entities"
)

// ChatResponder answers one chat message.
type ChatResponder interface {
	GetResponse(ctx context.Context, userText string, mode entities.ChatMode) *entities.ChatReply
}

// TriageAssessor classifies one symptom intake.
type TriageAssessor interface {
	Assess(ctx context.Context, answers entities.TriageAnswers) entities.TriageVerdict
}

// Runner evaluates the local assistant layers against a set of golden cases.
// Chat cases run in knowledge-base mode so no remote calls are made.
type Runner struct {
	chat       ChatResponder
	triage     TriageAssessor
	guardrails *Guardrails
}

func NewRunner(chat ChatResponder, triage TriageAssessor) *Runner {
	return &Runner{
		chat:       chat,
		triage:     triage,
		guardrails: NewGuardrails(GuardrailConfig{}),
	}
}

func (r *Runner) Run(ctx context.Context, cases []GoldenCase) (*Summary, error) {
	summary := &Summary{
		BySurface: make(map[Surface]*SurfaceSummary),
	}

	results := make([]CaseResult, 0, len(cases))
	for _, gc := range cases {
		var result CaseResult
		switch gc.Surface {
		case SurfaceChat:
			result = r.runChatCase(ctx, gc)
		case SurfaceTriage:
			result = r.runTriageCase(ctx, gc)
		default:
			continue
		}
		results = append(results, result)
		r.updateSummary(summary, result)
	}

	summary.TotalCases = len(results)
	summary.Accuracy = Accuracy(results)
	summary.EmergencyRecall = EmergencyRecall(results)
	r.finalizeSummary(summary)

	return summary, nil
}

func (r *Runner) runChatCase(ctx context.Context, gc GoldenCase) CaseResult {
	start := time.Now()
	reply := r.chat.GetResponse(ctx, gc.Message, entities.ChatModeKnowledgeBase)
	latency := time.Since(start)

	result := CaseResult{
		CaseID:            gc.ID,
		Surface:           SurfaceChat,
		ExpectedEmergency: gc.ExpectEmergency,
		Violations:        r.guardrails.CheckReply(reply),
		Latency:           latency,
	}
	if reply == nil {
		return result
	}

	result.GotTopic = reply.TopicKey
	result.GotEmergency = reply.Source == entities.SourceEmergency

	if gc.ExpectEmergency {
		result.Correct = result.GotEmergency
	} else {
		result.Correct = reply.TopicKey == gc.ExpectTopic
	}
	return result
}

func (r *Runner) runTriageCase(ctx context.Context, gc GoldenCase) CaseResult {
	answers := entities.TriageAnswers{
		MainSymptom:        gc.MainSymptom,
		Duration:           entities.DurationBucket(gc.Duration),
		Severity:           gc.Severity,
		AdditionalSymptoms: gc.AdditionalSymptoms,
	}

	start := time.Now()
	verdict := r.triage.Assess(ctx, answers)
	latency := time.Since(start)

	return CaseResult{
		CaseID:            gc.ID,
		Surface:           SurfaceTriage,
		Correct:           strings.EqualFold(string(verdict.Urgency), gc.ExpectUrgency),
		ExpectedEmergency: strings.EqualFold(gc.ExpectUrgency, string(entities.UrgencyHigh)),
		GotEmergency:      verdict.Urgency == entities.UrgencyHigh,
		GotUrgency:        string(verdict.Urgency),
		Violations:        r.guardrails.CheckVerdict(verdict),
		Latency:           latency,
	}
}

func (r *Runner) updateSummary(s *Summary, res CaseResult) {
	s.AvgLatency += res.Latency
	s.GuardrailViolations += len(res.Violations)

	if _, ok := s.BySurface[res.Surface]; !ok {
		s.BySurface[res.Surface] = &SurfaceSummary{}
	}
	ss := s.BySurface[res.Surface]
	ss.Count++
	if res.Correct {
		ss.Accuracy++
	}
}

func (r *Runner) finalizeSummary(s *Summary) {
	if s.TotalCases > 0 {
		s.AvgLatency /= time.Duration(s.TotalCases)
	}

	for _, ss := range s.BySurface {
		if ss.Count > 0 {
			ss.Accuracy /= float64(ss.Count)
		}
	}
}
