package evaluation

import (
	"fmt"
	"strings"

	"github.com/careloop/backend/internal/domain/entities"
)

type GuardrailConfig struct {
	RequiredActions int
	MaxReplyLength  int
}

type Guardrails struct {
	config GuardrailConfig
}

func NewGuardrails(config GuardrailConfig) *Guardrails {
	if config.RequiredActions <= 0 {
		config.RequiredActions = 3
	}
	if config.MaxReplyLength <= 0 {
		config.MaxReplyLength = 2000
	}
	return &Guardrails{config: config}
}

// CheckReply reports invariant violations in a chat reply.
func (g *Guardrails) CheckReply(reply *entities.ChatReply) []string {
	if reply == nil {
		return []string{"nil reply"}
	}

	var violations []string
	if strings.TrimSpace(reply.Text) == "" {
		violations = append(violations, "empty reply text")
	}
	if len(reply.Text) > g.config.MaxReplyLength {
		violations = append(violations, fmt.Sprintf("reply text exceeds %d characters", g.config.MaxReplyLength))
	}
	return violations
}

// CheckVerdict reports invariant violations in a triage verdict.
func (g *Guardrails) CheckVerdict(verdict entities.TriageVerdict) []string {
	var violations []string
	if len(verdict.Actions) != g.config.RequiredActions {
		violations = append(violations, fmt.Sprintf("verdict has %d actions, want %d", len(verdict.Actions), g.config.RequiredActions))
	}
	if strings.TrimSpace(verdict.Recommendation) == "" {
		violations = append(violations, "empty recommendation")
	}
	if verdict.Color == "" || verdict.Icon == "" {
		violations = append(violations, "missing color or icon")
	}
	return violations
}
