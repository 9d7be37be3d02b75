package services

import (
	"strings"

	"github.com/careloop/backend/internal/domain/entities"
)

// KeywordResponder matches free-text questions against the fixed knowledge
// table. It is pure: no state beyond the table, no I/O, and it never fails.
type KeywordResponder struct {
	entries []entities.KnowledgeEntry
}

// NewKeywordResponder creates a responder over the built-in knowledge table.
func NewKeywordResponder() *KeywordResponder {
	return &KeywordResponder{entries: knowledgeBase}
}

// newKeywordResponderWithEntries is used by tests to supply a small table.
func newKeywordResponderWithEntries(entries []entities.KnowledgeEntry) *KeywordResponder {
	return &KeywordResponder{entries: entries}
}

// Respond returns the best-matching canned answer for userText.
//
// Emergency entries are checked first and short-circuit: a single emergency
// keyword wins no matter how many other keywords match. Otherwise the entry
// with the strictly highest keyword hit count wins, ties keeping the entry
// that appears first in the table. Empty input matches nothing and falls
// through to the generic fallback.
func (r *KeywordResponder) Respond(userText string) entities.KeywordMatch {
	text := strings.ToLower(userText)

	for _, entry := range r.entries {
		if !entry.IsEmergency {
			continue
		}
		for _, kw := range entry.Keywords {
			if strings.Contains(text, kw) {
				return entities.KeywordMatch{
					Text:     entry.Response,
					Source:   entities.SourceEmergency,
					TopicKey: entry.TopicKey,
					Score:    1,
				}
			}
		}
	}

	bestScore := 0
	var best *entities.KnowledgeEntry
	for i := range r.entries {
		entry := &r.entries[i]
		score := 0
		for _, kw := range entry.Keywords {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = entry
		}
	}

	if best != nil {
		return entities.KeywordMatch{
			Text:     best.Response,
			Source:   entities.SourceKnowledgeBase,
			TopicKey: best.TopicKey,
			Score:    bestScore,
		}
	}

	return entities.KeywordMatch{
		Text:   fallbackResponse,
		Source: entities.SourceFallback,
	}
}
