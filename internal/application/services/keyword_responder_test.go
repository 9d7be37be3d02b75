package services

import (
	"testing"

	"github.com/careloop/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func TestKeywordResponder_HydrationQuestion(t *testing.T) {
	responder := NewKeywordResponder()

	match := responder.Respond("How much water should I drink daily?")

	assert.Equal(t, entities.SourceKnowledgeBase, match.Source)
	assert.Equal(t, "hydration", match.TopicKey)
	assert.GreaterOrEqual(t, match.Score, 1)
	assert.Contains(t, match.Text, "liters")
}

func TestKeywordResponder_EmergencyShortCircuit(t *testing.T) {
	responder := NewKeywordResponder()

	// "sleep" and "tired" would score the sleep entry, but a single
	// emergency keyword must win regardless.
	match := responder.Respond("I am tired, can't sleep, and now I have chest pain")

	assert.Equal(t, entities.SourceEmergency, match.Source)
	assert.Equal(t, "emergency", match.TopicKey)
	assert.Contains(t, match.Text, "emergency")
}

func TestKeywordResponder_HighestScoreWins(t *testing.T) {
	responder := newKeywordResponderWithEntries([]entities.KnowledgeEntry{
		{TopicKey: "one_hit", Keywords: []string{"alpha"}, Response: "one"},
		{TopicKey: "two_hits", Keywords: []string{"beta", "gamma"}, Response: "two"},
	})

	match := responder.Respond("alpha beta gamma")

	assert.Equal(t, "two_hits", match.TopicKey)
	assert.Equal(t, 2, match.Score)
}

func TestKeywordResponder_TieKeepsFirstEntry(t *testing.T) {
	responder := newKeywordResponderWithEntries([]entities.KnowledgeEntry{
		{TopicKey: "first", Keywords: []string{"alpha"}, Response: "first answer"},
		{TopicKey: "second", Keywords: []string{"beta"}, Response: "second answer"},
	})

	match := responder.Respond("alpha and beta together")

	assert.Equal(t, "first", match.TopicKey)
	assert.Equal(t, 1, match.Score)
}

func TestKeywordResponder_CaseInsensitive(t *testing.T) {
	responder := NewKeywordResponder()

	match := responder.Respond("WHAT HELPS A HEADACHE?")

	assert.Equal(t, "headache", match.TopicKey)
}

func TestKeywordResponder_NoMatchFallsBack(t *testing.T) {
	responder := NewKeywordResponder()

	match := responder.Respond("tell me about quantum chromodynamics")

	assert.Equal(t, entities.SourceFallback, match.Source)
	assert.Empty(t, match.TopicKey)
	assert.Equal(t, 0, match.Score)
	assert.Equal(t, fallbackResponse, match.Text)
}

func TestKeywordResponder_EmptyInputFallsBack(t *testing.T) {
	responder := NewKeywordResponder()

	match := responder.Respond("")

	assert.Equal(t, entities.SourceFallback, match.Source)
}
