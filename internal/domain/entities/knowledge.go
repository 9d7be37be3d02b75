package entities

// ResponseSource marks where an assistant reply came from.
type ResponseSource string

const (
	// SourceEmergency is returned when an emergency keyword matched.
	SourceEmergency ResponseSource = "emergency"

	// SourceKnowledgeBase is returned for a local knowledge table match.
	SourceKnowledgeBase ResponseSource = "knowledge_base"

	// SourceAI is returned for a reply produced by a remote model.
	SourceAI ResponseSource = "ai"

	// SourceFallback is returned when nothing matched or the remote call failed.
	SourceFallback ResponseSource = "fallback"
)

// KnowledgeEntry is one canned answer in the fixed knowledge table.
// Keywords are lowercase and matched as substrings of the user text.
type KnowledgeEntry struct {
	TopicKey    string
	Keywords    []string
	Response    string
	IsEmergency bool
}

// KeywordMatch is the outcome of matching user text against the knowledge table.
type KeywordMatch struct {
	Text     string         `json:"text"`
	Source   ResponseSource `json:"source"`
	TopicKey string         `json:"topic_key,omitempty"`
	Score    int            `json:"score"`
}
