package entities

import "time"

// ChatMode is the caller's preference for answering a chat message.
type ChatMode string

const (
	// ChatModeKnowledgeBase answers from the local knowledge table only.
	ChatModeKnowledgeBase ChatMode = "knowledge_base"

	// ChatModeAI prefers the remote model when no confident local match exists.
	ChatModeAI ChatMode = "ai"
)

// ChatReply is the assistant's answer to one user message. The orchestrator
// never surfaces errors; a degraded reply still carries text plus UI hints.
type ChatReply struct {
	Text           string         `json:"text"`
	Source         ResponseSource `json:"source"`
	TopicKey       string         `json:"topic_key,omitempty"`
	MatchScore     int            `json:"match_score"`
	RateLimitedFor time.Duration  `json:"-"`
}

// RateLimitedSeconds is the rate-limited UI hint in whole seconds.
func (r *ChatReply) RateLimitedSeconds() int {
	return int(r.RateLimitedFor / time.Second)
}
