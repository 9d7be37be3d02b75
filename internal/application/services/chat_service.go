package services

import (
	"context"
	"time"

	"github.com/careloop/backend/internal/application/queue"
	"github.com/careloop/backend/internal/domain/entities"
	"github.com/careloop/backend/internal/domain/providers"
	"github.com/rs/zerolog/log"
)

const chatSystemPrompt = `You are a friendly health information assistant for Careloop, a consumer health app.
Answer in plain, non-alarmist language a layperson can follow. Keep answers short (under 150 words).
Always remind the user that you provide general information, not a diagnosis, and that a healthcare
professional should be consulted for personal medical advice. If the user describes potentially
life-threatening symptoms, tell them to contact emergency services immediately.`

const technicalDifficultyResponse = "We're having technical difficulties answering right now. " +
	"Please try again in a moment. If this is urgent, contact a healthcare professional directly."

const (
	rateLimitedHint  = 10 * time.Second
	outerFailureHint = 15 * time.Second
)

// ChatService decides, per user message, between the local knowledge table
// and a remote model call routed through the outbound queue. It never
// surfaces an error: every failure degrades to a local answer plus a
// rate-limited UI hint.
type ChatService struct {
	responder *KeywordResponder
	queue     *queue.Queue
	generator providers.TextGenerator
}

// NewChatService creates a chat orchestrator. generator may be nil, in which
// case every AI-mode request degrades to the knowledge table.
func NewChatService(responder *KeywordResponder, q *queue.Queue, generator providers.TextGenerator) *ChatService {
	return &ChatService{
		responder: responder,
		queue:     q,
		generator: generator,
	}
}

// GetResponse answers one user message.
//
// Decision order: emergency matches bypass everything, including the mode
// preference. Knowledge-base mode, and any local match with score >= 1,
// answer from the table without a remote call. Only then is a remote call
// queued; on failure the reply degrades to the responder's text with a
// 10-second rate-limited hint after a throttled failure. A failure at this
// outer boundary itself yields a generic message with a 15-second hint.
func (s *ChatService) GetResponse(ctx context.Context, userText string, mode entities.ChatMode) (reply *entities.ChatReply) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("chat orchestrator failure")
			reply = &entities.ChatReply{
				Text:           technicalDifficultyResponse,
				Source:         entities.SourceFallback,
				RateLimitedFor: outerFailureHint,
			}
		}
	}()

	match := s.responder.Respond(userText)

	if match.Source == entities.SourceEmergency {
		return &entities.ChatReply{
			Text:       match.Text,
			Source:     entities.SourceEmergency,
			TopicKey:   match.TopicKey,
			MatchScore: match.Score,
		}
	}

	if mode == entities.ChatModeKnowledgeBase || match.Score >= 1 {
		return &entities.ChatReply{
			Text:       match.Text,
			Source:     match.Source,
			TopicKey:   match.TopicKey,
			MatchScore: match.Score,
		}
	}

	if s.generator == nil {
		return &entities.ChatReply{
			Text:   match.Text,
			Source: entities.SourceFallback,
		}
	}

	text, err := s.queue.Submit(ctx, func(ctx context.Context) (string, error) {
		return s.generator.Generate(ctx, providers.TextRequest{
			System:      chatSystemPrompt,
			Prompt:      userText,
			Temperature: 0.7,
			MaxTokens:   500,
		})
	})
	if err != nil {
		log.Warn().Err(err).Msg("remote chat call failed, degrading to knowledge table")
		degraded := &entities.ChatReply{
			Text:   match.Text,
			Source: entities.SourceFallback,
		}
		if providers.IsRateLimited(err) {
			degraded.RateLimitedFor = rateLimitedHint
		}
		return degraded
	}

	return &entities.ChatReply{
		Text:   text,
		Source: entities.SourceAI,
	}
}
