package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/careloop/backend/internal/application/queue"
	"github.com/careloop/backend/internal/domain/entities"
	"github.com/careloop/backend/internal/domain/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorFunc func(ctx context.Context, req providers.TextRequest) (string, error)

func (f generatorFunc) Generate(ctx context.Context, req providers.TextRequest) (string, error) {
	return f(ctx, req)
}

// fastQueue keeps pacing and backoff out of test runtime.
func fastQueue() *queue.Queue {
	return queue.New(
		queue.WithMinGap(0),
		queue.WithMaxRetries(1),
		queue.WithBackoff(time.Millisecond, 2*time.Millisecond),
	)
}

func throttledError() error {
	return &providers.GenerationError{
		Provider:   "openai",
		StatusCode: http.StatusTooManyRequests,
		Err:        errors.New("rate limit exceeded"),
	}
}

func TestChatService_EmergencyBypassesModePreference(t *testing.T) {
	var calls int32
	generator := generatorFunc(func(ctx context.Context, req providers.TextRequest) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "should not be used", nil
	})
	svc := NewChatService(NewKeywordResponder(), fastQueue(), generator)

	reply := svc.GetResponse(context.Background(), "I have chest pain and difficulty breathing", entities.ChatModeAI)

	require.NotNil(t, reply)
	assert.Equal(t, entities.SourceEmergency, reply.Source)
	assert.Contains(t, reply.Text, "emergency")
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "emergency replies must never reach the remote model")
}

func TestChatService_LocalMatchPreemptsRemoteCall(t *testing.T) {
	var calls int32
	generator := generatorFunc(func(ctx context.Context, req providers.TextRequest) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "remote answer", nil
	})
	svc := NewChatService(NewKeywordResponder(), fastQueue(), generator)

	reply := svc.GetResponse(context.Background(), "how much water should i drink", entities.ChatModeAI)

	assert.Equal(t, entities.SourceKnowledgeBase, reply.Source)
	assert.Equal(t, "hydration", reply.TopicKey)
	assert.GreaterOrEqual(t, reply.MatchScore, 1)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestChatService_KnowledgeBaseModeNeverCallsRemote(t *testing.T) {
	var calls int32
	generator := generatorFunc(func(ctx context.Context, req providers.TextRequest) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "remote answer", nil
	})
	svc := NewChatService(NewKeywordResponder(), fastQueue(), generator)

	reply := svc.GetResponse(context.Background(), "tell me about quantum chromodynamics", entities.ChatModeKnowledgeBase)

	assert.Equal(t, entities.SourceFallback, reply.Source)
	assert.Equal(t, fallbackResponse, reply.Text)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestChatService_AIModeUsesRemoteOnNoLocalMatch(t *testing.T) {
	generator := generatorFunc(func(ctx context.Context, req providers.TextRequest) (string, error) {
		assert.NotEmpty(t, req.System)
		return "Here is some general information.", nil
	})
	svc := NewChatService(NewKeywordResponder(), fastQueue(), generator)

	reply := svc.GetResponse(context.Background(), "tell me about quantum chromodynamics", entities.ChatModeAI)

	assert.Equal(t, entities.SourceAI, reply.Source)
	assert.Equal(t, "Here is some general information.", reply.Text)
	assert.Equal(t, 0, reply.RateLimitedSeconds())
}

func TestChatService_ThrottledFailureDegradesWithHint(t *testing.T) {
	generator := generatorFunc(func(ctx context.Context, req providers.TextRequest) (string, error) {
		return "", throttledError()
	})
	svc := NewChatService(NewKeywordResponder(), fastQueue(), generator)

	reply := svc.GetResponse(context.Background(), "tell me about quantum chromodynamics", entities.ChatModeAI)

	assert.Equal(t, entities.SourceFallback, reply.Source)
	assert.Equal(t, fallbackResponse, reply.Text)
	assert.Equal(t, 10, reply.RateLimitedSeconds())
}

func TestChatService_NonThrottleFailureDegradesWithoutHint(t *testing.T) {
	generator := generatorFunc(func(ctx context.Context, req providers.TextRequest) (string, error) {
		return "", &providers.GenerationError{
			Provider:   "openai",
			StatusCode: http.StatusUnauthorized,
			Err:        errors.New("invalid api key"),
		}
	})
	svc := NewChatService(NewKeywordResponder(), fastQueue(), generator)

	reply := svc.GetResponse(context.Background(), "tell me about quantum chromodynamics", entities.ChatModeAI)

	assert.Equal(t, entities.SourceFallback, reply.Source)
	assert.Equal(t, 0, reply.RateLimitedSeconds())
}

func TestChatService_NilGeneratorDegradesToFallback(t *testing.T) {
	svc := NewChatService(NewKeywordResponder(), fastQueue(), nil)

	reply := svc.GetResponse(context.Background(), "tell me about quantum chromodynamics", entities.ChatModeAI)

	assert.Equal(t, entities.SourceFallback, reply.Source)
	assert.Equal(t, fallbackResponse, reply.Text)
}

func TestChatService_PanickingGeneratorDegradesToFallback(t *testing.T) {
	generator := generatorFunc(func(ctx context.Context, req providers.TextRequest) (string, error) {
		panic("provider client blew up")
	})
	svc := NewChatService(NewKeywordResponder(), fastQueue(), generator)

	reply := svc.GetResponse(context.Background(), "tell me about quantum chromodynamics", entities.ChatModeAI)

	require.NotNil(t, reply)
	assert.Equal(t, entities.SourceFallback, reply.Source)
	assert.Equal(t, fallbackResponse, reply.Text)
	assert.Equal(t, 0, reply.RateLimitedSeconds())
}

func TestChatService_OrchestratorPanicYieldsGenericReply(t *testing.T) {
	// A nil queue with a configured generator panics inside the orchestrator
	// itself; the reply must still be usable.
	generator := generatorFunc(func(ctx context.Context, req providers.TextRequest) (string, error) {
		return "remote answer", nil
	})
	svc := NewChatService(NewKeywordResponder(), nil, generator)

	reply := svc.GetResponse(context.Background(), "tell me about quantum chromodynamics", entities.ChatModeAI)

	require.NotNil(t, reply)
	assert.Equal(t, entities.SourceFallback, reply.Source)
	assert.Equal(t, technicalDifficultyResponse, reply.Text)
	assert.Equal(t, 15, reply.RateLimitedSeconds())
}
