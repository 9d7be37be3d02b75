package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/careloop/backend/internal/domain/entities"
	"github.com/careloop/backend/internal/domain/providers"
)

const (
	chatRateLimit     = 20
	chatRateWindow    = time.Minute
	maxChatMessageLen = 2000
)

// ChatOrchestrator defines the chat operation used by the handler.
type ChatOrchestrator interface {
	GetResponse(ctx context.Context, userText string, mode entities.ChatMode) *entities.ChatReply
}

// ChatHandler handles assistant chat messages with per-IP rate limiting.
type ChatHandler struct {
	orchestrator ChatOrchestrator
	cache        providers.CacheProvider
	local        *localRateLimiter
}

// NewChatHandler creates a new chat handler. cache may be nil, in which case
// rate limiting is tracked in process memory.
func NewChatHandler(orchestrator ChatOrchestrator, cache providers.CacheProvider) *ChatHandler {
	return &ChatHandler{
		orchestrator: orchestrator,
		cache:        cache,
		local:        newLocalRateLimiter(),
	}
}

type chatRequest struct {
	Message string `json:"message"`
	Mode    string `json:"mode"`
}

type chatResponse struct {
	Text                  string `json:"text"`
	Source                string `json:"source"`
	TopicKey              string `json:"topic_key,omitempty"`
	MatchScore            int    `json:"match_score"`
	RateLimitedForSeconds int    `json:"rate_limited_for_seconds,omitempty"`
}

// SendMessage handles POST /api/chat
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.Message = strings.TrimSpace(payload.Message)
	if payload.Message == "" {
		respondWithError(w, http.StatusBadRequest, "message is required")
		return
	}
	if len(payload.Message) > maxChatMessageLen {
		respondWithError(w, http.StatusBadRequest, "message is too long")
		return
	}

	mode := entities.ChatModeAI
	if payload.Mode == string(entities.ChatModeKnowledgeBase) {
		mode = entities.ChatModeKnowledgeBase
	}

	key := "chat:rate:" + clientIP(r)
	allowed, retryAfter := h.allowRequest(r.Context(), key)
	if !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	reply := h.orchestrator.GetResponse(r.Context(), payload.Message, mode)

	respondWithJSON(w, http.StatusOK, chatResponse{
		Text:                  reply.Text,
		Source:                string(reply.Source),
		TopicKey:              reply.TopicKey,
		MatchScore:            reply.MatchScore,
		RateLimitedForSeconds: reply.RateLimitedSeconds(),
	})
}

func (h *ChatHandler) allowRequest(ctx context.Context, key string) (bool, time.Duration) {
	if h.cache == nil {
		return h.local.allow(key, chatRateLimit, chatRateWindow)
	}

	state := rateLimitState{}
	if data, err := h.cache.Get(ctx, key); err == nil {
		_ = json.Unmarshal(data, &state)
	}

	if state.Count >= chatRateLimit {
		return false, chatRateWindow
	}

	state.Count++
	data, _ := json.Marshal(state)
	_ = h.cache.Set(ctx, key, data, int(chatRateWindow.Seconds()))
	return true, chatRateWindow
}

type rateLimitState struct {
	Count int `json:"count"`
}

// localRateLimiter is the in-process fallback when no shared cache is wired.
type localRateLimiter struct {
	mu     sync.Mutex
	states map[string]*localRateState
}

type localRateState struct {
	count   int
	resetAt time.Time
}

func newLocalRateLimiter() *localRateLimiter {
	return &localRateLimiter{
		states: make(map[string]*localRateState),
	}
}

func (l *localRateLimiter) allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.states[key]
	if !ok || now.After(state.resetAt) {
		state = &localRateState{count: 0, resetAt: now.Add(window)}
		l.states[key] = state
	}

	if state.count >= limit {
		retryAfter := time.Until(state.resetAt)
		if retryAfter < 0 {
			retryAfter = window
		}
		return false, retryAfter
	}

	state.count++
	return true, window
}
