package openai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/careloop/backend/internal/domain/providers"
	"github.com/careloop/backend/internal/infrastructure/clients/llm"
	"github.com/careloop/backend/pkg/config"
	openai "github.com/sashabaranov/go-openai"
)

// Client implements the chat text-generation provider on the OpenAI
// chat-completions API.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenAI client.
func NewClient(cfg *config.OpenAIConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Generate sends one prompt and returns the model's text reply.
func (c *Client) Generate(ctx context.Context, req providers.TextRequest) (string, error) {
	messages := []openai.ChatCompletionMessage{}
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		genErr := wrapError(err)
		llm.RecordRequest(ctx, "openai", c.model, genErr.StatusCode, time.Since(start), err)
		return "", genErr
	}

	llm.RecordRequest(ctx, "openai", c.model, 0, time.Since(start), nil)

	if len(resp.Choices) == 0 {
		return "", &providers.GenerationError{
			Provider: "openai",
			Err:      errors.New("response has no choices"),
		}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func wrapError(err error) *providers.GenerationError {
	genErr := &providers.GenerationError{Provider: "openai", Err: err}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		genErr.StatusCode = apiErr.HTTPStatusCode
	}
	return genErr
}
