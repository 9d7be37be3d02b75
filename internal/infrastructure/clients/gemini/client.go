package gemini

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/careloop/backend/internal/domain/providers"
	"github.com/careloop/backend/internal/infrastructure/clients/llm"
	"github.com/careloop/backend/pkg/config"
	"google.golang.org/genai"
)

// Client implements the triage text-generation provider on the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a new Gemini client.
func NewClient(ctx context.Context, cfg *config.GeminiConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// Generate sends one prompt and returns the model's text reply.
func (c *Client) Generate(ctx context.Context, req providers.TextRequest) (string, error) {
	generateConfig := &genai.GenerateContentConfig{}
	if req.System != "" {
		generateConfig.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Temperature > 0 {
		generateConfig.Temperature = genai.Ptr(req.Temperature)
	}
	if req.MaxTokens > 0 {
		generateConfig.MaxOutputTokens = int32(req.MaxTokens)
	}

	content := genai.NewContentFromText(req.Prompt, genai.RoleUser)

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, []*genai.Content{content}, generateConfig)
	if err != nil {
		genErr := wrapError(err)
		llm.RecordRequest(ctx, "gemini", c.model, genErr.StatusCode, time.Since(start), err)
		return "", genErr
	}

	llm.RecordRequest(ctx, "gemini", c.model, 0, time.Since(start), nil)

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &providers.GenerationError{
			Provider: "gemini",
			Err:      errors.New("response has no candidates"),
		}
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	if text.Len() == 0 {
		return "", &providers.GenerationError{
			Provider: "gemini",
			Err:      errors.New("response has no text parts"),
		}
	}

	return strings.TrimSpace(text.String()), nil
}

func wrapError(err error) *providers.GenerationError {
	genErr := &providers.GenerationError{Provider: "gemini", Err: err}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		genErr.StatusCode = apiErr.Code
	}
	return genErr
}
