package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// TextRequest is a single prompt sent to a remote text-generation provider.
type TextRequest struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// TextGenerator is implemented by each remote LLM client. Implementations
// wrap provider failures in *GenerationError so callers can classify them.
type TextGenerator interface {
	Generate(ctx context.Context, req TextRequest) (string, error)
}

// GenerationError is a failed remote text-generation call. StatusCode is the
// provider's HTTP status when one was received, 0 otherwise.
type GenerationError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *GenerationError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s request failed with status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsRateLimited reports whether err carries a throttling status. This is the
// default retry classification for the outbound request queue.
func IsRateLimited(err error) bool {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}
