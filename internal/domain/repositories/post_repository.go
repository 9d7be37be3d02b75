package repositories

import (
	"context"

	"github.com/careloop/backend/internal/domain/entities"
)

// PostRepository defines the interface for community board persistence
type PostRepository interface {
	// Create stores a new post
	Create(ctx context.Context, post *entities.Post) error

	// ListByBoard retrieves posts for a board, newest first
	ListByBoard(ctx context.Context, board string, limit, offset int) ([]*entities.Post, error)
}
