package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/careloop/backend/internal/domain/entities"
	"github.com/careloop/backend/internal/domain/providers"
	"github.com/careloop/backend/internal/domain/repositories"
	apperrors "github.com/careloop/backend/pkg/errors"
	"github.com/google/uuid"
)

const boardCacheTTLSeconds = 60

// communityBoards is the fixed set of boards.
var communityBoards = map[string]struct{}{
	"general":            {},
	"nutrition":          {},
	"fitness":            {},
	"mental-health":      {},
	"chronic-conditions": {},
}

// CommunityService handles community board posts with short-lived cached
// listings.
type CommunityService struct {
	repo  repositories.PostRepository
	cache providers.CacheProvider
}

// NewCommunityService creates a new community service. cache may be nil.
func NewCommunityService(repo repositories.PostRepository, cache providers.CacheProvider) *CommunityService {
	return &CommunityService{repo: repo, cache: cache}
}

// CreatePost validates and stores a post, invalidating the board's cached
// first page.
func (s *CommunityService) CreatePost(ctx context.Context, post *entities.Post) error {
	post.Board = strings.ToLower(strings.TrimSpace(post.Board))
	post.Title = strings.TrimSpace(post.Title)
	post.Body = strings.TrimSpace(post.Body)

	if _, ok := communityBoards[post.Board]; !ok {
		return apperrors.NewValidationError("unknown board")
	}
	if post.Title == "" || post.Body == "" {
		return apperrors.NewValidationError("title and body are required")
	}
	if post.AuthorID == "" {
		return apperrors.NewUnauthorizedError("sign in to post")
	}

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, boardCacheKey(post.Board, 20, 0))
	}
	return nil
}

// ListBoard returns a board's posts, newest first, served from cache when
// fresh.
func (s *CommunityService) ListBoard(ctx context.Context, board string, limit, offset int) ([]*entities.Post, error) {
	board = strings.ToLower(strings.TrimSpace(board))
	if _, ok := communityBoards[board]; !ok {
		return nil, apperrors.NewNotFoundError("unknown board")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	key := boardCacheKey(board, limit, offset)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil {
			var cached []*entities.Post
			if json.Unmarshal(data, &cached) == nil {
				return cached, nil
			}
		}
	}

	posts, err := s.repo.ListByBoard(ctx, board, limit, offset)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(posts); err == nil {
			_ = s.cache.Set(ctx, key, data, boardCacheTTLSeconds)
		}
	}
	return posts, nil
}

// Boards lists the available board names.
func (s *CommunityService) Boards() []string {
	return []string{"general", "nutrition", "fitness", "mental-health", "chronic-conditions"}
}

func boardCacheKey(board string, limit, offset int) string {
	return fmt.Sprintf("community:%s:%d:%d", board, limit, offset)
}
