package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/careloop/backend/internal/api/middleware"
	"github.com/careloop/backend/internal/domain/entities"
)

// CommunityService defines the board operations used by the handler.
type CommunityService interface {
	Boards() []string
	CreatePost(ctx context.Context, post *entities.Post) error
	ListBoard(ctx context.Context, board string, limit, offset int) ([]*entities.Post, error)
}

// CommunityHandler handles community board endpoints.
type CommunityHandler struct {
	service CommunityService
}

// NewCommunityHandler creates a new community handler.
func NewCommunityHandler(service CommunityService) *CommunityHandler {
	return &CommunityHandler{service: service}
}

// ListBoards handles GET /api/community/boards
func (h *CommunityHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"boards": h.service.Boards(),
	})
}

// ListPosts handles GET /api/community/boards/{board}/posts
func (h *CommunityHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	board := r.PathValue("board")
	limit, offset := paginationParams(r)

	posts, err := h.service.ListBoard(r.Context(), board, limit, offset)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"board": board,
		"posts": posts,
		"count": len(posts),
	})
}

type createPostRequest struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	AuthorName string `json:"author_name"`
}

// CreatePost handles POST /api/community/boards/{board}/posts
func (h *CommunityHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var payload createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	post := &entities.Post{
		Board:      r.PathValue("board"),
		AuthorID:   middleware.UserIDFromContext(r.Context()),
		AuthorName: payload.AuthorName,
		Title:      payload.Title,
		Body:       payload.Body,
	}

	if err := h.service.CreatePost(r.Context(), post); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, post)
}
