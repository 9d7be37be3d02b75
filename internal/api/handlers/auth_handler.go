package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/careloop/backend/internal/api/middleware"
	"github.com/careloop/backend/internal/domain/entities"
)

// AuthService defines the account operations used by the handler.
type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*entities.User, string, error)
	Login(ctx context.Context, email, password string) (*entities.User, string, error)
	GetUser(ctx context.Context, id string) (*entities.User, error)
}

// AuthHandler handles registration, login and the current-user endpoint.
type AuthHandler struct {
	service AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  *entities.User `json:"user"`
	Token string         `json:"token"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, token, err := h.service.Register(r.Context(), payload.Email, payload.Password, payload.FirstName, payload.LastName)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, token, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
