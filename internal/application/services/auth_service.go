package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/careloop/backend/internal/domain/entities"
	"github.com/careloop/backend/internal/domain/repositories"
	apperrors "github.com/careloop/backend/pkg/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// AuthService handles registration, login and token verification.
type AuthService struct {
	users     repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new auth service.
func NewAuthService(users repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register creates an account and returns the user plus a signed token.
// Emails are unique; the password hash never leaves this layer.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (*entities.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", apperrors.NewValidationError("a valid email is required")
	}
	if len(password) < minPasswordLength {
		return nil, "", apperrors.NewValidationError("password must be at least 8 characters")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", apperrors.NewConflictError("an account with this email already exists")
	} else if !isNotFound(err) {
		return nil, "", apperrors.NewInternalError("failed to check existing account", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperrors.NewInternalError("failed to hash password", err)
	}

	now := time.Now().UTC()
	user := &entities.User{
		ID:           uuid.New().String(),
		Email:        email,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user plus a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			// Same response as a bad password so emails cannot be probed.
			return nil, "", apperrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, "", apperrors.NewInternalError("failed to load account", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.NewUnauthorizedError("invalid email or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetUser loads a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	return s.users.GetByID(ctx, id)
}

// VerifyToken validates a bearer token and returns the user ID it carries.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.NewUnauthorizedError("invalid or expired token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", apperrors.NewUnauthorizedError("invalid token claims")
	}
	return claims.Subject, nil
}

func (s *AuthService) issueToken(user *entities.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		Issuer:    "careloop",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.NewInternalError("failed to sign token", err)
	}
	return signed, nil
}

func isNotFound(err error) bool {
	var appErr *apperrors.AppError
	return errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeNotFound
}
