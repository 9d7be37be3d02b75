package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/careloop/backend/internal/domain/entities"
	apperrors "github.com/careloop/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUserRepo struct {
	byID    map[string]*entities.User
	byEmail map[string]*entities.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		byID:    make(map[string]*entities.User),
		byEmail: make(map[string]*entities.User),
	}
}

func (r *memoryUserRepo) Create(ctx context.Context, user *entities.User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return apperrors.NewConflictError("email already registered")
	}
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id string) (*entities.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return user, nil
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return user, nil
}

func newTestAuthService() (*AuthService, *memoryUserRepo) {
	repo := newMemoryUserRepo()
	return NewAuthService(repo, "test-secret", time.Hour), repo
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Jane@Example.com", "correct-horse", "Jane", "Doe")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, token)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	logged, loginToken, err := svc.Login(ctx, "jane@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, loginToken)
}

func TestAuthService_RegisterRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "not-an-email", "correct-horse", "Jane", "Doe")
	require.Error(t, err)
	assert.True(t, isValidation(err))

	_, _, err = svc.Register(ctx, "jane@example.com", "short", "Jane", "Doe")
	require.Error(t, err)
	assert.True(t, isValidation(err))
}

func TestAuthService_RegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "jane@example.com", "correct-horse", "Jane", "Doe")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "JANE@example.com", "another-pass", "Jane", "Doe")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
}

func TestAuthService_LoginMasksWhichFieldWasWrong(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "jane@example.com", "correct-horse", "Jane", "Doe")
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, "jane@example.com", "wrong-password")
	_, _, unknownEmail := svc.Login(ctx, "nobody@example.com", "correct-horse")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthService_VerifyToken(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "jane@example.com", "correct-horse", "Jane", "Doe")
	require.NoError(t, err)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestAuthService_VerifyTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.VerifyToken("not.a.token")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
}

func TestAuthService_VerifyTokenRejectsWrongSecret(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	_, token, err := svc.Register(ctx, "jane@example.com", "correct-horse", "Jane", "Doe")
	require.NoError(t, err)

	other := NewAuthService(repo, "different-secret", time.Hour)
	_, err = other.VerifyToken(token)
	require.Error(t, err)
}

func TestAuthService_VerifyTokenRejectsExpired(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewAuthService(repo, "test-secret", -time.Minute)
	ctx := context.Background()

	_, token, err := svc.Register(ctx, "jane@example.com", "correct-horse", "Jane", "Doe")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	require.Error(t, err)
}

func isValidation(err error) bool {
	var appErr *apperrors.AppError
	return errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeValidation
}
