package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/careloop/backend/internal/domain/entities"
	"github.com/careloop/backend/internal/domain/repositories"
	"github.com/careloop/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/careloop/backend/pkg/errors"
	"github.com/doug-martin/goqu/v9"
)

// UserAdapter implements UserRepository in Postgres.
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter.
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new user row.
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	record := goqu.Record{
		"id":            user.ID,
		"email":         user.Email,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"password_hash": user.PasswordHash,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	}

	query, args, err := a.db.Insert("users").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build user insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID.
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return a.getByField(ctx, "id", id)
}

// GetByEmail retrieves a user by email.
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return a.getByField(ctx, "email", email)
}

func (a *UserAdapter) getByField(ctx context.Context, field, value string) (*entities.User, error) {
	query, args, err := a.db.Select(
		"id", "email", "first_name", "last_name", "password_hash",
		"created_at", "updated_at",
	).From("users").
		Where(goqu.Ex{field: value}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user query", err)
	}

	user := &entities.User{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with %s not found", field))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	return user, nil
}
