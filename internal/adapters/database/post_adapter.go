package database

import (
	"context"

	"github.com/careloop/backend/internal/domain/entities"
	"github.com/careloop/backend/internal/domain/repositories"
	"github.com/careloop/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/careloop/backend/pkg/errors"
	"github.com/doug-martin/goqu/v9"
)

// PostAdapter implements PostRepository in Postgres.
type PostAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPostAdapter creates a new community post adapter.
func NewPostAdapter(client *postgres.Client) repositories.PostRepository {
	return &PostAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new post row.
func (a *PostAdapter) Create(ctx context.Context, post *entities.Post) error {
	record := goqu.Record{
		"id":          post.ID,
		"board":       post.Board,
		"author_id":   post.AuthorID,
		"author_name": post.AuthorName,
		"title":       post.Title,
		"body":        post.Body,
		"created_at":  post.CreatedAt,
	}

	query, args, err := a.db.Insert("posts").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build post insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create post", err)
	}

	return nil
}

// ListByBoard retrieves a board's posts, newest first.
func (a *PostAdapter) ListByBoard(ctx context.Context, board string, limit, offset int) ([]*entities.Post, error) {
	query, args, err := a.db.Select(
		"id", "board", "author_id", "author_name", "title", "body", "created_at",
	).From("posts").
		Where(goqu.Ex{"board": board}).
		Order(goqu.I("created_at").Desc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build post list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list posts", err)
	}
	defer rows.Close()

	posts := []*entities.Post{}
	for rows.Next() {
		post := &entities.Post{}
		if err := rows.Scan(
			&post.ID,
			&post.Board,
			&post.AuthorID,
			&post.AuthorName,
			&post.Title,
			&post.Body,
			&post.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan post", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate posts", err)
	}

	return posts, nil
}
