package entities

import "time"

// Post is a community board message.
type Post struct {
	ID         string    `json:"id" db:"id"`
	Board      string    `json:"board" db:"board"`
	AuthorID   string    `json:"author_id" db:"author_id"`
	AuthorName string    `json:"author_name" db:"author_name"`
	Title      string    `json:"title" db:"title"`
	Body       string    `json:"body" db:"body"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
