package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/careloop/backend/internal/adapters/database"
	"github.com/careloop/backend/internal/domain/entities"
	"github.com/careloop/backend/internal/infrastructure/clients/postgres"
	"github.com/careloop/backend/pkg/config"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	first_name    TEXT NOT NULL DEFAULT '',
	last_name     TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS posts (
	id          UUID PRIMARY KEY,
	board       TEXT NOT NULL,
	author_id   UUID NOT NULL REFERENCES users (id),
	author_name TEXT NOT NULL DEFAULT '',
	title       TEXT NOT NULL,
	body        TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS posts_board_created_at_idx ON posts (board, created_at DESC);

CREATE TABLE IF NOT EXISTS bookings (
	id                UUID PRIMARY KEY,
	user_id           UUID NOT NULL REFERENCES users (id),
	doctor_id         TEXT NOT NULL,
	starts_at         TIMESTAMPTZ NOT NULL,
	reason            TEXT,
	confirmation_code TEXT NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS bookings_user_id_starts_at_idx ON bookings (user_id, starts_at DESC);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				posts,
				bookings,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	userRepo := database.NewUserAdapter(pgClient)
	postRepo := database.NewPostAdapter(pgClient)

	// 1. Seed a demo account
	hash, err := bcrypt.GenerateFromPassword([]byte("careloop-demo"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	demoUser := &entities.User{
		ID:           uuid.New().String(),
		Email:        "demo@careloop.health",
		FirstName:    "Demo",
		LastName:     "User",
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if existing, err := userRepo.GetByEmail(ctx, demoUser.Email); err == nil {
		demoUser = existing
		log.Printf("Demo user already present: %s", demoUser.Email)
	} else if err := userRepo.Create(ctx, demoUser); err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	// 2. Seed starter posts per board
	posts := []entities.Post{
		{Board: "general", Title: "Welcome to the community", Body: "Introduce yourself and share what brought you here. Be kind: no medical advice, just experiences."},
		{Board: "general", Title: "How do you track your symptoms?", Body: "I started a simple notes file before doctor visits and it changed my appointments completely."},
		{Board: "nutrition", Title: "Meal prep on a budget", Body: "Lentils, frozen vegetables and eggs got me through a month of balanced dinners under budget."},
		{Board: "fitness", Title: "Couch to 30 minutes walking", Body: "Sharing my six-week plan for going from zero activity to a daily half-hour walk."},
		{Board: "mental-health", Title: "Small wins thread", Body: "Post one small thing you did for your mental health this week."},
		{Board: "chronic-conditions", Title: "Living with hypertension", Body: "What home monitoring routine works for you? Mine is morning readings before coffee."},
	}

	created := 0
	for i := range posts {
		post := posts[i]
		post.ID = uuid.New().String()
		post.AuthorID = demoUser.ID
		post.AuthorName = "Careloop Team"
		post.CreatedAt = time.Now().UTC().Add(time.Duration(-i) * time.Hour)

		if err := postRepo.Create(ctx, &post); err != nil {
			log.Printf("Failed to create post %q: %v", post.Title, err)
			continue
		}
		created++
	}

	log.Printf("Seeding completed: demo user %s, %d posts", demoUser.Email, created)
}
