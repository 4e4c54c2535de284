package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"elibrary/internal/common/security"
	"elibrary/internal/domain/model"
	"elibrary/internal/platform/config"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Bootstrap credentials, matching the original test-user script. Change them
// before exposing a deployment.
var seedUsers = []struct {
	email    string
	password string
	role     string
}{
	{"test@example.com", "password123", model.RoleUser},
	{"admin@example.com", "admin123", model.RoleAdmin},
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id              UUID PRIMARY KEY,
    email           TEXT NOT NULL UNIQUE,
    hashed_password TEXT NOT NULL,
    role            TEXT NOT NULL DEFAULT 'user',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS books (
    id          UUID PRIMARY KEY,
    title       TEXT NOT NULL,
    author      TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    year        INTEGER,
    genre       TEXT NOT NULL DEFAULT '',
    language    TEXT NOT NULL DEFAULT 'English',
    slug        TEXT NOT NULL,
    owner_id    UUID REFERENCES users(id) ON DELETE SET NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Seed is a one-shot, idempotent bootstrap: it applies the schema and
// inserts the test and admin users if they are absent. Running it twice is
// harmless.
func main() {
	config.Load()

	db, err := sql.Open("pgx", config.AppConfig.DBConnStr)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	fmt.Println("Connected to PostgreSQL.")

	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Fatalf("Error applying schema: %v", err)
	}
	fmt.Println("Schema applied.")

	for _, u := range seedUsers {
		created, err := ensureUser(ctx, db, u.email, u.password, u.role)
		if err != nil {
			log.Fatalf("Error seeding %s: %v", u.email, err)
		}
		if created {
			fmt.Printf("Created %s user %s (password: %s)\n", u.role, u.email, u.password)
		} else {
			fmt.Printf("User %s already exists, skipping.\n", u.email)
		}
	}
}

func ensureUser(ctx context.Context, db *sql.DB, email, password, role string) (bool, error) {
	var existing string
	err := db.QueryRowContext(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&existing)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	hashed, err := security.HashPassword(password)
	if err != nil {
		return false, err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, email, hashed_password, role) VALUES ($1, $2, $3, $4)`,
		uuid.NewString(), email, hashed, role,
	)
	if err != nil {
		return false, err
	}
	return true, nil
}
