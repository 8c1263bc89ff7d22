//go:build integration

package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alanyang/listingcraft/internal/adapter/postgres"
	domainuser "github.com/alanyang/listingcraft/internal/domain/user"
)

// SetupTestDB connects to the test database and applies the embedded migrations.
// It skips the test if TEST_DATABASE_URL is not set.
// Each call uses the same DB; callers isolate by creating their own user.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := postgres.Connect(ctx, url)
	if err != nil {
		t.Fatalf("connect to test DB: %v", err)
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("migrate test DB: %v", err)
	}

	t.Cleanup(func() { pool.Close() })
	return pool
}

// CreateUser inserts a fresh account row, standing in for the sign-up flow.
func CreateUser(t *testing.T, pool *pgxpool.Pool) domainuser.User {
	t.Helper()
	u := domainuser.User{
		ID:    uuid.New(),
		Email: "agent-" + uuid.NewString()[:8] + "@example.com",
		Name:  "Test Agent",
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (id, email, name) VALUES ($1, $2, $3) RETURNING created_at`,
		u.ID, u.Email, u.Name,
	).Scan(&u.CreatedAt)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return u
}
