// Command token mints a session token for an existing user, for local testing of
// the session-protected endpoints and of persistence.
//
//	go run ./cmd/token -user <uuid> [-ttl 24h]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/alanyang/listingcraft/internal/adapter/auth"
	pgdb "github.com/alanyang/listingcraft/internal/adapter/postgres"
	pguser "github.com/alanyang/listingcraft/internal/adapter/postgres/user"
	"github.com/alanyang/listingcraft/internal/config"
)

func main() {
	userFlag := flag.String("user", "", "user UUID")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if err := run(*userFlag, *ttl); err != nil {
		slog.Error("token", "error", err)
		os.Exit(1)
	}
}

func run(userArg string, ttl time.Duration) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read .env: %w", err)
	}

	userID, err := uuid.Parse(userArg)
	if err != nil {
		return fmt.Errorf("invalid -user: %w", err)
	}

	cfgPath := os.Getenv("CONFIG_FILE")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgdb.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	users := pguser.New(pool)
	if _, err := users.GetByID(ctx, userID); err != nil {
		return fmt.Errorf("look up user: %w", err)
	}

	token, err := auth.NewJWTResolver(cfg.Auth.JWTSecret, users).Sign(userID, ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
