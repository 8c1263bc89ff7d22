package wire

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/alanyang/listingcraft/internal/adapter/auth"
	"github.com/alanyang/listingcraft/internal/adapter/llm/anthropic"
	"github.com/alanyang/listingcraft/internal/adapter/llm/openai"
	"github.com/alanyang/listingcraft/internal/adapter/memory"
	pgdb "github.com/alanyang/listingcraft/internal/adapter/postgres"
	pgcontent "github.com/alanyang/listingcraft/internal/adapter/postgres/content"
	pgeventbus "github.com/alanyang/listingcraft/internal/adapter/postgres/eventbus"
	pgidempotency "github.com/alanyang/listingcraft/internal/adapter/postgres/idempotency"
	pgproject "github.com/alanyang/listingcraft/internal/adapter/postgres/project"
	pguser "github.com/alanyang/listingcraft/internal/adapter/postgres/user"
	redisadapter "github.com/alanyang/listingcraft/internal/adapter/redis"
	"github.com/alanyang/listingcraft/internal/config"
	portcompletion "github.com/alanyang/listingcraft/internal/port/completion"
	portratelimit "github.com/alanyang/listingcraft/internal/port/ratelimit"

	contentsvc "github.com/alanyang/listingcraft/internal/service/content"
	gensvc "github.com/alanyang/listingcraft/internal/service/generation"
	projectsvc "github.com/alanyang/listingcraft/internal/service/project"

	"github.com/alanyang/listingcraft/internal/transport"
	mcptransport "github.com/alanyang/listingcraft/internal/transport/mcp"
)

// Version is reported by the MCP server handshake.
const Version = "1.0.0"

const (
	// memoryLimiterTTL is how long an idle client's bucket is kept in process.
	memoryLimiterTTL = 10 * time.Minute
	purgeInterval    = time.Hour
)

// App holds the top-level resources needed to run and gracefully stop the server.
type App struct {
	Pool          *pgxpool.Pool
	Redis         *goredis.Client
	Server        *http.Server
	GenerationSvc *gensvc.Service
}

// Close releases the connection pools. Call after Server.Shutdown and
// GenerationSvc.Wait so background saves can finish.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
	a.Pool.Close()
}

// Build is the composition root: the only place concrete types are wired to their
// interface dependencies.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	// ── Database ─────────────────────────────────────────────────────────────
	pool, err := pgdb.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if cfg.Database.Migrate {
		if err := pgdb.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrating database: %w", err)
		}
	}

	// ── Adapters ─────────────────────────────────────────────────────────────
	projectRepo := pgproject.New(pool)
	contentRepo := pgcontent.New(pool)
	userRepo := pguser.New(pool)
	eventBus := pgeventbus.New(pool)
	sessions := auth.NewJWTResolver(cfg.Auth.JWTSecret, userRepo)

	client, err := newCompletionClient(cfg.LLM)
	if err != nil {
		pool.Close()
		return nil, err
	}

	limiter, rdb, err := newLimiter(ctx, cfg)
	if err != nil {
		pool.Close()
		return nil, err
	}

	// ── Services ─────────────────────────────────────────────────────────────
	genSvc := gensvc.NewService(client, cfg.LLM.Timeout, sessions, projectRepo, contentRepo, eventBus)
	projectSvcInstance := projectsvc.NewService(projectRepo, eventBus)
	contentSvcInstance := contentsvc.NewService(contentRepo, eventBus)

	// ── Transport ─────────────────────────────────────────────────────────────
	deps := transport.Deps{
		Generation:     genSvc,
		Projects:       projectSvcInstance,
		Contents:       contentSvcInstance,
		Sessions:       sessions,
		Limiter:        limiter,
		EventBus:       eventBus,
		Ping:           pool.Ping,
		CookieName:     cfg.Auth.CookieName,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}
	if cfg.Idempotency.Enabled {
		idem := pgidempotency.New(pool, cfg.Idempotency.Retention)
		deps.Idempotency = idem
		startPurger(ctx, idem, purgeInterval)
	}
	if cfg.MCP.Enabled {
		deps.MCP = mcptransport.New(genSvc, Version).Handler()
	}
	router := transport.NewRouter(ctx, deps)

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("application wired",
		"port", cfg.Server.Port,
		"llm_provider", client.Provider(),
		"rate_limit", cfg.RateLimit.Enabled,
		"idempotency", cfg.Idempotency.Enabled,
		"mcp", cfg.MCP.Enabled,
	)

	return &App{
		Pool:          pool,
		Redis:         rdb,
		Server:        server,
		GenerationSvc: genSvc,
	}, nil
}

func newCompletionClient(cfg config.LLMConfig) (portcompletion.Client, error) {
	switch cfg.Provider {
	case "openai":
		return openai.New(openai.Config{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL}), nil
	case "anthropic":
		return anthropic.New(anthropic.Config{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// newLimiter returns nil when rate limiting is off. Redis is used when a URL is
// configured so limits hold across replicas.
func newLimiter(ctx context.Context, cfg *config.Config) (portratelimit.Limiter, *goredis.Client, error) {
	if !cfg.RateLimit.Enabled {
		return nil, nil, nil
	}
	if cfg.Redis.URL == "" {
		return memory.NewLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, memoryLimiterTTL), nil, nil
	}
	rdb, err := redisadapter.Connect(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return redisadapter.NewLimiter(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst), rdb, nil
}
