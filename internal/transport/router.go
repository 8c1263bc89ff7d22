package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alanyang/listingcraft/internal/domain/event"
	porteventbus "github.com/alanyang/listingcraft/internal/port/eventbus"
	portidempotency "github.com/alanyang/listingcraft/internal/port/idempotency"
	portratelimit "github.com/alanyang/listingcraft/internal/port/ratelimit"
	portsession "github.com/alanyang/listingcraft/internal/port/session"
	contentsvc "github.com/alanyang/listingcraft/internal/service/content"
	gensvc "github.com/alanyang/listingcraft/internal/service/generation"
	projectsvc "github.com/alanyang/listingcraft/internal/service/project"

	"github.com/alanyang/listingcraft/internal/transport/authn"
	contenthandler "github.com/alanyang/listingcraft/internal/transport/content"
	generatehandler "github.com/alanyang/listingcraft/internal/transport/generate"
	projecthandler "github.com/alanyang/listingcraft/internal/transport/project"
	wshandler "github.com/alanyang/listingcraft/internal/transport/ws"
)

// Deps is everything the HTTP surface needs. Limiter, Idempotency, MCP and Ping
// are optional.
type Deps struct {
	Generation  *gensvc.Service
	Projects    *projectsvc.Service
	Contents    *contentsvc.Service
	Sessions    portsession.Resolver
	Limiter     portratelimit.Limiter
	Idempotency portidempotency.Store
	EventBus    porteventbus.EventBus
	MCP         http.Handler
	Ping        func(ctx context.Context) error

	CookieName     string
	AllowedOrigins []string
}

func NewRouter(ctx context.Context, d Deps) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger())
	r.Use(Metrics())
	r.Use(CORS(d.AllowedOrigins))

	r.GET("/healthz", healthz(d.Ping))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	gen := api.Group("")
	if d.Limiter != nil {
		gen.Use(RateLimit(d.Limiter))
	}
	if d.Idempotency != nil {
		gen.Use(Idempotency(d.Idempotency, d.Sessions, d.CookieName))
	}
	generatehandler.Register(gen, d.Generation, d.CookieName)

	requireSession := authn.RequireSession(d.Sessions, d.CookieName)
	projecthandler.Register(api.Group("/projects", requireSession), d.Projects)
	contenthandler.Register(api.Group("/contents", requireSession), d.Contents)

	hub := wshandler.NewHub(d.AllowedOrigins)
	hub.Register(api.Group("/ws", requireSession))

	if d.MCP != nil {
		r.Any("/mcp", gin.WrapH(d.MCP))
	}

	// One LISTEN connection per domain channel; the hub routes each event to its owner.
	for _, ch := range []event.Channel{event.ChannelContent, event.ChannelProject} {
		if _, err := d.EventBus.Subscribe(ctx, ch, func(_ context.Context, e event.Event) {
			hub.Publish(e)
		}); err != nil {
			slog.Error("failed to subscribe channel to WS hub", "channel", ch, "error", err)
		}
	}

	return r
}

func healthz(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			if err := ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
