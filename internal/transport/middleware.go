package transport

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alanyang/listingcraft/internal/metrics"
	portidempotency "github.com/alanyang/listingcraft/internal/port/idempotency"
	portratelimit "github.com/alanyang/listingcraft/internal/port/ratelimit"
	portsession "github.com/alanyang/listingcraft/internal/port/session"
	"github.com/alanyang/listingcraft/internal/transport/authn"
)

const (
	requestIDHeader   = "X-Request-ID"
	idempotencyHeader = "Idempotency-Key"
	replayedHeader    = "Idempotent-Replayed"

	maxIdempotencyKeyLen = 255
)

// noisyPaths are high-frequency paths logged at Debug to keep Info clean.
var noisyPaths = map[string]bool{
	"/healthz": true,
	"/metrics": true,
	"/api/ws":  true,
}

// RequestID propagates the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if c.Request.Method == http.MethodOptions {
			return
		}

		level := slog.LevelInfo
		if noisyPaths[c.Request.URL.Path] {
			level = slog.LevelDebug
		}
		slog.Log(c.Request.Context(), level, "request",
			"request_id", c.GetString(requestIDHeader),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Metrics records request counts and latency by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// CORS allows the configured browser origins. An empty list allows any origin
// without credentials.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Authorization", requestIDHeader, idempotencyHeader, "Mcp-Session-Id"},
		ExposeHeaders: []string{requestIDHeader, replayedHeader, "Mcp-Session-Id"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

// RateLimit rejects callers over their budget with 429. Limiter errors fail open.
func RateLimit(limiter portratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			slog.WarnContext(c.Request.Context(), "rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if !ok {
			metrics.RateLimitedTotal.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}

// bodyRecorder tees the response body so it can be stored after the handler runs.
type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored 200 response for a repeated Idempotency-Key
// instead of generating (and saving) again. Keys are scoped to the caller: the
// session user when the token resolves, the client IP otherwise. Reusing a key
// with a different body is rejected with 422. Requests without the header pass
// through. Store errors fail open.
func Idempotency(store portidempotency.Store, sessions portsession.Resolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(idempotencyHeader)
		if raw == "" {
			c.Next()
			return
		}
		if len(raw) > maxIdempotencyKeyLen {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Idempotency-Key too long"})
			return
		}

		ctx := c.Request.Context()

		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(payload))
		sum := sha256.Sum256(payload)
		hash := hex.EncodeToString(sum[:])

		key := c.Request.Method + " " + c.FullPath() + " " + callerScope(ctx, c, sessions, cookieName) + " " + raw

		rec, found, err := store.Lookup(ctx, key)
		switch {
		case err != nil:
			slog.WarnContext(ctx, "idempotency lookup failed", "error", err)
		case found && rec.RequestHash != hash:
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "Idempotency-Key reused with a different request body"})
			return
		case found:
			c.Header(replayedHeader, "true")
			c.Data(http.StatusOK, "application/json; charset=utf-8", rec.Body)
			c.Abort()
			return
		}

		w := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		if c.Writer.Status() != http.StatusOK {
			return
		}
		if err := store.Remember(ctx, key, portidempotency.Record{RequestHash: hash, Body: w.buf.Bytes()}); err != nil {
			slog.WarnContext(ctx, "idempotency store failed", "error", err)
		}
	}
}

func callerScope(ctx context.Context, c *gin.Context, sessions portsession.Resolver, cookieName string) string {
	if token := authn.Token(c, cookieName); token != "" && sessions != nil {
		if u, err := sessions.CurrentUser(ctx, token); err == nil {
			return "user:" + u.ID.String()
		}
	}
	return "ip:" + c.ClientIP()
}
