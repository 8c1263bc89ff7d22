// Package redis holds adapters backed by a shared Redis instance.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	portratelimit "github.com/alanyang/listingcraft/internal/port/ratelimit"
)

var _ portratelimit.Limiter = (*Limiter)(nil)

// Limiter is a sliding-window limiter shared by every server instance.
// It admits limit requests per window for each key.
type Limiter struct {
	rdb    *goredis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewLimiter derives the window from a token-bucket style rps/burst pair: burst
// requests per burst/rps seconds, which gives the same long-run rate.
func NewLimiter(rdb *goredis.Client, rps float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	window := time.Second
	if rps > 0 {
		window = time.Duration(float64(burst) / rps * float64(time.Second))
	}
	return &Limiter{rdb: rdb, prefix: "listingcraft:ratelimit:", limit: burst, window: window}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	key = l.prefix + key
	now := time.Now().UnixMilli()
	windowStart := now - l.window.Milliseconds()

	pipe := l.rdb.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	countCmd := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("reading rate window: %w", err)
	}

	if countCmd.Val() >= int64(l.limit) {
		return false, nil
	}

	tx := l.rdb.TxPipeline()
	tx.ZAdd(ctx, key, goredis.Z{Score: float64(now), Member: uuid.NewString()})
	tx.PExpire(ctx, key, 2*l.window)
	if _, err := tx.Exec(ctx); err != nil {
		return false, fmt.Errorf("recording request: %w", err)
	}
	return true, nil
}
