package ratelimit

import "context"

// Limiter decides whether one more request under key is allowed right now.
// In-memory and Redis implementations are both valid substitutes.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
