package wire

import (
	"context"
	"log/slog"
	"time"
)

// purger is satisfied by the Postgres idempotency repository.
type purger interface {
	Purge(ctx context.Context) (int64, error)
}

// startPurger deletes expired idempotency keys every interval until ctx ends.
// The returned channel closes once the loop has exited.
func startPurger(ctx context.Context, p purger, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := p.Purge(ctx)
				if err != nil {
					if ctx.Err() == nil {
						slog.Error("purge idempotency keys", "error", err)
					}
					continue
				}
				if n > 0 {
					slog.Debug("purged idempotency keys", "count", n)
				}
			}
		}
	}()
	return done
}
