//go:build integration

package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/alanyang/listingcraft/internal/domain/event"
)

// CaptureHandler records every event handed to Handle.
// It is safe for concurrent use and can be passed directly to EventBus.Subscribe.
type CaptureHandler struct {
	mu     sync.Mutex
	Events []event.Event
}

func (c *CaptureHandler) Handle(_ context.Context, e event.Event) {
	c.mu.Lock()
	c.Events = append(c.Events, e)
	c.mu.Unlock()
}

// ForUser returns the recorded events scoped to userID.
func (c *CaptureHandler) ForUser(userID uuid.UUID) []event.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []event.Event
	for _, e := range c.Events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// Reset clears all recorded events.
func (c *CaptureHandler) Reset() {
	c.mu.Lock()
	c.Events = nil
	c.mu.Unlock()
}
