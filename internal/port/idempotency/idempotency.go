package idempotency

import "context"

// Record is a stored response and the hash of the request body that produced it.
type Record struct {
	RequestHash string
	Body        []byte
}

// Store remembers successful responses by client-supplied idempotency key so a
// retried request can be answered without running it again. Keys are already
// scoped to the caller.
type Store interface {
	// Lookup returns the live record for key and whether one exists.
	Lookup(ctx context.Context, key string) (Record, bool, error)
	// Remember records rec under key. A live key keeps its first record; an
	// expired one is overwritten.
	Remember(ctx context.Context, key string, rec Record) error
}
