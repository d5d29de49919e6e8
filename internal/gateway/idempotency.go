package gateway

import "github.com/google/uuid"

// newIdempotencyKey mints the per-attempt token attached to money-movement
// calls. Each gateway invocation gets a fresh key, so only transport-level
// retries of the same dispatched call are de-duplicated by the partner; a
// client resubmitting the same intent gets a new key (see the replay
// middleware for the client-side layer).
func newIdempotencyKey() string {
	return uuid.NewString()
}
