package journal

import (
	"context"
	"time"
)

// Terminal statuses for a gateway operation attempt.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Entry records one money-movement attempt for operational audit. This is a
// write-only trail, not bookkeeping; reconciliation against the partner's
// ledger is out of scope.
type Entry struct {
	ID             string
	Operation      string
	IdempotencyKey string
	Status         string
	Detail         string
	CreatedAt      time.Time
}

// Recorder persists journal entries.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}
