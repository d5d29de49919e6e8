package journal

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRecorder persists journal entries in PostgreSQL.
type PostgresRecorder struct {
	db *pgxpool.Pool
}

// NewPostgresRecorder constructs a Postgres-backed recorder.
func NewPostgresRecorder(db *pgxpool.Pool) *PostgresRecorder {
	return &PostgresRecorder{db: db}
}

// Record inserts one entry. Missing IDs are assigned here so callers can
// leave Entry.ID empty.
func (r *PostgresRecorder) Record(ctx context.Context, entry Entry) error {
	id := entry.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := r.db.Exec(ctx, `INSERT INTO gateway_journal (id, operation, idempotency_key, status, detail, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())`,
		id, entry.Operation, entry.IdempotencyKey, entry.Status, entry.Detail)
	return err
}
