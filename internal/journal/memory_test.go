package journal

import (
	"context"
	"testing"
)

func TestMemoryRecorderAssignsIDAndTimestamp(t *testing.T) {
	r := NewMemoryRecorder()

	err := r.Record(context.Background(), Entry{
		Operation:      "create_redemption",
		IdempotencyKey: "key-1",
		Status:         StatusSucceeded,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	entries := r.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0].ID == "" {
		t.Fatalf("expected an assigned ID")
	}
	if entries[0].CreatedAt.IsZero() {
		t.Fatalf("expected an assigned timestamp")
	}
}

func TestMemoryRecorderEntriesReturnsCopy(t *testing.T) {
	r := NewMemoryRecorder()
	_ = r.Record(context.Background(), Entry{Operation: "create_withdrawal", Status: StatusFailed})

	first := r.Entries()
	first[0].Operation = "mutated"

	if r.Entries()[0].Operation != "create_withdrawal" {
		t.Fatalf("Entries must return a copy")
	}
}
