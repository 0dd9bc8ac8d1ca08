package indexstore

import (
	"context"
	"testing"
)

func TestSQLiteStore_AppendAndSnapshot(t *testing.T) {
	store, err := NewSQLiteStore(t.TempDir())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := store.Append(ctx, testRecord(i)); err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}

	snap, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if len(snap) != 5 {
		t.Fatalf("expected 5 records, got %d", len(snap))
	}
	if snap[0].Text != "record 0" || snap[4].Text != "record 4" {
		t.Errorf("ingestion order violated: %q .. %q", snap[0].Text, snap[4].Text)
	}
	if len(snap[2].Embedding) != 2 {
		t.Errorf("embedding lost on round trip: %v", snap[2].Embedding)
	}
	if snap[2].Metadata != "meta|2" {
		t.Errorf("metadata lost on round trip: %q", snap[2].Metadata)
	}
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewSQLiteStore(dir)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	store.Append(ctx, testRecord(0))
	store.Append(ctx, testRecord(1))
	store.Close()

	reopened, err := NewSQLiteStore(dir)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.Len(ctx)
	if err != nil {
		t.Fatalf("len failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 records after reopen, got %d", count)
	}
}
