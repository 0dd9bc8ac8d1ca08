package tailer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func collectLines(t *testing.T, lines <-chan []byte, n int, timeout time.Duration) []string {
	t.Helper()
	var got []string
	deadline := time.After(timeout)
	for len(got) < n {
		select {
		case line, ok := <-lines:
			if !ok {
				t.Fatalf("channel closed after %d lines", len(got))
			}
			got = append(got, string(line))
		case <-deadline:
			t.Fatalf("timeout: got %d of %d lines: %v", len(got), n, got)
		}
	}
	return got
}

func TestJSONLTailer_EmitsExistingLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stream.jsonl")
	os.WriteFile(path, []byte(`{"a":1}`+"\n"+`{"a":2}`+"\n"), 0644)

	tailer, err := NewJSONLTailer(path, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("creating tailer: %v", err)
	}
	defer tailer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines, err := tailer.Lines(ctx)
	if err != nil {
		t.Fatalf("lines failed: %v", err)
	}

	got := collectLines(t, lines, 2, 2*time.Second)
	if got[0] != `{"a":1}` || got[1] != `{"a":2}` {
		t.Errorf("unexpected lines: %v", got)
	}
}

func TestJSONLTailer_FollowsAppends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stream.jsonl")
	os.WriteFile(path, []byte(`{"a":1}`+"\n"), 0644)

	tailer, err := NewJSONLTailer(path, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("creating tailer: %v", err)
	}
	defer tailer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines, _ := tailer.Lines(ctx)
	collectLines(t, lines, 1, 2*time.Second)

	f, _ := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	f.WriteString(`{"a":2}` + "\n")
	f.Close()

	got := collectLines(t, lines, 1, 2*time.Second)
	if got[0] != `{"a":2}` {
		t.Errorf("unexpected appended line: %v", got)
	}
}

func TestJSONLTailer_FileCreatedLater(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "late.jsonl")

	tailer, err := NewJSONLTailer(path, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("creating tailer: %v", err)
	}
	defer tailer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines, _ := tailer.Lines(ctx)

	time.Sleep(100 * time.Millisecond)
	os.WriteFile(path, []byte(`{"late":true}`+"\n"), 0644)

	got := collectLines(t, lines, 1, 2*time.Second)
	if got[0] != `{"late":true}` {
		t.Errorf("unexpected line: %v", got)
	}
}

func TestJSONLTailer_HoldsPartialLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stream.jsonl")
	// No trailing newline: the record is still being written.
	os.WriteFile(path, []byte(`{"a":`), 0644)

	tailer, err := NewJSONLTailer(path, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("creating tailer: %v", err)
	}
	defer tailer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines, _ := tailer.Lines(ctx)

	select {
	case line := <-lines:
		t.Fatalf("partial line must not be emitted: %q", line)
	case <-time.After(200 * time.Millisecond):
	}

	f, _ := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	f.WriteString(`1}` + "\n")
	f.Close()

	got := collectLines(t, lines, 1, 2*time.Second)
	if got[0] != `{"a":1}` {
		t.Errorf("expected completed line, got %v", got)
	}
}

func TestJSONLTailer_ClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stream.jsonl")

	tailer, err := NewJSONLTailer(path, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("creating tailer: %v", err)
	}
	defer tailer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	lines, _ := tailer.Lines(ctx)
	cancel()

	select {
	case _, ok := <-lines:
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Error("channel did not close after cancel")
	}
}
