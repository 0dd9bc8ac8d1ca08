// Package tailer follows append-only JSONL logs.
// Adapter implementing ports.RecordSource: existing lines are emitted at
// startup (static batch), then appended lines as producers write them.
package tailer

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/Code-with-pranav/esg-rag-app/internal/logger"
)

// JSONLTailer tails one line-delimited JSON file. Write events from
// fsnotify trigger a read of the new bytes; a poll ticker covers
// filesystems that drop events. The file may not exist yet when tailing
// starts.
type JSONLTailer struct {
	path         string
	pollInterval time.Duration
	watcher      *fsnotify.Watcher

	offset  int64
	partial []byte // bytes after the last newline, waiting for the rest
}

// NewJSONLTailer creates a tailer for the given file path.
func NewJSONLTailer(path string, pollInterval time.Duration) (*JSONLTailer, error) {
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the parent directory: the log file itself may be created later.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	return &JSONLTailer{
		path:         path,
		pollInterval: pollInterval,
		watcher:      w,
	}, nil
}

// Lines starts following the file and emits each complete line.
func (t *JSONLTailer) Lines(ctx context.Context) (<-chan []byte, error) {
	lines := make(chan []byte, 100)

	go func() {
		defer close(lines)

		// Static batch: everything already in the file.
		t.drain(ctx, lines)

		ticker := time.NewTicker(t.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-t.watcher.Events:
				if !ok {
					return
				}
				if event.Name != t.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					t.drain(ctx, lines)
				}
			case err, ok := <-t.watcher.Errors:
				if !ok {
					return
				}
				logger.Error("watching %s: %v", t.path, err)
			case <-ticker.C:
				t.drain(ctx, lines)
			}
		}
	}()

	return lines, nil
}

// drain reads from the current offset to EOF and emits every complete
// line. A trailing fragment without its newline stays buffered until the
// producer finishes the line, so callers never see a partial record.
func (t *JSONLTailer) drain(ctx context.Context, lines chan<- []byte) {
	f, err := os.Open(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("opening %s: %v", t.path, err)
		}
		return
	}
	defer f.Close()

	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		logger.Error("seeking %s: %v", t.path, err)
		return
	}

	data, err := io.ReadAll(f)
	if err != nil {
		logger.Error("reading %s: %v", t.path, err)
		return
	}
	if len(data) == 0 {
		return
	}
	t.offset += int64(len(data))

	data = append(t.partial, data...)
	t.partial = nil

	for {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			t.partial = data
			return
		}
		line := bytes.TrimSpace(data[:idx])
		data = data[idx+1:]
		if len(line) == 0 {
			continue
		}

		out := make([]byte, len(line))
		copy(out, line)
		select {
		case lines <- out:
		case <-ctx.Done():
			return
		}
	}
}

// Close releases the underlying watcher.
func (t *JSONLTailer) Close() error {
	return t.watcher.Close()
}
