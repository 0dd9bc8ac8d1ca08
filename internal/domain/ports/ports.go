// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
package ports

import (
	"context"

	"github.com/Code-with-pranav/esg-rag-app/internal/domain/entities"
)

// EmbeddingService generates vector embeddings for text.
// Implementations must be deterministic for identical input so repeated
// queries against unchanged text produce identical vectors.
type EmbeddingService interface {
	// Embed generates a fixed-dimension embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the vector dimensionality, fixed for the process lifetime.
	Dimension() int
}

// LLMService generates text responses from a language model.
type LLMService interface {
	// Generate produces a response for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// IndexStore holds the growing set of indexable records.
// Append-only: no deletes, no reordering. The ingestion loop is the sole
// writer; queries are concurrent read-only consumers.
type IndexStore interface {
	// Append adds one fully-constructed record to the end of the index.
	Append(ctx context.Context, rec entities.IndexableRecord) error

	// Snapshot returns a point-in-time, read-only view of the index in
	// ingestion order. A snapshot never observes a partial record.
	Snapshot(ctx context.Context) ([]entities.IndexableRecord, error)

	// Len reports the current number of indexed records.
	Len(ctx context.Context) (int, error)
}

// RecordSource delivers raw JSONL lines from one record stream.
type RecordSource interface {
	// Lines starts following the source and emits each newly available
	// raw line. Existing content is emitted first, then appended lines as
	// they arrive. The channel closes when ctx is cancelled.
	Lines(ctx context.Context) (<-chan []byte, error)

	// Close releases watcher resources.
	Close() error
}
