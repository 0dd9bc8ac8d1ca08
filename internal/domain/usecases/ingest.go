// ingest.go pushes adapted records through embedding into the index store.
package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Code-with-pranav/esg-rag-app/internal/domain/entities"
	"github.com/Code-with-pranav/esg-rag-app/internal/domain/ports"
)

// IngestUseCase embeds adapted records and appends them to the index.
// Single Responsibility: only ingestion logic.
type IngestUseCase struct {
	embedder ports.EmbeddingService
	store    ports.IndexStore

	maxAttempts int
	baseBackoff time.Duration
}

// NewIngestUseCase creates an IngestUseCase with injected dependencies.
func NewIngestUseCase(embedder ports.EmbeddingService, store ports.IndexStore) *IngestUseCase {
	return &IngestUseCase{
		embedder:    embedder,
		store:       store,
		maxAttempts: 4,
		baseBackoff: 500 * time.Millisecond,
	}
}

// Ingest embeds one adapted record and appends it to the store. Transient
// embedding failures are retried with exponential backoff; the record's
// Text and Metadata are never mutated.
func (uc *IngestUseCase) Ingest(ctx context.Context, rec entities.IndexableRecord) error {
	if rec.Text == "" || rec.Metadata == "" {
		return fmt.Errorf("%w: record has empty text or metadata", entities.ErrMalformedRecord)
	}

	embedding, err := uc.embedWithRetry(ctx, rec.Text)
	if err != nil {
		return err
	}
	rec.Embedding = embedding

	return uc.store.Append(ctx, rec)
}

// embedWithRetry retries only embedding-backend failures. Other errors
// (including context cancellation) abort immediately.
func (uc *IngestUseCase) embedWithRetry(ctx context.Context, text string) ([]float32, error) {
	backoff := uc.baseBackoff
	var lastErr error

	for attempt := 0; attempt < uc.maxAttempts; attempt++ {
		embedding, err := uc.embedder.Embed(ctx, text)
		if err == nil {
			return embedding, nil
		}
		lastErr = err
		if !errors.Is(err, entities.ErrEmbeddingUnavailable) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("embedding after %d attempts: %w", uc.maxAttempts, lastErr)
}
