// query.go is the RAG orchestrator: embed, retrieve, prompt, generate.
package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/Code-with-pranav/esg-rag-app/internal/domain/entities"
	"github.com/Code-with-pranav/esg-rag-app/internal/domain/ports"
)

// QueryUseCase answers a free-text query against a point-in-time snapshot
// of the index. It never mutates the store; its only side effect is the
// outbound model call.
type QueryUseCase struct {
	embedder  ports.EmbeddingService
	store     ports.IndexStore
	retriever *HybridRetriever
	llm       ports.LLMService
}

// NewQueryUseCase creates a QueryUseCase with injected dependencies.
func NewQueryUseCase(
	embedder ports.EmbeddingService,
	store ports.IndexStore,
	retriever *HybridRetriever,
	llm ports.LLMService,
) *QueryUseCase {
	if retriever == nil {
		retriever = NewHybridRetriever(0, 0, 0, 0)
	}
	return &QueryUseCase{
		embedder:  embedder,
		store:     store,
		retriever: retriever,
		llm:       llm,
	}
}

// Answer runs the full RAG flow for one query. Failures come back as
// domain errors so callers can render distinguishable payloads.
func (uc *QueryUseCase) Answer(ctx context.Context, queryText string) (entities.QueryResult, error) {
	queryText = strings.TrimSpace(queryText)
	if queryText == "" {
		return entities.QueryResult{}, fmt.Errorf("%w: empty query", entities.ErrMalformedRecord)
	}

	queryEmbedding, err := uc.embedder.Embed(ctx, queryText)
	if err != nil {
		return entities.QueryResult{}, fmt.Errorf("embedding query: %w", err)
	}

	snapshot, err := uc.store.Snapshot(ctx)
	if err != nil {
		return entities.QueryResult{}, fmt.Errorf("reading index: %w", err)
	}

	nearest, err := uc.retriever.Retrieve(queryText, queryEmbedding, snapshot)
	if err != nil {
		return entities.QueryResult{}, err
	}

	texts := make([]string, len(nearest))
	metadata := make([]string, len(nearest))
	for i, sr := range nearest {
		texts[i] = sr.Record.Text
		metadata[i] = sr.Record.Metadata
	}
	context := strings.Join(texts, "\n")

	prompt := buildPrompt(context, queryText)
	answer, err := uc.llm.Generate(ctx, prompt)
	if err != nil {
		return entities.QueryResult{}, fmt.Errorf("generating answer: %w", err)
	}

	return entities.QueryResult{
		Answer:   answer,
		Context:  context,
		Metadata: strings.Join(metadata, "\n"),
	}, nil
}

// Retrieve exposes retrieval without generation, for inspection endpoints.
func (uc *QueryUseCase) Retrieve(ctx context.Context, queryText string) ([]entities.ScoredRecord, error) {
	queryEmbedding, err := uc.embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	snapshot, err := uc.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}
	return uc.retriever.Retrieve(queryText, queryEmbedding, snapshot)
}

// buildPrompt composes the model prompt from retrieved context and the query.
func buildPrompt(context, query string) string {
	var sb strings.Builder
	sb.WriteString("Context:\n")
	sb.WriteString(context)
	sb.WriteString("\n\nQuery: ")
	sb.WriteString(query)
	sb.WriteString("\n\nAnswer the query using the provided context.")
	return sb.String()
}
