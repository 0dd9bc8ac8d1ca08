// Package embedding provides embedding service adapters.
// Adapters implementing ports.EmbeddingService; the domain layer never
// learns which backend produced a vector.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Code-with-pranav/esg-rag-app/internal/domain/entities"
	"github.com/Code-with-pranav/esg-rag-app/internal/logger"
)

// OllamaAdapter implements ports.EmbeddingService using the Ollama API.
type OllamaAdapter struct {
	baseURL   string
	model     string
	dimension int
	client    *http.Client
}

// NewOllamaAdapter creates an Ollama embedding adapter. The dimension must
// match the model's output; vectors of any other length are rejected.
func NewOllamaAdapter(baseURL, model string, dimension int) *OllamaAdapter {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "nomic-embed-text"
	}
	if dimension <= 0 {
		dimension = 384
	}
	return &OllamaAdapter{
		baseURL:   baseURL,
		model:     model,
		dimension: dimension,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ollamaEmbedRequest is the Ollama API request format.
type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// ollamaEmbedResponse is the Ollama API response format.
type ollamaEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed generates an embedding for a single text.
func (a *OllamaAdapter) Embed(ctx context.Context, text string) ([]float32, error) {
	reqBody := ollamaEmbedRequest{
		Model:  a.model,
		Prompt: text,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/api/embeddings", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		logger.Error("embedding backend unreachable: %v", err)
		return nil, fmt.Errorf("%w: %v", entities.ErrEmbeddingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", entities.ErrEmbeddingUnavailable, resp.StatusCode)
	}

	var embedResp ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(embedResp.Embedding) != a.dimension {
		return nil, fmt.Errorf("model %s returned %d dimensions, index expects %d",
			a.model, len(embedResp.Embedding), a.dimension)
	}

	logger.Debug("embedded %d chars into %d dims", len(text), len(embedResp.Embedding))
	return embedResp.Embedding, nil
}

// Dimension returns the configured vector dimensionality.
func (a *OllamaAdapter) Dimension() int {
	return a.dimension
}
