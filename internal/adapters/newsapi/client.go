// Package newsapi fetches ESG-related articles from the NewsAPI service.
// Used by the news producer, not by the RAG core.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Code-with-pranav/esg-rag-app/internal/domain/entities"
	"github.com/Code-with-pranav/esg-rag-app/internal/domain/usecases"
	"github.com/Code-with-pranav/esg-rag-app/internal/logger"
)

// Client calls the NewsAPI /v2/everything endpoint.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a NewsAPI client.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = "https://newsapi.org"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// everythingResponse is the NewsAPI response envelope.
type everythingResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		PublishedAt string `json:"publishedAt"`
		URL         string `json:"url"`
	} `json:"articles"`
}

// Fetch returns up to limit articles matching query, with every field
// backed by a non-empty fallback.
func (c *Client) Fetch(ctx context.Context, query string, limit int) ([]entities.NewsArticle, error) {
	if query == "" {
		query = "ESG"
	}
	if limit <= 0 {
		limit = 5
	}

	endpoint := c.baseURL + "/v2/everything?q=" + url.QueryEscape(query) + "&apiKey=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling NewsAPI: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NewsAPI returned status %d", resp.StatusCode)
	}

	var envelope everythingResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(envelope.Articles) == 0 {
		logger.Info("no news articles found for %q", query)
		return nil, nil
	}

	if len(envelope.Articles) > limit {
		envelope.Articles = envelope.Articles[:limit]
	}

	articles := make([]entities.NewsArticle, 0, len(envelope.Articles))
	for _, a := range envelope.Articles {
		article := entities.NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			PublishedAt: a.PublishedAt,
			Source:      a.Source.Name,
			URL:         a.URL,
		}
		if article.Title == "" {
			article.Title = usecases.FallbackTitle
		}
		if article.Description == "" {
			article.Description = usecases.FallbackDescription
		}
		if article.PublishedAt == "" {
			article.PublishedAt = usecases.FallbackPublishedAt
		}
		if article.Source == "" {
			article.Source = usecases.FallbackNewsSource
		}
		if article.URL == "" {
			article.URL = usecases.FallbackURL
		}
		articles = append(articles, article)
	}

	logger.Info("fetched %d news articles", len(articles))
	return articles, nil
}
