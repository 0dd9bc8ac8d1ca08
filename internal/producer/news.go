package producer

import (
	"context"
	"fmt"

	"github.com/Code-with-pranav/esg-rag-app/internal/adapters/newsapi"
	"github.com/Code-with-pranav/esg-rag-app/internal/logger"
)

// NewsFeed fetches articles from NewsAPI and appends them to the news
// stream log.
type NewsFeed struct {
	client     *newsapi.Client
	outputPath string
	query      string
	limit      int
}

// NewNewsFeed creates a news producer writing to outputPath.
func NewNewsFeed(client *newsapi.Client, outputPath, query string, limit int) *NewsFeed {
	if outputPath == "" {
		outputPath = "esg_news.jsonl"
	}
	return &NewsFeed{
		client:     client,
		outputPath: outputPath,
		query:      query,
		limit:      limit,
	}
}

// RunOnce fetches one batch of articles and appends each to the log.
func (n *NewsFeed) RunOnce(ctx context.Context) error {
	articles, err := n.client.Fetch(ctx, n.query, n.limit)
	if err != nil {
		return fmt.Errorf("fetching news: %w", err)
	}

	for _, article := range articles {
		if err := AppendJSONL(n.outputPath, article); err != nil {
			return err
		}
	}

	logger.Info("saved %d articles to %s", len(articles), n.outputPath)
	return nil
}
