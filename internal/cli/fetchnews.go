package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Code-with-pranav/esg-rag-app/internal/adapters/newsapi"
	"github.com/Code-with-pranav/esg-rag-app/internal/producer"
)

var fetchNewsCmd = &cobra.Command{
	Use:   "fetch-news",
	Short: "Fetch ESG news articles into the news stream log",
	Long: `Queries NewsAPI for recent ESG articles and appends them to the news
JSONL log. Requires NEWS_API_KEY (env or .env) or news.api_key in config.`,
	RunE: runFetchNews,
}

func init() {
	rootCmd.AddCommand(fetchNewsCmd)
}

func runFetchNews(cmd *cobra.Command, args []string) error {
	if cfg.News.APIKey == "" {
		return errors.New("NEWS_API_KEY is not set")
	}

	client := newsapi.NewClient(cfg.News.APIURL, cfg.News.APIKey)
	feed := producer.NewNewsFeed(client, cfg.Sources.NewsPath, cfg.News.Query, cfg.News.Limit)

	return feed.RunOnce(cmd.Context())
}
