package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Code-with-pranav/esg-rag-app/internal/adapters/embedding"
	"github.com/Code-with-pranav/esg-rag-app/internal/adapters/indexstore"
	"github.com/Code-with-pranav/esg-rag-app/internal/adapters/llm"
	"github.com/Code-with-pranav/esg-rag-app/internal/adapters/tailer"
	"github.com/Code-with-pranav/esg-rag-app/internal/domain/ports"
	"github.com/Code-with-pranav/esg-rag-app/internal/domain/usecases"
	httpserver "github.com/Code-with-pranav/esg-rag-app/internal/infrastructure/http"
	"github.com/Code-with-pranav/esg-rag-app/internal/infrastructure/pipeline"
	"github.com/Code-with-pranav/esg-rag-app/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ingestion loop and query server",
	Long: `Tails the ESG and news JSONL streams, embeds and indexes every new
record, and serves POST /rag queries over the growing index.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := buildStore()
	if err != nil {
		return err
	}
	defer closeStore()

	embedder, err := buildEmbedder()
	if err != nil {
		return err
	}
	model := llm.NewOllamaAdapter(cfg.LLM.URL, cfg.LLM.Model)

	retriever := usecases.NewHybridRetriever(
		cfg.Retrieval.TopK,
		cfg.Retrieval.KeywordWeight,
		cfg.Retrieval.VectorWeight,
		cfg.Retrieval.DistanceNorm,
	)
	ingestUC := usecases.NewIngestUseCase(embedder, store)
	queryUC := usecases.NewQueryUseCase(embedder, store, retriever, model)

	esgSource, err := tailer.NewJSONLTailer(cfg.Sources.ESGPath, cfg.Sources.PollInterval.Duration())
	if err != nil {
		return fmt.Errorf("opening ESG source: %w", err)
	}
	defer esgSource.Close()

	newsSource, err := tailer.NewJSONLTailer(cfg.Sources.NewsPath, cfg.Sources.PollInterval.Duration())
	if err != nil {
		return fmt.Errorf("opening news source: %w", err)
	}
	defer newsSource.Close()

	pipe := pipeline.New(ingestUC,
		pipeline.Lane{Name: "esg", Source: esgSource, Decode: pipeline.DecodeESG},
		pipeline.Lane{Name: "news", Source: newsSource, Decode: pipeline.DecodeNews},
	)

	errCh := make(chan error, 2)
	go func() {
		errCh <- pipe.Run(ctx)
	}()

	server := httpserver.NewServer(queryUC, store, cfg.Server.Addr)
	go func() {
		errCh <- server.Start(ctx)
	}()

	err = <-errCh
	stop()
	if err != nil && err != context.Canceled {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}

// buildStore picks the index store backend from config.
func buildStore() (ports.IndexStore, func(), error) {
	switch cfg.Store.Backend {
	case "", "memory":
		return indexstore.NewMemoryStore(), func() {}, nil
	case "sqlite":
		store, err := indexstore.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return store, func() { store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// buildEmbedder picks the embedding backend from config.
func buildEmbedder() (ports.EmbeddingService, error) {
	switch cfg.Embedding.Backend {
	case "", "ollama":
		return embedding.NewOllamaAdapter(cfg.Embedding.URL, cfg.Embedding.Model, cfg.Embedding.Dimension), nil
	case "hash":
		return embedding.NewHashEmbedder(cfg.Embedding.Dimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding backend %q", cfg.Embedding.Backend)
	}
}
