// Package cli wires the cobra command tree.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Code-with-pranav/esg-rag-app/internal/config"
	"github.com/Code-with-pranav/esg-rag-app/internal/logger"
)

var (
	configPath string
	debug      bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "esgrag",
	Short: "Real-time ESG RAG pipeline",
	Long: `esgrag ingests streaming ESG emissions reports and news articles,
indexes their embeddings, and answers free-text queries with hybrid
(vector + keyword) retrieval plus a language-model call.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real env vars still win inside config.Load.
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		logger.Init(debug || cfg.Debug)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "esgrag.toml", "path to TOML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
