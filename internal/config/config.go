// Package config loads application configuration from a TOML file with
// environment overrides. Every field has a working default so the service
// runs with no config file at all.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Store     StoreConfig     `toml:"store"`
	Sources   SourcesConfig   `toml:"sources"`
	Simulator SimulatorConfig `toml:"simulator"`
	News      NewsConfig      `toml:"news"`
	Debug     bool            `toml:"debug"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type EmbeddingConfig struct {
	// Backend is "ollama" or "hash" (deterministic offline embedder).
	Backend   string `toml:"backend"`
	URL       string `toml:"url"`
	Model     string `toml:"model"`
	Dimension int    `toml:"dimension"`
}

type LLMConfig struct {
	URL   string `toml:"url"`
	Model string `toml:"model"`
}

type RetrievalConfig struct {
	TopK          int     `toml:"top_k"`
	KeywordWeight float64 `toml:"keyword_weight"`
	VectorWeight  float64 `toml:"vector_weight"`
	// DistanceNorm scales Euclidean distance onto the keyword term's
	// range. Re-tune it for the embedding model in use.
	DistanceNorm float64 `toml:"distance_norm"`
}

type StoreConfig struct {
	// Backend is "memory" or "sqlite".
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

type SourcesConfig struct {
	ESGPath      string   `toml:"esg_path"`
	NewsPath     string   `toml:"news_path"`
	PollInterval duration `toml:"poll_interval"`
}

type SimulatorConfig struct {
	Company  string   `toml:"company"`
	Interval duration `toml:"interval"`
}

type NewsConfig struct {
	APIURL string `toml:"api_url"`
	APIKey string `toml:"api_key"`
	Query  string `toml:"query"`
	Limit  int    `toml:"limit"`
}

// duration lets TOML carry values like "120s".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

func (d duration) Duration() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8000"},
		Embedding: EmbeddingConfig{
			Backend:   "ollama",
			URL:       "http://localhost:11434",
			Model:     "nomic-embed-text",
			Dimension: 384,
		},
		LLM: LLMConfig{
			URL:   "http://localhost:11434",
			Model: "phi3",
		},
		Retrieval: RetrievalConfig{
			TopK:          3,
			KeywordWeight: 0.7,
			VectorWeight:  0.3,
			DistanceNorm:  1000,
		},
		Store: StoreConfig{
			Backend: "memory",
			Path:    "./data",
		},
		Sources: SourcesConfig{
			ESGPath:      "esg_stream_output.jsonl",
			NewsPath:     "esg_news.jsonl",
			PollInterval: duration(5 * time.Second),
		},
		Simulator: SimulatorConfig{
			Company:  "CoalCo",
			Interval: duration(120 * time.Second),
		},
		News: NewsConfig{
			APIURL: "https://newsapi.org",
			Query:  "ESG",
			Limit:  5,
		},
	}
}

// Load reads the TOML file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	if addr := os.Getenv("ESGRAG_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if key := os.Getenv("NEWS_API_KEY"); key != "" {
		cfg.News.APIKey = key
	}
	if url := os.Getenv("OLLAMA_URL"); url != "" {
		cfg.Embedding.URL = url
		cfg.LLM.URL = url
	}

	return cfg, nil
}
