package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Addr != ":8000" {
		t.Errorf("unexpected addr: %q", cfg.Server.Addr)
	}
	if cfg.Embedding.Dimension != 384 {
		t.Errorf("unexpected dimension: %d", cfg.Embedding.Dimension)
	}
	if cfg.Retrieval.TopK != 3 || cfg.Retrieval.DistanceNorm != 1000 {
		t.Errorf("unexpected retrieval defaults: %+v", cfg.Retrieval)
	}
	if cfg.Retrieval.KeywordWeight != 0.7 || cfg.Retrieval.VectorWeight != 0.3 {
		t.Errorf("unexpected weights: %+v", cfg.Retrieval)
	}
	if cfg.Simulator.Interval.Duration() != 120*time.Second {
		t.Errorf("unexpected simulator interval: %v", cfg.Simulator.Interval.Duration())
	}
	if cfg.LLM.Model != "phi3" {
		t.Errorf("unexpected model: %q", cfg.LLM.Model)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "esgrag.toml")
	content := `
[server]
addr = ":9000"

[retrieval]
top_k = 5
distance_norm = 250.0

[embedding]
backend = "hash"

[sources]
poll_interval = "1s"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr override lost: %q", cfg.Server.Addr)
	}
	if cfg.Retrieval.TopK != 5 || cfg.Retrieval.DistanceNorm != 250 {
		t.Errorf("retrieval override lost: %+v", cfg.Retrieval)
	}
	if cfg.Embedding.Backend != "hash" {
		t.Errorf("backend override lost: %q", cfg.Embedding.Backend)
	}
	// Untouched sections keep their defaults.
	if cfg.Embedding.Dimension != 384 {
		t.Errorf("default dimension lost: %d", cfg.Embedding.Dimension)
	}
	if cfg.Sources.PollInterval.Duration() != time.Second {
		t.Errorf("poll interval override lost: %v", cfg.Sources.PollInterval.Duration())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ESGRAG_ADDR", ":7777")
	t.Setenv("NEWS_API_KEY", "secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Addr != ":7777" {
		t.Errorf("env addr override lost: %q", cfg.Server.Addr)
	}
	if cfg.News.APIKey != "secret" {
		t.Errorf("env api key override lost")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	os.WriteFile(path, []byte("[[[["), 0644)

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
