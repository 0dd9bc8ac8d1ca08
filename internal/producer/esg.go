// Package producer contains the data producers that feed the JSONL logs
// the ingestion loop tails. They are collaborators of the RAG core, not
// part of it.
package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/Code-with-pranav/esg-rag-app/internal/domain/entities"
	"github.com/Code-with-pranav/esg-rag-app/internal/logger"
)

// ESGSimulator periodically appends a synthetic emissions report to the
// ESG stream log, and mirrors the latest report to a standalone JSON file.
type ESGSimulator struct {
	outputPath string
	latestPath string
	company    string
	interval   time.Duration
}

// NewESGSimulator creates a simulator writing to outputPath.
func NewESGSimulator(outputPath, company string, interval time.Duration) *ESGSimulator {
	if outputPath == "" {
		outputPath = "esg_stream_output.jsonl"
	}
	if company == "" {
		company = "CoalCo"
	}
	if interval <= 0 {
		interval = 120 * time.Second
	}
	return &ESGSimulator{
		outputPath: outputPath,
		latestPath: filepath.Join("data", "coalco.json"),
		company:    company,
		interval:   interval,
	}
}

// Run emits one report immediately, then one per interval until ctx is
// cancelled.
func (s *ESGSimulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		report := entities.ESGReport{
			Company:   s.company,
			Emissions: 50 + rand.Intn(151), // 50-200 tons
			Date:      time.Now().Format("2006-01-02"),
		}

		if err := AppendJSONL(s.outputPath, report); err != nil {
			logger.Error("appending ESG report: %v", err)
		} else {
			logger.Info("generated ESG report: %s %d tons", report.Company, report.Emissions)
		}
		s.writeLatest(report)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// writeLatest mirrors the most recent report for collaborators that read
// a single snapshot file instead of the stream.
func (s *ESGSimulator) writeLatest(report entities.ESGReport) {
	if err := os.MkdirAll(filepath.Dir(s.latestPath), 0755); err != nil {
		logger.Error("creating data directory: %v", err)
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		logger.Error("encoding ESG report: %v", err)
		return
	}
	if err := os.WriteFile(s.latestPath, data, 0644); err != nil {
		logger.Error("writing %s: %v", s.latestPath, err)
	}
}

// AppendJSONL appends v as one JSON line to the file at path.
func AppendJSONL(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
