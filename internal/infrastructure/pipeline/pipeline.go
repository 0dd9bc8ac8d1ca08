// Package pipeline runs the continuous ingestion loop.
// Two independent lanes (esg, news) tail their JSONL sources, adapt and
// embed each record, and append it to the index store. A stalled lane
// never blocks the other, and neither blocks in-flight queries.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Code-with-pranav/esg-rag-app/internal/domain/entities"
	"github.com/Code-with-pranav/esg-rag-app/internal/domain/ports"
	"github.com/Code-with-pranav/esg-rag-app/internal/domain/usecases"
	"github.com/Code-with-pranav/esg-rag-app/internal/logger"
)

// Lane is one ingestion stream: a raw line source plus the decoder that
// turns a line into an adapted record.
type Lane struct {
	Name   string
	Source ports.RecordSource
	Decode func(line []byte) (entities.IndexableRecord, error)
}

// DecodeESG parses one ESG JSONL line and adapts it.
func DecodeESG(line []byte) (entities.IndexableRecord, error) {
	var report entities.ESGReport
	if err := json.Unmarshal(line, &report); err != nil {
		return entities.IndexableRecord{}, fmt.Errorf("%w: %v", entities.ErrMalformedRecord, err)
	}
	return usecases.AdaptESG(report)
}

// DecodeNews parses one news JSONL line and adapts it.
func DecodeNews(line []byte) (entities.IndexableRecord, error) {
	var article entities.NewsArticle
	if err := json.Unmarshal(line, &article); err != nil {
		return entities.IndexableRecord{}, fmt.Errorf("%w: %v", entities.ErrMalformedRecord, err)
	}
	return usecases.AdaptNews(article)
}

// Pipeline drives the ingestion lanes against one ingest use case.
type Pipeline struct {
	ingest *usecases.IngestUseCase
	lanes  []Lane
}

// New creates a pipeline over the given lanes.
func New(ingest *usecases.IngestUseCase, lanes ...Lane) *Pipeline {
	return &Pipeline{ingest: ingest, lanes: lanes}
}

// Run blocks until ctx is cancelled, ingesting from every lane
// concurrently. Per-record failures are logged and skipped; they never
// halt a lane.
func (p *Pipeline) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	for _, lane := range p.lanes {
		lines, err := lane.Source.Lines(ctx)
		if err != nil {
			return fmt.Errorf("starting %s lane: %w", lane.Name, err)
		}

		wg.Add(1)
		go func(lane Lane, lines <-chan []byte) {
			defer wg.Done()
			p.runLane(ctx, lane, lines)
		}(lane, lines)
	}

	wg.Wait()
	return ctx.Err()
}

func (p *Pipeline) runLane(ctx context.Context, lane Lane, lines <-chan []byte) {
	logger.Info("%s lane started", lane.Name)
	count := 0

	for {
		select {
		case <-ctx.Done():
			logger.Info("%s lane stopped after %d records", lane.Name, count)
			return
		case line, ok := <-lines:
			if !ok {
				logger.Info("%s lane source closed after %d records", lane.Name, count)
				return
			}

			rec, err := lane.Decode(line)
			if err != nil {
				logger.Error("%s lane: skipping record: %v", lane.Name, err)
				continue
			}

			if err := p.ingest.Ingest(ctx, rec); err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Error("%s lane: skipping record: %v", lane.Name, err)
				continue
			}
			count++
			logger.Debug("%s lane: indexed record %d: %.60s", lane.Name, count, rec.Text)
		}
	}
}
