// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

// Source identifies which adapter produced an IndexableRecord.
type Source string

const (
	SourceESG  Source = "esg"
	SourceNews Source = "news"
)

// ESGReport is a raw emissions report as it appears in the ESG JSONL stream.
type ESGReport struct {
	Company   string `json:"company"`
	Emissions int    `json:"emissions"`
	Date      string `json:"date"`
}

// NewsArticle is a raw article as it appears in the news JSONL stream.
type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishedAt string `json:"published_at"`
	Source      string `json:"source"`
	URL         string `json:"url"`
}

// IndexableRecord is the unified indexable representation of a source record.
// Immutable once created - corrections arrive as new appended records.
type IndexableRecord struct {
	Text      string    // natural-language form, used for embedding and keyword scoring
	Metadata  string    // pipe-delimited provenance, returned to callers for citation
	Source    Source    // which adapter produced it
	Embedding []float32 // fixed-dimension vector
}

// ScoredRecord is a retrieval candidate with its hybrid score.
// Lower score means more relevant.
type ScoredRecord struct {
	Record IndexableRecord
	Score  float64
}

// QueryRequest is one incoming free-text query. Not persisted.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResult is the answer payload for one query.
// Context and Metadata are the retrieved texts/provenance joined by newlines.
type QueryResult struct {
	Answer   string `json:"answer"`
	Context  string `json:"context"`
	Metadata string `json:"metadata"`
}
