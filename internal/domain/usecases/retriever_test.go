package usecases

import (
	"errors"
	"testing"

	"github.com/Code-with-pranav/esg-rag-app/internal/domain/entities"
)

func record(text string, embedding []float32) entities.IndexableRecord {
	return entities.IndexableRecord{
		Text:      text,
		Metadata:  text,
		Source:    entities.SourceESG,
		Embedding: embedding,
	}
}

func TestHybridRetriever_EmptySnapshot(t *testing.T) {
	r := NewHybridRetriever(0, 0, 0, 0)

	_, err := r.Retrieve("anything", []float32{1, 2}, nil)
	if !errors.Is(err, entities.ErrNoDataAvailable) {
		t.Errorf("expected ErrNoDataAvailable, got %v", err)
	}
}

func TestHybridRetriever_TopKOfFive(t *testing.T) {
	r := NewHybridRetriever(3, 0.7, 0.3, 1000)
	query := []float32{0}

	snapshot := []entities.IndexableRecord{
		record("alpha", []float32{50}),
		record("bravo", []float32{10}),
		record("charlie", []float32{40}),
		record("delta", []float32{20}),
		record("echo", []float32{30}),
	}

	results, err := r.Retrieve("zzz", query, snapshot)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// No keyword overlap anywhere, so ranking follows vector distance.
	want := []string{"bravo", "delta", "echo"}
	for i, w := range want {
		if results[i].Record.Text != w {
			t.Errorf("rank %d: expected %s, got %s", i, w, results[i].Record.Text)
		}
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score < results[i-1].Score {
			t.Errorf("scores not ascending at %d", i)
		}
	}
}

func TestHybridRetriever_TiesKeepIngestionOrder(t *testing.T) {
	r := NewHybridRetriever(4, 0.7, 0.3, 1000)
	query := []float32{0}

	// Identical embeddings and identical (zero) keyword overlap: all tie.
	snapshot := []entities.IndexableRecord{
		record("first", []float32{5}),
		record("second", []float32{5}),
		record("third", []float32{5}),
	}

	results, err := r.Retrieve("zzz", query, snapshot)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}

	want := []string{"first", "second", "third"}
	for i, w := range want {
		if results[i].Record.Text != w {
			t.Errorf("rank %d: expected %s, got %s", i, w, results[i].Record.Text)
		}
	}
}

func TestHybridScore_KeywordMonotonicity(t *testing.T) {
	r := NewHybridRetriever(3, 0.7, 0.3, 1000)
	query := tokenize("coalco emissions data")
	embedding := []float32{10, 10}

	none := r.Score(record("nothing relevant here", embedding), query, embedding)
	one := r.Score(record("coalco report", embedding), query, embedding)
	all := r.Score(record("coalco emissions data report", embedding), query, embedding)

	if !(all < one && one < none) {
		t.Errorf("more keyword overlap must score lower: all=%f one=%f none=%f", all, one, none)
	}
}

func TestHybridScore_DistanceMonotonicity(t *testing.T) {
	r := NewHybridRetriever(3, 0.7, 0.3, 1000)
	query := tokenize("coalco")
	queryEmb := []float32{0, 0}

	near := r.Score(record("coalco", []float32{1, 1}), query, queryEmb)
	far := r.Score(record("coalco", []float32{100, 100}), query, queryEmb)

	if near >= far {
		t.Errorf("smaller distance must score lower: near=%f far=%f", near, far)
	}
}

func TestKeywordScore_DampedBelowOne(t *testing.T) {
	query := tokenize("coalco emissions")

	score := keywordScore("coalco emissions", query)
	if score >= 1 {
		t.Errorf("perfect match must stay below 1, got %f", score)
	}
	if score != 2.0/3.0 {
		t.Errorf("expected 2/3, got %f", score)
	}
}

func TestHybridRetriever_ESGRanksAboveNewsOnKeywordOverlap(t *testing.T) {
	r := NewHybridRetriever(3, 0.7, 0.3, 1000)

	esg, err := AdaptESG(entities.ESGReport{Company: "CoalCo", Emissions: 120, Date: "2025-03-28"})
	if err != nil {
		t.Fatal(err)
	}
	news, err := AdaptNews(entities.NewsArticle{
		Title:       "ESG rules tighten",
		Description: "Regulators move on reporting",
		PublishedAt: "2025-03-27T10:00:00Z",
		Source:      "Example Wire",
		URL:         "https://example.com",
	})
	if err != nil {
		t.Fatal(err)
	}

	emb := []float32{1, 2, 3}
	esg.Embedding = emb
	news.Embedding = emb

	results, err := r.Retrieve("CoalCo emissions", emb, []entities.IndexableRecord{news, esg})
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}

	if results[0].Record.Source != entities.SourceESG {
		t.Errorf("expected ESG record ranked first, got %s", results[0].Record.Source)
	}
}
