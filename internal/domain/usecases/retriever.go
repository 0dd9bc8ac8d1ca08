// retriever.go implements hybrid (vector + keyword) scoring over an index snapshot.
package usecases

import (
	"math"
	"sort"
	"strings"

	"github.com/Code-with-pranav/esg-rag-app/internal/domain/entities"
)

// Retrieval defaults. DistanceNorm brings Euclidean distance onto a scale
// comparable to the keyword term; it is tuned per embedding model, not a law
// of the system.
const (
	DefaultTopK          = 3
	DefaultKeywordWeight = 0.7
	DefaultVectorWeight  = 0.3
	DefaultDistanceNorm  = 1000.0
)

// HybridRetriever scores every record in a snapshot by a weighted
// combination of vector distance and keyword overlap. Full scan, O(N*D)
// per query - fine at demo scale; an ANN index would replace the vector
// term without changing this contract.
type HybridRetriever struct {
	topK          int
	keywordWeight float64
	vectorWeight  float64
	distanceNorm  float64
}

// NewHybridRetriever creates a retriever, falling back to defaults for
// out-of-range parameters.
func NewHybridRetriever(topK int, keywordWeight, vectorWeight, distanceNorm float64) *HybridRetriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if keywordWeight <= 0 {
		keywordWeight = DefaultKeywordWeight
	}
	if vectorWeight <= 0 {
		vectorWeight = DefaultVectorWeight
	}
	if distanceNorm <= 0 {
		distanceNorm = DefaultDistanceNorm
	}
	return &HybridRetriever{
		topK:          topK,
		keywordWeight: keywordWeight,
		vectorWeight:  vectorWeight,
		distanceNorm:  distanceNorm,
	}
}

// Retrieve returns the topK records of the snapshot ordered ascending by
// hybrid score (lower = more relevant). Ties keep ingestion order.
func (r *HybridRetriever) Retrieve(queryText string, queryEmbedding []float32, snapshot []entities.IndexableRecord) ([]entities.ScoredRecord, error) {
	if len(snapshot) == 0 {
		return nil, entities.ErrNoDataAvailable
	}

	queryWords := tokenize(queryText)

	scored := make([]entities.ScoredRecord, len(snapshot))
	for i, rec := range snapshot {
		scored[i] = entities.ScoredRecord{
			Record: rec,
			Score:  r.Score(rec, queryWords, queryEmbedding),
		}
	}

	// Stable keeps ingestion order on equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score < scored[j].Score
	})

	if len(scored) > r.topK {
		scored = scored[:r.topK]
	}
	return scored, nil
}

// Score computes the hybrid score of one record against a tokenized query.
func (r *HybridRetriever) Score(rec entities.IndexableRecord, queryWords map[string]struct{}, queryEmbedding []float32) float64 {
	distance := euclideanDistance(rec.Embedding, queryEmbedding)
	keyword := keywordScore(rec.Text, queryWords)
	return r.keywordWeight*(1-keyword) + r.vectorWeight*(distance/r.distanceNorm)
}

// tokenize lowercases and splits on whitespace, deduplicating words.
func tokenize(text string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		words[w] = struct{}{}
	}
	return words
}

// keywordScore is the fraction of query words that appear in the record
// text. The +1 denominator avoids division by zero and damps the score
// below 1 even on a perfect match.
func keywordScore(text string, queryWords map[string]struct{}) float64 {
	lower := strings.ToLower(text)
	hits := 0
	for w := range queryWords {
		if strings.Contains(lower, w) {
			hits++
		}
	}
	return float64(hits) / float64(len(queryWords)+1)
}

// euclideanDistance over the shorter of the two vectors. Dimension
// mismatches should not happen once the embedder pins its dimension.
func euclideanDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
