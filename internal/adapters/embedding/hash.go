package embedding

import (
	"context"
	"encoding/binary"
	"hash/fnv"
)

// HashEmbedder is a deterministic, offline stand-in for a real embedding
// model: it derives every component of the vector from an FNV hash of the
// text. Useful for demo runs without an Ollama instance and for
// reproducible tests. Retrieval quality comes entirely from the keyword
// term when this embedder is active.
type HashEmbedder struct {
	dimension int
}

// NewHashEmbedder creates a hash embedder with the given dimension.
func NewHashEmbedder(dimension int) *HashEmbedder {
	if dimension <= 0 {
		dimension = 384
	}
	return &HashEmbedder{dimension: dimension}
}

// Embed returns the same vector for the same text, always.
func (h *HashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec := make([]float32, h.dimension)

	hasher := fnv.New64a()
	hasher.Write([]byte(text))
	seed := hasher.Sum64()

	// Each component mixes the seed with its index so vectors of similar
	// texts still differ across the whole dimension range.
	var buf [8]byte
	for i := range vec {
		binary.LittleEndian.PutUint64(buf[:], seed+uint64(i))
		hasher.Reset()
		hasher.Write(buf[:])
		vec[i] = float32(hasher.Sum64()%1000) / 1000
	}
	return vec, nil
}

// Dimension returns the vector dimensionality.
func (h *HashEmbedder) Dimension() int {
	return h.dimension
}
