package entities

import "errors"

// Error taxonomy for the RAG core. Ingestion-time errors are recovered
// locally (skip and continue); query-time errors surface to the caller as
// structured payloads keyed by ErrorCode.
var (
	// ErrMalformedRecord means a raw record is missing required fields at adapt time.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrEmbeddingUnavailable means the embedding backend could not be reached.
	ErrEmbeddingUnavailable = errors.New("embedding backend unavailable")

	// ErrNoDataAvailable means the index was empty at query time.
	ErrNoDataAvailable = errors.New("no data available for retrieval")

	// ErrModelUnavailable means the language-model call failed.
	ErrModelUnavailable = errors.New("model backend unavailable")
)

// ErrorCode maps a domain error to the machine-readable code returned in
// query error payloads. Unknown errors map to "internal".
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNoDataAvailable):
		return "no_data"
	case errors.Is(err, ErrEmbeddingUnavailable):
		return "embedding_unavailable"
	case errors.Is(err, ErrModelUnavailable):
		return "model_unavailable"
	case errors.Is(err, ErrMalformedRecord):
		return "bad_request"
	default:
		return "internal"
	}
}
