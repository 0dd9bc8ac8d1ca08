// Package http provides the HTTP server infrastructure.
// Framework/driver layer - outermost circle.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Code-with-pranav/esg-rag-app/internal/domain/entities"
	"github.com/Code-with-pranav/esg-rag-app/internal/domain/ports"
	"github.com/Code-with-pranav/esg-rag-app/internal/domain/usecases"
	"github.com/Code-with-pranav/esg-rag-app/internal/logger"
)

// Server exposes the query endpoint and health checks.
type Server struct {
	query *usecases.QueryUseCase
	store ports.IndexStore
	addr  string
}

// NewServer creates the HTTP server.
func NewServer(query *usecases.QueryUseCase, store ports.IndexStore, addr string) *Server {
	if addr == "" {
		addr = ":8000"
	}
	return &Server{
		query: query,
		store: store,
		addr:  addr,
	}
}

// Handler builds the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/rag", s.handleRAG)
	mux.HandleFunc("/api/health", s.handleHealth)

	return corsMiddleware(requestIDMiddleware(loggingMiddleware(mux)))
}

// Start runs the server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // model calls can be slow
	}

	logger.Info("ESG RAG server starting on %s", s.addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// errorPayload is the structured error body for domain failures.
type errorPayload struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// handleRAG answers one query. Domain failures return a structured error
// payload with HTTP 200 so the presentation layer can always render the
// body; only transport-level problems use non-200 statuses.
func (s *Server) handleRAG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req entities.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: "invalid JSON body", Code: "bad_request"})
		return
	}
	if req.Query == "" {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: "query parameter is required", Code: "bad_request"})
		return
	}

	result, err := s.query.Answer(r.Context(), req.Query)
	if err != nil {
		logger.Error("query failed: %v", err)
		writeJSON(w, http.StatusOK, errorPayload{Error: err.Error(), Code: entities.ErrorCode(err)})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleHealth reports liveness plus the current index size.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.Len(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorPayload{Error: err.Error(), Code: "internal"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"indexed": count,
	})
}

// handleIndex serves a minimal query form. The real presentation layer is
// an external collaborator; this page just makes the service pokeable.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	html := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>ESG RAG</title>
</head>
<body>
    <h1>Real-Time ESG RAG</h1>
    <p>POST {"query": "..."} to /rag, or use the form below.</p>
    <form onsubmit="ask(event)">
        <input type="text" id="q" size="60" placeholder="What are the latest ESG emissions for CoalCo?" required>
        <button type="submit">Ask</button>
    </form>
    <pre id="out"></pre>
    <script>
        async function ask(e) {
            e.preventDefault();
            const q = document.getElementById('q').value;
            const resp = await fetch('/rag', {
                method: 'POST',
                headers: {'Content-Type': 'application/json'},
                body: JSON.stringify({query: q})
            });
            document.getElementById('out').textContent = JSON.stringify(await resp.json(), null, 2);
        }
    </script>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("%s %s %s %v", r.Header.Get("X-Request-ID"), r.Method, r.URL.Path, time.Since(start))
	})
}

// requestIDMiddleware tags every request with an ID for log correlation.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
