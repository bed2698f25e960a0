// Package httpapi exposes the indexing and search pipelines over HTTP and
// serves the static search page.
package httpapi

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/crossmerch/semsearch/internal/catalog"
	"github.com/crossmerch/semsearch/internal/observability"
	"github.com/crossmerch/semsearch/internal/pipeline"
	"github.com/crossmerch/semsearch/internal/store"
)

//go:embed static
var staticFS embed.FS

// Indexer is the indexing pipeline boundary the API needs.
type Indexer interface {
	Index(ctx context.Context, doc catalog.ProductDocument) (store.IndexResult, error)
}

// Searcher is the search pipeline boundary the API needs.
type Searcher interface {
	Search(ctx context.Context, query string) ([]catalog.ScoredResult, error)
}

// Config holds HTTP server configuration.
type Config struct {
	ListenAddr string // e.g. ":8080"
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{ListenAddr: ":8080"}
}

// Server is the search service HTTP server.
type Server struct {
	config   *Config
	indexer  Indexer
	searcher Searcher
	metrics  *observability.Metrics
	server   *http.Server
}

// NewServer creates the HTTP server and wires all routes.
func NewServer(config *Config, indexer Indexer, searcher Searcher, metrics *observability.Metrics) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	s := &Server{
		config:   config,
		indexer:  indexer,
		searcher: searcher,
		metrics:  metrics,
	}

	s.server = &http.Server{
		Addr:         config.ListenAddr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wired route handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/index", s.handleIndex)
	mux.HandleFunc("/search", s.handleSearch)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.Handle("/metrics", s.metrics.Handler())

	// Static search page
	mux.HandleFunc("/", s.handleStatic)

	return corsMiddleware(loggingMiddleware(mux))
}

// Start begins serving requests.
func (s *Server) Start() error {
	slog.Info("starting HTTP server", "addr", s.config.ListenAddr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	slog.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}

// handleStatic serves the embedded search page.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	staticFiles, err := fs.Sub(staticFS, "static")
	if err != nil {
		slog.Error("failed to access static files", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	http.FileServer(http.FS(staticFiles)).ServeHTTP(w, r)
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	respondJSON(w, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// respondError maps a pipeline failure to an HTTP status.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, pipeline.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, pipeline.ErrProvider):
		status = http.StatusBadGateway
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// corsMiddleware adds CORS headers for local development
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
