package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/crossmerch/semsearch/internal/catalog"
	"github.com/crossmerch/semsearch/internal/pipeline"
)

// searchRequest is the POST /search body. Query is a pointer so a missing
// field can be told apart from an empty query, which is allowed through.
type searchRequest struct {
	Query *string `json:"query"`
}

// handleIndex handles POST /index
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var doc catalog.ProductDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		respondError(w, fmt.Errorf("%w: %v", pipeline.ErrValidation, err))
		return
	}

	result, err := s.indexer.Index(r.Context(), doc)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, result)
}

// handleSearch handles POST /search
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", pipeline.ErrValidation, err))
		return
	}
	if req.Query == nil {
		respondError(w, fmt.Errorf("%w: missing required field 'query'", pipeline.ErrValidation))
		return
	}

	results, err := s.searcher.Search(r.Context(), *req.Query)
	if err != nil {
		respondError(w, err)
		return
	}
	if results == nil {
		results = []catalog.ScoredResult{}
	}
	respondJSON(w, results)
}
