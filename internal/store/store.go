// Package store defines the document store boundary: persistence of product
// documents with their embedding and the similarity-scoring query used to
// rank them.
package store

import (
	"context"

	"github.com/crossmerch/semsearch/internal/catalog"
)

// Document is one stored record: the normalized product document plus the
// embedding vector derived from its composed text.
type Document struct {
	Product catalog.ProductDocument
	Vector  []float32
}

// IndexResult reports the outcome of a single write.
type IndexResult struct {
	Result string `json:"result"`
	ID     string `json:"id"`
}

// Hit is a scored match from a similarity query.
type Hit struct {
	Score   float32
	Product catalog.ProductDocument
}

// DocumentStore persists documents and scores them against a query vector.
// Scores follow the scoring contract cosine(query, doc) + 1.0, applied
// identically to every stored document over a match-all base query; hits
// come back in descending score order and the store's order is
// authoritative, including for ties.
type DocumentStore interface {
	// EnsureSchema creates the collection if it does not exist. Calling it
	// against an existing collection is a no-op, not an error.
	EnsureSchema(ctx context.Context) error
	// Index writes one document and returns the store-assigned identity.
	// Repeated writes for the same product accumulate separate records.
	Index(ctx context.Context, doc Document) (IndexResult, error)
	// Search scores every stored document against the vector and returns up
	// to size hits, best first.
	Search(ctx context.Context, vector []float32, size int) ([]Hit, error)
	// Close releases resources.
	Close() error
}
