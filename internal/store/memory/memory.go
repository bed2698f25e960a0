// Package memory implements store.DocumentStore with an exact in-process
// scan: every query computes cosine similarity against every stored
// document. Suitable for tests and small single-node corpora.
package memory

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/crossmerch/semsearch/internal/store"
)

// Store is a brute-force in-memory document store.
type Store struct {
	mu        sync.RWMutex
	dimension int
	docs      []store.Document
}

// New creates a memory store for vectors of the given dimension.
func New(dimension int) *Store {
	return &Store{dimension: dimension}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	if s.dimension <= 0 {
		return errors.New("invalid dimension")
	}
	// Nothing to create; the schema is the struct itself.
	return nil
}

func (s *Store) Index(ctx context.Context, doc store.Document) (store.IndexResult, error) {
	if len(doc.Vector) != s.dimension {
		return store.IndexResult{}, errors.New("vector dimension mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)
	return store.IndexResult{Result: "created", ID: uuid.NewString()}, nil
}

func (s *Store) Search(ctx context.Context, vector []float32, size int) ([]store.Hit, error) {
	if len(vector) != s.dimension {
		return nil, errors.New("vector dimension mismatch")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	hits := make([]store.Hit, len(s.docs))
	for i, d := range s.docs {
		hits[i] = store.Hit{
			Score:   float32(cosine(vector, d.Vector) + 1.0),
			Product: d.Product,
		}
	}
	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if size < len(hits) {
		hits = hits[:size]
	}
	return hits, nil
}

func (s *Store) Close() error { return nil }

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

var _ store.DocumentStore = (*Store)(nil)
