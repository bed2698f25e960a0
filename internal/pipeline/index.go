// Package pipeline wires the embedding provider and document store into the
// indexing and search flows. Both pipelines are synchronous and stateless:
// every request composes or embeds exactly once, and every collaborator
// failure surfaces immediately.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crossmerch/semsearch/internal/catalog"
	"github.com/crossmerch/semsearch/internal/embedding"
	"github.com/crossmerch/semsearch/internal/observability"
	"github.com/crossmerch/semsearch/internal/store"
)

// Indexer embeds product documents and writes them to the store.
type Indexer struct {
	provider embedding.Provider
	store    store.DocumentStore
	metrics  *observability.Metrics
}

// NewIndexer creates an indexing pipeline with injected collaborators.
func NewIndexer(provider embedding.Provider, docs store.DocumentStore, metrics *observability.Metrics) *Indexer {
	return &Indexer{provider: provider, store: docs, metrics: metrics}
}

// Index composes the document's text, obtains its embedding and writes the
// normalized record. The stored embedding always matches the composed text
// of exactly this input; repeated calls for the same product accumulate
// separate records.
func (p *Indexer) Index(ctx context.Context, doc catalog.ProductDocument) (store.IndexResult, error) {
	ctx, span := observability.StartPipelineSpan(ctx, "index")
	defer span.End()
	start := time.Now()

	text := catalog.CombinedText(doc)

	ectx, embedSpan := observability.StartEmbedSpan(ctx, p.provider.Name(), len(text))
	vector, err := p.provider.Embed(ectx, text)
	observability.RecordSpanError(embedSpan, err)
	embedSpan.End()
	if err != nil {
		p.metrics.IndexFailures.Inc()
		observability.RecordSpanError(span, err)
		return store.IndexResult{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if len(vector) != p.provider.Dimension() {
		p.metrics.IndexFailures.Inc()
		err := fmt.Errorf("%w: embedding dimension %d, want %d", ErrProvider, len(vector), p.provider.Dimension())
		observability.RecordSpanError(span, err)
		return store.IndexResult{}, err
	}

	sctx, storeSpan := observability.StartStoreSpan(ctx, "index")
	result, err := p.store.Index(sctx, store.Document{
		Product: doc.Normalize(),
		Vector:  vector,
	})
	observability.RecordSpanError(storeSpan, err)
	storeSpan.End()
	if err != nil {
		p.metrics.IndexFailures.Inc()
		observability.RecordSpanError(span, err)
		return store.IndexResult{}, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}

	p.metrics.IndexedDocuments.Inc()
	p.metrics.IndexLatency.ObserveDuration(start)
	slog.Debug("document indexed", "id", result.ID, "product_id", doc.ProductID)
	return result, nil
}
