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

// MaxResults caps every similarity query. Not caller-configurable.
const MaxResults = 40

// Searcher embeds query text and ranks stored documents against it.
type Searcher struct {
	provider embedding.Provider
	store    store.DocumentStore
	metrics  *observability.Metrics
}

// NewSearcher creates a search pipeline with injected collaborators.
func NewSearcher(provider embedding.Provider, docs store.DocumentStore, metrics *observability.Metrics) *Searcher {
	return &Searcher{provider: provider, store: docs, metrics: metrics}
}

// Search embeds the query and returns up to MaxResults hits in the store's
// descending-score order. The store's ordering is authoritative: no
// re-sorting, no tie-breaking. An empty query passes through to the
// provider unchanged.
func (p *Searcher) Search(ctx context.Context, query string) ([]catalog.ScoredResult, error) {
	ctx, span := observability.StartPipelineSpan(ctx, "search")
	defer span.End()
	start := time.Now()
	p.metrics.SearchRequests.Inc()

	ectx, embedSpan := observability.StartEmbedSpan(ctx, p.provider.Name(), len(query))
	vector, err := p.provider.Embed(ectx, query)
	observability.RecordSpanError(embedSpan, err)
	embedSpan.End()
	if err != nil {
		p.metrics.SearchFailures.Inc()
		observability.RecordSpanError(span, err)
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if len(vector) != p.provider.Dimension() {
		p.metrics.SearchFailures.Inc()
		err := fmt.Errorf("%w: embedding dimension %d, want %d", ErrProvider, len(vector), p.provider.Dimension())
		observability.RecordSpanError(span, err)
		return nil, err
	}

	sctx, storeSpan := observability.StartStoreSpan(ctx, "search")
	hits, err := p.store.Search(sctx, vector, MaxResults)
	observability.RecordSpanError(storeSpan, err)
	storeSpan.End()
	if err != nil {
		p.metrics.SearchFailures.Inc()
		observability.RecordSpanError(span, err)
		return nil, fmt.Errorf("%w: %v", ErrStoreQuery, err)
	}

	results := make([]catalog.ScoredResult, len(hits))
	for i, hit := range hits {
		doc := hit.Product.Normalize()
		results[i] = catalog.ScoredResult{
			Score:          hit.Score,
			Title:          doc.Title,
			Description:    doc.Description,
			CategoryTitle:  doc.CategoryTitle,
			ParentTitle:    doc.ParentTitle,
			Configurations: doc.Configurations,
			Spin:           doc.Spin,
			CategoryDesc:   doc.CategoryDesc,
			Tags:           doc.Tags,
		}
	}

	p.metrics.SearchLatency.ObserveDuration(start)
	slog.Debug("search served", "hits", len(results))
	return results, nil
}
