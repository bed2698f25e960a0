package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crossmerch/semsearch/internal/catalog"
	"github.com/crossmerch/semsearch/internal/observability"
	"github.com/crossmerch/semsearch/internal/pipeline"
	"github.com/crossmerch/semsearch/internal/store"
)

type fakeIndexer struct {
	got catalog.ProductDocument
	err error
}

func (f *fakeIndexer) Index(ctx context.Context, doc catalog.ProductDocument) (store.IndexResult, error) {
	f.got = doc
	if f.err != nil {
		return store.IndexResult{}, f.err
	}
	return store.IndexResult{Result: "created", ID: "abc123"}, nil
}

type fakeSearcher struct {
	gotQuery string
	results  []catalog.ScoredResult
	err      error
}

func (f *fakeSearcher) Search(ctx context.Context, query string) ([]catalog.ScoredResult, error) {
	f.gotQuery = query
	return f.results, f.err
}

func newTestServer(indexer Indexer, searcher Searcher) *Server {
	return NewServer(DefaultConfig(), indexer, searcher, observability.NewMetrics())
}

func TestHandleIndex(t *testing.T) {
	indexer := &fakeIndexer{}
	srv := newTestServer(indexer, &fakeSearcher{})

	body := `{"product_title": "Red Shoes", "category_title": "Footwear"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/index", strings.NewReader(body))
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}
	var result store.IndexResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.Result != "created" || result.ID == "" {
		t.Errorf("result = %+v, want created with id", result)
	}
	if indexer.got.Title != "Red Shoes" {
		t.Errorf("indexer received Title %q", indexer.got.Title)
	}
}

func TestHandleIndex_MalformedBody(t *testing.T) {
	srv := newTestServer(&fakeIndexer{}, &fakeSearcher{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/index", strings.NewReader("{not json"))
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleIndex_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"provider", fmt.Errorf("%w: model down", pipeline.ErrProvider), http.StatusBadGateway},
		{"store_write", fmt.Errorf("%w: rejected", pipeline.ErrStoreWrite), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&fakeIndexer{err: tt.err}, &fakeSearcher{})
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/index", strings.NewReader(`{}`))
			srv.Handler().ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body["error"] == "" {
				t.Error("error body missing 'error' field")
			}
		})
	}
}

func TestHandleSearch(t *testing.T) {
	searcher := &fakeSearcher{
		results: []catalog.ScoredResult{{Score: 1.8, Title: "Red Shoes"}},
	}
	srv := newTestServer(&fakeIndexer{}, searcher)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"query": "red sneakers"}`))
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}
	if searcher.gotQuery != "red sneakers" {
		t.Errorf("searcher received query %q", searcher.gotQuery)
	}
	var results []catalog.ScoredResult
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Title != "Red Shoes" {
		t.Errorf("results = %+v", results)
	}
}

func TestHandleSearch_MissingQuery(t *testing.T) {
	srv := newTestServer(&fakeIndexer{}, &fakeSearcher{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{}`))
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing query", rec.Code)
	}
}

func TestHandleSearch_EmptyQueryAllowed(t *testing.T) {
	searcher := &fakeSearcher{}
	srv := newTestServer(&fakeIndexer{}, searcher)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"query": ""}`))
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for empty query", rec.Code)
	}
}

func TestHandleSearch_EmptyResultsNotNull(t *testing.T) {
	srv := newTestServer(&fakeIndexer{}, &fakeSearcher{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"query": "nothing"}`))
	srv.Handler().ServeHTTP(rec, req)

	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("empty result body = %q, want []", got)
	}
}

func TestHandleSearch_StoreQueryError(t *testing.T) {
	searcher := &fakeSearcher{err: fmt.Errorf("%w: unreachable", pipeline.ErrStoreQuery)}
	srv := newTestServer(&fakeIndexer{}, searcher)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"query": "x"}`))
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestStaticPage(t *testing.T) {
	srv := newTestServer(&fakeIndexer{}, &fakeSearcher{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<title>Product Search</title>") {
		t.Error("static page not served")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(&fakeIndexer{}, &fakeSearcher{})

	for _, path := range []string{"/index", "/search"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		srv.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("GET %s status = %d, want 405", path, rec.Code)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&fakeIndexer{}, &fakeSearcher{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}
