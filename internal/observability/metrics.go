package observability

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Metrics collects request-level counters and latency histograms for the
// service, exposed in Prometheus text format.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]*Counter
	histos   map[string]*Histogram

	IndexedDocuments *Counter
	IndexFailures    *Counter
	SearchRequests   *Counter
	SearchFailures   *Counter
	IndexLatency     *Histogram
	SearchLatency    *Histogram
}

// Counter is a monotonically increasing metric.
type Counter struct {
	name  string
	help  string
	mu    sync.Mutex
	value float64
}

// Histogram tracks a distribution of values in seconds.
type Histogram struct {
	name    string
	help    string
	buckets []float64
	mu      sync.Mutex
	counts  []uint64
	sum     float64
	count   uint64
}

// DefaultBuckets returns default histogram buckets for latency.
func DefaultBuckets() []float64 {
	return []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
}

// NewMetrics creates the service metrics set.
func NewMetrics() *Metrics {
	m := &Metrics{
		counters: make(map[string]*Counter),
		histos:   make(map[string]*Histogram),
	}
	m.IndexedDocuments = m.newCounter("semsearch_indexed_documents_total", "Documents written to the store")
	m.IndexFailures = m.newCounter("semsearch_index_failures_total", "Indexing requests that failed")
	m.SearchRequests = m.newCounter("semsearch_search_requests_total", "Search requests served")
	m.SearchFailures = m.newCounter("semsearch_search_failures_total", "Search requests that failed")
	m.IndexLatency = m.newHistogram("semsearch_index_duration_seconds", "Indexing pipeline latency")
	m.SearchLatency = m.newHistogram("semsearch_search_duration_seconds", "Search pipeline latency")
	return m
}

func (m *Metrics) newCounter(name, help string) *Counter {
	c := &Counter{name: name, help: help}
	m.counters[name] = c
	return c
}

func (m *Metrics) newHistogram(name, help string) *Histogram {
	buckets := DefaultBuckets()
	h := &Histogram{name: name, help: help, buckets: buckets, counts: make([]uint64, len(buckets))}
	m.histos[name] = h
	return h
}

// Inc increments a counter by 1.
func (c *Counter) Inc() {
	c.mu.Lock()
	c.value++
	c.mu.Unlock()
}

// Value returns the counter value.
func (c *Counter) Value() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Observe records a value in the histogram.
func (h *Histogram) Observe(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sum += v
	h.count++
	for i, bound := range h.buckets {
		if v <= bound {
			h.counts[i]++
			break
		}
	}
}

// ObserveDuration records the time elapsed since start.
func (h *Histogram) ObserveDuration(start time.Time) {
	h.Observe(time.Since(start).Seconds())
}

// Handler returns an HTTP handler serving Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		m.WritePrometheus(w)
	})
}

// WritePrometheus writes all metrics in Prometheus text format.
func (m *Metrics) WritePrometheus(w io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.counters))
	for name := range m.counters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := m.counters[name]
		c.mu.Lock()
		fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s counter\n%s %g\n", c.name, c.help, c.name, c.name, c.value)
		c.mu.Unlock()
	}

	names = names[:0]
	for name := range m.histos {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		h := m.histos[name]
		h.mu.Lock()
		fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s histogram\n", h.name, h.help, h.name)
		var cumulative uint64
		for i, bound := range h.buckets {
			cumulative += h.counts[i]
			fmt.Fprintf(w, "%s_bucket{le=%q} %d\n", h.name, fmt.Sprintf("%g", bound), cumulative)
		}
		fmt.Fprintf(w, "%s_bucket{le=\"+Inf\"} %d\n", h.name, h.count)
		fmt.Fprintf(w, "%s_sum %g\n", h.name, h.sum)
		fmt.Fprintf(w, "%s_count %d\n", h.name, h.count)
		h.mu.Unlock()
	}
}
