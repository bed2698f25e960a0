package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func embedServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestEmbed(t *testing.T) {
	var gotBody map[string]any
	srv := embedServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("path = %q, want /embeddings", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("auth header = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatal(err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"embedding": []float32{0.1, 0.2, 0.3}},
			},
		})
	})

	c := New("test-key", "test-model", srv.URL, 3)
	vec, err := c.Embed(context.Background(), "red shoes")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vec) != 3 {
		t.Errorf("len(vec) = %d, want 3", len(vec))
	}
	if gotBody["model"] != "test-model" {
		t.Errorf("request model = %v", gotBody["model"])
	}
	input, ok := gotBody["input"].([]any)
	if !ok || len(input) != 1 || input[0] != "red shoes" {
		t.Errorf("request input = %v, want single text", gotBody["input"])
	}
}

func TestEmbed_HTTPError(t *testing.T) {
	srv := embedServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "over quota", http.StatusTooManyRequests)
	})

	c := New("k", "m", srv.URL, 768)
	if _, err := c.Embed(context.Background(), "x"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestEmbed_WrongCount(t *testing.T) {
	srv := embedServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	})

	c := New("k", "m", srv.URL, 768)
	if _, err := c.Embed(context.Background(), "x"); err == nil {
		t.Fatal("expected error for empty data array")
	}
}

func TestDimension(t *testing.T) {
	if got := New("", "", "", 768).Dimension(); got != 768 {
		t.Errorf("Dimension() = %d, want 768", got)
	}
}
