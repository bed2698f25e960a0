package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg.Embedder.Dimension != 768 {
		t.Errorf("Embedder.Dimension = %d, want 768", cfg.Embedder.Dimension)
	}
	if cfg.Store.Collection != "products" {
		t.Errorf("Store.Collection = %q, want %q", cfg.Store.Collection, "products")
	}
	if cfg.Store.Backend != "qdrant" {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, "qdrant")
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want %q", cfg.HTTP.Addr, ":8080")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "semsearch.yaml")
	content := `
embedder:
  model: use-cmlm-multilingual
  base_url: http://localhost:8081/v1
store:
  backend: memory
http:
  addr: ":9000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Embedder.Model != "use-cmlm-multilingual" {
		t.Errorf("Embedder.Model = %q", cfg.Embedder.Model)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("Store.Backend = %q, want memory", cfg.Store.Backend)
	}
	if cfg.HTTP.Addr != ":9000" {
		t.Errorf("HTTP.Addr = %q, want :9000", cfg.HTTP.Addr)
	}
	// Unset fields keep their defaults.
	if cfg.Embedder.Dimension != 768 {
		t.Errorf("Embedder.Dimension = %d, want default 768", cfg.Embedder.Dimension)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string // substring expected in a warning, "" for none
	}{
		{
			name: "valid",
			cfg: Config{
				Embedder: EmbedderConfig{Model: "m", Dimension: 768},
				Store:    StoreConfig{Backend: "memory"},
			},
			want: "",
		},
		{
			name: "zero_dimension",
			cfg: Config{
				Embedder: EmbedderConfig{Model: "m"},
				Store:    StoreConfig{Backend: "memory"},
			},
			want: "dimension",
		},
		{
			name: "unknown_backend",
			cfg: Config{
				Embedder: EmbedderConfig{Model: "m", Dimension: 768},
				Store:    StoreConfig{Backend: "cassandra"},
			},
			want: "backend",
		},
		{
			name: "qdrant_without_host",
			cfg: Config{
				Embedder: EmbedderConfig{Model: "m", Dimension: 768},
				Store:    StoreConfig{Backend: "qdrant"},
			},
			want: "host",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.cfg.Validate()
			if tt.want == "" {
				if len(warnings) != 0 {
					t.Errorf("unexpected warnings: %v", warnings)
				}
				return
			}
			found := false
			for _, w := range warnings {
				if strings.Contains(w, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("warnings %v missing substring %q", warnings, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SEMSEARCH_STORE_BACKEND", "memory")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("Store.Backend = %q, want env override memory", cfg.Store.Backend)
	}
}
