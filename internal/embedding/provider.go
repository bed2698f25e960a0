// Package embedding defines the boundary to the external embedding model.
package embedding

import "context"

// Provider maps text to a fixed-dimension vector. Implementations must be
// deterministic for a fixed model identity: the same text yields the same
// vector, up to floating-point noise across hardware.
type Provider interface {
	// Embed returns the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// Dimension returns the vector dimension the model produces.
	Dimension() int
	// Name returns the provider identifier (e.g. "openai").
	Name() string
}
