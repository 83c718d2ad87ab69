package ports

import "context"

// Embedder maps a piece of text to a fixed-length vector. Implementations
// are expected to be deterministic for a fixed model. An embedding failure
// is fatal to the request that needed it; the core has no fallback.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}
