package embedding

import "context"

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	// Embed returns the embedding vector for one text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch embeds several texts in one provider call, returned in
	// input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
