package domain

import "context"

// DefaultVectorDim is the embedding dimensionality the store schema is built for.
// It is fixed at deployment time; vectors of any other length are rejected.
const DefaultVectorDim = 768

// EmbeddingResult holds an embedding vector with token usage from the provider.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker is implemented by embedders that can verify provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
