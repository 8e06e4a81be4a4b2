// Package openai implements the embedding client against an
// OpenAI-compatible API (e.g. a vLLM or TEI deployment).
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/hanseo-labs/postfind/internal/domain"
	"github.com/hanseo-labs/postfind/internal/metrics"
)

// Embedder turns query text into fixed-dimension vectors over a remote call.
type Embedder struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
	provider   string
	logger     *zap.Logger
}

// Config holds the embedding provider settings.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int
	Provider   string
	Logger     *zap.Logger
}

// NewEmbedder creates an OpenAI-compatible embedding provider.
func NewEmbedder(cfg *Config) *Embedder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	dims := cfg.Dimensions
	if dims <= 0 {
		dims = domain.DefaultVectorDim
	}

	return &Embedder{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      openai.EmbeddingModel(cfg.Model),
		dimensions: dims,
		provider:   cfg.Provider,
		logger:     cfg.Logger,
	}
}

// Embed implements domain.Embedder. A vector whose length differs from the
// configured dimensionality is rejected with domain.ErrVectorDimMismatch and
// must not be used for retrieval; the store schema is fixed to one width.
func (e *Embedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	req := openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          e.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}

	start := time.Now()

	resp, err := e.client.CreateEmbeddings(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, string(e.model), "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, string(e.model), "api_error").Inc()
		return domain.EmbeddingResult{}, parseAPIError(err)
	}

	if len(resp.Data) == 0 {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, string(e.model), "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, string(e.model), "empty_response").Inc()
		return domain.EmbeddingResult{}, fmt.Errorf("empty embedding response: %w", domain.ErrEmbeddingUnavailable)
	}

	vec := resp.Data[0].Embedding
	if len(vec) != e.dimensions {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, string(e.model), "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, string(e.model), "bad_shape").Inc()
		return domain.EmbeddingResult{}, fmt.Errorf(
			"expected %d dimensions, got %d: %w", e.dimensions, len(vec), domain.ErrVectorDimMismatch)
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, string(e.model), "success").Inc()
	metrics.EmbeddingRequestDuration.WithLabelValues(e.provider, string(e.model)).Observe(duration.Seconds())

	return domain.EmbeddingResult{
		Embedding:    vec,
		PromptTokens: resp.Usage.PromptTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (e *Embedder) HealthCheck(ctx context.Context) error {
	if _, err := e.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError maps provider failures onto domain.ErrEmbeddingUnavailable
// so callers can degrade to lexical-only search with a single errors.Is.
func parseAPIError(err error) error {
	wrap := domain.ErrEmbeddingUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("embedding API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("embedding API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("embedding request failed: %v: %w", err, wrap)
}
