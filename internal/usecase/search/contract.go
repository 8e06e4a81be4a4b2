package search

import (
	"context"

	"github.com/hanseo-labs/postfind/internal/domain"
	"github.com/hanseo-labs/postfind/internal/domain/post"
	"github.com/hanseo-labs/postfind/internal/domain/search/candidate"
	"github.com/hanseo-labs/postfind/internal/domain/search/source"
)

// Retriever defines the storage contract for candidate lookups. Each lookup
// is an independent, bounded, ranked scan; the store orders by its native
// relevance metric with ties broken by post id ascending so the returned
// ranks are deterministic.
type Retriever interface {
	// LexicalSources lists the configured full-text sources.
	LexicalSources() []source.Source

	// LexicalSearch returns at most cap candidates for one lexical source.
	// An empty query yields an empty list, not an error.
	LexicalSearch(ctx context.Context, src source.Source, query string, cap int) (candidate.List, error)

	// SemanticSearch returns at most cap candidates ranked by embedding
	// distance. A nil vector yields an empty list, not an error.
	SemanticSearch(ctx context.Context, vector []float32, cap int) (candidate.List, error)

	// CountMatches returns the uncapped cardinality of the union of ids
	// matched by any source. It must not be derived from capped candidate
	// lists, else pagination metadata is wrong once matches exceed the cap.
	CountMatches(ctx context.Context, query string, vector []float32) (int64, error)
}

// PostReader hydrates post records for a page of ids.
type PostReader interface {
	// PostsByID fetches full records for the given ids in store order;
	// ids without a record are simply absent from the result.
	PostsByID(ctx context.Context, ids []int64) ([]post.Summary, error)
}

// Embedder vectorizes query text. See domain.Embedder.
type Embedder = domain.Embedder
