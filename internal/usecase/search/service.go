// Package search orchestrates hybrid retrieval: candidate lookup across
// lexical and semantic sources, weighted Reciprocal Rank Fusion, stable
// pagination, and result hydration.
package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hanseo-labs/postfind/internal/domain"
	"github.com/hanseo-labs/postfind/internal/domain/post"
	"github.com/hanseo-labs/postfind/internal/domain/search/candidate"
	"github.com/hanseo-labs/postfind/internal/domain/search/fused"
	"github.com/hanseo-labs/postfind/internal/domain/search/mode"
	"github.com/hanseo-labs/postfind/internal/domain/search/request"
	"github.com/hanseo-labs/postfind/internal/logger"
	"github.com/hanseo-labs/postfind/internal/metrics"
)

// Page is one hydrated page of search results. TotalCount is the uncapped
// union cardinality, independent of the retrieval cap and of records
// dropped during hydration (documented staleness tolerance).
type Page struct {
	Posts      []post.Summary
	TotalCount int64
}

// Service runs one fusion computation per request. It is stateless across
// requests; the store pool and embedding client it holds are safe for
// unrestricted concurrent use.
type Service struct {
	repo         Retriever
	posts        PostReader
	embed        Embedder
	weights      Weights
	rrfK         int
	embedTimeout time.Duration
}

// New creates a search service with unit weights, the default smoothing
// constant, and a 1.5s embedding timeout.
func New(repo Retriever, posts PostReader, embed Embedder) *Service {
	return &Service{
		repo:         repo,
		posts:        posts,
		embed:        embed,
		weights:      UnitWeights,
		rrfK:         DefaultRRFK,
		embedTimeout: 1500 * time.Millisecond,
	}
}

// WithFusion overrides the fusion weights and smoothing constant.
func (s *Service) WithFusion(w Weights, k int) *Service {
	if w.Lexical > 0 || w.Semantic > 0 {
		s.weights = w
	}
	if k > 0 {
		s.rrfK = k
	}
	return s
}

// WithEmbedTimeout overrides the strict per-call embedding timeout. The
// embedding service crosses a network boundary to a separately-operated
// deployment, so its timeout is distinct from the request timeout.
func (s *Service) WithEmbedTimeout(d time.Duration) *Service {
	if d > 0 {
		s.embedTimeout = d
	}
	return s
}

// Search executes one hybrid search request.
//
// The embedding call and all lexical lookups start concurrently; the
// semantic lookup and the uncapped match count start once the vector (or
// its absence) is known. Embedding failure degrades to lexical-only
// fusion. Individual source failures degrade to the healthy subset; only
// when every attempted source fails does the request fail.
func (s *Service) Search(ctx context.Context, req *request.Request) (Page, error) {
	log := logger.FromContext(ctx)

	if req.Query() == "" {
		// No text signal means no lexical match and nothing to embed:
		// a valid empty page, not an error.
		return Page{Posts: []post.Summary{}}, nil
	}

	fetchCap := req.Cap()
	sources := s.repo.LexicalSources()

	lists := make([]candidate.List, len(sources))
	errs := make([]error, len(sources))

	var vec []float32
	var embErr error

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			lists[i], errs[i] = s.repo.LexicalSearch(gctx, src, req.Query(), fetchCap)
			return nil
		})
	}
	g.Go(func() error {
		embedCtx, cancel := context.WithTimeout(gctx, s.embedTimeout)
		defer cancel()

		var result domain.EmbeddingResult
		result, embErr = s.embed.Embed(embedCtx, req.Query())
		if embErr == nil {
			vec = result.Embedding
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Page{}, fmt.Errorf("candidate retrieval: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Page{}, fmt.Errorf("search canceled: %w", err)
	}

	if embErr != nil {
		// Semantic search is best-effort; lexical must still work standalone.
		log.Warn("embedding unavailable, degrading to lexical-only search", zap.Error(embErr))
		metrics.SearchDegradedTotal.WithLabelValues("embedding").Inc()
		vec = nil
	}
	m := mode.For(req.Query() != "", len(vec) > 0)

	var semList candidate.List
	var semErr error
	var total int64
	var countErr error

	g2, gctx2 := errgroup.WithContext(ctx)
	if m.UsesSemantic() {
		g2.Go(func() error {
			semList, semErr = s.repo.SemanticSearch(gctx2, vec, fetchCap)
			return nil
		})
	}
	g2.Go(func() error {
		total, countErr = s.repo.CountMatches(gctx2, req.Query(), vec)
		return nil
	})
	if err := g2.Wait(); err != nil {
		return Page{}, fmt.Errorf("candidate retrieval: %w", err)
	}

	healthy := make([]candidate.List, 0, len(lists)+1)
	attempted := len(sources)
	var firstErr error
	for i, err := range errs {
		if err != nil {
			log.Warn("lexical source failed",
				zap.String("source", sources[i].Name), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		healthy = append(healthy, lists[i])
	}
	if m.UsesSemantic() {
		attempted++
		if semErr != nil {
			log.Warn("semantic source failed", zap.Error(semErr))
			if firstErr == nil {
				firstErr = semErr
			}
		} else {
			healthy = append(healthy, semList)
		}
	}

	if len(healthy) == 0 && attempted > 0 {
		return Page{}, fmt.Errorf("%w: %w", domain.ErrRetrievalFailed, firstErr)
	}
	if len(healthy) < attempted {
		metrics.SearchDegradedTotal.WithLabelValues("source_failure").Inc()
	}

	for i := 0; i < len(healthy); i++ {
		if err := healthy[i].Validate(); err != nil {
			// A store bug, not a request error. Drop the list rather than
			// fuse nondeterministic ranks.
			log.Error("dropping invalid candidate list", zap.Error(err))
			healthy = append(healthy[:i], healthy[i+1:]...)
			i--
		}
	}

	order := fuseRRF(healthy, s.weights, s.rrfK)
	entries := paginate(order, req.Offset(), req.Limit())

	if countErr != nil {
		// Lower bound fallback keeps the page usable when only the count
		// query failed.
		log.Warn("uncapped match count failed, falling back to fused list length", zap.Error(countErr))
		total = int64(len(order))
	}

	posts, err := s.hydrate(ctx, entries)
	if err != nil {
		return Page{}, err
	}

	return Page{Posts: posts, TotalCount: total}, nil
}

// hydrate loads full records for the page of ids, preserving the fused
// order. Records missing from the store (deleted since retrieval) are
// silently dropped; TotalCount is not adjusted for such drops.
func (s *Service) hydrate(ctx context.Context, entries []fused.Entry) ([]post.Summary, error) {
	if len(entries) == 0 {
		return []post.Summary{}, nil
	}

	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}

	records, err := s.posts.PostsByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate posts: %w", err)
	}

	byID := make(map[int64]post.Summary, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	ordered := make([]post.Summary, 0, len(entries))
	for _, e := range entries {
		if r, ok := byID[e.ID]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered, nil
}
