// Package request holds the validated search query value object.
package request

import (
	"fmt"
	"strings"

	"github.com/hanseo-labs/postfind/internal/domain"
)

// Search parameter limits. MaxPage bounds the offset and retrieval-cap
// arithmetic: without it a large valid page number overflows Cap() or turns
// it into an arbitrarily large allocation hint downstream.
const (
	MaxQueryLength = 1024
	DefaultPage    = 1
	DefaultLimit   = 10
	MaxLimit       = 100
	MaxPage        = 10000
)

// Request is a validated, normalized search query.
type Request struct {
	query string
	page  int
	limit int
}

// New validates and normalizes search parameters.
// Defaults: page=1, limit=10. An empty query is valid (the result is an
// empty page), but limit and page must be positive; limit is clamped to
// MaxLimit and page beyond MaxPage is rejected.
func New(query string, page, limit int) (Request, error) {
	query = strings.TrimSpace(query)
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	if page == 0 {
		page = DefaultPage
	}
	if page < 0 {
		return Request{}, fmt.Errorf("%w: page must be positive, got %d", domain.ErrInvalidRequest, page)
	}
	if page > MaxPage {
		return Request{}, fmt.Errorf("%w: page must be at most %d, got %d", domain.ErrInvalidRequest, MaxPage, page)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 0 {
		return Request{}, fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidRequest, limit)
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Request{query: query, page: page, limit: limit}, nil
}

// Query returns the search query text (may be empty).
func (r *Request) Query() string { return r.query }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// Offset returns the number of fused entries to skip: (page-1)*limit.
func (r *Request) Offset() int { return (r.page - 1) * r.limit }

// Cap returns the per-source retrieval cap. The 2x margin over limit+offset
// keeps the fused top-(limit+offset) unaffected by items beyond the cap for
// the default weights; this is a documented approximation, not a proven
// invariant under arbitrary weight and smoothing settings.
func (r *Request) Cap() int { return 2 * (r.limit + r.Offset()) }
