package search

import "github.com/hanseo-labs/postfind/internal/domain/search/fused"

// paginate slices fusedOrder[offset : offset+limit], clamped to the
// available length. An offset past the end yields an empty slice, not an
// error. The capped fused list is for ordering and paging only; the page's
// total count always comes from the uncapped union count.
func paginate(order []fused.Entry, offset, limit int) []fused.Entry {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(order) {
		return []fused.Entry{}
	}
	end := offset + limit
	if end > len(order) {
		end = len(order)
	}
	return order[offset:end]
}
