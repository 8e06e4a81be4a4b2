package search

import (
	"sort"

	"github.com/hanseo-labs/postfind/internal/domain/search/candidate"
	"github.com/hanseo-labs/postfind/internal/domain/search/fused"
	"github.com/hanseo-labs/postfind/internal/domain/search/source"
)

// DefaultRRFK is the default Reciprocal Rank Fusion smoothing constant.
// Larger values flatten the influence of rank differences.
const DefaultRRFK = 50

// Weights are the per-source-class RRF weights. Lexical rank scores and
// vector distances live on incomparable scales, so rank position weighted
// per class is the only blending currency.
type Weights struct {
	Lexical  float64
	Semantic float64
}

// UnitWeights weighs every source class equally.
var UnitWeights = Weights{Lexical: 1.0, Semantic: 1.0}

func (w Weights) forClass(c source.Class) float64 {
	if c == source.Semantic {
		return w.Semantic
	}
	return w.Lexical
}

// fuseRRF merges candidate lists from any number of sources into one
// globally ordered, duplicate-free list:
//
//	score(id) = sum over sources s that ranked id of  w_s / (k + rank_s(id))
//
// The fused set is the union of ids across all lists; sources that did not
// rank an id contribute nothing. The final order is score descending with
// ties broken by post id ascending, which makes the output fully
// deterministic and pagination over it stable across identical queries.
func fuseRRF(lists []candidate.List, w Weights, k int) []fused.Entry {
	if k <= 0 {
		k = DefaultRRFK
	}

	scores := make(map[int64]float64)
	for _, list := range lists {
		weight := w.forClass(list.Source.Class)
		for _, e := range list.Entries {
			scores[e.PostID] += weight / float64(k+e.Rank)
		}
	}

	entries := make([]fused.Entry, 0, len(scores))
	for id, score := range scores {
		entries = append(entries, fused.Entry{ID: id, Score: score})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].ID < entries[j].ID
	})

	return entries
}
