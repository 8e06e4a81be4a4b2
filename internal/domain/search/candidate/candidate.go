// Package candidate holds per-source ranked candidate lists.
package candidate

import (
	"fmt"

	"github.com/hanseo-labs/postfind/internal/domain/search/source"
)

// Ranked pairs a post id with its 1-based rank within one source.
type Ranked struct {
	PostID int64
	Rank   int
}

// List is the ordered candidate sequence produced by exactly one source.
// Ranks are strictly increasing and post ids are unique within the list.
type List struct {
	Source  source.Source
	Entries []Ranked
}

// FromIDs builds a List assigning 1-based ranks from scan order. The store
// returns ids already ordered by its relevance metric with ties broken by
// id ascending, so scan order is the source rank.
func FromIDs(src source.Source, ids []int64) List {
	entries := make([]Ranked, len(ids))
	for i, id := range ids {
		entries[i] = Ranked{PostID: id, Rank: i + 1}
	}
	return List{Source: src, Entries: entries}
}

// Validate checks the list invariants: strictly increasing ranks starting
// at 1 or later, and unique post ids.
func (l List) Validate() error {
	seen := make(map[int64]struct{}, len(l.Entries))
	prev := 0
	for _, e := range l.Entries {
		if e.Rank <= prev {
			return fmt.Errorf("source %s: rank %d not strictly increasing after %d", l.Source.Name, e.Rank, prev)
		}
		if _, dup := seen[e.PostID]; dup {
			return fmt.Errorf("source %s: duplicate post id %d", l.Source.Name, e.PostID)
		}
		seen[e.PostID] = struct{}{}
		prev = e.Rank
	}
	return nil
}
