package candidate

import (
	"testing"

	"github.com/hanseo-labs/postfind/internal/domain/search/source"
)

func TestFromIDs_AssignsOneBasedRanks(t *testing.T) {
	list := FromIDs(source.NewLexical("en"), []int64{42, 7, 19})

	if len(list.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(list.Entries))
	}
	for i, e := range list.Entries {
		if e.Rank != i+1 {
			t.Errorf("entry %d: expected rank %d, got %d", i, i+1, e.Rank)
		}
	}
	if list.Entries[0].PostID != 42 {
		t.Errorf("scan order must be preserved, got leading id %d", list.Entries[0].PostID)
	}
	if err := list.Validate(); err != nil {
		t.Errorf("FromIDs must produce a valid list: %v", err)
	}
}

func TestFromIDs_Empty(t *testing.T) {
	list := FromIDs(source.SemanticSource, nil)
	if len(list.Entries) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(list.Entries))
	}
	if err := list.Validate(); err != nil {
		t.Errorf("empty list is valid: %v", err)
	}
}

func TestValidate_NonIncreasingRanks(t *testing.T) {
	list := List{
		Source:  source.NewLexical("en"),
		Entries: []Ranked{{PostID: 1, Rank: 1}, {PostID: 2, Rank: 1}},
	}
	if err := list.Validate(); err == nil {
		t.Fatal("expected error for non-increasing ranks")
	}
}

func TestValidate_ZeroRank(t *testing.T) {
	list := List{
		Source:  source.NewLexical("en"),
		Entries: []Ranked{{PostID: 1, Rank: 0}},
	}
	if err := list.Validate(); err == nil {
		t.Fatal("expected error for rank 0 (ranks are 1-based)")
	}
}

func TestValidate_DuplicateIDs(t *testing.T) {
	list := List{
		Source:  source.NewLexical("en"),
		Entries: []Ranked{{PostID: 5, Rank: 1}, {PostID: 5, Rank: 2}},
	}
	if err := list.Validate(); err == nil {
		t.Fatal("expected error for duplicate post id")
	}
}

func TestValidate_SparseRanksAllowed(t *testing.T) {
	// Ranks need only be strictly increasing, not dense.
	list := List{
		Source:  source.NewLexical("en"),
		Entries: []Ranked{{PostID: 1, Rank: 2}, {PostID: 2, Rank: 9}},
	}
	if err := list.Validate(); err != nil {
		t.Fatalf("sparse ranks are valid: %v", err)
	}
}
