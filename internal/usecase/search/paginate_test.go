package search

import (
	"testing"

	"github.com/hanseo-labs/postfind/internal/domain/search/fused"
)

func fusedOrderOf(ids ...int64) []fused.Entry {
	entries := make([]fused.Entry, len(ids))
	for i, id := range ids {
		entries[i] = fused.Entry{ID: id, Score: float64(len(ids) - i)}
	}
	return entries
}

func TestPaginate_AdjacentPagesCoverWithoutOverlap(t *testing.T) {
	order := fusedOrderOf(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)

	first := paginate(order, 0, 5)
	second := paginate(order, 5, 5)

	if len(first) != 5 || len(second) != 5 {
		t.Fatalf("expected 5+5 entries, got %d+%d", len(first), len(second))
	}

	seen := make(map[int64]bool)
	for _, e := range append(append([]fused.Entry{}, first...), second...) {
		if seen[e.ID] {
			t.Errorf("id %d appears on both pages", e.ID)
		}
		seen[e.ID] = true
	}

	// Together the two pages must be exactly entries [0,10) of the order.
	for i, e := range first {
		if e.ID != order[i].ID {
			t.Errorf("first page position %d: expected %d, got %d", i, order[i].ID, e.ID)
		}
	}
	for i, e := range second {
		if e.ID != order[5+i].ID {
			t.Errorf("second page position %d: expected %d, got %d", i, order[5+i].ID, e.ID)
		}
	}
}

func TestPaginate_ClampsToAvailableLength(t *testing.T) {
	order := fusedOrderOf(1, 2, 3)

	got := paginate(order, 2, 5)
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("expected trailing partial page [3], got %+v", got)
	}
}

func TestPaginate_OffsetPastEndIsEmptyNotError(t *testing.T) {
	order := fusedOrderOf(1, 2, 3)

	got := paginate(order, 10, 5)
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected empty page past the end, got %d entries", len(got))
	}
}

func TestPaginate_EmptyOrder(t *testing.T) {
	got := paginate(nil, 0, 10)
	if len(got) != 0 {
		t.Fatalf("expected empty page for empty order, got %d entries", len(got))
	}
}

func TestPaginate_NegativeOffsetClamped(t *testing.T) {
	order := fusedOrderOf(1, 2)
	got := paginate(order, -3, 10)
	if len(got) != 2 {
		t.Fatalf("expected full order for clamped negative offset, got %d entries", len(got))
	}
}
