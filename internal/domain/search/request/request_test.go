package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/hanseo-labs/postfind/internal/domain"
)

func TestNew_Defaults(t *testing.T) {
	r, err := New("hello", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Page() != 1 || r.Limit() != 10 {
		t.Errorf("expected defaults page=1 limit=10, got %d/%d", r.Page(), r.Limit())
	}
	if r.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", r.Offset())
	}
}

func TestNew_OffsetAndCap(t *testing.T) {
	r, err := New("hello", 3, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Offset() != 20 {
		t.Errorf("expected offset (3-1)*10=20, got %d", r.Offset())
	}
	if r.Cap() != 60 {
		t.Errorf("expected cap 2*(10+20)=60, got %d", r.Cap())
	}
}

func TestNew_NegativePageRejected(t *testing.T) {
	_, err := New("hello", -1, 10)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_NegativeLimitRejected(t *testing.T) {
	_, err := New("hello", 1, -5)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_PageTooLargeRejected(t *testing.T) {
	for _, page := range []int{MaxPage + 1, 100_000_000, 1 << 61} {
		_, err := New("hello", page, 100)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("page %d: expected ErrInvalidRequest, got %v", page, err)
		}
	}
}

func TestNew_MaxPageArithmeticStaysBounded(t *testing.T) {
	r, err := New("hello", MaxPage, MaxLimit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantOffset := (MaxPage - 1) * MaxLimit
	if r.Offset() != wantOffset {
		t.Errorf("expected offset %d, got %d", wantOffset, r.Offset())
	}
	wantCap := 2 * (MaxLimit + wantOffset)
	if r.Cap() != wantCap {
		t.Errorf("expected cap %d, got %d", wantCap, r.Cap())
	}
	if r.Cap() <= 0 {
		t.Errorf("cap must stay positive at the page bound, got %d", r.Cap())
	}
}

func TestNew_LimitClamped(t *testing.T) {
	r, err := New("hello", 1, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Limit() != MaxLimit {
		t.Errorf("expected limit clamped to %d, got %d", MaxLimit, r.Limit())
	}
}

func TestNew_QueryTrimmedAndEmptyAllowed(t *testing.T) {
	r, err := New("   ", 1, 10)
	if err != nil {
		t.Fatalf("blank query is valid (empty result, not error): %v", err)
	}
	if r.Query() != "" {
		t.Errorf("expected trimmed empty query, got %q", r.Query())
	}
}

func TestNew_QueryTooLong(t *testing.T) {
	_, err := New(strings.Repeat("x", MaxQueryLength+1), 1, 10)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
