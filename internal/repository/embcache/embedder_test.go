package embcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hanseo-labs/postfind/internal/db"
	"github.com/hanseo-labs/postfind/internal/domain"
)

type fakeStore struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	lastTTL time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	f.lastTTL = ttl
	return nil
}

type fakeEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	f.calls++
	if f.err != nil {
		return domain.EmbeddingResult{}, f.err
	}
	return domain.EmbeddingResult{Embedding: f.vec, TotalTokens: 5}, nil
}

func TestCachedEmbedder_MissThenHit(t *testing.T) {
	inner := &fakeEmbedder{vec: []float32{0.5, -1.25, 3}}
	store := newFakeStore()
	cached := New(inner, store, time.Hour, nil, zap.NewNop())

	first, err := cached.Embed(context.Background(), "query text")
	if err != nil {
		t.Fatalf("first Embed: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 inner call, got %d", inner.calls)
	}
	if first.TotalTokens != 5 {
		t.Errorf("miss should report real token usage, got %d", first.TotalTokens)
	}
	if store.lastTTL != time.Hour {
		t.Errorf("expected TTL 1h, got %v", store.lastTTL)
	}

	second, err := cached.Embed(context.Background(), "query text")
	if err != nil {
		t.Fatalf("second Embed: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("hit should not call inner, got %d calls", inner.calls)
	}
	if second.TotalTokens != 0 {
		t.Errorf("hit should report 0 tokens, got %d", second.TotalTokens)
	}
	if len(second.Embedding) != 3 || second.Embedding[1] != -1.25 {
		t.Errorf("unexpected cached vector: %v", second.Embedding)
	}
}

func TestCachedEmbedder_DistinctTextsDistinctKeys(t *testing.T) {
	inner := &fakeEmbedder{vec: []float32{1}}
	store := newFakeStore()
	cached := New(inner, store, time.Hour, nil, zap.NewNop())

	if _, err := cached.Embed(context.Background(), "alpha"); err != nil {
		t.Fatal(err)
	}
	if _, err := cached.Embed(context.Background(), "beta"); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Fatalf("expected 2 inner calls for distinct texts, got %d", inner.calls)
	}
	if len(store.data) != 2 {
		t.Fatalf("expected 2 cache entries, got %d", len(store.data))
	}
}

func TestCachedEmbedder_StoreFailureFallsThrough(t *testing.T) {
	inner := &fakeEmbedder{vec: []float32{1, 2}}
	store := newFakeStore()
	store.getErr = errors.New("redis down")
	store.setErr = errors.New("redis down")
	cached := New(inner, store, time.Hour, nil, zap.NewNop())

	result, err := cached.Embed(context.Background(), "query")
	if err != nil {
		t.Fatalf("cache failure must not fail the embed: %v", err)
	}
	if len(result.Embedding) != 2 {
		t.Errorf("unexpected vector: %v", result.Embedding)
	}
	if inner.calls != 1 {
		t.Errorf("expected inner call despite cache failure, got %d", inner.calls)
	}
}

func TestCachedEmbedder_InnerErrorPropagates(t *testing.T) {
	inner := &fakeEmbedder{err: domain.ErrEmbeddingUnavailable}
	cached := New(inner, newFakeStore(), time.Hour, nil, zap.NewNop())

	_, err := cached.Embed(context.Background(), "query")
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}

func TestVectorRoundTrip(t *testing.T) {
	in := []float32{0, 1.5, -2.25, 3.14159}
	out, err := bytesToVector(vectorToCacheBytes(in))
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("length mismatch: %d vs %d", len(out), len(in))
	}
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("index %d: %f != %f", i, in[i], out[i])
		}
	}
}

func TestBytesToVector_CorruptData(t *testing.T) {
	if _, err := bytesToVector([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for non-multiple-of-4 data")
	}
}
