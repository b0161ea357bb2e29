package vectorindex

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kindora-ai/kindora-agent/internal/domain"
)

// stubEmbedder returns canned vectors so similarity scores are predictable.
type stubEmbedder struct {
	vecs map[string][]float32
	err  error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.vecs[text]; ok {
		return v, nil
	}
	return []float32{1, 0}, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := s.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func newIndexWithPassages(t *testing.T, embs [][]float32) *MemoryIndex {
	t.Helper()

	idx := NewMemoryIndex(&stubEmbedder{})
	passages := make([]domain.Passage, len(embs))
	for i := range embs {
		passages[i] = domain.Passage{ID: fmt.Sprintf("p%d", i), Text: fmt.Sprintf("passage %d", i)}
	}
	if err := idx.Add(context.Background(), passages, embs); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	return idx
}

func TestMemoryIndex_RejectsBadK(t *testing.T) {
	idx := NewMemoryIndex(&stubEmbedder{})

	_, err := idx.Search(context.Background(), "apa itu kecemasan", 0)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestMemoryIndex_EmptyIndexIsNotAnError(t *testing.T) {
	idx := NewMemoryIndex(&stubEmbedder{})

	res, err := idx.Search(context.Background(), "insomnia", 3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(res) != 0 {
		t.Errorf("expected empty result, got %d", len(res))
	}
}

func TestMemoryIndex_TopKDescending(t *testing.T) {
	// Five passages with distinct similarities to the query vector (1, 0).
	idx := newIndexWithPassages(t, [][]float32{
		{0.1, 1},
		{0.9, 1},
		{0.5, 1},
		{1, 0.1},
		{0.3, 1},
	})

	res, err := idx.Search(context.Background(), "q", 3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(res) != 3 {
		t.Fatalf("expected 3 results, got %d", len(res))
	}
	for i := 1; i < len(res); i++ {
		if res[i].Score > res[i-1].Score {
			t.Errorf("results not in descending score order at %d", i)
		}
	}
	if res[0].Passage.ID != "p3" {
		t.Errorf("expected p3 first, got %s", res[0].Passage.ID)
	}
}

func TestMemoryIndex_TieBrokenByInsertionOrder(t *testing.T) {
	idx := newIndexWithPassages(t, [][]float32{
		{0, 1},
		{1, 0}, // same score as p2
		{1, 0},
	})

	res, err := idx.Search(context.Background(), "q", 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if res[0].Passage.ID != "p1" || res[1].Passage.ID != "p2" {
		t.Errorf("tie not broken by insertion order: got %s, %s", res[0].Passage.ID, res[1].Passage.ID)
	}
}

func TestMemoryIndex_SearchIsIdempotent(t *testing.T) {
	idx := newIndexWithPassages(t, [][]float32{
		{0.2, 1}, {0.8, 0.4}, {1, 0},
	})

	first, err := idx.Search(context.Background(), "q", 3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	second, err := idx.Search(context.Background(), "q", 3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("result lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Passage.ID != second[i].Passage.ID || first[i].Score != second[i].Score {
			t.Errorf("result %d differs between identical searches", i)
		}
	}
}

func TestMemoryIndex_BrokenEmbedderIsIndexUnavailable(t *testing.T) {
	idx := NewMemoryIndex(&stubEmbedder{err: errors.New("connection refused")})

	_, err := idx.Search(context.Background(), "q", 3)

	var unavailable *domain.IndexUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected IndexUnavailableError, got %v", err)
	}
}
