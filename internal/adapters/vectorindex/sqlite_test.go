package vectorindex

import (
	"context"
	"errors"
	"testing"

	"github.com/kindora-ai/kindora-agent/internal/domain"
)

func TestSQLiteIndex_AddAndSearch(t *testing.T) {
	dir := t.TempDir()

	idx, err := NewSQLiteIndex(dir, &stubEmbedder{})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer idx.Close()

	passages := []domain.Passage{
		{ID: "a", Text: "Kecemasan adalah respons alami terhadap stres.", Metadata: map[string]string{"topic": "anxiety"}},
		{ID: "b", Text: "Insomnia kronis mengganggu kualitas tidur."},
	}
	embs := [][]float32{{0.2, 1}, {1, 0.1}}

	if err := idx.Add(context.Background(), passages, embs); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	res, err := idx.Search(context.Background(), "q", 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("expected 2 results, got %d", len(res))
	}
	if res[0].Passage.ID != "b" {
		t.Errorf("expected b first, got %s", res[0].Passage.ID)
	}
	if res[1].Passage.Metadata["topic"] != "anxiety" {
		t.Errorf("metadata not round-tripped: %v", res[1].Passage.Metadata)
	}
}

func TestSQLiteIndex_EmptyIndex(t *testing.T) {
	idx, err := NewSQLiteIndex(t.TempDir(), &stubEmbedder{})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer idx.Close()

	res, err := idx.Search(context.Background(), "apa itu depresi", 3)
	if err != nil {
		t.Fatalf("empty index must not error: %v", err)
	}
	if len(res) != 0 {
		t.Errorf("expected empty result, got %d", len(res))
	}
}

func TestSQLiteIndex_CountAndClear(t *testing.T) {
	idx, err := NewSQLiteIndex(t.TempDir(), &stubEmbedder{})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer idx.Close()

	ctx := context.Background()
	err = idx.Add(ctx, []domain.Passage{{ID: "x", Text: "t"}}, [][]float32{{1}})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	n, err := idx.Count(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expected count 1, got %d (%v)", n, err)
	}

	if err := idx.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	n, _ = idx.Count(ctx)
	if n != 0 {
		t.Errorf("expected count 0 after clear, got %d", n)
	}
}

func TestSQLiteIndex_MismatchedEmbeddings(t *testing.T) {
	idx, err := NewSQLiteIndex(t.TempDir(), &stubEmbedder{})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer idx.Close()

	err = idx.Add(context.Background(), []domain.Passage{{ID: "x"}}, nil)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
