package vectorindex

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kindora-ai/kindora-agent/internal/domain"
)

// MemoryIndex is an in-memory vector index for local development and tests.
type MemoryIndex struct {
	mu         sync.RWMutex
	embedder   domain.Embedder
	passages   []domain.Passage
	embeddings [][]float32
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex(embedder domain.Embedder) *MemoryIndex {
	return &MemoryIndex{embedder: embedder}
}

// Add appends passages in order; slice position is the insertion order used
// for tie-breaking.
func (m *MemoryIndex) Add(ctx context.Context, passages []domain.Passage, embeddings [][]float32) error {
	if len(passages) != len(embeddings) {
		return fmt.Errorf("%w: %d passages with %d embeddings", domain.ErrInvalidArgument, len(passages), len(embeddings))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.passages = append(m.passages, passages...)
	m.embeddings = append(m.embeddings, embeddings...)
	return nil
}

// Search implements domain.VectorIndex.
func (m *MemoryIndex) Search(ctx context.Context, query string, k int) (domain.RetrievalResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1, got %d", domain.ErrInvalidArgument, k)
	}

	queryEmb, err := m.embedder.Embed(ctx, query)
	if err != nil {
		return nil, &domain.IndexUnavailableError{Err: fmt.Errorf("embedding query: %w", err)}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	scored := make([]domain.ScoredPassage, 0, len(m.passages))
	for i, p := range m.passages {
		scored = append(scored, domain.ScoredPassage{
			Passage: p,
			Score:   cosineSimilarity(queryEmb, m.embeddings[i]),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}

	return domain.RetrievalResult(scored), nil
}
