package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/kindora-ai/kindora-agent/internal/domain"
)

// HelpdeskTool answers specific mental-health questions from the knowledge
// base. Read-only over the shared vector index.
type HelpdeskTool struct {
	index domain.VectorIndex
	topK  int
}

func NewHelpdeskTool(index domain.VectorIndex) *HelpdeskTool {
	return &HelpdeskTool{index: index, topK: 3}
}

func (t *HelpdeskTool) Name() string { return "cari_info_kesehatan_mental" }

func (t *HelpdeskTool) Description() string {
	return "Gunakan untuk menjawab pertanyaan spesifik tentang kesehatan mental dari database."
}

func (t *HelpdeskTool) Call(ctx context.Context, tctx ToolContext, arg string) (string, error) {
	query := strings.TrimSpace(arg)
	if query == "" {
		return "", fmt.Errorf("%w: empty query", domain.ErrInvalidArgument)
	}

	res, err := t.index.Search(ctx, query, t.topK)
	if err != nil {
		return "", fmt.Errorf("helpdesk lookup: %w", err)
	}

	if len(res) == 0 {
		return "Maaf, tidak ada informasi yang relevan di database untuk topik tersebut.", nil
	}

	var b strings.Builder
	b.WriteString("Informasi dari database kesehatan mental:\n")
	for i, sp := range res {
		fmt.Fprintf(&b, "%d. %s\n", i+1, strings.TrimSpace(sp.Passage.Text))
	}
	return b.String(), nil
}
