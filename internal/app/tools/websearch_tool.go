package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/kindora-ai/kindora-agent/internal/domain"
)

// WebSearchTool exposes the web-search provider to the model for very recent
// information the knowledge base cannot have.
type WebSearchTool struct {
	searcher domain.WebSearcher
	limit    int
}

func NewWebSearchTool(searcher domain.WebSearcher, limit int) *WebSearchTool {
	if limit < 1 {
		limit = 5
	}
	return &WebSearchTool{searcher: searcher, limit: limit}
}

func (t *WebSearchTool) Name() string { return "pencarian_internet_google" }

func (t *WebSearchTool) Description() string {
	return "Gunakan HANYA untuk mencari informasi kesehatan mental yang SANGAT BARU di internet."
}

func (t *WebSearchTool) Call(ctx context.Context, tctx ToolContext, arg string) (string, error) {
	query := strings.TrimSpace(arg)
	if query == "" {
		return "", fmt.Errorf("%w: empty query", domain.ErrInvalidArgument)
	}

	urls, err := t.searcher.Search(ctx, query, t.limit)
	if err != nil {
		return "", fmt.Errorf("web search tool: %w", err)
	}
	if len(urls) == 0 {
		return fmt.Sprintf("Tidak ada hasil pencarian untuk '%s'.", query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hasil pencarian untuk '%s':\n", query)
	for i, u := range urls {
		fmt.Fprintf(&b, "%d. %s\n", i+1, u)
	}
	return b.String(), nil
}
