package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/kindora-ai/kindora-agent/internal/domain"
	"github.com/kindora-ai/kindora-agent/internal/observability"
)

const disclaimer = "**Penting**: Harap evaluasi sendiri kredibilitas dan keakuratan informasi dari situs-situs tersebut."

// Fallback wraps a WebSearcher and produces the user-facing link list. It
// never returns an error: network and provider failures become a diagnostic
// string, and zero results become a fixed message.
type Fallback struct {
	searcher domain.WebSearcher
	limit    int
}

func NewFallback(searcher domain.WebSearcher, limit int) *Fallback {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Fallback{
		searcher: searcher,
		limit:    limit,
	}
}

// Lookup formats up to limit results as a numbered list, preserving provider
// ranking order, and appends the credibility disclaimer.
func (f *Fallback) Lookup(ctx context.Context, query string) string {
	log := observability.LoggerFromContext(ctx).With("query", query)

	urls, err := f.searcher.Search(ctx, query, f.limit)
	if err != nil {
		log.Warn("web search failed", "error", err)
		return fmt.Sprintf("Terjadi kesalahan saat melakukan pencarian Google: %s", err)
	}

	if len(urls) == 0 {
		return fmt.Sprintf("Maaf, saya tidak dapat menemukan hasil yang relevan di Google untuk '%s'.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tentu, berikut adalah %d hasil pencarian teratas untuk '%s':\n", len(urls), query)
	for i, u := range urls {
		fmt.Fprintf(&b, "%d. %s\n", i+1, u)
	}
	b.WriteString("\n")
	b.WriteString(disclaimer)

	return b.String()
}
