// Package resolver decides, for each query, which knowledge source is
// authoritative and composes the prompt handed to the language model.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/kindora-ai/kindora-agent/internal/domain"
	"github.com/kindora-ai/kindora-agent/internal/observability"
)

// WebFallback is the terminal safety net: it must always return usable text.
type WebFallback interface {
	Lookup(ctx context.Context, query string) string
}

// Resolution is the outcome of one pass over the evidence sources. Either
// Prompt is set (document/vector paths, to be sent to the LLM) or Direct is
// set (web path, returned to the user as-is).
type Resolution struct {
	Source domain.EvidenceSource
	Prompt string
	Direct string
}

type Resolver struct {
	index    domain.VectorIndex
	fallback WebFallback
	budget   *tokenBudget
	toolList string
	topK     int
}

// New builds a resolver. toolList is the registry description injected into
// the model's operating instructions; pass "" to disable tool dispatch.
func New(index domain.VectorIndex, fallback WebFallback, toolList string, docTokenBudget int) *Resolver {
	return &Resolver{
		index:    index,
		fallback: fallback,
		budget:   newTokenBudget(docTokenBudget),
		toolList: toolList,
		topK:     3,
	}
}

// Resolve selects exactly one evidence source in strict priority order:
// document, then vector index, then web fallback. A single deterministic
// pass; no retries across sources.
func (r *Resolver) Resolve(ctx context.Context, query string, doc *domain.Document) (Resolution, error) {
	if strings.TrimSpace(query) == "" {
		return Resolution{}, fmt.Errorf("%w: empty query", domain.ErrInvalidArgument)
	}

	log := observability.LoggerFromContext(ctx)

	// 1) Document presence always wins, even if the document says nothing
	// about the query. The index is not consulted at all. A document with no
	// text cannot ground anything — the durable store only keeps the name
	// across restarts — so it does not count as present here.
	if doc != nil && strings.TrimSpace(doc.FullText) == "" {
		log.Warn("ignoring document without text, re-upload required", "doc", doc.Name)
		doc = nil
	}
	if doc != nil {
		text := r.budget.truncateHead(doc.FullText)
		log.Info("resolved evidence", "source", domain.SourceDocument, "doc", doc.Name)
		return Resolution{
			Source: domain.SourceDocument,
			Prompt: buildDocumentPrompt(r.toolList, text, query),
		}, nil
	}

	// 2) Knowledge base. An I/O failure here is not an empty result: it
	// propagates instead of falling through to the web.
	retrieved, err := r.index.Search(ctx, query, r.topK)
	if err != nil {
		return Resolution{}, err
	}

	parts := make([]string, 0, len(retrieved))
	for _, sp := range retrieved {
		parts = append(parts, sp.Passage.Text)
	}
	evidence := strings.Join(parts, "\n")

	if strings.TrimSpace(evidence) != "" {
		log.Info("resolved evidence", "source", domain.SourceVector, "passages", len(retrieved))
		return Resolution{
			Source: domain.SourceVector,
			Prompt: buildVectorPrompt(r.toolList, evidence, query),
		}, nil
	}

	// 3) Web fallback: a curated link list handed back verbatim. It
	// deliberately bypasses the LLM so live search results are never
	// synthesized into unverified prose.
	log.Info("resolved evidence", "source", domain.SourceWeb)
	return Resolution{
		Source: domain.SourceWeb,
		Direct: r.fallback.Lookup(ctx, query),
	}, nil
}

// FollowUp composes the second generation step after a tool invocation.
func (r *Resolver) FollowUp(query, toolName, toolResult string) string {
	return buildFollowUpPrompt(query, toolName, toolResult)
}
