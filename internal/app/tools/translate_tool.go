package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/kindora-ai/kindora-agent/internal/domain"
)

// TranslateTool delegates to the external translation collaborator. It is
// the only tool allowed to touch the network besides web search; a failing
// service yields ErrTranslationUnavailable, never a fabricated translation.
type TranslateTool struct {
	translator domain.Translator
}

func NewTranslateTool(translator domain.Translator) *TranslateTool {
	return &TranslateTool{translator: translator}
}

func (t *TranslateTool) Name() string { return "terjemah_bahasa" }

func (t *TranslateTool) Description() string {
	return "Gunakan untuk menerjemahkan teks. Argumen: teks yang ingin diterjemahkan, diakhiri '->' dan kode bahasa tujuan (contoh: 'good morning -> id')."
}

func (t *TranslateTool) Call(ctx context.Context, tctx ToolContext, arg string) (string, error) {
	if t.translator == nil {
		return "", domain.ErrTranslationUnavailable
	}

	text := strings.TrimSpace(arg)
	target := "id"
	if i := strings.LastIndex(text, "->"); i >= 0 {
		target = strings.TrimSpace(text[i+2:])
		text = strings.TrimSpace(text[:i])
	}
	if text == "" {
		return "", fmt.Errorf("%w: empty text", domain.ErrInvalidArgument)
	}

	out, err := t.translator.Translate(ctx, text, target)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranslationUnavailable, err)
	}
	return out, nil
}
