package resolver

import (
	"github.com/pkoukk/tiktoken-go"
)

// tokenBudget measures and head-truncates text against a model context
// budget. Keeping the head is lossy for long documents; see the upload
// notice shown to users.
type tokenBudget struct {
	tke *tiktoken.Tiktoken
	max int
}

func newTokenBudget(max int) *tokenBudget {
	if max <= 0 {
		max = 6000
	}
	// cl100k_base is close enough for budgeting across model families.
	tke, _ := tiktoken.GetEncoding("cl100k_base")
	return &tokenBudget{tke: tke, max: max}
}

func (b *tokenBudget) count(s string) int {
	if b.tke == nil {
		return len(s) / 4
	}
	return len(b.tke.Encode(s, nil, nil))
}

// truncateHead keeps the head of s up to the budget, cut at a token
// boundary.
func (b *tokenBudget) truncateHead(s string) string {
	if b.tke == nil {
		if len(s) > b.max*4 {
			return s[:b.max*4]
		}
		return s
	}

	tokens := b.tke.Encode(s, nil, nil)
	if len(tokens) <= b.max {
		return s
	}
	return b.tke.Decode(tokens[:b.max])
}
