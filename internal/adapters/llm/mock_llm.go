package llm

import (
	"context"
	"fmt"
)

// MockLLM echoes a fixed reply and is useful for local dev and tests.
type MockLLM struct {
	// Reply, when set, is returned verbatim instead of the echo.
	Reply string
}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Reply != "" {
		return m.Reply, nil
	}
	return fmt.Sprintf("Saya mendengarkan. Anda menulis %d karakter. Ceritakan lebih lanjut.", len(prompt)), nil
}
