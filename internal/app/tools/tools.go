package tools

import (
	"context"
)

// ToolContext brings metadata of the call to the tool
type ToolContext struct {
	UserID    string
	SessionID string
	RequestID string
}

// Tool is a named auxiliary capability the language model may invoke instead
// of free generation. Tools are pure functions of their argument: no session
// mutation, only the knowledge-base lookups read shared state.
type Tool interface {
	Name() string
	Description() string
	Call(ctx context.Context, tctx ToolContext, arg string) (string, error)
}
