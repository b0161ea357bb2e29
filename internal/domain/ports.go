package domain

import "context"

// LLMClient defines how the core application talks to a language model
// backend. Stateless aside from configured credentials and model parameters.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder maps text to fixed-length vectors. The same embedder must be used
// to build the index and to embed queries against it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorIndex wraps a persisted embedding index. Read-only and safe to share
// across sessions once loaded.
type VectorIndex interface {
	// Search returns the k nearest stored passages by descending similarity.
	// k < 1 is ErrInvalidArgument. A broken backend is an
	// IndexUnavailableError; an empty index is an empty result, not an error.
	Search(ctx context.Context, query string, k int) (RetrievalResult, error)
}

// WebSearcher issues a query to an external search provider and returns up
// to limit result URLs in provider ranking order.
type WebSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// DocumentExtractor is the external collaborator turning uploaded file bytes
// into plain text. The core only ever reads the text or surfaces the error.
type DocumentExtractor interface {
	Extract(ctx context.Context, data []byte, filename string) (string, error)
}

// Translator is the external translation collaborator used by the
// terjemah_bahasa tool. Failures are ErrTranslationUnavailable, never
// fabricated translations.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// SessionStore defines session persistence
type SessionStore interface {
	CreateSession(session *Session) error
	UpdateSession(session *Session) error
	GetSession(id SessionID) (*Session, error)
	ListSessionsByUser(userID UserID, limit int) ([]*Session, error)
}

// MessageStore defines message persistence. The log is append-only except
// for the explicit reset operation.
type MessageStore interface {
	AppendMessage(msg *Message) error
	GetMessagesBySession(sessionID SessionID, limit int) ([]*Message, error)
	ResetSession(sessionID SessionID) error
}
