package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument covers bad inputs such as k < 1 or an empty query.
	ErrInvalidArgument = errors.New("invalid argument")

	ErrSessionNotFound = errors.New("session not found")

	// ErrTurnInFlight is returned when a second message arrives while a
	// resolution is still pending for the same session. Turns are never
	// interleaved within one session.
	ErrTurnInFlight = errors.New("a turn is already in flight for this session")

	ErrTranslationUnavailable = errors.New("translation service unavailable")
)

// IndexUnavailableError means the vector backend itself is broken (index not
// loadable, embedding service unreachable). It is distinct from an empty
// retrieval: only an empty-but-successful search falls through to the web
// fallback, a broken backend surfaces to the caller.
type IndexUnavailableError struct {
	Err error
}

func (e *IndexUnavailableError) Error() string {
	return fmt.Sprintf("vector index unavailable: %v", e.Err)
}

func (e *IndexUnavailableError) Unwrap() error { return e.Err }

// GenerationUnavailableError means the LLM backend rejected the call
// (missing/invalid credentials, quota, timeout). Fatal to the current turn,
// never retried silently more than once.
type GenerationUnavailableError struct {
	Err error
}

func (e *GenerationUnavailableError) Error() string {
	return fmt.Sprintf("generation unavailable: %v", e.Err)
}

func (e *GenerationUnavailableError) Unwrap() error { return e.Err }

// ExtractionError carries the extraction collaborator's message verbatim.
// It blocks only the document-upload action, not the chat flow.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string { return e.Reason }
