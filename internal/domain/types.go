package domain

import "time"

type SessionID string
type UserID string
type MessageID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// EvidenceSource identifies which knowledge source grounded a turn.
type EvidenceSource string

const (
	SourceDocument EvidenceSource = "document" // an uploaded document always wins
	SourceVector   EvidenceSource = "vector"   // top-k passages from the knowledge base
	SourceWeb      EvidenceSource = "web"      // curated link list, never LLM-synthesized
	SourceNone     EvidenceSource = "none"
)

type Timestamp = time.Time
