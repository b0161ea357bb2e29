package domain

// Message represents any message in a session timeline (user, assistant or system)
type Message struct {
	ID        MessageID
	SessionID SessionID
	Author    Role
	Text      string
	CreatedAt Timestamp

	// Metadata holds additional information about the message
	Source      EvidenceSource // which evidence path produced an assistant reply
	ContentType string         // e.g., "text", "link_list", "notice"
}

// Document is the plain text of an uploaded reference file, attached to a
// session. At most one per session; replacing it discards the previous one.
type Document struct {
	Name     string
	FullText string
}

// Session represents a user's conversation with the assistant. It owns the
// message log and the optional active document.
type Session struct {
	ID        SessionID
	UserID    UserID
	CreatedAt Timestamp
	UpdatedAt Timestamp

	Title    string
	Document *Document
}
