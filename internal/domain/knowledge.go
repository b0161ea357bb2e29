package domain

// Passage is a stored unit of the knowledge base: text plus opaque metadata.
// Immutable once indexed; owned exclusively by the vector index.
type Passage struct {
	ID       string
	Text     string
	Metadata map[string]string
}

// ScoredPassage pairs a retrieved passage with its similarity score.
type ScoredPassage struct {
	Passage Passage
	Score   float64
}

// RetrievalResult is produced fresh per query, ordered by descending
// similarity, length <= k. Ties are broken by insertion order.
type RetrievalResult []ScoredPassage
