// Package vectorindex provides the persisted knowledge-base index. Searches
// are brute-force cosine similarity over all stored passages, which is fine
// at the corpus sizes a single assistant ships with.
package vectorindex

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/kindora-ai/kindora-agent/internal/domain"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteIndex implements domain.VectorIndex with SQLite-based persistence.
// rowid preserves insertion order, which is the documented tie-break.
type SQLiteIndex struct {
	mu       sync.RWMutex
	db       *sql.DB
	embedder domain.Embedder
}

// NewSQLiteIndex opens (or creates) the index at dataPath. Load failures are
// returned as IndexUnavailableError so callers can tell a broken backend
// from an empty knowledge base.
func NewSQLiteIndex(dataPath string, embedder domain.Embedder) (*SQLiteIndex, error) {
	if dataPath == "" {
		dataPath = "./data/index"
	}

	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return nil, &domain.IndexUnavailableError{Err: fmt.Errorf("creating index directory: %w", err)}
	}

	dbPath := filepath.Join(dataPath, "passages.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, &domain.IndexUnavailableError{Err: fmt.Errorf("opening index: %w", err)}
	}

	idx := &SQLiteIndex{
		db:       db,
		embedder: embedder,
	}

	if err := idx.initSchema(); err != nil {
		db.Close()
		return nil, &domain.IndexUnavailableError{Err: fmt.Errorf("initializing schema: %w", err)}
	}

	return idx, nil
}

func (s *SQLiteIndex) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS passages (
		id TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		metadata TEXT,
		embedding BLOB NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Add stores passages with their embeddings. Used by the indexer; the chat
// path never writes.
func (s *SQLiteIndex) Add(ctx context.Context, passages []domain.Passage, embeddings [][]float32) error {
	if len(passages) != len(embeddings) {
		return fmt.Errorf("%w: %d passages with %d embeddings", domain.ErrInvalidArgument, len(passages), len(embeddings))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO passages (id, text, metadata, embedding)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, p := range passages {
		embJSON, err := json.Marshal(embeddings[i])
		if err != nil {
			return fmt.Errorf("encoding embedding: %w", err)
		}
		metaJSON, err := json.Marshal(p.Metadata)
		if err != nil {
			return fmt.Errorf("encoding metadata: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, p.ID, p.Text, metaJSON, embJSON); err != nil {
			return fmt.Errorf("inserting passage: %w", err)
		}
	}

	return tx.Commit()
}

// Search implements domain.VectorIndex.
func (s *SQLiteIndex) Search(ctx context.Context, query string, k int) (domain.RetrievalResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1, got %d", domain.ErrInvalidArgument, k)
	}

	queryEmb, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, &domain.IndexUnavailableError{Err: fmt.Errorf("embedding query: %w", err)}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, metadata, embedding
		FROM passages
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, &domain.IndexUnavailableError{Err: fmt.Errorf("querying passages: %w", err)}
	}
	defer rows.Close()

	var scored []domain.ScoredPassage
	for rows.Next() {
		var p domain.Passage
		var metaJSON, embJSON []byte

		if err := rows.Scan(&p.ID, &p.Text, &metaJSON, &embJSON); err != nil {
			return nil, &domain.IndexUnavailableError{Err: fmt.Errorf("scanning row: %w", err)}
		}

		var emb []float32
		if err := json.Unmarshal(embJSON, &emb); err != nil {
			continue // skip corrupted embeddings
		}
		if len(metaJSON) > 0 {
			_ = json.Unmarshal(metaJSON, &p.Metadata)
		}

		scored = append(scored, domain.ScoredPassage{
			Passage: p,
			Score:   cosineSimilarity(queryEmb, emb),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.IndexUnavailableError{Err: fmt.Errorf("iterating passages: %w", err)}
	}

	// Rows arrive in insertion order, so a stable sort keeps the
	// earlier-indexed passage first on equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}

	return domain.RetrievalResult(scored), nil
}

// Count returns the number of stored passages.
func (s *SQLiteIndex) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM passages").Scan(&count)
	return count, err
}

// Clear removes all passages. Indexer-only.
func (s *SQLiteIndex) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM passages")
	return err
}

// Close closes the underlying database.
func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}

// cosineSimilarity calculates cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
