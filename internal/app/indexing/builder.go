package indexing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/kindora-ai/kindora-agent/internal/domain"
	"github.com/kindora-ai/kindora-agent/internal/observability"
)

// IndexWriter is the write side of the knowledge base, used only by the
// offline indexer. The serving path never writes.
type IndexWriter interface {
	Add(ctx context.Context, passages []domain.Passage, embeddings [][]float32) error
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// Builder turns a directory of plain-text corpus files into index entries.
type Builder struct {
	writer   IndexWriter
	embedder domain.Embedder

	ChunkSize    int
	ChunkOverlap int
	// EmbedBatchSize caps how many chunks go to the embedding provider per
	// request.
	EmbedBatchSize int
}

func NewBuilder(writer IndexWriter, embedder domain.Embedder) *Builder {
	return &Builder{
		writer:         writer,
		embedder:       embedder,
		ChunkSize:      DefaultChunkSize,
		ChunkOverlap:   DefaultChunkOverlap,
		EmbedBatchSize: 64,
	}
}

// Rebuild clears the index and reingests every corpus file under dir.
// Returns the number of passages written.
func (b *Builder) Rebuild(ctx context.Context, dir string) (int, error) {
	if err := b.writer.Clear(ctx); err != nil {
		return 0, fmt.Errorf("failed to clear index: %w", err)
	}
	return b.Build(ctx, dir)
}

// Build ingests every corpus file under dir without clearing first.
func (b *Builder) Build(ctx context.Context, dir string) (int, error) {
	log := observability.LoggerFromContext(ctx)

	files, err := corpusFiles(dir)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, path := range files {
		n, err := b.ingestFile(ctx, path)
		if err != nil {
			return total, fmt.Errorf("failed to ingest %s: %w", path, err)
		}
		log.Info("ingested corpus file", "file", filepath.Base(path), "passages", n)
		total += n
	}

	return total, nil
}

func (b *Builder) ingestFile(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	chunks := Chunk(string(raw), b.ChunkSize, b.ChunkOverlap)
	if len(chunks) == 0 {
		return 0, nil
	}

	source := filepath.Base(path)
	written := 0
	for off := 0; off < len(chunks); off += b.EmbedBatchSize {
		end := off + b.EmbedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[off:end]

		embeddings, err := b.embedder.EmbedBatch(ctx, batch)
		if err != nil {
			return written, fmt.Errorf("failed to embed batch: %w", err)
		}

		passages := make([]domain.Passage, len(batch))
		for i, text := range batch {
			passages[i] = domain.Passage{
				ID:   uuid.NewString(),
				Text: text,
				Metadata: map[string]string{
					"source": source,
					"chunk":  strconv.Itoa(off + i),
				},
			}
		}

		if err := b.writer.Add(ctx, passages, embeddings); err != nil {
			return written, err
		}
		written += len(batch)
	}

	return written, nil
}

// Watch rebuilds the index whenever a corpus file under dir changes. Events
// are debounced so an editor's save burst triggers one rebuild. Blocks until
// ctx is cancelled.
func (b *Builder) Watch(ctx context.Context, dir string) error {
	log := observability.LoggerFromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	const debounce = 2 * time.Second
	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isCorpusFile(ev.Name) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			log.Info("corpus change detected", "file", filepath.Base(ev.Name), "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			n, err := b.Rebuild(ctx, dir)
			if err != nil {
				log.Error("rebuild failed", "error", err)
				continue
			}
			log.Info("index rebuilt", "passages", n)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", "error", err)
		}
	}
}

func corpusFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !isCorpusFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

func isCorpusFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md":
		return true
	}
	return false
}
