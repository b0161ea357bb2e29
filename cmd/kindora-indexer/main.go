package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kindora-ai/kindora-agent/internal/adapters/embedding"
	"github.com/kindora-ai/kindora-agent/internal/adapters/vectorindex"
	"github.com/kindora-ai/kindora-agent/internal/app/indexing"
	"github.com/kindora-ai/kindora-agent/internal/config"
)

func main() {
	var (
		corpusDir = flag.String("corpus", "./corpus", "directory with .txt/.md corpus files")
		watch     = flag.Bool("watch", false, "keep running and rebuild on corpus changes")
	)
	flag.Parse()

	cfg := config.Load()

	embedder := embedding.NewCohereAdapter(cfg.EmbedURL, cfg.EmbedAPIKey, cfg.EmbedModel)

	index, err := vectorindex.NewSQLiteIndex(cfg.IndexPath, embedder)
	if err != nil {
		log.Fatalf("error opening vector index at %s: %v", cfg.IndexPath, err)
	}
	defer index.Close()

	builder := indexing.NewBuilder(index, embedder)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	n, err := builder.Rebuild(ctx, *corpusDir)
	if err != nil {
		log.Fatalf("index build failed: %v", err)
	}
	log.Printf("indexed %d passages from %s into %s", n, *corpusDir, cfg.IndexPath)

	if !*watch {
		return
	}

	log.Printf("watching %s for corpus changes", *corpusDir)
	if err := builder.Watch(ctx, *corpusDir); err != nil && ctx.Err() == nil {
		log.Fatalf("watcher stopped: %v", err)
	}
}
