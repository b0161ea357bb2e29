package main

import (
	"context"
	"log"
	"net/http"

	"github.com/kindora-ai/kindora-agent/internal/adapters/embedding"
	"github.com/kindora-ai/kindora-agent/internal/adapters/extractor"
	httpadapter "github.com/kindora-ai/kindora-agent/internal/adapters/http"
	"github.com/kindora-ai/kindora-agent/internal/adapters/llm"
	"github.com/kindora-ai/kindora-agent/internal/adapters/search"
	firestorestore "github.com/kindora-ai/kindora-agent/internal/adapters/storage/firestore"
	memstore "github.com/kindora-ai/kindora-agent/internal/adapters/storage/memory"
	"github.com/kindora-ai/kindora-agent/internal/adapters/translate"
	"github.com/kindora-ai/kindora-agent/internal/adapters/vectorindex"
	"github.com/kindora-ai/kindora-agent/internal/app/resolver"
	"github.com/kindora-ai/kindora-agent/internal/app/session"
	"github.com/kindora-ai/kindora-agent/internal/app/tools"
	"github.com/kindora-ai/kindora-agent/internal/config"
	"github.com/kindora-ai/kindora-agent/internal/domain"
	"github.com/kindora-ai/kindora-agent/internal/observability"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// LLM: mock or Gemini by env (useful for dev)
	var (
		llmClient domain.LLMClient
		err       error
	)
	if cfg.UseMockLLM {
		log.Println("[LLM] Using MOCK LLM client")
		llmClient = llm.NewMockLLM()
	} else {
		log.Printf("[LLM] Using Gemini client (model=%s)", cfg.ModelName)
		llmClient, err = llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.ModelName, observability.LogUsage)
		if err != nil {
			log.Fatalf("error initializing Gemini client: %v", err)
		}
	}

	// Storage: Firestore or Memory
	var sessionStore domain.SessionStore
	var messageStore domain.MessageStore

	switch cfg.StorageBackend {
	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}

		// 1 store, implements 2 interfaces
		sessionStore = fsStore
		messageStore = fsStore

	default:
		log.Println("[STORE] Using in-memory storage")
		sessionStore = memstore.NewSessionStore()
		messageStore = memstore.NewMessageStore()
	}

	// Knowledge base: Cohere embeddings over the sqlite index built by
	// kindora-indexer. The serving path only ever reads it.
	embedder := embedding.NewCohereAdapter(cfg.EmbedURL, cfg.EmbedAPIKey, cfg.EmbedModel)

	index, err := vectorindex.NewSQLiteIndex(cfg.IndexPath, embedder)
	if err != nil {
		log.Fatalf("error opening vector index at %s: %v", cfg.IndexPath, err)
	}
	defer index.Close()

	// Web search fallback
	searcher := search.NewGoogleClient(cfg.SearchURL, cfg.SearchAPIKey, cfg.SearchEngineID)
	fallback := search.NewFallback(searcher, search.DefaultLimit)

	// Tools
	registry := tools.NewRegistry(
		tools.NewDateTool(),
		tools.NewCopingTool(index),
		tools.NewHelpdeskTool(index),
		tools.NewTranslateTool(translate.NewHTTPTranslator(cfg.TranslateURL)),
		tools.NewWebSearchTool(searcher, 5),
	)

	res := resolver.New(index, fallback, registry.Describe(), cfg.DocTokenBudget)

	svc := session.NewService(
		llmClient,
		sessionStore,
		messageStore,
		extractor.NewHTTPExtractor(cfg.ExtractorURL),
		res,
		registry,
	)

	handler := httpadapter.NewServer(svc)

	addr := ":" + cfg.Port
	log.Println("Kindora API listening on port:", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
