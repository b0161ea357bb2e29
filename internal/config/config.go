package config

import (
	"log"
	"os"
)

type Config struct {
	Port string

	// LLM backend. An empty GeminiAPIKey does not prevent startup: the UI
	// keeps working and only generation paths are blocked.
	GeminiAPIKey string
	ModelName    string
	UseMockLLM   bool

	// Knowledge base
	IndexPath   string
	EmbedAPIKey string
	EmbedModel  string
	EmbedURL    string

	// Web search fallback
	SearchAPIKey   string
	SearchEngineID string
	SearchURL      string

	// External collaborators
	ExtractorURL string
	TranslateURL string

	StorageBackend string // "memory" o "firestore"
	GCPProjectID   string

	// Token budget for document evidence before head-truncation.
	DocTokenBudget int
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

// Load reads all env vars and builds the config
func Load() *Config {
	cfg := &Config{
		Port: getEnv("KINDORA_PORT", "8080"),

		GeminiAPIKey: getEnv("KINDORA_GEMINI_API_KEY", ""),
		ModelName:    getEnv("KINDORA_MODEL_NAME", "gemini-1.5-flash"),
		UseMockLLM:   getBoolEnv("KINDORA_USE_MOCK_LLM", false),

		IndexPath:   getEnv("KINDORA_INDEX_PATH", "./data/index"),
		EmbedAPIKey: getEnv("KINDORA_EMBED_API_KEY", ""),
		EmbedModel:  getEnv("KINDORA_EMBED_MODEL", "embed-multilingual-v3.0"),
		EmbedURL:    getEnv("KINDORA_EMBED_URL", ""),

		SearchAPIKey:   getEnv("KINDORA_SEARCH_API_KEY", ""),
		SearchEngineID: getEnv("KINDORA_SEARCH_ENGINE_ID", ""),
		SearchURL:      getEnv("KINDORA_SEARCH_URL", ""),

		ExtractorURL: getEnv("KINDORA_EXTRACTOR_URL", "http://localhost:8081"),
		TranslateURL: getEnv("KINDORA_TRANSLATE_URL", ""),

		StorageBackend: getEnv("KINDORA_STORAGE_BACKEND", "memory"),
		GCPProjectID:   getEnv("KINDORA_GCP_PROJECT", ""),

		DocTokenBudget: 6000,
	}

	// Minimal validation for the firestore backend
	if cfg.StorageBackend == "firestore" && cfg.GCPProjectID == "" {
		log.Fatal("KINDORA_GCP_PROJECT must be set with the firestore storage backend")
	}

	return cfg
}
