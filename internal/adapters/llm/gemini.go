package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/kindora-ai/kindora-agent/internal/domain"
	"github.com/kindora-ai/kindora-agent/internal/observability"
	"google.golang.org/genai"
)

const defaultModel = "gemini-1.5-flash"

type GeminiClient struct {
	client    *genai.Client
	modelName string
	observe   observability.UsageObserver
	timeout   time.Duration
}

// NewGeminiClient creates an LLMClient backed by the Gemini API.
// An empty apiKey is allowed: the client constructs fine so the rest of the
// app keeps working, but every Generate call fails with
// GenerationUnavailableError until a key is configured.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, observe observability.UsageObserver) (*GeminiClient, error) {
	if modelName == "" {
		modelName = defaultModel
	}
	if observe == nil {
		observe = observability.LogUsage
	}

	g := &GeminiClient{
		modelName: modelName,
		observe:   observe,
		timeout:   60 * time.Second,
	}

	if apiKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	g.client = client

	return g, nil
}

// Generate implements domain.LLMClient.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", &domain.GenerationUnavailableError{
			Err: fmt.Errorf("no Gemini API key configured"),
		}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	// Low temperature for determinism-leaning factual answers.
	temp := float32(0.2)
	topP := float32(0.9)
	outputTokens := int32(8192)

	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &topP,
		MaxOutputTokens: outputTokens,
	}

	start := time.Now()
	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	elapsed := time.Since(start)

	usage := observability.GenerationUsage{
		Model:   g.modelName,
		Latency: elapsed,
		Err:     err,
	}
	if res != nil && res.UsageMetadata != nil {
		usage.InputTokens = int(res.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int(res.UsageMetadata.CandidatesTokenCount)
	}
	go g.observe(usage)

	if err != nil {
		return "", &domain.GenerationUnavailableError{
			Err: fmt.Errorf("gemini generate content: %w", err),
		}
	}

	text := res.Text()
	if text == "" {
		return "", &domain.GenerationUnavailableError{
			Err: fmt.Errorf("gemini returned empty text"),
		}
	}

	return text, nil
}
