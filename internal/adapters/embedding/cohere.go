// Package embedding provides the Cohere embedding adapter. The same adapter
// (and model) must be used to build the index and to embed queries against
// it, or similarity scores are meaningless.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.cohere.com"

// CohereAdapter implements domain.Embedder using the Cohere embed API.
type CohereAdapter struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewCohereAdapter creates a new Cohere embedding adapter.
func NewCohereAdapter(baseURL, apiKey, model string) *CohereAdapter {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = "embed-multilingual-v3.0"
	}
	return &CohereAdapter{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type cohereEmbedRequest struct {
	Model     string   `json:"model"`
	Texts     []string `json:"texts"`
	InputType string   `json:"input_type"`
}

type cohereEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
	Message    string      `json:"message,omitempty"`
}

// Embed generates an embedding for a single query text.
func (a *CohereAdapter) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := a.embed(ctx, []string{text}, "search_query")
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// EmbedBatch generates embeddings for passages being indexed.
func (a *CohereAdapter) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	return a.embed(ctx, texts, "search_document")
}

func (a *CohereAdapter) embed(ctx context.Context, texts []string, inputType string) ([][]float32, error) {
	reqBody := cohereEmbedRequest{
		Model:     a.model,
		Texts:     texts,
		InputType: inputType,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/v1/embed", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Cohere: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Cohere returned status %d", resp.StatusCode)
	}

	var embedResp cohereEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(embedResp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("Cohere returned %d embeddings for %d texts", len(embedResp.Embeddings), len(texts))
	}

	return embedResp.Embeddings, nil
}
