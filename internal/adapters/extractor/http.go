// Package extractor is the client for the document-extraction collaborator.
// The service receives uploaded file bytes and answers with either the full
// text or an error message; the core surfaces the error verbatim.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kindora-ai/kindora-agent/internal/domain"
)

// HTTPExtractor implements domain.DocumentExtractor over a small HTTP
// extraction service.
type HTTPExtractor struct {
	serviceURL string
	client     *http.Client
}

func NewHTTPExtractor(serviceURL string) *HTTPExtractor {
	if serviceURL == "" {
		serviceURL = "http://localhost:8081"
	}
	return &HTTPExtractor{
		serviceURL: serviceURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type extractResponse struct {
	FullText string `json:"full_text"`
	Error    string `json:"error,omitempty"`
}

// Extract sends the file bytes and returns the extracted plain text.
func (e *HTTPExtractor) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", e.serviceURL+"/extract", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("X-Filename", filename)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling extraction service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var result extractResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if result.Error != "" {
		return "", &domain.ExtractionError{Reason: result.Error}
	}

	return result.FullText, nil
}

// IsServiceHealthy checks whether the extraction service is reachable.
func (e *HTTPExtractor) IsServiceHealthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, "GET", e.serviceURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
