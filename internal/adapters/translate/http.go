// Package translate is the client for the external translation service used
// by the terjemah_bahasa tool.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPTranslator implements domain.Translator against a LibreTranslate-style
// endpoint.
type HTTPTranslator struct {
	serviceURL string
	client     *http.Client
}

func NewHTTPTranslator(serviceURL string) *HTTPTranslator {
	return &HTTPTranslator{
		serviceURL: serviceURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

func (t *HTTPTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if t.serviceURL == "" {
		return "", fmt.Errorf("translation service not configured")
	}

	reqBody := translateRequest{
		Q:      text,
		Source: "auto",
		Target: targetLang,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.serviceURL+"/translate", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling translation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation service returned status %d", resp.StatusCode)
	}

	var result translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("translation service: %s", result.Error)
	}

	return result.TranslatedText, nil
}
