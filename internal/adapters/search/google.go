// Package search provides the web-search fallback: a Google Programmable
// Search client plus the user-facing formatter. The fallback is the terminal
// safety net of the resolution pipeline, so it converts every provider
// failure into a diagnostic string instead of escalating.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://www.googleapis.com/customsearch/v1"
	DefaultLimit   = 10
)

// GoogleClient implements domain.WebSearcher using the Programmable Search
// JSON API, restricted to Indonesian results like the assistant's audience.
type GoogleClient struct {
	baseURL  string
	apiKey   string
	engineID string
	client   *http.Client
}

func NewGoogleClient(baseURL, apiKey, engineID string) *GoogleClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &GoogleClient{
		baseURL:  baseURL,
		apiKey:   apiKey,
		engineID: engineID,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type googleSearchResponse struct {
	Items []struct {
		Link string `json:"link"`
	} `json:"items"`
}

// Search returns up to limit result URLs in provider ranking order.
func (g *GoogleClient) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit < 1 {
		limit = DefaultLimit
	}

	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("cx", g.engineID)
	params.Set("q", query)
	params.Set("num", fmt.Sprintf("%d", limit))
	params.Set("lr", "lang_id")

	req, err := http.NewRequestWithContext(ctx, "GET", g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling search provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider returned status %d", resp.StatusCode)
	}

	var result googleSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	urls := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		urls = append(urls, item.Link)
		if len(urls) >= limit {
			break
		}
	}
	return urls, nil
}
