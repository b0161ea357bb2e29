package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCohereAdapter_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embed" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req cohereEmbedRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.InputType != "search_query" {
			t.Errorf("expected search_query input type, got %s", req.InputType)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"embeddings": [][]float32{{0.1, 0.2, 0.3}},
		})
	}))
	defer server.Close()

	adapter := NewCohereAdapter(server.URL, "test-key", "test-model")
	emb, err := adapter.Embed(context.Background(), "halo")

	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	if len(emb) != 3 {
		t.Errorf("expected 3 dims, got %d", len(emb))
	}
}

func TestCohereAdapter_EmbedBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req cohereEmbedRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.InputType != "search_document" {
			t.Errorf("expected search_document input type, got %s", req.InputType)
		}
		embs := make([][]float32, len(req.Texts))
		for i := range embs {
			embs[i] = []float32{float32(i)}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"embeddings": embs})
	}))
	defer server.Close()

	adapter := NewCohereAdapter(server.URL, "test-key", "")
	results, err := adapter.EmbedBatch(context.Background(), []string{"a", "b", "c"})

	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestCohereAdapter_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	adapter := NewCohereAdapter(server.URL, "bad-key", "")
	_, err := adapter.Embed(context.Background(), "test")

	if err == nil {
		t.Error("should error on 401")
	}
}

func TestCohereAdapter_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"embeddings": [][]float32{{0.1}},
		})
	}))
	defer server.Close()

	adapter := NewCohereAdapter(server.URL, "key", "")
	_, err := adapter.EmbedBatch(context.Background(), []string{"a", "b"})

	if err == nil {
		t.Error("should error when counts do not match")
	}
}
