package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kindora-ai/kindora-agent/internal/domain"
)

func TestHTTPExtractor_Extract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/extract" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"full_text": "Pasien mengalami insomnia kronis.",
		})
	}))
	defer server.Close()

	ex := NewHTTPExtractor(server.URL)
	text, err := ex.Extract(context.Background(), []byte("fake pdf"), "laporan.pdf")

	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if text != "Pasien mengalami insomnia kronis." {
		t.Errorf("unexpected text: %s", text)
	}
}

func TestHTTPExtractor_ServiceErrorIsSurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": "format file tidak didukung",
		})
	}))
	defer server.Close()

	ex := NewHTTPExtractor(server.URL)
	_, err := ex.Extract(context.Background(), []byte("bad"), "x.docx")

	var extractionErr *domain.ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if extractionErr.Reason != "format file tidak didukung" {
		t.Errorf("error not surfaced verbatim: %s", extractionErr.Reason)
	}
}

func TestHTTPExtractor_DefaultURL(t *testing.T) {
	ex := NewHTTPExtractor("")
	if ex.serviceURL != "http://localhost:8081" {
		t.Error("should default to localhost:8081")
	}
}

func TestHTTPExtractor_IsServiceHealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		}
	}))
	defer server.Close()

	ex := NewHTTPExtractor(server.URL)
	if !ex.IsServiceHealthy(context.Background()) {
		t.Error("should be healthy")
	}
}
