package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTranslateSendsLibreTranslateRequest(t *testing.T) {
	var got translateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" {
			t.Errorf("path = %q, want /translate", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(translateResponse{TranslatedText: "selamat pagi"})
	}))
	defer srv.Close()

	tr := NewHTTPTranslator(srv.URL)
	out, err := tr.Translate(context.Background(), "good morning", "id")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out != "selamat pagi" {
		t.Fatalf("out = %q", out)
	}
	if got.Q != "good morning" || got.Source != "auto" || got.Target != "id" {
		t.Fatalf("request = %+v", got)
	}
}

func TestTranslateServiceErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(translateResponse{Error: "unsupported language pair"})
	}))
	defer srv.Close()

	tr := NewHTTPTranslator(srv.URL)
	if _, err := tr.Translate(context.Background(), "hello", "zz"); err == nil {
		t.Fatal("expected service error to surface")
	}
}

func TestTranslateUnconfiguredService(t *testing.T) {
	tr := NewHTTPTranslator("")
	if _, err := tr.Translate(context.Background(), "hello", "id"); err == nil {
		t.Fatal("expected error when no service URL configured")
	}
}
