package tools

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kindora-ai/kindora-agent/internal/domain"
)

type stubTool struct {
	name string
	desc string
	out  string
	err  error
}

func (s stubTool) Name() string        { return s.name }
func (s stubTool) Description() string { return s.desc }
func (s stubTool) Call(ctx context.Context, tc ToolContext, arg string) (string, error) {
	return s.out, s.err
}

type stubIndex struct {
	result domain.RetrievalResult
	err    error
}

func (s stubIndex) Search(ctx context.Context, query string, k int) (domain.RetrievalResult, error) {
	return s.result, s.err
}

func TestRegistryFirstRegistrationWins(t *testing.T) {
	r := NewRegistry(
		stubTool{name: "x", desc: "pertama"},
		stubTool{name: "x", desc: "kedua"},
		nil,
		stubTool{name: "y", desc: "lain"},
	)

	got, ok := r.Get("x")
	if !ok || got.Description() != "pertama" {
		t.Fatalf("Get(x) = %v, %v; want the first registration", got, ok)
	}
	if names := r.Names(); len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Fatalf("Names() = %v", names)
	}
}

func TestRegistryUnknownNameFailsClosed(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get("tool_hantu"); ok {
		t.Fatal("unknown name resolved to a tool")
	}
	msg := UnavailableMessage("tool_hantu")
	if !strings.Contains(msg, "tool_hantu") || !strings.Contains(msg, "tidak tersedia") {
		t.Fatalf("unavailable message = %q", msg)
	}
}

func TestRegistryDescribeListsInOrder(t *testing.T) {
	r := NewRegistry(
		stubTool{name: "a", desc: "alpha"},
		stubTool{name: "b", desc: "beta"},
	)
	want := "- a: alpha\n- b: beta\n"
	if got := r.Describe(); got != want {
		t.Fatalf("Describe() = %q, want %q", got, want)
	}
}

func TestParseDirective(t *testing.T) {
	cases := []struct {
		in       string
		name     string
		arg      string
		directed bool
	}{
		{"TOOL: dapatkan_tanggal_sekarang | ", "dapatkan_tanggal_sekarang", "", true},
		{"TOOL: terjemah_bahasa | good morning -> id", "terjemah_bahasa", "good morning -> id", true},
		{"  TOOL: cari_info_kesehatan_mental | apa itu burnout  ", "cari_info_kesehatan_mental", "apa itu burnout", true},
		{"TOOL: dapatkan_tanggal_sekarang", "dapatkan_tanggal_sekarang", "", true},
		{"Halo, ada yang bisa saya bantu?", "", "", false},
		{"Saya akan memakai TOOL: x nanti", "", "", false},
		{"TOOL:", "", "", false},
		{"", "", "", false},
	}

	for _, c := range cases {
		name, arg, ok := ParseDirective(c.in)
		if ok != c.directed || name != c.name || arg != c.arg {
			t.Errorf("ParseDirective(%q) = (%q, %q, %v), want (%q, %q, %v)",
				c.in, name, arg, ok, c.name, c.arg, c.directed)
		}
	}
}

func TestDateToolFormatsIndonesian(t *testing.T) {
	tool := NewDateTool()
	tool.now = func() time.Time {
		return time.Date(2025, time.March, 10, 14, 5, 0, 0, time.UTC) // a Monday
	}

	out, err := tool.Call(context.Background(), ToolContext{}, "")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	want := "Sekarang hari Senin, 10 Maret 2025, pukul 14:05."
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestCopingToolPrefersKnowledgeBase(t *testing.T) {
	idx := stubIndex{result: domain.RetrievalResult{
		{Passage: domain.Passage{ID: "1", Text: "Teknik grounding 5-4-3-2-1."}, Score: 0.9},
	}}
	tool := NewCopingTool(idx)

	out, err := tool.Call(context.Background(), ToolContext{}, "kecemasan")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !strings.Contains(out, "Teknik grounding 5-4-3-2-1.") {
		t.Fatalf("output does not cite the knowledge base: %q", out)
	}
}

func TestCopingToolFallsBackOnBrokenIndex(t *testing.T) {
	idx := stubIndex{err: &domain.IndexUnavailableError{Err: errors.New("db gone")}}
	tool := NewCopingTool(idx)

	out, err := tool.Call(context.Background(), ToolContext{}, "stres")
	if err != nil {
		t.Fatalf("a broken index must not break the tool: %v", err)
	}
	for i, tip := range defaultCopingTips {
		if !strings.Contains(out, tip) {
			t.Fatalf("fixed tip %d missing from fallback output: %q", i+1, out)
		}
	}
}

func TestHelpdeskToolRequiresQuery(t *testing.T) {
	tool := NewHelpdeskTool(stubIndex{})
	if _, err := tool.Call(context.Background(), ToolContext{}, "   "); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestHelpdeskToolNoResultsMessage(t *testing.T) {
	tool := NewHelpdeskTool(stubIndex{})
	out, err := tool.Call(context.Background(), ToolContext{}, "topik langka")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !strings.Contains(out, "tidak ada informasi yang relevan") {
		t.Fatalf("output = %q", out)
	}
}

type stubTranslator struct {
	out    string
	err    error
	target string
}

func (s *stubTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	s.target = targetLang
	return s.out, s.err
}

func TestTranslateToolParsesTargetLanguage(t *testing.T) {
	tr := &stubTranslator{out: "selamat pagi"}
	tool := NewTranslateTool(tr)

	out, err := tool.Call(context.Background(), ToolContext{}, "good morning -> id")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if out != "selamat pagi" || tr.target != "id" {
		t.Fatalf("out = %q, target = %q", out, tr.target)
	}
}

func TestTranslateToolDefaultsToIndonesian(t *testing.T) {
	tr := &stubTranslator{out: "halo"}
	tool := NewTranslateTool(tr)

	if _, err := tool.Call(context.Background(), ToolContext{}, "hello"); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if tr.target != "id" {
		t.Fatalf("target = %q, want id", tr.target)
	}
}

func TestTranslateToolNeverFabricates(t *testing.T) {
	tr := &stubTranslator{err: errors.New("service down")}
	tool := NewTranslateTool(tr)

	_, err := tool.Call(context.Background(), ToolContext{}, "hello -> id")
	if !errors.Is(err, domain.ErrTranslationUnavailable) {
		t.Fatalf("err = %v, want ErrTranslationUnavailable", err)
	}
}

type stubSearcher struct {
	urls []string
	err  error
}

func (s stubSearcher) Search(ctx context.Context, query string, limit int) ([]string, error) {
	return s.urls, s.err
}

func TestWebSearchToolNumbersResults(t *testing.T) {
	tool := NewWebSearchTool(stubSearcher{urls: []string{"https://a.example", "https://b.example"}}, 5)

	out, err := tool.Call(context.Background(), ToolContext{}, "terapi terbaru")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !strings.Contains(out, "1. https://a.example") || !strings.Contains(out, "2. https://b.example") {
		t.Fatalf("output = %q", out)
	}
}
