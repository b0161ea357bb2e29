package indexing

import (
	"strings"
	"testing"
)

func TestChunkEmptyInput(t *testing.T) {
	if got := Chunk("   \n\t  ", 100, 20); got != nil {
		t.Fatalf("Chunk(whitespace) = %v, want nil", got)
	}
}

func TestChunkShortTextIsSinglePiece(t *testing.T) {
	got := Chunk("kesehatan mental itu penting", 100, 20)
	if len(got) != 1 || got[0] != "kesehatan mental itu penting" {
		t.Fatalf("Chunk = %v", got)
	}
}

func TestChunkBreaksOnWordBoundary(t *testing.T) {
	text := strings.Repeat("kecemasan stres depresi tidur ", 40)
	chunks := Chunk(text, 100, 20)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	words := map[string]bool{"kecemasan": true, "stres": true, "depresi": true, "tidur": true}
	for i, c := range chunks {
		for _, w := range strings.Fields(c) {
			if !words[w] {
				t.Fatalf("chunk %d split a word: %q in %q", i, w, c)
			}
		}
	}
}

func TestChunkOverlapRepeatsTailWords(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta ", 30)
	chunks := Chunk(text, 80, 30)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// With overlap, the start of each chunk re-reads the tail of the
	// previous one.
	first := strings.Fields(chunks[0])
	tail := first[len(first)-1]
	if !strings.Contains(chunks[1], tail) {
		t.Fatalf("chunk 2 %q does not overlap tail of chunk 1 (%q)", chunks[1], tail)
	}
}

func TestChunkDegenerateParamsStillTerminate(t *testing.T) {
	text := strings.Repeat("a ", 500)
	// overlap >= size would loop forever without the forward-progress guard.
	chunks := Chunk(text, 10, 10)
	if len(chunks) == 0 {
		t.Fatal("no chunks produced")
	}
}
