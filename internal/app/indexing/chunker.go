package indexing

import "strings"

const (
	DefaultChunkSize    = 800
	DefaultChunkOverlap = 120
)

// Chunk splits text into overlapping pieces of roughly size characters.
// Cuts prefer a word boundary near the end of the window so no word is
// split across chunks. Whitespace-only input yields no chunks.
func Chunk(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
		if overlap >= size {
			overlap = size / 4
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	for start := 0; start < len(text); {
		end := start + size
		if end >= len(text) {
			piece := strings.TrimSpace(text[start:])
			if piece != "" {
				chunks = append(chunks, piece)
			}
			break
		}

		// Back up to the nearest space so the cut lands between words.
		cut := end
		if i := strings.LastIndexByte(text[start:end], ' '); i > 0 {
			cut = start + i
		}

		piece := strings.TrimSpace(text[start:cut])
		if piece != "" {
			chunks = append(chunks, piece)
		}

		next := cut - overlap
		if next <= start {
			next = cut + 1
		}
		start = next
	}

	return chunks
}
