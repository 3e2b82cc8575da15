package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("hello", 100, 10)
	if len(chunks) != 1 || chunks[0] != "hello" {
		t.Fatalf("expected single chunk, got %v", chunks)
	}
}

func TestSplitTextChunksAndOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 10) // 100 chars
	chunks := SplitText(text, 40, 10)

	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 40 {
			t.Errorf("chunk %d exceeds size: %d", i, len(c))
		}
	}
	// consecutive chunks share the overlap region
	first := chunks[0]
	second := chunks[1]
	if !strings.HasPrefix(second, first[len(first)-10:]) {
		t.Errorf("expected 10-char overlap between chunks, got %q then %q", first, second)
	}
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	text := strings.Repeat("x", 50)
	chunks := SplitText(text, 10, 20)
	if len(chunks) != 5 {
		t.Fatalf("expected fallback stepping to yield 5 chunks, got %d", len(chunks))
	}
}

func TestSplitTextCoversWholeInput(t *testing.T) {
	text := strings.Repeat("0123456789", 7)
	chunks := SplitText(text, 30, 5)
	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(text, last) {
		t.Errorf("last chunk should end the input, got %q", last)
	}
}
