package service

import (
	"strings"
	"testing"
)

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	chunks := chunkText("um parágrafo curto", 1000)
	if len(chunks) != 1 || chunks[0] != "um parágrafo curto" {
		t.Fatalf("unexpected chunks %v", chunks)
	}
}

func TestChunkText_EmptyText(t *testing.T) {
	if chunks := chunkText("   \n\n  ", 1000); len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %v", chunks)
	}
}

func TestChunkText_ParagraphsGrouped(t *testing.T) {
	text := "primeiro parágrafo\n\nsegundo parágrafo"
	chunks := chunkText(text, 1000)
	if len(chunks) != 1 {
		t.Fatalf("expected paragraphs grouped into one chunk, got %d", len(chunks))
	}
	if !strings.Contains(chunks[0], "primeiro") || !strings.Contains(chunks[0], "segundo") {
		t.Fatalf("unexpected chunk %q", chunks[0])
	}
}

func TestChunkText_SplitsOnTarget(t *testing.T) {
	para := strings.Repeat("a", 600)
	text := para + "\n\n" + para
	chunks := chunkText(text, 1000)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
}

func TestChunkText_HardSplitsOversizedParagraph(t *testing.T) {
	text := strings.Repeat("b", 2500)
	chunks := chunkText(text, 1000)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c)) > 1000 {
			t.Fatalf("chunk %d exceeds target: %d runes", i, len([]rune(c)))
		}
	}
}
