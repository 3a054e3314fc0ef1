package domain

import (
	"context"

	"github.com/pgvector/pgvector-go"
)

// SermonChunk is a chunk of sermon plain text with its vector embedding.
type SermonChunk struct {
	ID         string          `json:"id"`
	SermonID   string          `json:"sermon_id"`
	ChunkIndex int             `json:"chunk_index"`
	Text       string          `json:"text"`
	Embedding  pgvector.Vector `json:"-"`
}

// SearchResult is a retrieved sermon chunk with its similarity score.
type SearchResult struct {
	SermonID   string  `json:"sermon_id"`
	ChunkIndex int     `json:"chunk_index"`
	Text       string  `json:"text"`
	Score      float32 `json:"score"`
}

// VectorRepository defines persistence for sermon embeddings.
type VectorRepository interface {
	SaveChunk(ctx context.Context, chunk *SermonChunk) error
	SearchSimilar(ctx context.Context, query pgvector.Vector, limit int) ([]SearchResult, error)
	DeleteBySermonID(ctx context.Context, sermonID string) error
}

// SearchService provides semantic search across the sermon library.
type SearchService interface {
	// IngestSermon chunks, embeds and stores the sermon's plain text.
	IngestSermon(ctx context.Context, sermon *Sermon) error

	// Search embeds the query and returns the closest chunks.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)

	// RemoveSermon drops the sermon's stored embeddings.
	RemoveSermon(ctx context.Context, sermonID string) error
}
