package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kerygma-studio/internal/domain"

	"github.com/pgvector/pgvector-go"
)

// SupabaseVectorRepository stores sermon chunk embeddings in the
// sermon_chunks table and searches them through the match_sermon_chunks RPC.
type SupabaseVectorRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

func NewSupabaseVectorRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) *SupabaseVectorRepository {
	return &SupabaseVectorRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

func (r *SupabaseVectorRepository) SaveChunk(ctx context.Context, chunk *domain.SermonChunk) error {
	client := r.supabaseClient.DB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	data := map[string]interface{}{
		"sermon_id":   chunk.SermonID,
		"chunk_index": chunk.ChunkIndex,
		"text":        chunk.Text,
		"embedding":   chunk.Embedding,
		"created_at":  time.Now(),
	}

	// Upsert on (sermon_id, chunk_index) so re-ingest does not hit the
	// unique constraint.
	resp, _, err := client.From("sermon_chunks").Insert(data, true, "sermon_id,chunk_index", "id", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to save chunk: %w", err)
	}

	var result []struct {
		ID string `json:"id"`
	}
	if len(resp) > 0 {
		if err := json.Unmarshal(resp, &result); err == nil && len(result) > 0 {
			chunk.ID = result[0].ID
		}
	}
	return nil
}

func (r *SupabaseVectorRepository) SearchSimilar(ctx context.Context, query pgvector.Vector, limit int) ([]domain.SearchResult, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	params := map[string]interface{}{
		"query_embedding": query,
		"match_threshold": 0.3,
		"match_count":     limit,
	}

	resp := client.Rpc("match_sermon_chunks", "", params)
	if resp == "" {
		return nil, fmt.Errorf("rpc returned empty response")
	}

	var results []struct {
		SermonID   string  `json:"sermon_id"`
		ChunkIndex int     `json:"chunk_index"`
		Text       string  `json:"text"`
		Similarity float32 `json:"similarity"`
	}
	if err := json.Unmarshal([]byte(resp), &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search results: %w", err)
	}

	domainResults := make([]domain.SearchResult, len(results))
	for i, res := range results {
		domainResults[i] = domain.SearchResult{
			SermonID:   res.SermonID,
			ChunkIndex: res.ChunkIndex,
			Text:       res.Text,
			Score:      res.Similarity,
		}
	}
	return domainResults, nil
}

func (r *SupabaseVectorRepository) DeleteBySermonID(ctx context.Context, sermonID string) error {
	client := r.supabaseClient.DB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	_, _, err := client.From("sermon_chunks").Delete("", "").Eq("sermon_id", sermonID).Execute()
	if err != nil {
		return fmt.Errorf("failed to delete chunks: %w", err)
	}
	return nil
}
