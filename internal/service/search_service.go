package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"kerygma-studio/internal/domain"

	"github.com/pgvector/pgvector-go"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/errgroup"

	apperrors "kerygma-studio/pkg/errors"
)

const (
	searchChunkRunes   = 1000 // target chunk size for embedding
	searchEmbedWorkers = 8    // max concurrent Vertex AI embedding calls
	searchDefaultTopK  = 5
)

type searchService struct {
	vectorRepo domain.VectorRepository
	logger     domain.Logger
	projectID  string
	location   string
}

// NewSearchService creates the semantic search service over the sermon
// library. Embeddings are generated through the Vertex AI REST API with
// application default credentials.
func NewSearchService(vectorRepo domain.VectorRepository, logger domain.Logger, projectID, location string) domain.SearchService {
	return &searchService{
		vectorRepo: vectorRepo,
		logger:     logger,
		projectID:  projectID,
		location:   location,
	}
}

// chunkText splits plain text into paragraph-aligned chunks close to the
// target rune count. Paragraphs larger than the target are split hard.
func chunkText(text string, target int) []string {
	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
		currentLen = 0
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		runes := []rune(para)
		for len(runes) > target {
			flush()
			chunks = append(chunks, string(runes[:target]))
			runes = runes[target:]
		}
		if currentLen > 0 && currentLen+len(runes) > target {
			flush()
		}
		if currentLen > 0 {
			current.WriteString("\n\n")
			currentLen += 2
		}
		current.WriteString(string(runes))
		currentLen += len(runes)
	}
	flush()
	return chunks
}

func (s *searchService) IngestSermon(ctx context.Context, sermon *domain.Sermon) error {
	if sermon == nil || sermon.ID == "" {
		return apperrors.NewValidationError("sermon is required")
	}

	draft, err := domain.DraftFromMarkup(sermon.Content)
	if err != nil {
		return apperrors.NewValidationError("sermon content is unreadable")
	}
	plain := strings.TrimSpace(sermon.Title + "\n\n" + draft.PlainText())
	chunks := chunkText(plain, searchChunkRunes)
	if len(chunks) == 0 {
		return nil
	}

	if err := s.vectorRepo.DeleteBySermonID(ctx, sermon.ID); err != nil {
		s.logger.Warn("Failed to clean up old embeddings", "error", err, "sermon_id", sermon.ID)
	}

	sem := make(chan struct{}, searchEmbedWorkers)
	g, gctx := errgroup.WithContext(ctx)
	for i, text := range chunks {
		i, text := i, text
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-gctx.Done():
				return gctx.Err()
			}
			embedding, err := s.generateEmbedding(gctx, text)
			if err != nil {
				s.logger.Error("Failed to generate embedding", err, "sermon_id", sermon.ID, "chunk", i)
				return nil // continue with others
			}
			chunk := &domain.SermonChunk{
				SermonID:   sermon.ID,
				ChunkIndex: i,
				Text:       text,
				Embedding:  pgvector.NewVector(embedding),
			}
			if err := s.vectorRepo.SaveChunk(gctx, chunk); err != nil {
				s.logger.Error("Failed to save chunk", err, "sermon_id", sermon.ID, "chunk", i)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *searchService) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("search query is required")
	}
	if limit <= 0 {
		limit = searchDefaultTopK
	}

	embedding, err := s.generateEmbedding(ctx, query)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to embed query", err)
	}

	results, err := s.vectorRepo.SearchSimilar(ctx, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *searchService) RemoveSermon(ctx context.Context, sermonID string) error {
	if sermonID == "" {
		return apperrors.NewValidationError("sermon id is required")
	}
	return s.vectorRepo.DeleteBySermonID(ctx, sermonID)
}

// generateEmbedding calls the Vertex AI REST predict endpoint for
// text-embedding-004 using application default credentials.
func (s *searchService) generateEmbedding(ctx context.Context, text string) ([]float32, error) {
	url := fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/google/models/text-embedding-004:predict", s.location, s.projectID, s.location)

	requestBody := map[string]interface{}{
		"instances": []map[string]interface{}{
			{"content": text},
		},
	}
	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}

	creds, err := google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return nil, fmt.Errorf("failed to get default credentials: %w", err)
	}
	token, err := creds.TokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding API returned status: %d", resp.StatusCode)
	}

	var result struct {
		Predictions []struct {
			Embeddings struct {
				Values []float32 `json:"values"`
			} `json:"embeddings"`
		} `json:"predictions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Predictions) == 0 || len(result.Predictions[0].Embeddings.Values) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return result.Predictions[0].Embeddings.Values, nil
}
