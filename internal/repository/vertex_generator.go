package repository

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"kerygma-studio/internal/domain"

	"cloud.google.com/go/vertexai/genai"
)

// VertexContentGenerator implements domain.ContentGenerator on top of the
// Vertex AI Gemini client.
type VertexContentGenerator struct {
	client *genai.Client
	logger domain.Logger
}

func NewVertexContentGenerator(ctx context.Context, projectID, location string, logger domain.Logger) (*VertexContentGenerator, error) {
	client, err := genai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex ai client: %w", err)
	}
	return &VertexContentGenerator{
		client: client,
		logger: logger,
	}, nil
}

func (g *VertexContentGenerator) Close() error {
	return g.client.Close()
}

func (g *VertexContentGenerator) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResponse, error) {
	model := g.client.GenerativeModel(req.Model)

	switch req.Kind {
	case domain.GenerateJSON:
		model.GenerationConfig.ResponseMIMEType = "application/json"
		if req.Schema != nil {
			model.GenerationConfig.ResponseSchema = req.Schema
		}
	case domain.GenerateSpeech:
		// Speech responses come back as inline PCM blobs.
	default:
		model.SetTemperature(0.7)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini call failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	candidate := resp.Candidates[0]
	out := &domain.GenerateResponse{}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.Blob:
			if req.Kind == domain.GenerateSpeech {
				out.AudioBase64 = base64.StdEncoding.EncodeToString(p.Data)
			}
		}
	}
	out.Text = sb.String()

	if req.Grounded && candidate.CitationMetadata != nil {
		for _, c := range candidate.CitationMetadata.Citations {
			if c.URI == "" {
				continue
			}
			out.Sources = append(out.Sources, domain.GroundingSource{
				Title: c.Title,
				URI:   c.URI,
			})
		}
	}

	return out, nil
}
