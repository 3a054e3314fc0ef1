package config

import (
	"context"

	"kerygma-studio/internal/domain"
	"kerygma-studio/internal/infra/speaker"
	"kerygma-studio/internal/infra/supabase"
	"kerygma-studio/internal/repository"
	"kerygma-studio/internal/service"
	"kerygma-studio/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config            domain.Config
	Logger            domain.Logger
	SupabaseClient    domain.SupabaseClient
	StateStore        domain.KeyValueStore
	NotebookService   domain.NotebookService
	NotebookArchive   domain.NotebookArchive
	SermonService     domain.SermonService
	QuickNoteService  domain.QuickNoteService
	PreferenceService domain.PreferenceService
	AIService         domain.AIService
	SearchService     domain.SearchService
	AudioPipeline     domain.AudioPipeline

	generator *repository.VertexContentGenerator
}

// NewContainer creates a new dependency injection container. Supabase,
// Vertex AI and the audio device are all optional: the studio degrades to
// in-memory state, no AI lookups, and no local playback respectively.
func NewContainer() *Container {
	cfg := NewConfig()
	appLogger := logger.NewLogger(cfg.GetLogLevel())

	c := &Container{
		Config: cfg,
		Logger: appLogger,
	}

	// State store: Supabase when configured, in-memory otherwise.
	var store domain.KeyValueStore
	var supabaseClient domain.SupabaseClient
	if cfg.GetSupabaseURL() != "" && cfg.GetSupabaseKey() != "" {
		supabaseClient = supabase.NewSupabaseClient(cfg, appLogger)
		if err := supabaseClient.Initialize(); err != nil {
			appLogger.Warn("Supabase unavailable, falling back to in-memory state", "error", err)
			supabaseClient = nil
		}
	}
	if supabaseClient != nil {
		store = repository.NewSupabaseKeyValueStore(supabaseClient, appLogger)
	} else {
		store = repository.NewMemoryKeyValueStore()
	}
	c.SupabaseClient = supabaseClient
	c.StateStore = store

	// Notebook and archive.
	c.NotebookService = service.NewNotebookService(store, appLogger)
	c.NotebookArchive = service.NewNotebookArchive(store, appLogger, cfg.GetArchiveCapacity())

	// Sermon library, over Supabase when available.
	var sermonRepo domain.SermonRepository
	if supabaseClient != nil {
		sermonRepo = repository.NewSupabaseSermonRepository(supabaseClient, appLogger)
	} else {
		sermonRepo = repository.NewKVSermonRepository(store, appLogger)
	}

	// AI lookups and semantic search need a Vertex project.
	if cfg.GetVertexProjectID() != "" {
		generator, err := repository.NewVertexContentGenerator(
			context.Background(), cfg.GetVertexProjectID(), cfg.GetVertexLocation(), appLogger)
		if err != nil {
			appLogger.Warn("Vertex AI unavailable, AI lookups disabled", "error", err)
		} else {
			c.generator = generator
			c.AIService = service.NewAIService(generator, appLogger, cfg.GetSpeechVoice(), cfg.GetSpeechMaxChars())

			if supabaseClient != nil {
				vectorRepo := repository.NewSupabaseVectorRepository(supabaseClient, appLogger)
				c.SearchService = service.NewSearchService(
					vectorRepo, appLogger, cfg.GetVertexProjectID(), cfg.GetVertexLocation())
			}
		}
	}

	c.SermonService = service.NewSermonService(sermonRepo, c.SearchService, appLogger)
	c.QuickNoteService = service.NewQuickNoteService(store, appLogger)
	c.PreferenceService = service.NewPreferenceService(store, appLogger)

	// Local playback needs both a synthesizer and an audio device.
	if c.AIService != nil {
		output, err := speaker.NewOutput(appLogger)
		if err != nil {
			appLogger.Warn("Audio device unavailable, local playback disabled", "error", err)
		} else {
			c.AudioPipeline = service.NewAudioPipeline(speechSynthesizer{c.AIService}, output, appLogger)
		}
	}

	return c
}

// speechSynthesizer adapts the AI service to the pipeline's synthesis port.
type speechSynthesizer struct {
	ai domain.AIService
}

func (s speechSynthesizer) Synthesize(ctx context.Context, text string) (string, error) {
	return s.ai.Synthesize(ctx, text)
}

// Close releases held resources: playback session and the Vertex client.
func (c *Container) Close() {
	if c.AudioPipeline != nil {
		if err := c.AudioPipeline.Close(); err != nil {
			c.Logger.Warn("Failed to close audio pipeline", "error", err)
		}
	}
	if c.generator != nil {
		if err := c.generator.Close(); err != nil {
			c.Logger.Warn("Failed to close Vertex client", "error", err)
		}
	}
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetNotebookService returns the notebook service instance
func (c *Container) GetNotebookService() domain.NotebookService {
	return c.NotebookService
}

// GetNotebookArchive returns the notebook archive instance
func (c *Container) GetNotebookArchive() domain.NotebookArchive {
	return c.NotebookArchive
}

// GetSermonService returns the sermon service instance
func (c *Container) GetSermonService() domain.SermonService {
	return c.SermonService
}

// GetQuickNoteService returns the quick note service instance
func (c *Container) GetQuickNoteService() domain.QuickNoteService {
	return c.QuickNoteService
}

// GetPreferenceService returns the preference service instance
func (c *Container) GetPreferenceService() domain.PreferenceService {
	return c.PreferenceService
}

// GetAIService returns the AI service instance, nil when not configured
func (c *Container) GetAIService() domain.AIService {
	return c.AIService
}

// GetSearchService returns the search service instance, nil when not configured
func (c *Container) GetSearchService() domain.SearchService {
	return c.SearchService
}

// GetAudioPipeline returns the audio pipeline instance, nil when not configured
func (c *Container) GetAudioPipeline() domain.AudioPipeline {
	return c.AudioPipeline
}
