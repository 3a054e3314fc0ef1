package config

import (
	"os"
	"strconv"

	"kerygma-studio/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort      string
	LogLevel        string
	SupabaseURL     string
	SupabaseKey     string
	VertexProjectID string
	VertexLocation  string
	SpeechVoice     string
	ArchiveCapacity int
	SpeechMaxChars  int
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:      getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		SupabaseURL:     getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:     getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		VertexProjectID: getEnvOrDefault("VERTEX_PROJECT_ID", ""),
		VertexLocation:  getEnvOrDefault("VERTEX_LOCATION", "us-central1"),
		SpeechVoice:     getEnvOrDefault("SPEECH_VOICE", "Puck"),
		ArchiveCapacity: getEnvIntOrDefault("ARCHIVE_CAPACITY", domain.DefaultArchiveCapacity),
		SpeechMaxChars:  getEnvIntOrDefault("SPEECH_MAX_CHARS", domain.SpeechMaxChars),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetVertexProjectID returns the Vertex AI project id
func (c *AppConfig) GetVertexProjectID() string {
	return c.VertexProjectID
}

// GetVertexLocation returns the Vertex AI location
func (c *AppConfig) GetVertexLocation() string {
	return c.VertexLocation
}

// GetSpeechVoice returns the synthesis voice name
func (c *AppConfig) GetSpeechVoice() string {
	return c.SpeechVoice
}

// GetArchiveCapacity returns the notebook history capacity
func (c *AppConfig) GetArchiveCapacity() int {
	return c.ArchiveCapacity
}

// GetSpeechMaxChars returns the synthesis text length limit
func (c *AppConfig) GetSpeechMaxChars() int {
	return c.SpeechMaxChars
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
