package config

import (
	"testing"

	"kerygma-studio/internal/domain"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")
	t.Setenv("VERTEX_PROJECT_ID", "")
	t.Setenv("VERTEX_LOCATION", "")
	t.Setenv("SPEECH_VOICE", "")
	t.Setenv("ARCHIVE_CAPACITY", "")
	t.Setenv("SPEECH_MAX_CHARS", "")

	cfg := NewConfig()

	if cfg.GetServerPort() != "8080" {
		t.Fatalf("expected default server port 8080, got %s", cfg.GetServerPort())
	}
	if cfg.GetLogLevel() != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.GetLogLevel())
	}
	if cfg.GetSupabaseURL() != "" {
		t.Fatalf("expected default supabase url empty, got %s", cfg.GetSupabaseURL())
	}
	if cfg.GetVertexLocation() != "us-central1" {
		t.Fatalf("expected default vertex location us-central1, got %s", cfg.GetVertexLocation())
	}
	if cfg.GetSpeechVoice() != "Puck" {
		t.Fatalf("expected default voice Puck, got %s", cfg.GetSpeechVoice())
	}
	if cfg.GetArchiveCapacity() != domain.DefaultArchiveCapacity {
		t.Fatalf("expected default archive capacity %d, got %d", domain.DefaultArchiveCapacity, cfg.GetArchiveCapacity())
	}
	if cfg.GetSpeechMaxChars() != domain.SpeechMaxChars {
		t.Fatalf("expected default speech max chars %d, got %d", domain.SpeechMaxChars, cfg.GetSpeechMaxChars())
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SUPABASE_URL", "http://localhost:54321")
	t.Setenv("SUPABASE_ANON_KEY", "test-key")
	t.Setenv("VERTEX_PROJECT_ID", "my-project")
	t.Setenv("SPEECH_VOICE", "Kore")
	t.Setenv("ARCHIVE_CAPACITY", "10")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9090" {
		t.Fatalf("expected server port 9090, got %s", cfg.GetServerPort())
	}
	if cfg.GetLogLevel() != "debug" {
		t.Fatalf("expected log level debug, got %s", cfg.GetLogLevel())
	}
	if cfg.GetSupabaseURL() != "http://localhost:54321" {
		t.Fatalf("expected supabase url http://localhost:54321, got %s", cfg.GetSupabaseURL())
	}
	if cfg.GetVertexProjectID() != "my-project" {
		t.Fatalf("expected vertex project my-project, got %s", cfg.GetVertexProjectID())
	}
	if cfg.GetSpeechVoice() != "Kore" {
		t.Fatalf("expected voice Kore, got %s", cfg.GetSpeechVoice())
	}
	if cfg.GetArchiveCapacity() != 10 {
		t.Fatalf("expected archive capacity 10, got %d", cfg.GetArchiveCapacity())
	}
}

func TestNewConfig_Fallbacks(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("ARCHIVE_CAPACITY", "not-a-number")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9091" {
		t.Fatalf("expected server port 9091, got %s", cfg.GetServerPort())
	}
	if cfg.GetArchiveCapacity() != domain.DefaultArchiveCapacity {
		t.Fatalf("expected default archive capacity %d, got %d", domain.DefaultArchiveCapacity, cfg.GetArchiveCapacity())
	}
}
