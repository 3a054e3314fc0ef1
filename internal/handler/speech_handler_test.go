package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kerygma-studio/internal/config"
	"kerygma-studio/internal/domain"
	"kerygma-studio/internal/service"
)

// fakePlaybackOutput satisfies domain.AudioOutput without an audio device.
type fakePlaybackOutput struct{}

type fakePlaybackVoice struct{}

func (fakePlaybackVoice) Stop() {}

func (fakePlaybackOutput) Start(buf *domain.PCMBuffer, onComplete func()) (domain.AudioVoice, error) {
	return fakePlaybackVoice{}, nil
}

func (fakePlaybackOutput) Close() error { return nil }

// fakeAI satisfies domain.AIService for the Synthesize path only.
type fakeAI struct {
	domain.AIService
	payload string
}

func (f fakeAI) Synthesize(ctx context.Context, text string) (string, error) {
	return f.payload, nil
}

func pcmBase64() string {
	return base64.StdEncoding.EncodeToString([]byte{0x00, 0x40, 0x00, 0x20})
}

func newSpeechContainer() *config.Container {
	logger := NewMockHandlerLogger()
	ai := fakeAI{payload: pcmBase64()}
	return &config.Container{
		Logger:        logger,
		AIService:     ai,
		AudioPipeline: service.NewAudioPipeline(ai, fakePlaybackOutput{}, logger),
	}
}

func TestSpeechHandler_SynthesizeReturnsWAV(t *testing.T) {
	handler := NewSpeechHandler(newSpeechContainer())

	body := strings.NewReader(`{"text":"No princípio"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/speech/synthesize", body)
	rr := httptest.NewRecorder()
	handler.Synthesize(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "audio/wav" {
		t.Fatalf("expected audio/wav, got %s", ct)
	}
	wav := rr.Body.Bytes()
	if len(wav) != 44+4 {
		t.Fatalf("expected 48-byte WAV, got %d", len(wav))
	}
	if string(wav[0:4]) != "RIFF" {
		t.Fatalf("expected RIFF header")
	}
}

func TestSpeechHandler_SynthesizeRequiresText(t *testing.T) {
	handler := NewSpeechHandler(newSpeechContainer())

	body := strings.NewReader(`{"text":""}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/speech/synthesize", body)
	rr := httptest.NewRecorder()
	handler.Synthesize(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestSpeechHandler_SynthesizeUnconfigured(t *testing.T) {
	handler := NewSpeechHandler(&config.Container{Logger: NewMockHandlerLogger()})

	body := strings.NewReader(`{"text":"x"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/speech/synthesize", body)
	rr := httptest.NewRecorder()
	handler.Synthesize(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rr.Code)
	}
}

func TestSpeechHandler_PlaybackLifecycle(t *testing.T) {
	handler := NewSpeechHandler(newSpeechContainer())

	body := strings.NewReader(`{"sourceId":"verse-1","text":"texto"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/playback/play", body)
	rr := httptest.NewRecorder()
	handler.Play(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var status struct {
		State    string `json:"state"`
		SourceID string `json:"sourceId"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if status.State != "playing" || status.SourceID != "verse-1" {
		t.Fatalf("unexpected status %+v", status)
	}

	// Stop is idempotent.
	for i := 0; i < 2; i++ {
		rr = httptest.NewRecorder()
		handler.Stop(rr, httptest.NewRequest(http.MethodPost, "/api/v1/playback/stop", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if status.State != "idle" {
			t.Fatalf("expected idle after stop, got %s", status.State)
		}
	}
}

func TestSpeechHandler_StatusUnconfigured(t *testing.T) {
	handler := NewSpeechHandler(&config.Container{Logger: NewMockHandlerLogger()})

	rr := httptest.NewRecorder()
	handler.Status(rr, httptest.NewRequest(http.MethodGet, "/api/v1/playback/status", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rr.Code)
	}
}
