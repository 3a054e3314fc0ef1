package handler

import (
	"net/http"
	"strconv"

	"kerygma-studio/internal/config"
	"kerygma-studio/internal/domain"
	"kerygma-studio/internal/service"
)

// SpeechHandler handles speech synthesis and local playback
type SpeechHandler struct {
	logger   domain.Logger
	ai       domain.AIService
	playback domain.AudioPipeline
}

// NewSpeechHandler creates a new speech handler
func NewSpeechHandler(container *config.Container) *SpeechHandler {
	return &SpeechHandler{
		logger:   container.GetLogger(),
		ai:       container.GetAIService(),
		playback: container.GetAudioPipeline(),
	}
}

// Synthesize generates speech for the given text and returns a WAV file
func (h *SpeechHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	if h.ai == nil {
		writeError(w, http.StatusServiceUnavailable, "Speech synthesis is not configured")
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	payload, err := h.ai.Synthesize(r.Context(), req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	buf, err := service.DecodePCM(payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	wav := service.EncodeWAV(buf)
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(wav)))
	w.WriteHeader(http.StatusOK)
	w.Write(wav)
}

// Play starts local playback for a source, stopping any active session
func (h *SpeechHandler) Play(w http.ResponseWriter, r *http.Request) {
	if h.playback == nil {
		writeError(w, http.StatusServiceUnavailable, "Local playback is not configured")
		return
	}
	var req struct {
		SourceID string `json:"sourceId"`
		Text     string `json:"text"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	if err := h.playback.Play(req.SourceID, req.Text); err != nil {
		writeServiceError(w, err)
		return
	}
	h.writeStatus(w)
}

// Stop halts playback. Stopping an idle session succeeds.
func (h *SpeechHandler) Stop(w http.ResponseWriter, r *http.Request) {
	if h.playback == nil {
		writeError(w, http.StatusServiceUnavailable, "Local playback is not configured")
		return
	}
	h.playback.Stop()
	h.writeStatus(w)
}

// Status reports the current playback state and source
func (h *SpeechHandler) Status(w http.ResponseWriter, r *http.Request) {
	if h.playback == nil {
		writeError(w, http.StatusServiceUnavailable, "Local playback is not configured")
		return
	}
	h.writeStatus(w)
}

func (h *SpeechHandler) writeStatus(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]string{
		"state":    h.playback.State().String(),
		"sourceId": h.playback.SourceID(),
	})
}
