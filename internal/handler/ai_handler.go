package handler

import (
	"net/http"

	"kerygma-studio/internal/config"
	"kerygma-studio/internal/domain"
)

// AIHandler handles AI-assisted lookup requests
type AIHandler struct {
	logger domain.Logger
	ai     domain.AIService
}

// NewAIHandler creates a new AI handler
func NewAIHandler(container *config.Container) *AIHandler {
	return &AIHandler{
		logger: container.GetLogger(),
		ai:     container.GetAIService(),
	}
}

func (h *AIHandler) available(w http.ResponseWriter) bool {
	if h.ai == nil {
		writeError(w, http.StatusServiceUnavailable, "AI lookups are not configured")
		return false
	}
	return true
}

// GenerateOutline produces a full sermon outline for a topic and theme
func (h *AIHandler) GenerateOutline(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	var req struct {
		Topic     string `json:"topic"`
		Theme     string `json:"theme"`
		Reference string `json:"reference"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Topic == "" {
		writeError(w, http.StatusBadRequest, "Topic is required")
		return
	}
	outline, err := h.ai.GenerateSermonOutline(r.Context(), req.Topic, req.Theme, req.Reference)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"outline": outline})
}

// GetChapter returns the full text of a bible chapter
func (h *AIHandler) GetChapter(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	var req struct {
		Book    string `json:"book"`
		Chapter string `json:"chapter"`
		Version string `json:"version"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Book == "" || req.Chapter == "" {
		writeError(w, http.StatusBadRequest, "Book and chapter are required")
		return
	}
	if req.Version == "" {
		req.Version = "ACF"
	}
	result, err := h.ai.GetBibleChapter(r.Context(), req.Book, req.Chapter, req.Version)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetVerse returns the exact text of a passage
func (h *AIHandler) GetVerse(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	var req struct {
		Book      string `json:"book"`
		Reference string `json:"reference"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Book == "" || req.Reference == "" {
		writeError(w, http.StatusBadRequest, "Book and reference are required")
		return
	}
	result, err := h.ai.GetVerseText(r.Context(), req.Book, req.Reference)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetDeepDive returns the five-part exegetical immersion for a passage
func (h *AIHandler) GetDeepDive(w http.ResponseWriter, r *http.Request) {
	h.referenceLookup(w, r, func(ref string) (interface{}, error) {
		return h.ai.GetDeepDive(r.Context(), ref)
	})
}

// GetCommentary returns a detailed commentary for a passage
func (h *AIHandler) GetCommentary(w http.ResponseWriter, r *http.Request) {
	h.referenceLookup(w, r, func(ref string) (interface{}, error) {
		return h.ai.GetCommentary(r.Context(), ref)
	})
}

// GetBiography returns biographical research for a character
func (h *AIHandler) GetBiography(w http.ResponseWriter, r *http.Request) {
	h.referenceLookup(w, r, func(ref string) (interface{}, error) {
		return h.ai.GetBiography(r.Context(), ref)
	})
}

// GetTheology returns an exhaustive theological definition
func (h *AIHandler) GetTheology(w http.ResponseWriter, r *http.Request) {
	h.referenceLookup(w, r, func(ref string) (interface{}, error) {
		return h.ai.TheologicalLookup(r.Context(), ref)
	})
}

// GetDictionary returns a Portuguese dictionary entry
func (h *AIHandler) GetDictionary(w http.ResponseWriter, r *http.Request) {
	h.referenceLookup(w, r, func(ref string) (interface{}, error) {
		return h.ai.DictionaryLookup(r.Context(), ref)
	})
}

// GetTimeline returns the chronological timeline for a reference
func (h *AIHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	h.referenceLookup(w, r, func(ref string) (interface{}, error) {
		return h.ai.GetTimeline(r.Context(), ref)
	})
}

// referenceLookup handles the single-query lookups sharing a request shape
func (h *AIHandler) referenceLookup(w http.ResponseWriter, r *http.Request, lookup func(string) (interface{}, error)) {
	if !h.available(w) {
		return
	}
	var req struct {
		Query string `json:"query"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}
	result, err := lookup(req.Query)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Translate returns the linguistic analysis of a text or term
func (h *AIHandler) Translate(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	var req struct {
		Text      string `json:"text"`
		Direction string `json:"direction"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}
	if req.Direction == "" {
		req.Direction = "grego-portugues"
	}
	result, err := h.ai.Translate(r.Context(), req.Text, req.Direction)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// UniversalSearch returns a grounded free-form answer with sources
func (h *AIHandler) UniversalSearch(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	var req struct {
		Query string `json:"query"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}
	answer, err := h.ai.UniversalSearch(r.Context(), req.Query)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}
