package handler

import (
	"net/http"
	"strconv"

	"kerygma-studio/internal/config"
	"kerygma-studio/internal/domain"

	"github.com/gorilla/mux"
)

// SermonHandler handles the sermon library, quick notes and semantic search
type SermonHandler struct {
	logger  domain.Logger
	sermons domain.SermonService
	notes   domain.QuickNoteService
	search  domain.SearchService
}

// NewSermonHandler creates a new sermon handler
func NewSermonHandler(container *config.Container) *SermonHandler {
	return &SermonHandler{
		logger:  container.GetLogger(),
		sermons: container.GetSermonService(),
		notes:   container.GetQuickNoteService(),
		search:  container.GetSearchService(),
	}
}

// ListSermons returns the library, optionally filtered by theme
func (h *SermonHandler) ListSermons(w http.ResponseWriter, r *http.Request) {
	theme := domain.Theme(r.URL.Query().Get("theme"))
	sermons, err := h.sermons.ListSermons(theme)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sermons)
}

// SaveSermon creates or updates a sermon
func (h *SermonHandler) SaveSermon(w http.ResponseWriter, r *http.Request) {
	var sermon domain.Sermon
	if !decodeBody(w, r, &sermon) {
		return
	}
	saved, err := h.sermons.SaveSermon(r.Context(), &sermon)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// GetSermon returns a single sermon by id
func (h *SermonHandler) GetSermon(w http.ResponseWriter, r *http.Request) {
	sermon, err := h.sermons.GetSermon(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sermon)
}

// DeleteSermon removes a sermon from the library
func (h *SermonHandler) DeleteSermon(w http.ResponseWriter, r *http.Request) {
	if err := h.sermons.DeleteSermon(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchSermons matches sermons by title or tag
func (h *SermonHandler) SearchSermons(w http.ResponseWriter, r *http.Request) {
	sermons, err := h.sermons.SearchSermons(r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sermons)
}

// SemanticSearch returns the closest sermon passages for a query
func (h *SermonHandler) SemanticSearch(w http.ResponseWriter, r *http.Request) {
	if h.search == nil {
		writeError(w, http.StatusServiceUnavailable, "Semantic search is not configured")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.search.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// ListNotes returns the quick notes board
func (h *SermonHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.ListNotes()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// SaveNote creates or updates a quick note
func (h *SermonHandler) SaveNote(w http.ResponseWriter, r *http.Request) {
	var note domain.QuickNote
	if !decodeBody(w, r, &note) {
		return
	}
	saved, err := h.notes.SaveNote(note)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DeleteNote removes a quick note
func (h *SermonHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.notes.DeleteNote(mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
