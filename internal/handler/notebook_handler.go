package handler

import (
	"net/http"

	"kerygma-studio/internal/config"
	"kerygma-studio/internal/domain"

	"github.com/gorilla/mux"
)

// NotebookHandler handles the global notebook and its history
type NotebookHandler struct {
	logger   domain.Logger
	notebook domain.NotebookService
	archive  domain.NotebookArchive
}

// NewNotebookHandler creates a new notebook handler
func NewNotebookHandler(container *config.Container) *NotebookHandler {
	return &NotebookHandler{
		logger:   container.GetLogger(),
		notebook: container.GetNotebookService(),
		archive:  container.GetNotebookArchive(),
	}
}

type notebookResponse struct {
	Nodes     []domain.InlineNode `json:"nodes"`
	HTML      string              `json:"html"`
	PlainText string              `json:"plainText"`
	IsEmpty   bool                `json:"isEmpty"`
}

func (h *NotebookHandler) currentResponse() notebookResponse {
	draft := h.notebook.Current()
	return notebookResponse{
		Nodes:     draft.Nodes,
		HTML:      h.notebook.RenderHTML(),
		PlainText: h.notebook.PlainText(),
		IsEmpty:   h.notebook.IsEmpty(),
	}
}

// GetNotebook returns the current draft
func (h *NotebookHandler) GetNotebook(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.currentResponse())
}

// UpdateNotebook replaces the draft content
func (h *NotebookHandler) UpdateNotebook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nodes []domain.InlineNode `json:"nodes"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	h.notebook.SetContent(req.Nodes)
	writeJSON(w, http.StatusOK, h.currentResponse())
}

// ApplyFormat applies a formatting command to a selection
func (h *NotebookHandler) ApplyFormat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Selection domain.Selection `json:"selection"`
		Kind      string           `json:"kind"`
		Value     string           `json:"value"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	h.notebook.ApplyFormat(req.Selection, domain.FormatKind(req.Kind), req.Value)
	writeJSON(w, http.StatusOK, h.currentResponse())
}

// RemoveFormat strips formatting from a selection
func (h *NotebookHandler) RemoveFormat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Selection domain.Selection `json:"selection"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	h.notebook.RemoveFormat(req.Selection)
	writeJSON(w, http.StatusOK, h.currentResponse())
}

// ClearNotebook empties the draft
func (h *NotebookHandler) ClearNotebook(w http.ResponseWriter, r *http.Request) {
	h.notebook.Clear()
	writeJSON(w, http.StatusOK, h.currentResponse())
}

// ArchiveNotebook snapshots the draft into history and starts a fresh page.
// A draft identical to the newest snapshot is rejected but the page is still
// cleared.
func (h *NotebookHandler) ArchiveNotebook(w http.ResponseWriter, r *http.Request) {
	result, err := h.archive.Archive(h.notebook.Current())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.notebook.Clear()

	resp := map[string]interface{}{
		"status": string(result.Status),
	}
	if result.Entry != nil {
		resp["entry"] = result.Entry
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetHistory lists archived drafts, newest first
func (h *NotebookHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.archive.Entries())
}

// RestoreEntry loads an archived draft back into the notebook
func (h *NotebookHandler) RestoreEntry(w http.ResponseWriter, r *http.Request) {
	entryID := mux.Vars(r)["id"]
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "Entry ID is required")
		return
	}

	draft, err := h.archive.Restore(entryID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.notebook.SetContent(draft.Nodes)
	writeJSON(w, http.StatusOK, h.currentResponse())
}

// DeleteEntry removes an archived draft. Deleting an absent entry succeeds.
func (h *NotebookHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	entryID := mux.Vars(r)["id"]
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "Entry ID is required")
		return
	}
	if err := h.archive.Delete(entryID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
