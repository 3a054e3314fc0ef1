package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kerygma-studio/internal/config"
	"kerygma-studio/internal/domain"
	"kerygma-studio/internal/repository"
	"kerygma-studio/internal/service"

	"github.com/gorilla/mux"
)

func newNotebookContainer() *config.Container {
	logger := NewMockHandlerLogger()
	store := repository.NewMemoryKeyValueStore()
	return &config.Container{
		Logger:          logger,
		NotebookService: service.NewNotebookService(store, logger),
		NotebookArchive: service.NewNotebookArchive(store, logger, 0),
	}
}

func TestNotebookHandler_GetEmpty(t *testing.T) {
	handler := NewNotebookHandler(newNotebookContainer())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notebook", nil)
	rr := httptest.NewRecorder()
	handler.GetNotebook(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp struct {
		HTML    string `json:"html"`
		IsEmpty bool   `json:"isEmpty"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.IsEmpty {
		t.Fatalf("expected empty notebook")
	}
	if resp.HTML != domain.EmptyLineMarkup {
		t.Fatalf("expected canonical empty markup, got %q", resp.HTML)
	}
}

func TestNotebookHandler_UpdateAndFormat(t *testing.T) {
	handler := NewNotebookHandler(newNotebookContainer())

	body := strings.NewReader(`{"nodes":[{"text":"palavra","format":{}}]}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/notebook", body)
	rr := httptest.NewRecorder()
	handler.UpdateNotebook(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	body = strings.NewReader(`{"selection":{"start":0,"end":7},"kind":"bold"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/notebook/format", body)
	rr = httptest.NewRecorder()
	handler.ApplyFormat(rr, req)

	var resp struct {
		HTML string `json:"html"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.HTML != "<b>palavra</b>" {
		t.Fatalf("expected bold markup, got %q", resp.HTML)
	}
}

func TestNotebookHandler_ArchiveFlow(t *testing.T) {
	container := newNotebookContainer()
	handler := NewNotebookHandler(container)

	container.NotebookService.SetContent([]domain.InlineNode{{Text: "sermão para arquivar"}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notebook/archive", nil)
	rr := httptest.NewRecorder()
	handler.ArchiveNotebook(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var resp struct {
		Status string              `json:"status"`
		Entry  domain.ArchiveEntry `json:"entry"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != string(domain.ArchiveCreated) {
		t.Fatalf("expected created status, got %s", resp.Status)
	}
	if !container.NotebookService.IsEmpty() {
		t.Fatalf("expected fresh page after archive")
	}

	// Restore brings the snapshot back.
	restoreReq := httptest.NewRequest(http.MethodPost, "/api/v1/notebook/history/"+resp.Entry.ID+"/restore", nil)
	restoreRR := httptest.NewRecorder()

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/notebook/history/{id}/restore", handler.RestoreEntry).Methods(http.MethodPost)
	router.ServeHTTP(restoreRR, restoreReq)

	if restoreRR.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, restoreRR.Code)
	}
	if container.NotebookService.PlainText() != "sermão para arquivar" {
		t.Fatalf("expected draft restored, got %q", container.NotebookService.PlainText())
	}
}

func TestNotebookHandler_ArchiveEmptyRejected(t *testing.T) {
	handler := NewNotebookHandler(newNotebookContainer())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notebook/archive", nil)
	rr := httptest.NewRecorder()
	handler.ArchiveNotebook(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestNotebookHandler_ArchiveDuplicateClearsPage(t *testing.T) {
	container := newNotebookContainer()
	handler := NewNotebookHandler(container)

	container.NotebookService.SetContent([]domain.InlineNode{{Text: "repetido"}})
	rr := httptest.NewRecorder()
	handler.ArchiveNotebook(rr, httptest.NewRequest(http.MethodPost, "/api/v1/notebook/archive", nil))

	container.NotebookService.SetContent([]domain.InlineNode{{Text: "repetido"}})
	rr = httptest.NewRecorder()
	handler.ArchiveNotebook(rr, httptest.NewRequest(http.MethodPost, "/api/v1/notebook/archive", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != string(domain.ArchiveRejectedDuplicate) {
		t.Fatalf("expected rejected duplicate, got %s", resp.Status)
	}
	if !container.NotebookService.IsEmpty() {
		t.Fatalf("expected fresh page after duplicate rejection")
	}
}

func TestNotebookHandler_RestoreUnknownEntry(t *testing.T) {
	handler := NewNotebookHandler(newNotebookContainer())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notebook/history/999/restore", nil)
	rr := httptest.NewRecorder()

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/notebook/history/{id}/restore", handler.RestoreEntry).Methods(http.MethodPost)
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestNotebookHandler_DeleteEntry(t *testing.T) {
	container := newNotebookContainer()
	handler := NewNotebookHandler(container)

	container.NotebookService.SetContent([]domain.InlineNode{{Text: "para apagar"}})
	result, err := container.NotebookArchive.Archive(container.NotebookService.Current())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/notebook/history/"+result.Entry.ID, nil)
	rr := httptest.NewRecorder()

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/notebook/history/{id}", handler.DeleteEntry).Methods(http.MethodDelete)
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rr.Code)
	}
	if len(container.NotebookArchive.Entries()) != 0 {
		t.Fatalf("expected history empty after delete")
	}
}
