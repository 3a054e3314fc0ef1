package service

import (
	"sync"

	"kerygma-studio/internal/domain"
)

// Storage keys carried over from the original notebook.
const (
	notebookContentKey = "paulo_notebook_content"
	notebookHistoryKey = "paulo_notebook_history"
)

type notebookService struct {
	mu     sync.Mutex
	draft  *domain.Draft
	store  domain.KeyValueStore
	logger domain.Logger
}

// NewNotebookService creates the notebook service and hydrates the current
// draft from the stored snapshot. A missing or unreadable snapshot starts an
// empty page; storage failures never block editing.
func NewNotebookService(store domain.KeyValueStore, logger domain.Logger) domain.NotebookService {
	s := &notebookService{
		draft:  domain.NewDraft(),
		store:  store,
		logger: logger,
	}
	s.hydrate()
	return s
}

func (s *notebookService) hydrate() {
	raw, ok, err := s.store.Get(notebookContentKey)
	if err != nil {
		s.logger.Warn("Failed to read draft snapshot, starting empty", "error", err)
		return
	}
	if !ok || raw == "" {
		return
	}
	draft, err := domain.DraftFromMarkup([]byte(raw))
	if err != nil {
		s.logger.Warn("Stored draft snapshot is unreadable, starting empty", "error", err)
		return
	}
	s.draft = draft
}

// persist writes the current snapshot. Failures degrade persistence only.
func (s *notebookService) persist() {
	if err := s.store.Set(notebookContentKey, string(s.draft.Markup())); err != nil {
		s.logger.Warn("Failed to persist draft snapshot", "error", err)
	}
}

func (s *notebookService) Current() *domain.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

func (s *notebookService) SetContent(nodes []domain.InlineNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.SetContent(nodes)
	s.persist()
}

func (s *notebookService) ApplyFormat(sel domain.Selection, kind domain.FormatKind, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.ApplyFormat(sel, kind, value)
	s.persist()
}

func (s *notebookService) RemoveFormat(sel domain.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.RemoveFormat(sel)
	s.persist()
}

func (s *notebookService) PlainText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.PlainText()
}

func (s *notebookService) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.IsEmpty()
}

func (s *notebookService) RenderHTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.RenderHTML()
}

func (s *notebookService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Clear()
	s.persist()
}
