package service

import (
	"bytes"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"kerygma-studio/internal/domain"

	apperrors "kerygma-studio/pkg/errors"
)

type notebookArchiveService struct {
	store    domain.KeyValueStore
	logger   domain.Logger
	capacity int

	// mu guards entries and lastID; the store itself is last-write-wins.
	mu      sync.Mutex
	entries []domain.ArchiveEntry
	lastID  int64
}

// NewNotebookArchive creates the bounded draft history, loading any stored
// entries. An unreadable stored history starts empty rather than failing.
func NewNotebookArchive(store domain.KeyValueStore, logger domain.Logger, capacity int) domain.NotebookArchive {
	if capacity <= 0 {
		capacity = domain.DefaultArchiveCapacity
	}
	s := &notebookArchiveService{
		store:    store,
		logger:   logger,
		capacity: capacity,
	}
	s.load()
	return s
}

func (s *notebookArchiveService) load() {
	raw, ok, err := s.store.Get(notebookHistoryKey)
	if err != nil {
		s.logger.Warn("Failed to read archive history, starting empty", "error", err)
		return
	}
	if !ok || raw == "" {
		return
	}
	var entries []domain.ArchiveEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logger.Warn("Stored archive history is unreadable, starting empty", "error", err)
		return
	}
	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}
	s.entries = entries
}

func (s *notebookArchiveService) persist() {
	raw, err := json.Marshal(s.entries)
	if err != nil {
		s.logger.Error("Failed to serialize archive history", err)
		return
	}
	if err := s.store.Set(notebookHistoryKey, string(raw)); err != nil {
		s.logger.Warn("Failed to persist archive history, keeping in memory", "error", err)
	}
}

// nextID derives a unique monotonic id from the wall clock. Two saves inside
// the same millisecond still get distinct ids.
func (s *notebookArchiveService) nextID() int64 {
	now := time.Now().UnixMilli()
	if now <= s.lastID {
		now = s.lastID + 1
	}
	s.lastID = now
	return now
}

func previewOf(plain string) string {
	runes := []rune(plain)
	if len(runes) <= domain.ArchivePreviewLength {
		return plain
	}
	return string(runes[:domain.ArchivePreviewLength]) + "..."
}

func (s *notebookArchiveService) Archive(draft *domain.Draft) (*domain.ArchiveResult, error) {
	if draft == nil || draft.IsEmpty() {
		return nil, apperrors.NewValidationError("notebook is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	markup := draft.Markup()
	if len(s.entries) > 0 && bytes.Equal(s.entries[0].Markup, markup) {
		// Identical to the latest snapshot: reject and signal the caller
		// to start a fresh page instead.
		return &domain.ArchiveResult{Status: domain.ArchiveRejectedDuplicate}, nil
	}

	entry := domain.ArchiveEntry{
		ID:        strconv.FormatInt(s.nextID(), 10),
		Markup:    markup,
		Preview:   previewOf(draft.PlainText()),
		CreatedAt: time.Now().Format("02/01/2006, 15:04:05"),
	}

	updated := make([]domain.ArchiveEntry, 0, len(s.entries)+1)
	updated = append(updated, entry)
	updated = append(updated, s.entries...)
	if len(updated) > s.capacity {
		updated = updated[:s.capacity]
	}
	s.entries = updated
	s.persist()

	return &domain.ArchiveResult{Status: domain.ArchiveCreated, Entry: &entry}, nil
}

func (s *notebookArchiveService) Entries() []domain.ArchiveEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ArchiveEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *notebookArchiveService) Restore(entryID string) (*domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == entryID {
			draft, err := domain.DraftFromMarkup(e.Markup)
			if err != nil {
				return nil, apperrors.NewInternalError("archived markup is unreadable", err)
			}
			return draft, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

func (s *notebookArchiveService) Delete(entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.entries[:0]
	removed := false
	for _, e := range s.entries {
		if e.ID == entryID {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	if removed {
		s.persist()
	}
	return nil
}
