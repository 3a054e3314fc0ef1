package service

import (
	"encoding/json"
	"strings"
	"time"

	"kerygma-studio/internal/domain"

	"github.com/google/uuid"

	apperrors "kerygma-studio/pkg/errors"
)

const quickNotesKey = "kerygma_notes"

type quickNoteService struct {
	store  domain.KeyValueStore
	logger domain.Logger
}

// NewQuickNoteService creates the notes board service backed by the state store.
func NewQuickNoteService(store domain.KeyValueStore, logger domain.Logger) domain.QuickNoteService {
	return &quickNoteService{store: store, logger: logger}
}

func (s *quickNoteService) loadNotes() ([]domain.QuickNote, error) {
	raw, ok, err := s.store.Get(quickNotesKey)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read notes", err)
	}
	if !ok || raw == "" {
		return []domain.QuickNote{}, nil
	}
	var notes []domain.QuickNote
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		s.logger.Warn("Stored notes are unreadable, starting empty", "error", err)
		return []domain.QuickNote{}, nil
	}
	return notes, nil
}

func (s *quickNoteService) saveNotes(notes []domain.QuickNote) error {
	raw, err := json.Marshal(notes)
	if err != nil {
		return apperrors.NewInternalError("failed to serialize notes", err)
	}
	if err := s.store.Set(quickNotesKey, string(raw)); err != nil {
		return apperrors.NewStorageError("failed to persist notes", err)
	}
	return nil
}

func (s *quickNoteService) ListNotes() ([]domain.QuickNote, error) {
	return s.loadNotes()
}

func (s *quickNoteService) SaveNote(note domain.QuickNote) (*domain.QuickNote, error) {
	if strings.TrimSpace(note.Content) == "" {
		return nil, apperrors.NewValidationError("note content is required")
	}
	if note.Color == "" {
		note.Color = "yellow"
	}

	notes, err := s.loadNotes()
	if err != nil {
		return nil, err
	}

	if note.ID == "" {
		note.ID = uuid.New().String()
		note.CreatedAt = time.Now().Format("02/01/2006, 15:04:05")
		notes = append([]domain.QuickNote{note}, notes...)
	} else {
		found := false
		for i := range notes {
			if notes[i].ID == note.ID {
				if note.CreatedAt == "" {
					note.CreatedAt = notes[i].CreatedAt
				}
				notes[i] = note
				found = true
				break
			}
		}
		if !found {
			return nil, domain.ErrNoteNotFound
		}
	}

	if err := s.saveNotes(notes); err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *quickNoteService) DeleteNote(id string) error {
	notes, err := s.loadNotes()
	if err != nil {
		return err
	}
	kept := notes[:0]
	removed := false
	for _, n := range notes {
		if n.ID == id {
			removed = true
			continue
		}
		kept = append(kept, n)
	}
	if !removed {
		return nil
	}
	return s.saveNotes(kept)
}
