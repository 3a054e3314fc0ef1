package domain

import (
	"context"
	"encoding/json"
)

// Theme is a sermon gallery theme.
type Theme string

const (
	ThemeGeneral   Theme = "Geral"
	ThemeOffertory Theme = "Ofertório"
	ThemeDoctrine  Theme = "Doutrina"
	ThemeProphetic Theme = "Sexta Profética"
	ThemeFamily    Theme = "Celebrando em Família"
	ThemePrayer    Theme = "Círculo de Oração"
)

// Themes lists every selectable gallery theme.
var Themes = []Theme{
	ThemeGeneral,
	ThemeOffertory,
	ThemeDoctrine,
	ThemeProphetic,
	ThemeFamily,
	ThemePrayer,
}

// Sermon is a saved sermon in the library. Content holds the draft markup
// snapshot the sermon was saved with.
type Sermon struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Theme   Theme           `json:"theme"`
	Content json.RawMessage `json:"content"`
	Date    string          `json:"date"`
	Tags    []string        `json:"tags"`
}

// QuickNote is a short colored note on the notes board.
type QuickNote struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Color     string `json:"color"`
	CreatedAt string `json:"createdAt"`
}

// SermonRepository defines persistence operations for sermons.
type SermonRepository interface {
	Create(sermon *Sermon) error
	GetByID(id string) (*Sermon, error)
	GetAll() ([]*Sermon, error)
	GetByTheme(theme Theme) ([]*Sermon, error)
	Update(sermon *Sermon) error
	Delete(id string) error
	Search(query string) ([]*Sermon, error)
}

// SermonService defines the use-case operations for the sermon library.
type SermonService interface {
	SaveSermon(ctx context.Context, sermon *Sermon) (*Sermon, error)
	GetSermon(id string) (*Sermon, error)
	ListSermons(theme Theme) ([]*Sermon, error)
	DeleteSermon(ctx context.Context, id string) error
	SearchSermons(query string) ([]*Sermon, error)
}

// QuickNoteService defines the notes board operations.
type QuickNoteService interface {
	ListNotes() ([]QuickNote, error)
	SaveNote(note QuickNote) (*QuickNote, error)
	DeleteNote(id string) error
}

// StudioPreferences are the single-user presentation settings.
type StudioPreferences struct {
	DarkMode    bool   `json:"dark_mode"`
	FontSize    int    `json:"font_size"`
	FontFamily  string `json:"font_family"`
	SpeechVoice string `json:"speech_voice"`
}

// PreferenceService manages the studio preferences.
type PreferenceService interface {
	GetPreferences() (*StudioPreferences, error)
	UpdatePreferences(prefs *StudioPreferences) error
}
