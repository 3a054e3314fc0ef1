package service

import (
	"encoding/json"

	"kerygma-studio/internal/domain"

	apperrors "kerygma-studio/pkg/errors"
)

const preferencesKey = "kerygma_preferences"

type preferenceService struct {
	store  domain.KeyValueStore
	logger domain.Logger
}

// NewPreferenceService creates the studio preferences service.
func NewPreferenceService(store domain.KeyValueStore, logger domain.Logger) domain.PreferenceService {
	return &preferenceService{store: store, logger: logger}
}

func defaultPreferences() *domain.StudioPreferences {
	return &domain.StudioPreferences{
		DarkMode:    true,
		FontSize:    16,
		FontFamily:  "serif",
		SpeechVoice: "Puck",
	}
}

func (s *preferenceService) GetPreferences() (*domain.StudioPreferences, error) {
	raw, ok, err := s.store.Get(preferencesKey)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read preferences", err)
	}
	if !ok || raw == "" {
		return defaultPreferences(), nil
	}
	prefs := defaultPreferences()
	if err := json.Unmarshal([]byte(raw), prefs); err != nil {
		s.logger.Warn("Stored preferences are unreadable, using defaults", "error", err)
		return defaultPreferences(), nil
	}
	return prefs, nil
}

func (s *preferenceService) UpdatePreferences(prefs *domain.StudioPreferences) error {
	if prefs == nil {
		return apperrors.NewValidationError("preferences are required")
	}
	if prefs.FontSize <= 0 {
		return apperrors.NewValidationError("font size must be positive")
	}
	raw, err := json.Marshal(prefs)
	if err != nil {
		return apperrors.NewInternalError("failed to serialize preferences", err)
	}
	if err := s.store.Set(preferencesKey, string(raw)); err != nil {
		return apperrors.NewStorageError("failed to persist preferences", err)
	}
	s.logger.Debug("Preferences updated")
	return nil
}
