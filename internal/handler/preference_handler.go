package handler

import (
	"net/http"

	"kerygma-studio/internal/config"
	"kerygma-studio/internal/domain"
)

// PreferenceHandler handles preference-related HTTP requests
type PreferenceHandler struct {
	logger            domain.Logger
	preferenceService domain.PreferenceService
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(container *config.Container) *PreferenceHandler {
	return &PreferenceHandler{
		logger:            container.GetLogger(),
		preferenceService: container.GetPreferenceService(),
	}
}

// GetPreferences returns the studio preferences
func (h *PreferenceHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	preferences, err := h.preferenceService.GetPreferences()
	if err != nil {
		h.logger.Error("Failed to get preferences", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preferences)
}

// UpdatePreferences replaces the studio preferences
func (h *PreferenceHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var prefs domain.StudioPreferences
	if !decodeBody(w, r, &prefs) {
		return
	}
	if err := h.preferenceService.UpdatePreferences(&prefs); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}
