package service

import (
	"testing"

	"kerygma-studio/internal/domain"

	apperrors "kerygma-studio/pkg/errors"
)

func TestPreferences_Defaults(t *testing.T) {
	svc := NewPreferenceService(newMapStore(), NewMockServiceLogger())

	prefs, err := svc.GetPreferences()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !prefs.DarkMode {
		t.Fatalf("expected dark mode default")
	}
	if prefs.SpeechVoice != "Puck" {
		t.Fatalf("expected default voice Puck, got %s", prefs.SpeechVoice)
	}
}

func TestPreferences_UpdateRoundTrip(t *testing.T) {
	store := newMapStore()
	svc := NewPreferenceService(store, NewMockServiceLogger())

	err := svc.UpdatePreferences(&domain.StudioPreferences{
		DarkMode:    false,
		FontSize:    20,
		FontFamily:  "sans-serif",
		SpeechVoice: "Kore",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prefs, err := svc.GetPreferences()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefs.DarkMode || prefs.FontSize != 20 || prefs.SpeechVoice != "Kore" {
		t.Fatalf("unexpected preferences %+v", prefs)
	}
}

func TestPreferences_RejectsInvalidFontSize(t *testing.T) {
	svc := NewPreferenceService(newMapStore(), NewMockServiceLogger())

	err := svc.UpdatePreferences(&domain.StudioPreferences{FontSize: 0})
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPreferences_UnreadableStateFallsBack(t *testing.T) {
	store := newMapStore()
	store.data[preferencesKey] = "{corrompido"
	svc := NewPreferenceService(store, NewMockServiceLogger())

	prefs, err := svc.GetPreferences()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefs.FontSize != 16 {
		t.Fatalf("expected defaults on unreadable state, got %+v", prefs)
	}
}
