package domain

import "errors"

// Domain errors
var (
	ErrEntryNotFound         = errors.New("archive entry not found")
	ErrDuplicateDraft        = errors.New("draft identical to most recent archive entry")
	ErrEmptyDraft            = errors.New("draft is empty")
	ErrSermonNotFound        = errors.New("sermon not found")
	ErrNoteNotFound          = errors.New("note not found")
	ErrStorageUnavailable    = errors.New("persistent store unavailable")
	ErrInvalidResponseFormat = errors.New("ai response in invalid format")
	ErrAudioDecode           = errors.New("audio payload could not be decoded")
	ErrSpeechUnavailable     = errors.New("speech synthesis returned no audio")
	ErrSearchUnavailable     = errors.New("semantic search is not configured")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
