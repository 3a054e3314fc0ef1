package domain

import "encoding/json"

// Archive limits. The history keeps the 50 most recent snapshots; previews
// are elided past 80 characters.
const (
	DefaultArchiveCapacity = 50
	ArchivePreviewLength   = 80
)

// ArchiveEntry is an immutable historical snapshot of a draft.
type ArchiveEntry struct {
	ID        string          `json:"id"`
	Markup    json.RawMessage `json:"content"`
	Preview   string          `json:"preview"`
	CreatedAt string          `json:"timestamp"`
}

// ArchiveStatus is the outcome kind of an archive call.
type ArchiveStatus string

const (
	ArchiveCreated           ArchiveStatus = "created"
	ArchiveRejectedDuplicate ArchiveStatus = "rejected_duplicate"
)

// ArchiveResult reports what an Archive call did. Entry is set only when a
// snapshot was created.
type ArchiveResult struct {
	Status ArchiveStatus `json:"status"`
	Entry  *ArchiveEntry `json:"entry,omitempty"`
}

// NotebookArchive is the bounded, deduplicated draft history.
type NotebookArchive interface {
	// Archive snapshots the draft at the head of the history. When the
	// draft markup is byte-identical to the most recent entry the call is
	// rejected and the caller should start a fresh page instead.
	Archive(draft *Draft) (*ArchiveResult, error)

	// Entries returns the history, most recent first.
	Entries() []ArchiveEntry

	// Restore returns the draft hydrated from the entry's markup. It is
	// pure: the history is not mutated and the caller decides whether to
	// overwrite the current draft. Fails with ErrEntryNotFound when the
	// entry was deleted concurrently.
	Restore(entryID string) (*Draft, error)

	// Delete removes the entry if present; absent entries are a no-op.
	Delete(entryID string) error
}

// NotebookService owns the current draft buffer and its persistence.
// Mutations never fail visibly: when the store is unavailable the draft
// keeps working in memory and only persistence is degraded.
type NotebookService interface {
	Current() *Draft
	SetContent(nodes []InlineNode)
	ApplyFormat(sel Selection, kind FormatKind, value string)
	RemoveFormat(sel Selection)
	PlainText() string
	IsEmpty() bool
	RenderHTML() string
	Clear()
}
