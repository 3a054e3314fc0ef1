package domain

import (
	"encoding/json"
	"html"
	"strings"
)

// FormatKind identifies an inline formatting command.
type FormatKind string

const (
	FormatBold      FormatKind = "bold"
	FormatItalic    FormatKind = "italic"
	FormatUnderline FormatKind = "underline"
	FormatColor     FormatKind = "foreColor"
	FormatHighlight FormatKind = "hiliteColor"
	FormatRemove    FormatKind = "removeFormat"
)

// EmptyLineMarkup is the canonical markup an editor reports for a blank page.
const EmptyLineMarkup = "<br>"

// FormatSet is the set of inline style attributes applied to a text run.
// Boolean attributes compose freely; a run carries at most one foreground
// color and one highlight color.
type FormatSet struct {
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
	Color     string `json:"color,omitempty"`
	Highlight string `json:"highlight,omitempty"`
}

// IsZero reports whether no attribute is set.
func (f FormatSet) IsZero() bool {
	return f == FormatSet{}
}

// InlineNode is a single text run with its formatting.
type InlineNode struct {
	Text   string    `json:"text"`
	Format FormatSet `json:"format"`
}

// Selection is an explicit text range in rune offsets over the plain text.
// Formatting operations take a Selection instead of relying on ambient
// editor focus, so the engine is testable without a rendering surface.
type Selection struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Selection) normalized() Selection {
	if s.Start > s.End {
		s.Start, s.End = s.End, s.Start
	}
	return s
}

// Draft is a single mutable rich-text buffer. The concatenation of all node
// texts in order is the plain-text content.
type Draft struct {
	Nodes []InlineNode `json:"nodes"`
}

// NewDraft creates an empty draft.
func NewDraft() *Draft {
	return &Draft{}
}

// DraftFromMarkup hydrates a draft from a stored markup snapshot. A snapshot
// holding the canonical empty-line markup (legacy HTML form) hydrates to an
// empty draft.
func DraftFromMarkup(raw json.RawMessage) (*Draft, error) {
	if len(raw) == 0 {
		return NewDraft(), nil
	}
	var legacy string
	if err := json.Unmarshal(raw, &legacy); err == nil {
		if strings.TrimSpace(legacy) == "" || strings.TrimSpace(legacy) == EmptyLineMarkup {
			return NewDraft(), nil
		}
		return &Draft{Nodes: []InlineNode{{Text: legacy}}}, nil
	}
	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	d.normalize()
	return &d, nil
}

// Markup returns the serialized markup snapshot of the draft.
func (d *Draft) Markup() json.RawMessage {
	raw, err := json.Marshal(d)
	if err != nil {
		return json.RawMessage(`{"nodes":[]}`)
	}
	return raw
}

// PlainText returns the derived plain-text projection. Side-effect free.
func (d *Draft) PlainText() string {
	var sb strings.Builder
	for _, n := range d.Nodes {
		sb.WriteString(n.Text)
	}
	return sb.String()
}

// Len returns the plain-text length in runes.
func (d *Draft) Len() int {
	total := 0
	for _, n := range d.Nodes {
		total += len([]rune(n.Text))
	}
	return total
}

// IsEmpty reports whether the plain text is empty or whitespace-only, or the
// markup renders to the canonical empty-line representation.
func (d *Draft) IsEmpty() bool {
	if strings.TrimSpace(d.PlainText()) == "" {
		return true
	}
	return d.RenderHTML() == EmptyLineMarkup
}

// Clone returns a deep copy of the draft.
func (d *Draft) Clone() *Draft {
	nodes := make([]InlineNode, len(d.Nodes))
	copy(nodes, d.Nodes)
	return &Draft{Nodes: nodes}
}

// SetContent replaces the draft content.
func (d *Draft) SetContent(nodes []InlineNode) {
	d.Nodes = make([]InlineNode, len(nodes))
	copy(d.Nodes, nodes)
	d.normalize()
}

// Clear resets the draft to an empty page.
func (d *Draft) Clear() {
	d.Nodes = nil
}

// ApplyFormat applies a formatting command over the selection. Bold, italic
// and underline toggle: when every covered run already carries the attribute
// it is cleared, otherwise it is set on the whole selection. Color commands
// always set, replacing any prior value on the covered runs. An empty or
// out-of-range selection, or an unknown kind, is a silent no-op.
func (d *Draft) ApplyFormat(sel Selection, kind FormatKind, value string) {
	if kind == FormatRemove {
		d.RemoveFormat(sel)
		return
	}

	covered := d.splitForSelection(sel)
	if len(covered) == 0 {
		return
	}

	switch kind {
	case FormatBold:
		on := !allOf(d.Nodes, covered, func(f FormatSet) bool { return f.Bold })
		for _, i := range covered {
			d.Nodes[i].Format.Bold = on
		}
	case FormatItalic:
		on := !allOf(d.Nodes, covered, func(f FormatSet) bool { return f.Italic })
		for _, i := range covered {
			d.Nodes[i].Format.Italic = on
		}
	case FormatUnderline:
		on := !allOf(d.Nodes, covered, func(f FormatSet) bool { return f.Underline })
		for _, i := range covered {
			d.Nodes[i].Format.Underline = on
		}
	case FormatColor:
		for _, i := range covered {
			d.Nodes[i].Format.Color = value
		}
	case FormatHighlight:
		for _, i := range covered {
			d.Nodes[i].Format.Highlight = value
		}
	default:
		// Unsupported command: leave the document unchanged.
		return
	}
	d.normalize()
}

// RemoveFormat clears every attribute on the selection unconditionally.
func (d *Draft) RemoveFormat(sel Selection) {
	covered := d.splitForSelection(sel)
	if len(covered) == 0 {
		return
	}
	for _, i := range covered {
		d.Nodes[i].Format = FormatSet{}
	}
	d.normalize()
}

// FormatAt returns the format set of the run containing the given rune
// offset. Used by the UI to track active format state at the caret.
func (d *Draft) FormatAt(offset int) FormatSet {
	pos := 0
	for _, n := range d.Nodes {
		runes := len([]rune(n.Text))
		if offset >= pos && offset < pos+runes {
			return n.Format
		}
		pos += runes
	}
	return FormatSet{}
}

// RenderHTML renders the draft markup to HTML for previews and export. An
// empty draft renders to the canonical empty-line markup.
func (d *Draft) RenderHTML() string {
	if len(d.Nodes) == 0 {
		return EmptyLineMarkup
	}
	var sb strings.Builder
	for _, n := range d.Nodes {
		text := html.EscapeString(n.Text)
		text = strings.ReplaceAll(text, "\n", "<br>")
		if n.Format.Bold {
			text = "<b>" + text + "</b>"
		}
		if n.Format.Italic {
			text = "<i>" + text + "</i>"
		}
		if n.Format.Underline {
			text = "<u>" + text + "</u>"
		}
		if n.Format.Color != "" {
			text = `<span style="color:` + html.EscapeString(n.Format.Color) + `">` + text + `</span>`
		}
		if n.Format.Highlight != "" {
			text = `<mark style="background-color:` + html.EscapeString(n.Format.Highlight) + `">` + text + `</mark>`
		}
		sb.WriteString(text)
	}
	out := sb.String()
	if out == "" {
		return EmptyLineMarkup
	}
	return out
}

// splitForSelection splits nodes at the selection boundaries and returns the
// indexes of the nodes fully covered by the selection. Returns nil when the
// selection is collapsed or entirely out of range.
func (d *Draft) splitForSelection(sel Selection) []int {
	sel = sel.normalized()
	total := d.Len()
	if sel.Start < 0 {
		sel.Start = 0
	}
	if sel.End > total {
		sel.End = total
	}
	if sel.Start >= sel.End {
		return nil
	}

	d.splitAt(sel.Start)
	d.splitAt(sel.End)

	var covered []int
	pos := 0
	for i, n := range d.Nodes {
		runes := len([]rune(n.Text))
		if pos >= sel.Start && pos+runes <= sel.End && runes > 0 {
			covered = append(covered, i)
		}
		pos += runes
	}
	return covered
}

// splitAt splits the node containing the given rune offset so that a node
// boundary falls exactly at the offset.
func (d *Draft) splitAt(offset int) {
	pos := 0
	for i, n := range d.Nodes {
		runes := []rune(n.Text)
		if offset > pos && offset < pos+len(runes) {
			cut := offset - pos
			left := InlineNode{Text: string(runes[:cut]), Format: n.Format}
			right := InlineNode{Text: string(runes[cut:]), Format: n.Format}
			nodes := make([]InlineNode, 0, len(d.Nodes)+1)
			nodes = append(nodes, d.Nodes[:i]...)
			nodes = append(nodes, left, right)
			nodes = append(nodes, d.Nodes[i+1:]...)
			d.Nodes = nodes
			return
		}
		pos += len(runes)
	}
}

// normalize drops empty runs and merges adjacent runs with equal formats so
// the markup stays minimal. The plain-text concatenation is unchanged.
func (d *Draft) normalize() {
	merged := make([]InlineNode, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.Text == "" {
			continue
		}
		if len(merged) > 0 && merged[len(merged)-1].Format == n.Format {
			merged[len(merged)-1].Text += n.Text
			continue
		}
		merged = append(merged, n)
	}
	if len(merged) == 0 {
		merged = nil
	}
	d.Nodes = merged
}

func allOf(nodes []InlineNode, idx []int, pred func(FormatSet) bool) bool {
	for _, i := range idx {
		if !pred(nodes[i].Format) {
			return false
		}
	}
	return len(idx) > 0
}
