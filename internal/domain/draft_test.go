package domain

import (
	"encoding/json"
	"testing"
)

func textDraft(text string) *Draft {
	d := NewDraft()
	d.SetContent([]InlineNode{{Text: text}})
	return d
}

func TestDraft_PlainText(t *testing.T) {
	d := textDraft("Test sermon content")

	if got := d.PlainText(); got != "Test sermon content" {
		t.Fatalf("expected plain text 'Test sermon content', got %q", got)
	}
	if d.IsEmpty() {
		t.Fatal("expected non-empty draft")
	}
}

func TestDraft_IsEmpty(t *testing.T) {
	if !NewDraft().IsEmpty() {
		t.Fatal("expected new draft to be empty")
	}
	if !textDraft("   \n\t ").IsEmpty() {
		t.Fatal("expected whitespace-only draft to be empty")
	}
	if textDraft("a").IsEmpty() {
		t.Fatal("expected single-character draft to be non-empty")
	}
}

func TestDraft_EmptyLineRendersCanonical(t *testing.T) {
	if got := NewDraft().RenderHTML(); got != EmptyLineMarkup {
		t.Fatalf("expected canonical empty markup %q, got %q", EmptyLineMarkup, got)
	}
}

func TestDraftFromMarkup_LegacyEmptyLine(t *testing.T) {
	d, err := DraftFromMarkup(json.RawMessage(`"<br>"`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.IsEmpty() {
		t.Fatal("expected legacy empty-line markup to hydrate as empty")
	}
}

func TestDraft_ApplyFormat_Bold(t *testing.T) {
	d := textDraft("hello world")
	sel := Selection{Start: 0, End: 5}

	d.ApplyFormat(sel, FormatBold, "")

	if !d.Nodes[0].Format.Bold {
		t.Fatal("expected first run to be bold")
	}
	if d.Nodes[0].Text != "hello" {
		t.Fatalf("expected split at selection end, got run %q", d.Nodes[0].Text)
	}
	if got := d.PlainText(); got != "hello world" {
		t.Fatalf("plain text changed by formatting: %q", got)
	}
}

func TestDraft_ApplyFormat_BoldTogglesOff(t *testing.T) {
	d := textDraft("hello")
	sel := Selection{Start: 0, End: 5}

	d.ApplyFormat(sel, FormatBold, "")
	d.ApplyFormat(sel, FormatBold, "")

	if d.Nodes[0].Format.Bold {
		t.Fatal("expected bold to toggle off on second apply")
	}
}

func TestDraft_ApplyFormat_PartialBoldExtends(t *testing.T) {
	// When only part of the selection is bold, applying bold covers the
	// whole selection instead of toggling off.
	d := textDraft("hello")
	d.ApplyFormat(Selection{Start: 0, End: 2}, FormatBold, "")

	d.ApplyFormat(Selection{Start: 0, End: 5}, FormatBold, "")

	for i, n := range d.Nodes {
		if !n.Format.Bold {
			t.Fatalf("expected run %d (%q) to be bold", i, n.Text)
		}
	}
}

func TestDraft_ApplyFormat_ColorReplaces(t *testing.T) {
	d := textDraft("hello")
	sel := Selection{Start: 0, End: 5}

	d.ApplyFormat(sel, FormatColor, "#10b981")
	d.ApplyFormat(sel, FormatColor, "#f43f5e")

	if len(d.Nodes) != 1 {
		t.Fatalf("expected one run, got %d", len(d.Nodes))
	}
	if d.Nodes[0].Format.Color != "#f43f5e" {
		t.Fatalf("expected new color to replace prior, got %q", d.Nodes[0].Format.Color)
	}
}

func TestDraft_ApplyFormat_ColorIsNotAToggle(t *testing.T) {
	d := textDraft("hello")
	sel := Selection{Start: 0, End: 5}

	d.ApplyFormat(sel, FormatColor, "#10b981")
	d.ApplyFormat(sel, FormatColor, "#10b981")

	if d.Nodes[0].Format.Color != "#10b981" {
		t.Fatalf("expected re-applying a color to keep it set, got %q", d.Nodes[0].Format.Color)
	}
}

func TestDraft_RemoveFormat_RoundTrip(t *testing.T) {
	d := textDraft("hello world")
	sel := Selection{Start: 0, End: 11}

	d.ApplyFormat(sel, FormatBold, "")
	d.ApplyFormat(sel, FormatItalic, "")
	d.ApplyFormat(sel, FormatHighlight, "#fef08a")
	d.RemoveFormat(sel)

	if len(d.Nodes) != 1 {
		t.Fatalf("expected runs to merge back into one, got %d", len(d.Nodes))
	}
	if !d.Nodes[0].Format.IsZero() {
		t.Fatalf("expected format set to return to empty, got %+v", d.Nodes[0].Format)
	}
}

func TestDraft_ApplyFormat_CollapsedSelectionNoOp(t *testing.T) {
	d := textDraft("hello")
	before := string(d.Markup())

	d.ApplyFormat(Selection{Start: 2, End: 2}, FormatBold, "")

	if string(d.Markup()) != before {
		t.Fatal("expected collapsed selection to be a no-op")
	}
}

func TestDraft_ApplyFormat_UnknownKindNoOp(t *testing.T) {
	d := textDraft("hello")
	before := string(d.Markup())

	d.ApplyFormat(Selection{Start: 0, End: 5}, FormatKind("blink"), "")

	if string(d.Markup()) != before {
		t.Fatal("expected unsupported command to leave the document unchanged")
	}
}

func TestDraft_ApplyFormat_OutOfRangeClamped(t *testing.T) {
	d := textDraft("hi")

	d.ApplyFormat(Selection{Start: 0, End: 99}, FormatUnderline, "")

	if !d.Nodes[0].Format.Underline {
		t.Fatal("expected clamped selection to format available text")
	}
	if got := d.PlainText(); got != "hi" {
		t.Fatalf("plain text changed: %q", got)
	}
}

func TestDraft_FormatsCompose(t *testing.T) {
	d := textDraft("abcdef")

	d.ApplyFormat(Selection{Start: 0, End: 4}, FormatBold, "")
	d.ApplyFormat(Selection{Start: 2, End: 6}, FormatItalic, "")

	mid := d.FormatAt(3)
	if !mid.Bold || !mid.Italic {
		t.Fatalf("expected overlapping region to carry both formats, got %+v", mid)
	}
	if got := d.PlainText(); got != "abcdef" {
		t.Fatalf("plain text changed: %q", got)
	}
}

func TestDraft_RenderHTML_Marks(t *testing.T) {
	d := NewDraft()
	d.SetContent([]InlineNode{
		{Text: "big ", Format: FormatSet{Bold: true}},
		{Text: "idea", Format: FormatSet{Color: "#3b82f6"}},
	})

	got := d.RenderHTML()
	want := `<b>big </b><span style="color:#3b82f6">idea</span>`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDraft_MarkupRoundTrip(t *testing.T) {
	d := textDraft("hello world")
	d.ApplyFormat(Selection{Start: 6, End: 11}, FormatBold, "")

	restored, err := DraftFromMarkup(d.Markup())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.PlainText() != "hello world" {
		t.Fatalf("expected plain text preserved, got %q", restored.PlainText())
	}
	if !restored.FormatAt(7).Bold {
		t.Fatal("expected bold run preserved through markup round trip")
	}
}
