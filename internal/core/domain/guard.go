package domain

// Selection is a caret or range in top-level node index space.
type Selection struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Caret returns a collapsed selection at a node index.
func Caret(at int) Selection { return Selection{From: at, To: at} }

// TitleGuard protects the manuscript title: when the document currently
// starts with a level-1 heading, no change may alter that heading's text,
// demote it, or remove it. The comparison is text-based, so a programmatic
// whole-document replacement that carries the same title through (reloading
// saved content) is allowed. When the document does not start with an H1
// the guard is inactive.
type TitleGuard struct{}

// Allows reports whether the change from old to new passes title
// protection. A rejected change is dropped outright, never merged.
func (TitleGuard) Allows(old, new Document) bool {
	if len(old.Content) == 0 {
		return true
	}
	oldFirst := old.Content[0]
	if !oldFirst.IsHeading() || oldFirst.HeadingLevel() != 1 {
		return true
	}

	if len(new.Content) == 0 {
		return false
	}
	newFirst := new.Content[0]
	if !newFirst.IsHeading() || newFirst.HeadingLevel() != 1 {
		return false
	}
	return FlattenText(newFirst) == FlattenText(oldFirst)
}

// FocusState restricts the visible and editable area to one section.
// It is UI-session scoped and cleared on navigation; a nil ordinal means
// no restriction.
type FocusState struct {
	FocusedOrdinal *int
}

// Focused reports whether a focus restriction is active.
func (f FocusState) Focused() bool { return f.FocusedOrdinal != nil }

// ClampSelection keeps the selection inside the focused section's range.
// The range is recomputed fresh against the given document, as it may have
// shifted since focus was set. A selection outside the range snaps to the
// start of the focused section's body. When focus is inactive or the
// focused ordinal no longer resolves, the selection passes through.
func (f FocusState) ClampSelection(d Document, sel Selection) Selection {
	if !f.Focused() {
		return sel
	}
	r, ok := ResolveSectionRange(d, *f.FocusedOrdinal)
	if !ok {
		return sel
	}
	if sel.From >= r.From && sel.To <= r.To {
		return sel
	}
	return Caret(r.From + 1)
}

// EditorState is one editing session's view of a manuscript: the document,
// the selection, and an optional focus restriction. Changes flow through
// ApplyChange so both guards run on every mutation.
type EditorState struct {
	Doc       Document
	Selection Selection
	Focus     FocusState
}

// ApplyChange applies a proposed new document and selection to the state.
// Title protection fails closed: a rejected change leaves the state
// untouched and reports false, with no error. Illegal edits are silently
// absorbed, matching editor expectations. Focus containment corrects the
// selection but still lets the edit itself apply, so out-of-range input
// (a paste past the focus boundary) is never silently discarded; only the
// cursor is brought back.
func (s *EditorState) ApplyChange(doc Document, sel Selection) bool {
	if !(TitleGuard{}).Allows(s.Doc, doc) {
		return false
	}
	s.Doc = doc
	s.Selection = s.Focus.ClampSelection(doc, sel)
	return true
}

// SetFocus activates focus on a heading ordinal and snaps the selection
// into the focused range.
func (s *EditorState) SetFocus(ordinal int) {
	s.Focus = FocusState{FocusedOrdinal: &ordinal}
	s.Selection = s.Focus.ClampSelection(s.Doc, s.Selection)
}

// ClearFocus removes the focus restriction.
func (s *EditorState) ClearFocus() {
	s.Focus = FocusState{}
}
