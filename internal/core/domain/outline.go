package domain

import "strconv"

// UntitledSection is the placeholder title for a heading with no text.
const UntitledSection = "無題"

// Section describes one heading and everything under it until the next
// heading at the same or shallower level. Sections are derived on demand
// from the flat document and never persisted; HeadingOrdinal (dense 0..N-1
// in document order) is the stable identifier across recomputation.
type Section struct {
	ID             string     `json:"id"` // "heading-" + ordinal, for UI keying
	HeadingOrdinal int        `json:"headingOrdinal"`
	Level          int        `json:"level"`
	Title          string     `json:"title"`
	NodeIndex      int        `json:"nodeIndex"` // index of the heading node
	EndIndex       int        `json:"endIndex"`  // start of next heading, or doc end
	WordCount      int        `json:"wordCount"`
	Children       []*Section `json:"children"`
}

// FlatHeading is a heading's position and level in document order.
type FlatHeading struct {
	Ordinal   int
	Level     int
	Title     string
	NodeIndex int
}

// FlatHeadings scans the document and returns every heading in order.
func FlatHeadings(d Document) []FlatHeading {
	var out []FlatHeading
	for i, n := range d.Content {
		if !n.IsHeading() {
			continue
		}
		title := FlattenText(n)
		if title == "" {
			title = UntitledSection
		}
		out = append(out, FlatHeading{
			Ordinal:   len(out),
			Level:     n.HeadingLevel(),
			Title:     title,
			NodeIndex: i,
		})
	}
	return out
}

// ExtractOutline derives the nested section tree from the flat document.
// It returns top-level roots only; the full tree is reachable via Children.
// A document with no headings yields an empty slice. The scan is O(len(doc))
// and produces fresh objects on every call.
func ExtractOutline(d Document) []*Section {
	headings := FlatHeadings(d)
	if len(headings) == 0 {
		return []*Section{}
	}

	flat := make([]*Section, len(headings))
	for i, h := range headings {
		bodyStart := h.NodeIndex + 1
		bodyEnd := len(d.Content)
		if i+1 < len(headings) {
			bodyEnd = headings[i+1].NodeIndex
		}
		flat[i] = &Section{
			ID:             sectionID(h.Ordinal),
			HeadingOrdinal: h.Ordinal,
			Level:          h.Level,
			Title:          h.Title,
			NodeIndex:      h.NodeIndex,
			EndIndex:       bodyEnd,
			WordCount:      CountWords(rangeText(d.Content, bodyStart, bodyEnd)),
			Children:       []*Section{},
		}
	}

	// Nest by level: pop the stack down to the nearest shallower entry,
	// which becomes the parent. Levels need not be contiguous; an H3
	// directly under an H1 simply nests as its child.
	var roots []*Section
	var stack []*Section
	for _, s := range flat {
		for len(stack) > 0 && stack[len(stack)-1].Level >= s.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, s)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, s)
		}
		stack = append(stack, s)
	}
	return roots
}

// sectionID matches the UI element keying scheme.
func sectionID(ordinal int) string {
	return "heading-" + strconv.Itoa(ordinal)
}

// Range is a half-open [From, To) span over top-level node indices.
type Range struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// ResolveSectionRange computes the contiguous node range of a section: the
// heading itself plus everything until the next heading at the same or
// shallower level (or the document end). It reports false for an
// out-of-bounds ordinal, since the caller's outline may be stale by one edit.
// Ranges must be recomputed fresh after any structural change; node indices
// do not survive splices.
func ResolveSectionRange(d Document, ordinal int) (Range, bool) {
	headings := FlatHeadings(d)
	if ordinal < 0 || ordinal >= len(headings) {
		return Range{}, false
	}

	target := headings[ordinal]
	to := len(d.Content)
	for _, h := range headings[ordinal+1:] {
		if h.Level <= target.Level {
			to = h.NodeIndex
			break
		}
	}
	return Range{From: target.NodeIndex, To: to}, true
}
