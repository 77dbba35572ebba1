package domain

// MoveDirection selects which sibling a section moves toward.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// ReplaceRange is the single structural primitive: replace the half-open
// node range [from, to) with the given content in one splice. Every
// higher-level structural operation is expressed through it, so each
// operation is one atomic step and can never leave the document
// partially edited. The input document is not mutated.
func ReplaceRange(d Document, from, to int, content []Node) Document {
	if from < 0 {
		from = 0
	}
	if to > len(d.Content) {
		to = len(d.Content)
	}
	if from > to {
		return d.Clone()
	}

	out := make([]Node, 0, len(d.Content)-(to-from)+len(content))
	out = append(out, CopyNodes(d.Content[:from])...)
	out = append(out, CopyNodes(content)...)
	out = append(out, CopyNodes(d.Content[to:])...)
	return Document{Content: out}
}

// ChangeSectionLevel rewrites the target heading's level attribute in place.
// Descendants are untouched: reparenting is an emergent property of the next
// outline extraction's level comparison, not an explicit tree edit. The level
// is clamped to [1,4]; an out-of-range ordinal is a no-op.
func ChangeSectionLevel(d Document, ordinal, newLevel int) Document {
	headings := FlatHeadings(d)
	if ordinal < 0 || ordinal >= len(headings) {
		return d.Clone()
	}
	if newLevel < 1 {
		newLevel = 1
	}
	if newLevel > 4 {
		newLevel = 4
	}

	out := d.Clone()
	n := &out.Content[headings[ordinal].NodeIndex]
	if n.Attrs == nil {
		n.Attrs = &NodeAttrs{}
	}
	n.Attrs.Level = newLevel
	return out
}

// findSibling locates the nearest same-level sibling of a heading in the
// given direction, skipping anything nested deeper and stopping at the
// first shallower heading. Returns -1 when no sibling exists.
func findSibling(headings []FlatHeading, ordinal int, dir MoveDirection) int {
	level := headings[ordinal].Level
	if dir == MoveUp {
		for i := ordinal - 1; i >= 0; i-- {
			if headings[i].Level < level {
				break
			}
			if headings[i].Level == level {
				return i
			}
		}
		return -1
	}
	for i := ordinal + 1; i < len(headings); i++ {
		if headings[i].Level < level {
			break
		}
		if headings[i].Level == level {
			return i
		}
	}
	return -1
}

// MoveSection swaps a section with its nearest same-level sibling in the
// given direction. Both subtrees move as whole units: the union of the two
// ranges is replaced with the sections' content in swapped order, in a
// single splice. No sibling means no-op.
func MoveSection(d Document, ordinal int, dir MoveDirection) Document {
	headings := FlatHeadings(d)
	if ordinal < 0 || ordinal >= len(headings) {
		return d.Clone()
	}
	sibling := findSibling(headings, ordinal, dir)
	if sibling < 0 {
		return d.Clone()
	}
	return swapRanges(d, ordinal, sibling)
}

// SwapSections exchanges two arbitrary sections of equal level (drag
// reorder). Unequal levels would combine a reorder with an unbalanced
// nesting change, which has no consistent meaning, so they are rejected
// as a no-op.
func SwapSections(d Document, a, b int) Document {
	if a == b {
		return d.Clone()
	}
	headings := FlatHeadings(d)
	if a < 0 || a >= len(headings) || b < 0 || b >= len(headings) {
		return d.Clone()
	}
	if headings[a].Level != headings[b].Level {
		return d.Clone()
	}
	return swapRanges(d, a, b)
}

func swapRanges(d Document, a, b int) Document {
	ra, okA := ResolveSectionRange(d, a)
	rb, okB := ResolveSectionRange(d, b)
	if !okA || !okB {
		return d.Clone()
	}

	first, second := ra, rb
	if rb.From < ra.From {
		first, second = rb, ra
	}

	swapped := make([]Node, 0, second.To-first.From)
	swapped = append(swapped, d.Content[second.From:second.To]...)
	swapped = append(swapped, d.Content[first.To:second.From]...)
	swapped = append(swapped, d.Content[first.From:first.To]...)
	return ReplaceRange(d, first.From, second.To, swapped)
}

// ExtractSectionContent returns a transportable deep copy of a section's
// full node range without mutating the document. Callers stage a delete by
// extracting first, committing the copy to the trash, and only then
// deleting, never the reverse.
func ExtractSectionContent(d Document, ordinal int) []Node {
	r, ok := ResolveSectionRange(d, ordinal)
	if !ok {
		return nil
	}
	return CopyNodes(d.Content[r.From:r.To])
}

// DeleteSection splices the section's full range out of the document.
// The content is unrecoverable from the document afterward; use
// ExtractSectionContent before calling this.
func DeleteSection(d Document, ordinal int) Document {
	r, ok := ResolveSectionRange(d, ordinal)
	if !ok {
		return d.Clone()
	}
	return ReplaceRange(d, r.From, r.To, nil)
}

// RestoreSection splices previously extracted content back in at the end of
// the document. Restoring does not try to recall the original position,
// since intervening edits may have invalidated it.
func RestoreSection(d Document, content []Node) Document {
	return ReplaceRange(d, len(d.Content), len(d.Content), content)
}
