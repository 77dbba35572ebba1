package domain

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countNodes(nodes []Node) int {
	total := 0
	for _, n := range nodes {
		total += 1 + countNodes(n.Content)
	}
	return total
}

func TestReplaceRange(t *testing.T) {
	doc := Document{Content: []Node{Paragraph("a"), Paragraph("b"), Paragraph("c")}}

	out := ReplaceRange(doc, 1, 2, []Node{Paragraph("x"), Paragraph("y")})
	got := []string{}
	for _, n := range out.Content {
		got = append(got, FlattenText(n))
	}
	assert.Equal(t, []string{"a", "x", "y", "c"}, got)

	// The input document is untouched.
	assert.Equal(t, 3, doc.Len())
}

func TestReplaceRangeClampsBounds(t *testing.T) {
	doc := Document{Content: []Node{Paragraph("a")}}
	out := ReplaceRange(doc, -2, 99, nil)
	assert.Equal(t, 0, out.Len())
}

func TestMoveSectionDownSwapsScenes(t *testing.T) {
	doc := bookDoc()

	// moveSection(Scene A, down) swaps Scene A and Scene B whole.
	out := MoveSection(doc, 2, MoveDown)
	assert.Equal(t,
		[]string{"Book", "Ch1", "Scene B", "Scene A", "Ch2"},
		headingTitles(out))

	// Bodies travelled with their headings.
	sceneA, ok := ResolveSectionRange(out, 3)
	require.True(t, ok)
	assert.Equal(t, "scene a body", FlattenText(out.Content[sceneA.From+1]))
}

func TestMoveSectionUpThenDownIsIdentity(t *testing.T) {
	doc := bookDoc()

	moved := MoveSection(doc, 3, MoveUp) // Scene B up
	require.Equal(t,
		[]string{"Book", "Ch1", "Scene B", "Scene A", "Ch2"},
		headingTitles(moved))

	// Scene B is now ordinal 2; moving it back down restores the original.
	back := MoveSection(moved, 2, MoveDown)
	assert.Equal(t, headingTitles(doc), headingTitles(back))
	assert.True(t, reflect.DeepEqual(doc.Content, back.Content))
}

func TestMoveSectionNoSibling(t *testing.T) {
	doc := bookDoc()

	// Scene A has no sibling above it (Ch1 is shallower).
	out := MoveSection(doc, 2, MoveUp)
	assert.Equal(t, headingTitles(doc), headingTitles(out))

	// Ch2 has no sibling below it.
	out = MoveSection(doc, 4, MoveDown)
	assert.Equal(t, headingTitles(doc), headingTitles(out))
}

func TestMoveSectionSkipsDeeperHeadings(t *testing.T) {
	// Ch1's nearest down-sibling is Ch2, past the two H3 scenes.
	out := MoveSection(bookDoc(), 1, MoveDown)
	assert.Equal(t,
		[]string{"Book", "Ch2", "Ch1", "Scene A", "Scene B"},
		headingTitles(out))
}

func TestMoveSectionOutOfBounds(t *testing.T) {
	doc := bookDoc()
	out := MoveSection(doc, 99, MoveDown)
	assert.Equal(t, headingTitles(doc), headingTitles(out))
}

func TestSwapSections(t *testing.T) {
	out := SwapSections(bookDoc(), 2, 3)
	assert.Equal(t,
		[]string{"Book", "Ch1", "Scene B", "Scene A", "Ch2"},
		headingTitles(out))
}

func TestSwapSectionsUnequalLevelRejected(t *testing.T) {
	doc := bookDoc()
	out := SwapSections(doc, 1, 2) // H2 vs H3
	assert.Equal(t, headingTitles(doc), headingTitles(out))
}

func TestSwapSectionsSameOrdinalNoop(t *testing.T) {
	doc := bookDoc()
	out := SwapSections(doc, 2, 2)
	assert.Equal(t, headingTitles(doc), headingTitles(out))
}

func TestChangeSectionLevel(t *testing.T) {
	doc := bookDoc()
	out := ChangeSectionLevel(doc, 1, 1) // promote Ch1 to H1

	// Node count and all text are preserved; only the level changed.
	assert.Equal(t, countNodes(doc.Content), countNodes(out.Content))
	assert.Equal(t, doc.TextProjection(), out.TextProjection())
	assert.Equal(t, 1, out.Content[2].HeadingLevel())

	// Re-extraction: Ch1 is now a second root. The H3 scenes nest under
	// it, and so does the still-H2 Ch2, since Ch1 became the nearest
	// shallower predecessor for all three.
	roots := ExtractOutline(out)
	require.Len(t, roots, 2)
	assert.Equal(t, "Book", roots[0].Title)
	assert.Equal(t, "Ch1", roots[1].Title)
	require.Len(t, roots[1].Children, 3)
	assert.Equal(t, "Scene A", roots[1].Children[0].Title)
	assert.Equal(t, "Scene B", roots[1].Children[1].Title)
	assert.Equal(t, "Ch2", roots[1].Children[2].Title)
}

func TestChangeSectionLevelClamped(t *testing.T) {
	doc := bookDoc()
	out := ChangeSectionLevel(doc, 0, 9)
	assert.Equal(t, 4, out.Content[0].HeadingLevel())

	out = ChangeSectionLevel(doc, 0, 0)
	assert.Equal(t, 1, out.Content[0].HeadingLevel())
}

func TestChangeSectionLevelOutOfBounds(t *testing.T) {
	doc := bookDoc()
	out := ChangeSectionLevel(doc, 42, 2)
	assert.True(t, reflect.DeepEqual(doc.Content, out.Content))
}

func TestExtractSectionContent(t *testing.T) {
	doc := bookDoc()
	content := ExtractSectionContent(doc, 2) // Scene A

	require.Len(t, content, 2)
	assert.Equal(t, "Scene A", FlattenText(content[0]))
	assert.Equal(t, "scene a body", FlattenText(content[1]))

	// Pure read: the document is unchanged, and the copy does not alias it.
	content[1].Content[0].Text = "mutated"
	assert.Equal(t, "scene a body", FlattenText(doc.Content[5]))
}

func TestDeleteThenRestoreRoundTrip(t *testing.T) {
	doc := bookDoc()

	extracted := ExtractSectionContent(doc, 2)
	deleted := DeleteSection(doc, 2)
	assert.Equal(t,
		[]string{"Book", "Ch1", "Scene B", "Ch2"},
		headingTitles(deleted))

	restored := RestoreSection(deleted, extracted)

	// The section's node sequence is reproduced exactly, at the end of the
	// document rather than its original position.
	n := restored.Len()
	assert.True(t, reflect.DeepEqual(doc.Content[4:6], restored.Content[n-2:]))
	assert.Equal(t, countNodes(doc.Content), countNodes(restored.Content))
}

func TestDeleteSectionRemovesWholeSubtree(t *testing.T) {
	doc := bookDoc()
	out := DeleteSection(doc, 1) // Ch1 takes both scenes with it
	assert.Equal(t, []string{"Book", "Ch2"}, headingTitles(out))
}

func TestDeleteSectionOutOfBounds(t *testing.T) {
	doc := bookDoc()
	out := DeleteSection(doc, 99)
	assert.Equal(t, doc.Len(), out.Len())
}
