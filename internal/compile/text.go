package compile

import (
	"fmt"
	"strings"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// sceneSeparator divides scenes within a folder in text exports.
const sceneSeparator = "* * *"

// Text renders the project as plain text: title page, folder titles,
// and scene content with marks stripped.
func Text(project *domain.Project, items []*domain.BinderItem) string {
	var b strings.Builder
	b.WriteString(project.Title + "\n")
	if project.Author != "" {
		b.WriteString(project.Author + "\n")
	}
	b.WriteString("\n")

	for _, unit := range Units(items) {
		if unit.Folder != nil {
			b.WriteString("\n" + unit.Folder.Title + "\n\n")
		}
		for i, scene := range unit.Scenes {
			if i > 0 {
				b.WriteString("\n" + sceneSeparator + "\n\n")
			}
			if scene.Content != nil {
				b.WriteString(PlainTextDocument(*scene.Content))
			}
		}
	}
	return b.String()
}

// Markdown renders the project as a single markdown file: folder titles
// as H1, scene titles as H2, scene content with marks preserved.
func Markdown(project *domain.Project, items []*domain.BinderItem) string {
	var b strings.Builder
	b.WriteString("# " + project.Title + "\n\n")
	if project.Author != "" {
		b.WriteString(project.Author + "\n\n")
	}

	for _, unit := range Units(items) {
		if unit.Folder != nil {
			b.WriteString("# " + unit.Folder.Title + "\n\n")
		}
		for _, scene := range unit.Scenes {
			b.WriteString("## " + scene.Title + "\n\n")
			if scene.Content != nil {
				b.WriteString(MarkdownDocument(*scene.Content))
			}
		}
	}
	return b.String()
}

// PlainTextDocument flattens a document to plain text, one block per
// paragraph, marks dropped.
func PlainTextDocument(d domain.Document) string {
	var b strings.Builder
	for _, n := range d.Content {
		writeBlockText(&b, n, 0)
	}
	return b.String()
}

func writeBlockText(b *strings.Builder, n domain.Node, depth int) {
	switch n.Type {
	case domain.NodeHorizontalRule:
		b.WriteString(sceneSeparator + "\n\n")
	case domain.NodeBulletList, domain.NodeOrderedList:
		for _, item := range n.Content {
			writeBlockText(b, item, depth)
		}
		b.WriteString("\n")
	case domain.NodeListItem:
		b.WriteString(strings.Repeat("  ", depth))
		for _, child := range n.Content {
			b.WriteString(strings.TrimRight(domain.FlattenText(child), "\n"))
		}
		b.WriteString("\n")
	default:
		text := domain.FlattenText(n)
		if text != "" {
			b.WriteString(text + "\n\n")
		}
	}
}

// MarkdownDocument renders a document as markdown, mapping marks to
// their markdown spellings and heading levels to # prefixes.
func MarkdownDocument(d domain.Document) string {
	var b strings.Builder
	for _, n := range d.Content {
		writeBlockMarkdown(&b, n)
	}
	return b.String()
}

func writeBlockMarkdown(b *strings.Builder, n domain.Node) {
	switch n.Type {
	case domain.NodeHeading:
		b.WriteString(strings.Repeat("#", n.HeadingLevel()) + " " + inlineMarkdown(n.Content) + "\n\n")
	case domain.NodeParagraph:
		b.WriteString(inlineMarkdown(n.Content) + "\n\n")
	case domain.NodeBlockquote:
		for _, child := range n.Content {
			b.WriteString("> " + inlineMarkdown(child.Content) + "\n")
		}
		b.WriteString("\n")
	case domain.NodeBulletList:
		for _, item := range n.Content {
			b.WriteString("- " + listItemMarkdown(item) + "\n")
		}
		b.WriteString("\n")
	case domain.NodeOrderedList:
		for i, item := range n.Content {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, listItemMarkdown(item)))
		}
		b.WriteString("\n")
	case domain.NodeHorizontalRule:
		b.WriteString("---\n\n")
	}
}

func listItemMarkdown(item domain.Node) string {
	var parts []string
	for _, child := range item.Content {
		parts = append(parts, inlineMarkdown(child.Content))
	}
	return strings.Join(parts, " ")
}

func inlineMarkdown(nodes []domain.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Type {
		case domain.NodeText:
			b.WriteString(markedText(n))
		case domain.NodeHardBreak:
			b.WriteString("  \n")
		default:
			b.WriteString(inlineMarkdown(n.Content))
		}
	}
	return b.String()
}

func markedText(n domain.Node) string {
	text := n.Text
	for _, m := range n.Marks {
		switch m.Type {
		case domain.MarkCode:
			text = "`" + text + "`"
		case domain.MarkBold:
			text = "**" + text + "**"
		case domain.MarkItalic:
			text = "*" + text + "*"
		case domain.MarkStrike:
			text = "~~" + text + "~~"
		case domain.MarkUnderline:
			text = "<u>" + text + "</u>"
		}
	}
	return text
}
