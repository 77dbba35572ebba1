package compile

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// Docx renders the project as a Word document: a title page, folder
// titles as Heading1, scene titles as Heading2, and scene content with
// heading styles shifted below the scene title.
func Docx(project *domain.Project, items []*domain.BinderItem) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	title := w.AddParagraph()
	title.Justification("center")
	title.AddText(project.Title).Size("44")
	if project.Author != "" {
		author := w.AddParagraph()
		author.Justification("center")
		author.AddText(project.Author).Size("28")
	}
	w.AddParagraph().AddPageBreaks()

	for _, unit := range Units(items) {
		if unit.Folder != nil {
			w.AddParagraph().Style("Heading1").AddText(unit.Folder.Title)
		}
		for i, scene := range unit.Scenes {
			if i > 0 {
				sep := w.AddParagraph()
				sep.Justification("center")
				sep.AddText(sceneSeparator)
			}
			w.AddParagraph().Style("Heading2").AddText(scene.Title)
			if scene.Content != nil {
				writeDocxBlocks(w, scene.Content.Content)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeDocxBlocks(w *docx.Docx, nodes []domain.Node) {
	for _, n := range nodes {
		switch n.Type {
		case domain.NodeHeading:
			// Scene titles occupy Heading2, so document headings
			// start at Heading3
			level := n.HeadingLevel() + 2
			if level > 6 {
				level = 6
			}
			w.AddParagraph().Style(fmt.Sprintf("Heading%d", level)).AddText(domain.FlattenText(n))
		case domain.NodeHorizontalRule:
			sep := w.AddParagraph()
			sep.Justification("center")
			sep.AddText(sceneSeparator)
		case domain.NodeBulletList, domain.NodeOrderedList:
			for _, item := range n.Content {
				p := w.AddParagraph()
				p.AddText("・ " + domain.FlattenText(item))
			}
		case domain.NodeBlockquote:
			for _, child := range n.Content {
				p := w.AddParagraph()
				p.AddText("　" + domain.FlattenText(child))
			}
		default:
			writeDocxParagraph(w.AddParagraph(), n)
		}
	}
}

// writeDocxParagraph emits one run per text leaf so inline marks carry
// over as run formatting.
func writeDocxParagraph(p *docx.Paragraph, n domain.Node) {
	var walk func(nodes []domain.Node)
	walk = func(nodes []domain.Node) {
		for _, child := range nodes {
			switch child.Type {
			case domain.NodeText:
				run := p.AddText(child.Text)
				for _, m := range child.Marks {
					switch m.Type {
					case domain.MarkBold:
						run.Bold()
					case domain.MarkItalic:
						run.Italic()
					case domain.MarkUnderline:
						run.Underline("single")
					case domain.MarkStrike:
						run.Strike(true)
					}
				}
			case domain.NodeHardBreak:
				p.AddText("\n")
			default:
				walk(child.Content)
			}
		}
	}
	walk(n.Content)
}
