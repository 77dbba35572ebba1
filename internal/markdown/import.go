// Package markdown converts markdown source into the editor's document
// shape, used when importing external manuscripts.
package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

// Parse converts markdown source into document block nodes. Heading
// levels deeper than 4 clamp to 4, matching the editor's range.
func Parse(src []byte) (domain.Document, error) {
	md := goldmark.New()
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	var doc domain.Document
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if block, ok := convertBlock(n, src); ok {
			doc.Content = append(doc.Content, block)
		}
	}
	return doc, nil
}

func convertBlock(n ast.Node, src []byte) (domain.Node, bool) {
	switch node := n.(type) {
	case *ast.Heading:
		level := node.Level
		if level > 4 {
			level = 4
		}
		return domain.Node{
			Type:    domain.NodeHeading,
			Attrs:   &domain.NodeAttrs{Level: level},
			Content: convertInlines(node, src),
		}, true
	case *ast.Paragraph, *ast.TextBlock:
		content := convertInlines(n, src)
		if len(content) == 0 {
			return domain.Node{}, false
		}
		return domain.Node{Type: domain.NodeParagraph, Content: content}, true
	case *ast.ThematicBreak:
		return domain.Node{Type: domain.NodeHorizontalRule}, true
	case *ast.Blockquote:
		var content []domain.Node
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if block, ok := convertBlock(c, src); ok {
				content = append(content, block)
			}
		}
		return domain.Node{Type: domain.NodeBlockquote, Content: content}, true
	case *ast.List:
		kind := domain.NodeBulletList
		if node.IsOrdered() {
			kind = domain.NodeOrderedList
		}
		var items []domain.Node
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			var inner []domain.Node
			for cc := c.FirstChild(); cc != nil; cc = cc.NextSibling() {
				if block, ok := convertBlock(cc, src); ok {
					inner = append(inner, block)
				}
			}
			items = append(items, domain.Node{Type: domain.NodeListItem, Content: inner})
		}
		return domain.Node{Type: kind, Content: items}, true
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		// Code blocks flatten to a code-marked paragraph
		var buf []byte
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf = append(buf, line.Value(src)...)
		}
		if len(buf) == 0 {
			return domain.Node{}, false
		}
		return domain.Node{
			Type: domain.NodeParagraph,
			Content: []domain.Node{{
				Type:  domain.NodeText,
				Text:  string(buf),
				Marks: []domain.Mark{{Type: domain.MarkCode}},
			}},
		}, true
	default:
		return domain.Node{}, false
	}
}

// convertInlines walks the inline children of a block, carrying the
// marks accumulated from enclosing emphasis spans.
func convertInlines(block ast.Node, src []byte) []domain.Node {
	var out []domain.Node
	var walk func(n ast.Node, marks []domain.Mark)
	walk = func(n ast.Node, marks []domain.Mark) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch inline := c.(type) {
			case *ast.Text:
				segment := inline.Segment
				textValue := string(segment.Value(src))
				if textValue != "" {
					out = append(out, textNode(textValue, marks))
				}
				if inline.HardLineBreak() {
					out = append(out, domain.Node{Type: domain.NodeHardBreak})
				} else if inline.SoftLineBreak() {
					out = append(out, textNode(" ", marks))
				}
			case *ast.Emphasis:
				mark := domain.MarkItalic
				if inline.Level >= 2 {
					mark = domain.MarkBold
				}
				walk(c, append(marks[:len(marks):len(marks)], domain.Mark{Type: mark}))
			case *ast.CodeSpan:
				var buf []byte
				for cc := c.FirstChild(); cc != nil; cc = cc.NextSibling() {
					if t, ok := cc.(*ast.Text); ok {
						buf = append(buf, t.Segment.Value(src)...)
					}
				}
				if len(buf) > 0 {
					out = append(out, textNode(string(buf), append(marks[:len(marks):len(marks)], domain.Mark{Type: domain.MarkCode})))
				}
			default:
				walk(c, marks)
			}
		}
	}
	walk(block, nil)
	return out
}

func textNode(text string, marks []domain.Mark) domain.Node {
	n := domain.Node{Type: domain.NodeText, Text: text}
	if len(marks) > 0 {
		n.Marks = append([]domain.Mark(nil), marks...)
	}
	return n
}
