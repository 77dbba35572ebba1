package domain

import "encoding/json"

// Block and inline node kinds understood by the manuscript editor.
// The document format is the editor's JSON content shape: a "doc" wrapper
// holding an ordered sequence of top-level block nodes.
const (
	NodeDoc            = "doc"
	NodeParagraph      = "paragraph"
	NodeHeading        = "heading"
	NodeBulletList     = "bulletList"
	NodeOrderedList    = "orderedList"
	NodeListItem       = "listItem"
	NodeBlockquote     = "blockquote"
	NodeHorizontalRule = "horizontalRule"
	NodeHardBreak      = "hardBreak"
	NodeText           = "text"
)

// Mark kinds on text nodes.
const (
	MarkBold      = "bold"
	MarkItalic    = "italic"
	MarkUnderline = "underline"
	MarkStrike    = "strike"
	MarkCode      = "code"
)

// Mark is an inline formatting mark attached to a text node.
type Mark struct {
	Type string `json:"type"`
}

// NodeAttrs holds node attributes. Only headings carry attributes today.
type NodeAttrs struct {
	Level int `json:"level,omitempty"`
}

// Node is a single node in the manuscript tree. Top-level nodes are blocks;
// text nodes appear only as leaves inside block content.
type Node struct {
	Type    string     `json:"type"`
	Attrs   *NodeAttrs `json:"attrs,omitempty"`
	Content []Node     `json:"content,omitempty"`
	Marks   []Mark     `json:"marks,omitempty"`
	Text    string     `json:"text,omitempty"`
}

// Document is the flat ordered sequence of top-level block nodes that is the
// single source of truth for a manuscript. The outline is always derived from
// it, never stored.
type Document struct {
	Content []Node `json:"content"`
}

// docJSON is the wire shape: {"type":"doc","content":[...]}.
type docJSON struct {
	Type    string `json:"type"`
	Content []Node `json:"content"`
}

// MarshalJSON writes the editor-compatible document wrapper.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(docJSON{Type: NodeDoc, Content: d.Content})
}

// UnmarshalJSON accepts the editor-compatible document wrapper.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw docJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Content = raw.Content
	return nil
}

// Len returns the number of top-level nodes.
func (d Document) Len() int { return len(d.Content) }

// IsHeading reports whether the node is a heading block.
func (n Node) IsHeading() bool { return n.Type == NodeHeading }

// HeadingLevel returns the heading level, defaulting to 1 when the
// attribute is missing or out of range on the low side.
func (n Node) HeadingLevel() int {
	if n.Attrs == nil || n.Attrs.Level < 1 {
		return 1
	}
	return n.Attrs.Level
}

// FlattenText concatenates all text content under a node, depth first.
func FlattenText(n Node) string {
	if n.Type == NodeText {
		return n.Text
	}
	var out string
	for _, c := range n.Content {
		out += FlattenText(c)
	}
	return out
}

// TextProjection returns the document's text with one newline between
// top-level nodes. This is the projection word counts and proofreading
// issue matching operate on.
func (d Document) TextProjection() string {
	return rangeText(d.Content, 0, len(d.Content))
}

func rangeText(nodes []Node, from, to int) string {
	var out string
	for i := from; i < to && i < len(nodes); i++ {
		out += FlattenText(nodes[i]) + "\n"
	}
	return out
}

// CopyNodes deep-copies a slice of nodes so mutations on the copy cannot
// alias the source document.
func CopyNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = copyNode(n)
	}
	return out
}

func copyNode(n Node) Node {
	c := n
	if n.Attrs != nil {
		attrs := *n.Attrs
		c.Attrs = &attrs
	}
	if n.Marks != nil {
		c.Marks = make([]Mark, len(n.Marks))
		copy(c.Marks, n.Marks)
	}
	c.Content = CopyNodes(n.Content)
	return c
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	return Document{Content: CopyNodes(d.Content)}
}

// Heading builds a heading node with plain text content.
func Heading(level int, text string) Node {
	return Node{
		Type:    NodeHeading,
		Attrs:   &NodeAttrs{Level: level},
		Content: []Node{{Type: NodeText, Text: text}},
	}
}

// Paragraph builds a paragraph node with plain text content.
func Paragraph(text string) Node {
	if text == "" {
		return Node{Type: NodeParagraph}
	}
	return Node{
		Type:    NodeParagraph,
		Content: []Node{{Type: NodeText, Text: text}},
	}
}
