package document

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// EmptyPlaceholder is shown in place of a document with no content.
const EmptyPlaceholder = "No content available"

// Icons shown next to headers, answers and calculations.
const (
	iconAtom       = "⚛"
	iconCalculator = "🧮"
	iconBeaker     = "🧪"
	markConclusion = "✓"
)

var headerAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// HTMLTree builds the presentation tree for elements, rooted at a
// div.chat-document-parser-content container. All text is carried in text
// nodes, so serialising the tree escapes it.
func HTMLTree(elements []Element) *html.Node {
	root := elementNode(atom.Div, "chat-document-parser-content")
	for _, e := range elements {
		if n := renderElement(e); n != nil {
			root.AppendChild(n)
		}
	}
	return root
}

// RenderHTML writes the HTML serialisation of elements to w.
func RenderHTML(w io.Writer, elements []Element) error {
	return html.Render(w, HTMLTree(elements))
}

// Render parses content and returns its HTML. Empty content renders the
// placeholder instead.
func Render(content string) string {
	var buf bytes.Buffer
	if content == "" {
		_ = html.Render(&buf, elementNode(atom.Div, "chat-empty", textNode(EmptyPlaceholder)))
		return buf.String()
	}
	_ = RenderHTML(&buf, Parse(content))
	return buf.String()
}

func renderElement(e Element) *html.Node {
	switch e.Kind {
	case KindHeader:
		return renderHeader(e)
	case KindAnswer:
		return elementNode(atom.Div, "chat-answer-section",
			elementNode(atom.Div, "chat-answer-content",
				iconNode("calculator", iconCalculator),
				elementNode(atom.Div, "chat-answer-text", renderChildren(e.Children)...),
			),
		)
	case KindCalculation:
		return elementNode(atom.Div, "chat-calculation-box",
			elementNode(atom.Div, "chat-calculation-content",
				iconNode("beaker", iconBeaker),
				elementNode(atom.Span, "chat-calculation-text", textNode(e.Text)),
			),
		)
	case KindParagraph:
		if e.IsFragment() {
			return elementNode(atom.Span, "chat-text", textNode(e.Text))
		}
		return renderParagraph(e)
	case KindBold:
		return elementNode(atom.Strong, "chat-bold", textNode(e.Text))
	case KindFormula:
		return elementNode(atom.Span, "formula-inline", RenderFormula(e.Text).htmlNodes()...)
	case KindTable:
		return renderTable(e.Rows)
	case KindList:
		items := make([]*html.Node, 0, len(e.Items))
		for _, item := range e.Items {
			items = append(items, elementNode(atom.Li, "chat-list-item", textNode(item)))
		}
		return elementNode(atom.Ul, "chat-list", items...)
	}
	return nil
}

func renderChildren(children []Element) []*html.Node {
	out := make([]*html.Node, 0, len(children))
	for _, child := range children {
		if n := renderElement(child); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func renderHeader(e Element) *html.Node {
	level := e.Level
	if level < 1 {
		level = 2
	}
	if level > maxHeaderLevel {
		level = maxHeaderLevel
	}
	a := headerAtoms[level-1]
	title := elementNode(a, "chat-header-title", iconNode("atom", iconAtom))
	for _, n := range renderChildren(e.Children) {
		title.AppendChild(n)
	}
	return elementNode(atom.Div, "chat-header", title)
}

func renderParagraph(e Element) *html.Node {
	text := plainText(e.Children)
	switch {
	case strings.Contains(text, "**Question:**"):
		return elementNode(atom.Div, "chat-question-section",
			elementNode(atom.Div, "chat-question-label", textNode("Question:")),
			elementNode(atom.Div, "chat-question-body", renderChildren(e.Children)...),
		)
	case strings.Contains(text, "**Solution:**"):
		return elementNode(atom.Div, "chat-solution",
			elementNode(atom.H4, "chat-solution-title",
				iconNode("calculator", iconCalculator),
				textNode("Solution:"),
			),
		)
	case strings.HasPrefix(text, "Therefore,"):
		return elementNode(atom.Div, "chat-conclusion",
			elementNode(atom.Span, "chat-conclusion-mark", textNode(markConclusion)),
			elementNode(atom.Div, "chat-conclusion-text", renderChildren(e.Children)...),
		)
	}
	return elementNode(atom.Div, "chat-paragraph", renderChildren(e.Children)...)
}

func renderTable(rows [][]string) *html.Node {
	if len(rows) == 0 {
		return nil
	}
	head := elementNode(atom.Tr, "")
	for _, cell := range rows[0] {
		head.AppendChild(elementNode(atom.Th, "chat-table-th", textNode(cell)))
	}
	body := elementNode(atom.Tbody, "")
	for i, row := range rows[1:] {
		stripe := "chat-table-row chat-table-row-even"
		if i%2 == 1 {
			stripe = "chat-table-row chat-table-row-odd"
		}
		tr := elementNode(atom.Tr, stripe)
		for _, cell := range row {
			tr.AppendChild(elementNode(atom.Td, "chat-table-td", textNode(cell)))
		}
		body.AppendChild(tr)
	}
	return elementNode(atom.Div, "chat-table-container",
		elementNode(atom.Table, "chat-table",
			elementNode(atom.Thead, "chat-table-header", head),
			body,
		),
	)
}

func iconNode(name, glyph string) *html.Node {
	n := elementNode(atom.Span, "chat-icon chat-icon-"+name, textNode(glyph))
	n.Attr = append(n.Attr, html.Attribute{Key: "aria-hidden", Val: "true"})
	return n
}

func elementNode(a atom.Atom, class string, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	for _, child := range children {
		n.AppendChild(child)
	}
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
