package document

import "strings"

// Kind identifies the variant of an Element.
type Kind int

const (
	KindHeader Kind = iota + 1
	KindParagraph
	KindBold
	KindFormula
	KindList
	KindTable
	KindCalculation
	KindAnswer
)

var kindNames = map[Kind]string{
	KindHeader:      "header",
	KindParagraph:   "paragraph",
	KindBold:        "bold",
	KindFormula:     "formula",
	KindList:        "list",
	KindTable:       "table",
	KindCalculation: "calculation",
	KindAnswer:      "answer",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Element is a node of a parsed document.
//
// Which fields are meaningful depends on Kind:
//   - Header: Level and Children.
//   - Paragraph: Children, or Text for a plain fragment produced by ParseInline.
//   - Bold, Formula, Calculation: Text (raw, unrendered).
//   - Answer: Children.
//   - Table: Rows, row 0 being the header row.
//   - List: Items.
type Element struct {
	Kind     Kind       `json:"kind"`
	Level    int        `json:"level,omitempty"`
	Text     string     `json:"text,omitempty"`
	Children []Element  `json:"children,omitempty"`
	Rows     [][]string `json:"rows,omitempty"`
	Items    []string   `json:"items,omitempty"`
}

// IsFragment reports whether e is a plain text fragment rather than a block paragraph.
func (e Element) IsFragment() bool {
	return e.Kind == KindParagraph && e.Children == nil
}

// hasText reports whether the element carries a raw string as its content.
func (e Element) hasText() bool {
	switch e.Kind {
	case KindBold, KindFormula, KindCalculation:
		return true
	case KindParagraph:
		return e.Children == nil
	}
	return false
}

// plainText concatenates the raw strings carried directly by children.
// Children with structured content contribute nothing.
func plainText(children []Element) string {
	var sb strings.Builder
	for _, child := range children {
		if child.hasText() {
			sb.WriteString(child.Text)
		}
	}
	return sb.String()
}

// Header builds a header element.
func Header(level int, children ...Element) Element {
	return Element{Kind: KindHeader, Level: level, Children: children}
}

// Paragraph builds a block paragraph from inline children.
func Paragraph(children ...Element) Element {
	if children == nil {
		children = []Element{}
	}
	return Element{Kind: KindParagraph, Children: children}
}

// Text builds a plain text fragment.
func Text(s string) Element {
	return Element{Kind: KindParagraph, Text: s}
}

// Bold builds a bold span.
func Bold(s string) Element {
	return Element{Kind: KindBold, Text: s}
}

// FormulaSpan builds an unrendered formula span.
func FormulaSpan(s string) Element {
	return Element{Kind: KindFormula, Text: s}
}

// Table builds a table element.
func Table(rows ...[]string) Element {
	return Element{Kind: KindTable, Rows: rows}
}

// Calculation builds a calculation call-out.
func Calculation(line string) Element {
	return Element{Kind: KindCalculation, Text: line}
}

// Answer builds an answer element.
func Answer(children ...Element) Element {
	return Element{Kind: KindAnswer, Children: children}
}

// List builds a list element.
func List(items ...string) Element {
	return Element{Kind: KindList, Items: items}
}
