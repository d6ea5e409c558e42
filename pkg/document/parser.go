package document

import (
	"strings"
	"unicode"
)

// maxHeaderLevel bounds the header level to what HTML can express.
const maxHeaderLevel = 6

// answerPrefixes mark lines rendered as answer call-outs.
var answerPrefixes = []string{"**Answer:**", "**(a)", "**(b)", "**(c)"}

// scanState is the mode of the block scanner between two lines.
type scanState int

const (
	stateIdle scanState = iota
	stateInParagraph
	stateInTable
)

// blockParser accumulates block elements during a single Parse call.
type blockParser struct {
	state     scanState
	paragraph []string
	rows      [][]string
	out       []Element
}

// Parse splits text into block elements.
//
// Lines are trimmed and classified in a fixed order: blank, header, table, answer,
// calculation, and finally paragraph text. A line matches at most one rule.
// Parse never fails; unrecognised markup is kept as paragraph text.
func Parse(text string) []Element {
	p := &blockParser{}
	for _, raw := range strings.Split(text, "\n") {
		p.line(strings.TrimSpace(raw))
	}
	p.flush()
	return p.out
}

func (p *blockParser) line(line string) {
	switch {
	case line == "":
		// Tables stay open across blank lines.
		if p.state == stateInParagraph {
			p.flush()
		}
	case strings.HasPrefix(line, "#"):
		p.flush()
		p.emit(parseHeader(line))
	case isTableLine(line):
		p.tableRow(line)
	case isAnswerLine(line):
		p.flush()
		p.emit(Answer(ParseInline(line)...))
	case isCalculationLine(line):
		p.flush()
		p.emit(Calculation(line))
	default:
		p.paragraphLine(line)
	}
}

func (p *blockParser) tableRow(line string) {
	if p.state != stateInTable {
		p.flush()
		p.state = stateInTable
	}
	var cells []string
	for _, cell := range strings.Split(line, "|") {
		if cell = strings.TrimSpace(cell); cell != "" {
			cells = append(cells, cell)
		}
	}
	if len(cells) > 0 {
		p.rows = append(p.rows, cells)
	}
}

func (p *blockParser) paragraphLine(line string) {
	if p.state == stateInTable {
		p.flush()
	}
	p.state = stateInParagraph
	p.paragraph = append(p.paragraph, line)
}

// flush closes whatever block is open and returns the scanner to idle.
func (p *blockParser) flush() {
	switch p.state {
	case stateInTable:
		if len(p.rows) > 0 {
			p.emit(Table(p.rows...))
		}
		p.rows = nil
	case stateInParagraph:
		if len(p.paragraph) > 0 {
			p.emit(Paragraph(ParseInline(strings.Join(p.paragraph, " "))...))
		}
		p.paragraph = nil
	}
	p.state = stateIdle
}

func (p *blockParser) emit(e Element) {
	p.out = append(p.out, e)
}

func parseHeader(line string) Element {
	level := len(line) - len(strings.TrimLeft(line, "#"))
	text := strings.TrimLeftFunc(line[level:], unicode.IsSpace)
	if level > maxHeaderLevel {
		level = maxHeaderLevel
	}
	return Header(level, ParseInline(text)...)
}

// isTableLine excludes lines with '$' so formulas containing '|' stay inline.
func isTableLine(line string) bool {
	return strings.Contains(line, "|") && !strings.Contains(line, "$")
}

func isAnswerLine(line string) bool {
	for _, prefix := range answerPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func isCalculationLine(line string) bool {
	return strings.Contains(line, "=") &&
		strings.ContainsAny(line, "0123456789") &&
		!strings.Contains(line, "$")
}
