package document

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderText returns a plain text rendering of elements with no escape sequences.
// Paragraphs are wrapped at width display columns; width <= 0 disables wrapping.
// Table columns are aligned by display width, so CJK text and symbols line up.
func RenderText(elements []Element, width int) string {
	blocks := make([]string, 0, len(elements))
	for _, e := range elements {
		if block := textBlock(e, width); block != "" {
			blocks = append(blocks, block)
		}
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func textBlock(e Element, width int) string {
	switch e.Kind {
	case KindHeader:
		title := iconAtom + " " + textInline(e.Children)
		rule := "-"
		if e.Level <= 1 {
			rule = "="
		}
		return title + "\n" + strings.Repeat(rule, runewidth.StringWidth(title))
	case KindParagraph:
		if e.IsFragment() {
			return wrap(e.Text, width)
		}
		return textParagraph(e, width)
	case KindBold, KindFormula:
		return wrap(textInline([]Element{e}), width)
	case KindCalculation:
		return "  " + iconBeaker + " " + e.Text
	case KindAnswer:
		return wrap("✔ "+textInline(e.Children), width)
	case KindTable:
		return textTable(e.Rows)
	case KindList:
		lines := make([]string, 0, len(e.Items))
		for _, item := range e.Items {
			lines = append(lines, "  • "+item)
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

func textParagraph(e Element, width int) string {
	text := plainText(e.Children)
	switch {
	case strings.Contains(text, "**Question:**"):
		return "Question:\n" + wrap(textInline(e.Children), width)
	case strings.Contains(text, "**Solution:**"):
		return "Solution:"
	case strings.HasPrefix(text, "Therefore,"):
		return wrap(markConclusion+" "+textInline(e.Children), width)
	}
	return wrap(textInline(e.Children), width)
}

func textInline(children []Element) string {
	var sb strings.Builder
	for _, child := range children {
		switch child.Kind {
		case KindFormula:
			sb.WriteString(RenderFormula(child.Text).Text())
		case KindParagraph:
			if child.IsFragment() {
				sb.WriteString(child.Text)
			} else {
				sb.WriteString(textInline(child.Children))
			}
		default:
			if child.hasText() {
				sb.WriteString(child.Text)
			} else {
				sb.WriteString(textInline(child.Children))
			}
		}
	}
	return sb.String()
}

func textTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	line := func(row []string) string {
		cells := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		return strings.TrimRight(strings.Join(cells, " | "), " ")
	}
	out := []string{line(rows[0])}
	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	out = append(out, strings.Join(seps, "-+-"))
	for _, row := range rows[1:] {
		out = append(out, line(row))
	}
	return strings.Join(out, "\n")
}

// wrap breaks s into lines of at most width display columns at spaces.
// Words wider than width are kept whole.
func wrap(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	var lines []string
	var cur strings.Builder
	curWidth := 0
	for _, word := range strings.Fields(s) {
		w := runewidth.StringWidth(word)
		if curWidth > 0 && curWidth+1+w > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}
		if curWidth > 0 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(word)
		curWidth += w
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return strings.Join(lines, "\n")
}
