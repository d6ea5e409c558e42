package document

import (
	"strings"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"|", `\|`,
)

// RenderMarkdown returns canonical Markdown for elements, suitable for a terminal
// Markdown renderer. Formulas are flattened to Unicode text and all raw text is
// escaped, so the output has no markup the source did not describe.
func RenderMarkdown(elements []Element) string {
	blocks := make([]string, 0, len(elements))
	for _, e := range elements {
		if block := markdownBlock(e); block != "" {
			blocks = append(blocks, block)
		}
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func markdownBlock(e Element) string {
	switch e.Kind {
	case KindHeader:
		level := min(max(e.Level, 1), maxHeaderLevel)
		return strings.Repeat("#", level) + " " + markdownInline(e.Children)
	case KindParagraph:
		if e.IsFragment() {
			return escapeMarkdown(e.Text)
		}
		return markdownParagraph(e)
	case KindBold, KindFormula:
		return markdownInline([]Element{e})
	case KindCalculation:
		return "> " + iconBeaker + " `" + strings.ReplaceAll(e.Text, "`", "'") + "`"
	case KindAnswer:
		return "> ✔ " + markdownInline(e.Children)
	case KindTable:
		return markdownTable(e.Rows)
	case KindList:
		lines := make([]string, 0, len(e.Items))
		for _, item := range e.Items {
			lines = append(lines, "- "+escapeMarkdown(item))
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

func markdownParagraph(e Element) string {
	text := plainText(e.Children)
	switch {
	case strings.Contains(text, "**Question:**"):
		return "**Question:**\n\n" + markdownInline(e.Children)
	case strings.Contains(text, "**Solution:**"):
		return "#### Solution:"
	case strings.HasPrefix(text, "Therefore,"):
		return "> " + markConclusion + " " + markdownInline(e.Children)
	}
	return markdownInline(e.Children)
}

func markdownInline(children []Element) string {
	var sb strings.Builder
	for _, child := range children {
		switch child.Kind {
		case KindBold:
			sb.WriteString("**" + escapeMarkdown(child.Text) + "**")
		case KindFormula:
			sb.WriteString(escapeMarkdown(RenderFormula(child.Text).Text()))
		case KindParagraph:
			if child.IsFragment() {
				sb.WriteString(escapeMarkdown(child.Text))
			} else {
				sb.WriteString(markdownInline(child.Children))
			}
		default:
			sb.WriteString(markdownBlock(child))
		}
	}
	return sb.String()
}

func markdownTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	var sb strings.Builder
	writeRow := func(row []string) {
		sb.WriteString("|")
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = escapeMarkdown(row[i])
			}
			sb.WriteString(" " + cell + " |")
		}
		sb.WriteString("\n")
	}
	writeRow(rows[0])
	sb.WriteString("|" + strings.Repeat(" --- |", cols) + "\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// escapeMarkdown escapes inline markup, plus the openers that would turn the
// start of a block into a header, a bullet list or an ordered list.
func escapeMarkdown(s string) string {
	s = markdownEscaper.Replace(s)
	switch {
	case strings.HasPrefix(s, "#"), strings.HasPrefix(s, "---"), opensBlock(s, 1):
		return `\` + s
	}
	if n := leadingDigits(s); n > 0 && n <= 9 && n < len(s) && (s[n] == '.' || s[n] == ')') && opensBlock(s, n+1) {
		return s[:n] + `\` + s[n:]
	}
	return s
}

// opensBlock reports whether a list marker ending at n is followed by
// whitespace or the end of s. A marker at n == 1 must be '-' or '+'.
func opensBlock(s string, n int) bool {
	if len(s) < n {
		return false
	}
	if n == 1 && s[0] != '-' && s[0] != '+' {
		return false
	}
	return len(s) == n || s[n] == ' ' || s[n] == '\t'
}

func leadingDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}
