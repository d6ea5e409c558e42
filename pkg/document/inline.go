package document

import "regexp"

var (
	formulaSpan = regexp.MustCompile(`\$([^$]+)\$`)
	boldSpan    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

// ParseInline splits a run of text into plain fragments, bold spans and formulas,
// in document order.
//
// Formulas are found first and kept verbatim; the text around them is scanned for
// bold spans. Bold content is not scanned again, so "**$x$**" yields a bold span
// holding "$x$" and no formula.
func ParseInline(text string) []Element {
	var out []Element
	remaining := text
	for remaining != "" {
		loc := formulaSpan.FindStringSubmatchIndex(remaining)
		if loc == nil {
			out = append(out, parseBold(remaining)...)
			break
		}
		if loc[0] > 0 {
			out = append(out, parseBold(remaining[:loc[0]])...)
		}
		out = append(out, FormulaSpan(remaining[loc[2]:loc[3]]))
		remaining = remaining[loc[1]:]
	}
	return out
}

func parseBold(text string) []Element {
	var out []Element
	remaining := text
	for remaining != "" {
		loc := boldSpan.FindStringSubmatchIndex(remaining)
		if loc == nil {
			out = append(out, Text(remaining))
			break
		}
		if loc[0] > 0 {
			out = append(out, Text(remaining[:loc[0]]))
		}
		out = append(out, Bold(remaining[loc[2]:loc[3]]))
		remaining = remaining[loc[1]:]
	}
	return out
}
