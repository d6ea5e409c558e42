package document_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/aretw0/chembot/pkg/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// renderTree renders source and parses the markup back, so selectors run
// against what a browser would see.
func renderTree(t *testing.T, source string) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, document.RenderHTML(&buf, document.Parse(source)))
	doc, err := html.Parse(&buf)
	require.NoError(t, err)
	return doc
}

func queryAll(n *html.Node, selector string) []*html.Node {
	return cascadia.MustCompile(selector).MatchAll(n)
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func innerHTML(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		require.NoError(t, html.Render(&buf, c))
	}
	return buf.String()
}

func TestRenderHTML_Header(t *testing.T) {
	doc := renderTree(t, "## Equilibrium of $NO_2$")

	titles := queryAll(doc, "div.chat-document-parser-content > div.chat-header > h2.chat-header-title")
	require.Len(t, titles, 1)
	assert.Len(t, queryAll(titles[0], "span.chat-icon-atom"), 1)
	assert.Equal(t, "⚛Equilibrium of NO2", textOf(titles[0]))
	assert.Len(t, queryAll(titles[0], "span.formula-inline > sub"), 1)
}

func TestRenderHTML_Formula(t *testing.T) {
	doc := renderTree(t, `The constant $K_c = \frac{[N_2O_4]}{[NO_2]^2}$ is defined.`)

	formulas := queryAll(doc, "div.chat-paragraph > span.formula-inline")
	require.Len(t, formulas, 1)
	assert.Len(t, queryAll(formulas[0], "sub"), 4)
	assert.Len(t, queryAll(formulas[0], "sup"), 1)

	numerator := queryAll(formulas[0], "span.fraction > span.numerator")
	require.Len(t, numerator, 1)
	assert.Equal(t, "[N<sub>2</sub>O<sub>4</sub>]", innerHTML(t, numerator[0]))

	denominator := queryAll(formulas[0], "span.fraction > span.denominator")
	require.Len(t, denominator, 1)
	assert.Equal(t, "[NO<sub>2</sub>]<sup>2</sup>", innerHTML(t, denominator[0]))
}

func TestRenderHTML_Table(t *testing.T) {
	doc := renderTree(t, "| Species | Conc |\n| NO2 | 0.1 |\n| N2O4 | 0.2 |\n| O2 | 0.3 |")

	table := queryAll(doc, "div.chat-table-container > table.chat-table")
	require.Len(t, table, 1)

	headers := queryAll(table[0], "thead.chat-table-header > tr > th.chat-table-th")
	require.Len(t, headers, 2)
	assert.Equal(t, "Species", textOf(headers[0]))

	rows := queryAll(table[0], "tbody > tr.chat-table-row")
	require.Len(t, rows, 3)
	assert.Len(t, queryAll(table[0], "tr.chat-table-row-even"), 2)
	assert.Len(t, queryAll(table[0], "tr.chat-table-row-odd"), 1)
	assert.Equal(t, "NO20.1", textOf(rows[0]))
	assert.Len(t, queryAll(rows[0], "td.chat-table-td"), 2)
}

func TestRenderHTML_Calculation(t *testing.T) {
	doc := renderTree(t, "Kc = 0.0054/0.000853 = 6.33")

	text := queryAll(doc, "div.chat-calculation-box > div.chat-calculation-content > span.chat-calculation-text")
	require.Len(t, text, 1)
	assert.Equal(t, "Kc = 0.0054/0.000853 = 6.33", textOf(text[0]))
	assert.Len(t, queryAll(doc, "div.chat-calculation-content > span.chat-icon-beaker"), 1)
}

func TestRenderHTML_CalculationIsEscaped(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, document.RenderHTML(&buf, document.Parse(`x = 1 <img src=x onerror="alert(1)">`)))

	assert.NotContains(t, buf.String(), "<img")
	assert.Contains(t, buf.String(), "&lt;img")
}

func TestRenderHTML_FormulaIsEscaped(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, document.RenderHTML(&buf, document.Parse(`see $<script>alert(1)</script>$`)))

	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestRenderHTML_Answer(t *testing.T) {
	doc := renderTree(t, "**Answer:** $K_c = 41.5$")

	answer := queryAll(doc, "div.chat-answer-section > div.chat-answer-content > div.chat-answer-text")
	require.Len(t, answer, 1)
	assert.Len(t, queryAll(answer[0], "strong.chat-bold"), 1)
	assert.Len(t, queryAll(answer[0], "span.formula-inline"), 1)
	assert.Len(t, queryAll(doc, "div.chat-answer-content > span.chat-icon-calculator"), 1)
}

func TestRenderHTML_ParagraphSpecialCases(t *testing.T) {
	tests := []struct {
		name     string
		children []document.Element
		selector string
		text     string
	}{
		{
			name:     "Question",
			children: []document.Element{document.Text("**Question:** What is Kc?")},
			selector: "div.chat-question-section",
			text:     "Question:**Question:** What is Kc?",
		},
		{
			name:     "Solution Drops Children",
			children: []document.Element{document.Text("**Solution:** ignored body")},
			selector: "div.chat-solution > h4.chat-solution-title",
			text:     "🧮Solution:",
		},
		{
			name: "Conclusion",
			children: []document.Element{
				document.Text("Therefore, the reaction favors "),
				document.FormulaSpan("N_2O_4"),
			},
			selector: "div.chat-conclusion",
			text:     "✓Therefore, the reaction favors N2O4",
		},
		{
			name:     "Plain",
			children: []document.Element{document.Text("Nothing special")},
			selector: "div.chat-paragraph",
			text:     "Nothing special",
		},
		{
			name: "Bold Text Counts Toward Markers",
			children: []document.Element{
				document.Bold("x"),
				document.Text("**Question:**"),
			},
			selector: "div.chat-question-section",
			text:     "Question:x**Question:**",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, document.RenderHTML(&buf, []document.Element{document.Paragraph(tt.children...)}))
			doc, err := html.Parse(&buf)
			require.NoError(t, err)

			nodes := queryAll(doc, tt.selector)
			require.Len(t, nodes, 1)
			assert.Equal(t, tt.text, textOf(nodes[0]))
		})
	}
}

func TestRenderHTML_ParsedQuestionIsPlainParagraph(t *testing.T) {
	// The tokenizer turns **Question:** into a bold span, whose text lacks the
	// asterisks, so parsed markup does not trigger the question block.
	doc := renderTree(t, "**Question:** What is Kc?")

	assert.Empty(t, queryAll(doc, "div.chat-question-section"))
	bold := queryAll(doc, "div.chat-paragraph > strong.chat-bold")
	require.Len(t, bold, 1)
	assert.Equal(t, "Question:", textOf(bold[0]))
}

func TestRenderHTML_QuestionPriorityOverConclusion(t *testing.T) {
	var buf bytes.Buffer
	paragraph := document.Paragraph(document.Text("Therefore, **Question:** and **Solution:**"))
	require.NoError(t, document.RenderHTML(&buf, []document.Element{paragraph}))

	assert.Contains(t, buf.String(), `class="chat-question-section"`)
	assert.NotContains(t, buf.String(), "chat-solution")
	assert.NotContains(t, buf.String(), "chat-conclusion")
}

func TestRenderHTML_List(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, document.RenderHTML(&buf, []document.Element{document.List("one", "two")}))

	assert.Equal(t,
		`<div class="chat-document-parser-content"><ul class="chat-list">`+
			`<li class="chat-list-item">one</li><li class="chat-list-item">two</li></ul></div>`,
		buf.String())
}

func TestRenderHTML_Deterministic(t *testing.T) {
	source := "## T\n\n| a | b |\n| 1 | 2 |\n**Answer:** $x^2$\nTherefore, done."

	assert.Equal(t, document.Render(source), document.Render(source))
}

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, `<div class="chat-empty">No content available</div>`, document.Render(""))
}

func TestRender_Sample(t *testing.T) {
	out := document.Render("## Title\n\nSome text with $NO_2$.")

	assert.True(t, strings.HasPrefix(out, `<div class="chat-document-parser-content">`))
	assert.Contains(t, out, `<h2 class="chat-header-title">`)
	assert.Contains(t, out, `<span class="chat-text">Some text with </span><span class="formula-inline">NO<sub>2</sub></span>`)
}
