package document_test

import (
	"testing"

	"github.com/aretw0/chembot/pkg/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PlainTextIsOneParagraph(t *testing.T) {
	inputs := []string{
		"hello",
		"  the equilibrium   shifts\nto the right  ",
		"one\ntwo\nthree",
	}
	want := []string{
		"hello",
		"the equilibrium   shifts to the right",
		"one two three",
	}

	for i, input := range inputs {
		elements := document.Parse(input)
		require.Len(t, elements, 1, input)
		assert.Equal(t, document.KindParagraph, elements[0].Kind)
		assert.Equal(t, []document.Element{document.Text(want[i])}, elements[0].Children)
	}
}

func TestParse_Header(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		level int
		title string
	}{
		{name: "Level 2", line: "## Title", level: 2, title: "Title"},
		{name: "Level 1", line: "# Equilibrium", level: 1, title: "Equilibrium"},
		{name: "Level 3 Indented", line: "   ### Step 1  ", level: 3, title: "Step 1"},
		{name: "No Space", line: "##Title", level: 2, title: "Title"},
		{name: "Clamped", line: "######## Deep", level: 6, title: "Deep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elements := document.Parse(tt.line)
			require.Len(t, elements, 1)
			assert.Equal(t, document.Header(tt.level, document.Text(tt.title)), elements[0])
		})
	}
}

func TestParse_HeaderInlineContent(t *testing.T) {
	elements := document.Parse("## Equilibrium of $NO_2$")

	require.Len(t, elements, 1)
	assert.Equal(t, document.Header(2,
		document.Text("Equilibrium of "),
		document.FormulaSpan("NO_2"),
	), elements[0])
}

func TestParse_Table(t *testing.T) {
	input := "| Species | Initial | Equilibrium |\n" +
		"| NO2 | 0.100 | 0.0292 |\n" +
		"|N2O4|0|0.0354|"

	elements := document.Parse(input)

	require.Len(t, elements, 1)
	table := elements[0]
	assert.Equal(t, document.KindTable, table.Kind)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"Species", "Initial", "Equilibrium"}, table.Rows[0])
	assert.Equal(t, []string{"N2O4", "0", "0.0354"}, table.Rows[2])
}

func TestParse_TableColumnsCountNonEmptyCells(t *testing.T) {
	elements := document.Parse("a | | b\n|c|")

	require.Len(t, elements, 1)
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, elements[0].Rows)
}

func TestParse_TableDividerIsARow(t *testing.T) {
	elements := document.Parse("| a | b |\n|---|---|\n| 1 | 2 |")

	require.Len(t, elements, 1)
	assert.Len(t, elements[0].Rows, 3)
	assert.Equal(t, []string{"---", "---"}, elements[0].Rows[1])
}

func TestParse_PipesOnlyLineAddsNoRow(t *testing.T) {
	elements := document.Parse("| a |\n| |\n| b |")

	require.Len(t, elements, 1)
	assert.Equal(t, [][]string{{"a"}, {"b"}}, elements[0].Rows)
}

func TestParse_PipesOnlyTableIsDropped(t *testing.T) {
	elements := document.Parse("|||\n\nafter")

	require.Len(t, elements, 1)
	assert.Equal(t, document.KindParagraph, elements[0].Kind)
}

func TestParse_FormulaWithPipeIsNotATable(t *testing.T) {
	elements := document.Parse("the value $|x|$ is positive")

	require.Len(t, elements, 1)
	assert.Equal(t, document.KindParagraph, elements[0].Kind)
	assert.Contains(t, elements[0].Children, document.FormulaSpan("|x|"))
}

func TestParse_TableBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []document.Kind
	}{
		{
			name:  "Paragraph Then Table",
			input: "Consider the data\n| a | b |\n| 1 | 2 |",
			kinds: []document.Kind{document.KindParagraph, document.KindTable},
		},
		{
			name:  "Table Then Paragraph",
			input: "| a | b |\nThe table shows",
			kinds: []document.Kind{document.KindTable, document.KindParagraph},
		},
		{
			name:  "Blank Line Keeps Table Open",
			input: "| a |\n\n| b |",
			kinds: []document.Kind{document.KindTable},
		},
		{
			name:  "Header Closes Table",
			input: "| a |\n## Next",
			kinds: []document.Kind{document.KindTable, document.KindHeader},
		},
		{
			name:  "Calculation Closes Table",
			input: "| a |\nKc = 1.2 / 3",
			kinds: []document.Kind{document.KindTable, document.KindCalculation},
		},
		{
			name:  "Answer Closes Table",
			input: "| a |\n**Answer:** 6.33",
			kinds: []document.Kind{document.KindTable, document.KindAnswer},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kinds, kinds(document.Parse(tt.input)))
		})
	}
}

func TestParse_Calculation(t *testing.T) {
	elements := document.Parse("   Kc = 0.0054/0.000853 = 6.33  ")

	require.Len(t, elements, 1)
	assert.Equal(t, document.Calculation("Kc = 0.0054/0.000853 = 6.33"), elements[0])
}

func TestParse_CalculationIsNotInlineParsed(t *testing.T) {
	elements := document.Parse("**x** = 2 * 3 = 6")

	require.Len(t, elements, 1)
	assert.Equal(t, document.KindCalculation, elements[0].Kind)
	assert.Equal(t, "**x** = 2 * 3 = 6", elements[0].Text)
	assert.Empty(t, elements[0].Children)
}

func TestParse_NotCalculation(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "No Digit", input: "x = y"},
		{name: "No Equals", input: "about 42 moles"},
		{name: "Formula", input: "$K_c = 6.33$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elements := document.Parse(tt.input)
			require.Len(t, elements, 1)
			assert.Equal(t, document.KindParagraph, elements[0].Kind)
		})
	}
}

func TestParse_Answer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		children []document.Element
	}{
		{
			name:  "Answer",
			input: "**Answer:** $K_c$ is large",
			children: []document.Element{
				document.Bold("Answer:"),
				document.Text(" "),
				document.FormulaSpan("K_c"),
				document.Text(" is large"),
			},
		},
		{
			name:  "Part (a)",
			input: "**(a)** 0.2 mol",
			children: []document.Element{
				document.Bold("(a)"),
				document.Text(" 0.2 mol"),
			},
		},
		{
			name:     "Part (c) Wins Over Calculation",
			input:    "**(c)** = 5",
			children: []document.Element{document.Bold("(c)"), document.Text(" = 5")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elements := document.Parse(tt.input)
			require.Len(t, elements, 1)
			assert.Equal(t, document.Answer(tt.children...), elements[0])
		})
	}
}

func TestParse_PartDIsNotAnAnswer(t *testing.T) {
	elements := document.Parse("**(d)** later")

	require.Len(t, elements, 1)
	assert.Equal(t, document.KindParagraph, elements[0].Kind)
}

func TestParse_BlankLineSeparatesParagraphs(t *testing.T) {
	elements := document.Parse("first paragraph\n\nsecond paragraph")

	require.Len(t, elements, 2)
	assert.Equal(t, document.Paragraph(document.Text("first paragraph")), elements[0])
	assert.Equal(t, document.Paragraph(document.Text("second paragraph")), elements[1])
}

func TestParse_TableSpansBlankLines(t *testing.T) {
	elements := document.Parse("| a | b |\n\n| c | d |\n\nafter")

	require.Len(t, elements, 2)
	assert.Equal(t, document.Table([]string{"a", "b"}, []string{"c", "d"}), elements[0])
	assert.Equal(t, document.Paragraph(document.Text("after")), elements[1])
}

func TestParse_ParagraphFlushedBeforeBlocks(t *testing.T) {
	input := "We start\nwith data\n## Step 1\nmore text\n**Answer:** done"

	elements := document.Parse(input)

	assert.Equal(t, []document.Kind{
		document.KindParagraph,
		document.KindHeader,
		document.KindParagraph,
		document.KindAnswer,
	}, kinds(elements))
	assert.Equal(t, document.Paragraph(document.Text("We start with data")), elements[0])
}

func TestParse_EmptyInput(t *testing.T) {
	assert.Empty(t, document.Parse(""))
	assert.Empty(t, document.Parse("\n \n\t\n"))
}

func TestParse_SampleSolution(t *testing.T) {
	input := `## Chemical Equilibrium Problem

**Question:** Consider the reaction $2NO_2(g) \rightarrow N_2O_4(g)$.

| Species | Initial | Change | Equilibrium |
| NO2 | 0.100 | -2x | 0.0292 |
| N2O4 | 0 | +x | 0.0354 |

Kc = 0.0354 / (0.0292)^2 = 41.5

**Answer:** $K_c = 41.5$

Therefore, the reaction favors the formation of $N_2O_4$ at this temperature.`

	elements := document.Parse(input)

	assert.Equal(t, []document.Kind{
		document.KindHeader,
		document.KindParagraph,
		document.KindTable,
		document.KindCalculation,
		document.KindAnswer,
		document.KindParagraph,
	}, kinds(elements))
	assert.Len(t, elements[2].Rows, 3)
}

func TestParse_Deterministic(t *testing.T) {
	input := "## T\n\n| a | b |\n**Answer:** $x^2$\ntext **bold**"

	assert.Equal(t, document.Parse(input), document.Parse(input))
}

func kinds(elements []document.Element) []document.Kind {
	out := make([]document.Kind, 0, len(elements))
	for _, e := range elements {
		out = append(out, e.Kind)
	}
	return out
}
