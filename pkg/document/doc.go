/*
Package document parses and renders the restricted Markdown/LaTeX dialect used by ChemBot answers.

A message body is turned into a flat sequence of block Elements (headers, paragraphs, tables,
calculation call-outs and answer lines). Inline text inside those blocks is split into plain
fragments, bold spans and formulas. Renderers then walk the tree and produce presentational
output: an HTML node tree, canonical Markdown for terminal rendering, or plain aligned text.

# Dialect

	## Header               header, level = number of leading '#'
	a | b | c               table row (a line with '|' and no '$')
	**Answer:** ...         answer line (also **(a) **(b) **(c))
	Kc = 0.0054/0.000853    calculation (contains '=' and a digit, no '$')
	**bold** and $NO_2$     inline bold and formula spans

Formulas understand sub/superscripts, \frac, \text, \ce and a fixed table of symbol commands.
Nothing in this package returns an error: malformed markup degrades to paragraph text.

# Usage

	elements := document.Parse(body)

	var buf bytes.Buffer
	if err := document.RenderHTML(&buf, elements); err != nil {
		return err
	}

Parsing and rendering are pure functions of their input and safe for concurrent use.
*/
package document
