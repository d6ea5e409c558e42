package document

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Structural markers emitted by the formula rules. They live in the Unicode private
// use area and are stripped from the input before any rule runs.
const (
	markSubOpen   = '\uE000'
	markSubClose  = '\uE001'
	markSupOpen   = '\uE002'
	markSupClose  = '\uE003'
	markFracOpen  = '\uE004'
	markFracMid   = '\uE005'
	markFracClose = '\uE006'
)

// FormulaKind identifies a node of a rendered formula.
type FormulaKind int

const (
	FormulaText FormulaKind = iota
	FormulaSub
	FormulaSup
	FormulaFrac
)

// FormulaNode is one node of a rendered formula.
// Text is set for FormulaText, Children for FormulaSub and FormulaSup,
// Numerator and Denominator for FormulaFrac.
type FormulaNode struct {
	Kind        FormulaKind
	Text        string
	Children    []FormulaNode
	Numerator   []FormulaNode
	Denominator []FormulaNode
}

// Formula is the structured result of rendering a raw formula string.
type Formula []FormulaNode

// formulaRule is one step of the ordered substitution pipeline.
type formulaRule struct {
	Name  string
	Apply func(string) string
}

func regexRule(name, pattern, template string) formulaRule {
	re := regexp.MustCompile(pattern)
	return formulaRule{
		Name: name,
		Apply: func(s string) string {
			return re.ReplaceAllString(s, template)
		},
	}
}

// symbolCommands is applied in this order after the structural rules.
var symbolCommands = []string{
	`\cdot`, "·",
	`\times`, "×",
	`\rightarrow`, "→",
	`\leftarrow`, "←",
	`\leftrightarrow`, "↔",
	`\alpha`, "α",
	`\beta`, "β",
	`\gamma`, "γ",
	`\delta`, "δ",
	`\Delta`, "Δ",
	`\lambda`, "λ",
	`\mu`, "μ",
	`\pi`, "π",
	`\omega`, "ω",
	`\Omega`, "Ω",
	`\pm`, "±",
	`\approx`, "≈",
	`\equiv`, "≡",
	`\neq`, "≠",
	`\leq`, "≤",
	`\geq`, "≥",
	`\infty`, "∞",
}

// FormulaRules is the ordered substitution pipeline. Later rules must not reinterpret
// what earlier rules produced; the private-use markers guarantee that.
var FormulaRules = []formulaRule{
	regexRule("subscript", `_(\d+|[a-zA-Z])`, string(markSubOpen)+"${1}"+string(markSubClose)),
	regexRule("superscript", `\^(\d+|[a-zA-Z+\-]+)`, string(markSupOpen)+"${1}"+string(markSupClose)),
	regexRule("text", `\\text\{([^}]+)\}`, "${1}"),
	regexRule("fraction", `\\frac\{([^}]+)\}\{([^}]+)\}`,
		string(markFracOpen)+"${1}"+string(markFracMid)+"${2}"+string(markFracClose)),
	regexRule("chemical", `\\ce\{([^}]+)\}`, "${1}"),
	symbolRule(),
}

func symbolRule() formulaRule {
	return formulaRule{
		Name: "symbols",
		Apply: func(s string) string {
			for i := 0; i < len(symbolCommands); i += 2 {
				s = strings.ReplaceAll(s, symbolCommands[i], symbolCommands[i+1])
			}
			return s
		},
	}
}

// RenderFormula applies the substitution pipeline to a raw formula and returns
// its structured form.
func RenderFormula(raw string) Formula {
	s := stripMarkers(raw)
	for _, rule := range FormulaRules {
		s = rule.Apply(s)
	}
	l := &formulaLexer{runes: []rune(s)}
	return Formula(l.nodes(0))
}

func isMarker(r rune) bool {
	return r >= markSubOpen && r <= markFracClose
}

func stripMarkers(s string) string {
	if !strings.ContainsFunc(s, isMarker) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isMarker(r) {
			return -1
		}
		return r
	}, s)
}

type formulaLexer struct {
	runes []rune
	pos   int
}

// nodes reads until stop (not consumed) or the end of input.
// Unbalanced markers are dropped.
func (l *formulaLexer) nodes(stop rune) []FormulaNode {
	var out []FormulaNode
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			out = append(out, FormulaNode{Kind: FormulaText, Text: text.String()})
			text.Reset()
		}
	}
	for l.pos < len(l.runes) {
		r := l.runes[l.pos]
		if stop != 0 && r == stop {
			break
		}
		l.pos++
		switch r {
		case markSubOpen:
			flush()
			out = append(out, FormulaNode{Kind: FormulaSub, Children: l.group(markSubClose)})
		case markSupOpen:
			flush()
			out = append(out, FormulaNode{Kind: FormulaSup, Children: l.group(markSupClose)})
		case markFracOpen:
			flush()
			num := l.group(markFracMid)
			den := l.group(markFracClose)
			out = append(out, FormulaNode{Kind: FormulaFrac, Numerator: num, Denominator: den})
		case markSubClose, markSupClose, markFracMid, markFracClose:
		default:
			text.WriteRune(r)
		}
	}
	flush()
	return out
}

func (l *formulaLexer) group(closer rune) []FormulaNode {
	children := l.nodes(closer)
	if l.pos < len(l.runes) && l.runes[l.pos] == closer {
		l.pos++
	}
	return children
}

// HTML returns the formula as an HTML fragment, e.g. "NO<sub>2</sub>".
// Text is escaped.
func (f Formula) HTML() string {
	var buf bytes.Buffer
	for _, n := range f.htmlNodes() {
		_ = html.Render(&buf, n)
	}
	return buf.String()
}

func (f Formula) htmlNodes() []*html.Node {
	var out []*html.Node
	for _, node := range f {
		switch node.Kind {
		case FormulaText:
			out = append(out, textNode(node.Text))
		case FormulaSub:
			out = append(out, elementNode(atom.Sub, "", Formula(node.Children).htmlNodes()...))
		case FormulaSup:
			out = append(out, elementNode(atom.Sup, "", Formula(node.Children).htmlNodes()...))
		case FormulaFrac:
			out = append(out, elementNode(atom.Span, "fraction",
				elementNode(atom.Span, "numerator", Formula(node.Numerator).htmlNodes()...),
				elementNode(atom.Span, "denominator", Formula(node.Denominator).htmlNodes()...),
			))
		}
	}
	return out
}

var (
	subscriptRunes = map[rune]rune{
		'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
		'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
		'+': '₊', '-': '₋', 'a': 'ₐ', 'e': 'ₑ', 'o': 'ₒ',
		'x': 'ₓ', 'h': 'ₕ', 'k': 'ₖ', 'l': 'ₗ', 'm': 'ₘ',
		'n': 'ₙ', 'p': 'ₚ', 's': 'ₛ', 't': 'ₜ', 'i': 'ᵢ',
		'j': 'ⱼ', 'r': 'ᵣ', 'u': 'ᵤ', 'v': 'ᵥ',
	}
	superscriptRunes = map[rune]rune{
		'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
		'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
		'+': '⁺', '-': '⁻', 'n': 'ⁿ', 'i': 'ⁱ',
	}
)

// Text returns a plain Unicode rendering for terminals:
// "K_c = [N₂O₄]/[NO₂]²".
func (f Formula) Text() string {
	var sb strings.Builder
	for _, node := range f {
		switch node.Kind {
		case FormulaText:
			sb.WriteString(node.Text)
		case FormulaSub:
			sb.WriteString(script(Formula(node.Children).Text(), subscriptRunes, "_"))
		case FormulaSup:
			sb.WriteString(script(Formula(node.Children).Text(), superscriptRunes, "^"))
		case FormulaFrac:
			sb.WriteString(group(Formula(node.Numerator).Text()))
			sb.WriteString("/")
			sb.WriteString(group(Formula(node.Denominator).Text()))
		}
	}
	return sb.String()
}

// script maps s through table, falling back to a prefixed (possibly bracketed) form
// when any rune has no Unicode counterpart.
func script(s string, table map[rune]rune, prefix string) string {
	mapped := make([]rune, 0, len(s))
	for _, r := range s {
		m, ok := table[r]
		if !ok {
			if len([]rune(s)) == 1 {
				return prefix + s
			}
			return prefix + "(" + s + ")"
		}
		mapped = append(mapped, m)
	}
	return string(mapped)
}

func group(s string) string {
	if strings.ContainsAny(s, " +-*/·×=") {
		return "(" + s + ")"
	}
	return s
}
