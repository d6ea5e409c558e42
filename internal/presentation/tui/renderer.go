package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// StyleAuto detects a light or dark terminal background.
const StyleAuto = "auto"

// NewRenderer returns a function that renders Markdown using glamour.
// style is a glamour standard style name ("dark", "light", "notty"), a path
// to a JSON style file, or StyleAuto. width <= 0 keeps glamour's default wrap.
func NewRenderer(style string, width int) (func(string) (string, error), error) {
	opts := []glamour.TermRendererOption{glamour.WithEmoji()}
	if style == "" || style == StyleAuto {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}
