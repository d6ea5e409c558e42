package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/aretw0/chembot/internal/config"
	"github.com/aretw0/chembot/internal/presentation/tui"
	"github.com/aretw0/chembot/pkg/document"
)

// Output formats of the render command.
const (
	FormatAuto     = "auto"
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatText     = "text"
	FormatANSI     = "ansi"
)

// ErrUnknownFormat is returned for a --format value the renderer does not know.
var ErrUnknownFormat = errors.New("unknown format")

// RenderOptions configures the render command.
type RenderOptions struct {
	Options
	// Path is the document to render; "" or "-" reads stdin.
	Path   string
	Format string
	Watch  bool
}

// RunRender renders one solution document. With Watch it renders again each
// time the file changes, until interrupted.
func RunRender(opts RenderOptions, stdio IO) error {
	cfg, err := LoadConfig(opts.Options)
	if err != nil {
		return err
	}
	logger := createSessionLogger(cfg, opts.Debug)

	format, err := resolveFormat(opts.Format, stdio.Out)
	if err != nil {
		return err
	}

	r := &documentRenderer{cfg: cfg, format: format, logger: logger}

	if !opts.Watch {
		content, err := readDocument(opts.Path, stdio.In)
		if err != nil {
			return err
		}
		return r.render(stdio.Out, content)
	}

	if opts.Path == "" || opts.Path == "-" {
		return fmt.Errorf("--watch needs a file path")
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	renderFile := func() {
		content, err := readDocument(opts.Path, nil)
		if err == nil {
			err = r.render(stdio.Out, content)
		}
		if err != nil {
			printSystemMessage(stdio.Err, "Render failed: %v", err)
			return
		}
		printSystemMessage(stdio.Err, "Rendered '%s'. Waiting for changes...", opts.Path)
	}

	renderFile()
	err = watchFile(sigCtx, opts.Path, defaultDebounce, logger, renderFile)
	return handleExecutionError(err)
}

// resolveFormat picks ANSI for terminals and plain text otherwise when the
// format is auto.
func resolveFormat(format string, out io.Writer) (string, error) {
	switch f := strings.ToLower(format); f {
	case "", FormatAuto:
		if file, ok := out.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
			return FormatANSI, nil
		}
		return FormatText, nil
	case "md":
		return FormatMarkdown, nil
	case FormatHTML, FormatMarkdown, FormatText, FormatANSI:
		return f, nil
	}
	return "", fmt.Errorf("%w %q, use %s, %s, %s or %s", ErrUnknownFormat, format, FormatHTML, FormatMarkdown, FormatText, FormatANSI)
}

func readDocument(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return stripFrontMatter(string(data)), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return stripFrontMatter(string(data)), nil
}

// stripFrontMatter drops a leading YAML front matter block, so library
// documents render the same as in the chat.
func stripFrontMatter(s string) string {
	rest, ok := strings.CutPrefix(strings.ReplaceAll(s, "\r\n", "\n"), "---\n")
	if !ok {
		return s
	}
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return s
	}
	return strings.TrimLeft(rest[end+len("\n---"):], "\n")
}

type documentRenderer struct {
	cfg    config.Config
	format string
	logger *slog.Logger
	ansi   func(string) (string, error)
}

func (r *documentRenderer) render(w io.Writer, content string) error {
	start := time.Now()
	elements := document.Parse(content)

	var err error
	switch r.format {
	case FormatHTML:
		if err = document.RenderHTML(w, elements); err == nil {
			_, err = io.WriteString(w, "\n")
		}
	case FormatMarkdown:
		_, err = io.WriteString(w, document.RenderMarkdown(elements)+"\n")
	case FormatText:
		_, err = io.WriteString(w, document.RenderText(elements, r.cfg.Render.Width)+"\n")
	case FormatANSI:
		err = r.renderANSI(w, elements)
	}
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", r.format, err)
	}

	r.logger.Debug("document rendered", "format", r.format, "elements", len(elements), "elapsed", time.Since(start))
	return nil
}

func (r *documentRenderer) renderANSI(w io.Writer, elements []document.Element) error {
	if r.ansi == nil {
		render, err := tui.NewRenderer(r.cfg.Render.Style, r.cfg.Render.Width)
		if err != nil {
			return err
		}
		r.ansi = render
	}
	out, err := r.ansi(document.RenderMarkdown(elements))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
