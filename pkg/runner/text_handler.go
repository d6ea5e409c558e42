package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/chembot/pkg/document"
	"github.com/aretw0/chembot/pkg/domain"
)

// BotName labels bot messages in the text transcript.
const BotName = "ChemBot"

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Reader       *bufio.Reader
	Writer       io.Writer
	Renderer     ContentRenderer
	MaxInputSize int

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the Markdown renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextHandlerMaxInput overrides the input size limit.
func WithTextHandlerMaxInput(size int) TextHandlerOption {
	return func(h *TextHandler) {
		h.MaxInputSize = size
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

// pump reads lines in the background so Input can give up on cancellation
// without losing the read in flight.
func (h *TextHandler) pump() {
	for {
		text, err := h.Reader.ReadString('\n')

		// If we got text (even with EOF), send it
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}

		if err != nil {
			if err == io.EOF {
				close(h.inputChan)
				return
			}
			h.inputChan <- inputResult{err: err}
			// Backoff for non-fatal errors to prevent CPU spikes on persistent failure
			time.Sleep(50 * time.Millisecond)
		}
	}
}

func (h *TextHandler) Output(ctx context.Context, actions []domain.ActionRequest) (bool, error) {
	for _, act := range actions {
		switch act.Type {
		case domain.ActionRenderContent:
			switch p := act.Payload.(type) {
			case string:
				fmt.Fprintln(h.Writer, strings.TrimSpace(h.render(p)))
			case domain.Message:
				h.writeMessage(p)
			}
		case domain.ActionSystemMessage:
			if msg, ok := act.Payload.(string); ok {
				h.writeSystem(msg)
			}
		case domain.ActionRequestInput:
			if req, ok := act.Payload.(domain.InputRequest); ok {
				h.writeRequest(req)
			}
		}
	}
	return needsInput(actions), nil
}

func (h *TextHandler) render(markdown string) string {
	if h.Renderer == nil {
		return markdown
	}
	rendered, err := h.Renderer(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}

func (h *TextHandler) writeMessage(m domain.Message) {
	who := "You"
	if m.IsBot() {
		who = BotName
	}
	fmt.Fprintf(h.Writer, "\n[%s] %s:\n", m.Timestamp, who)

	body := m.Content
	if m.IsDocument() {
		body = h.render(document.RenderMarkdown(document.Parse(m.Content)))
	}
	fmt.Fprintln(h.Writer, strings.TrimSpace(body))

	for _, a := range m.Attachments {
		fmt.Fprintf(h.Writer, "  [%s] %s\n", a.Type, a.Name)
	}
}

func (h *TextHandler) writeRequest(req domain.InputRequest) {
	if req.Type != domain.InputChoice {
		return
	}
	if req.Prompt != "" {
		fmt.Fprintln(h.Writer, req.Prompt+":")
	}
	for i, opt := range req.Options {
		fmt.Fprintf(h.Writer, "  %d) %s\n", i+1, opt)
	}
}

func (h *TextHandler) writeSystem(msg string) {
	fmt.Fprintf(h.Writer, "\n[System] %s\n", msg)
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	h.initPump()

	for {
		// Only show prompt if context is not yet done
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprint(h.Writer, "> ")
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}
			clean, err := SanitizeInputLimit(strings.TrimSpace(res.text), h.limit())
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}

func (h *TextHandler) limit() int {
	if h.MaxInputSize > 0 {
		return h.MaxInputSize
	}
	return getMaxInputSize()
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	h.writeSystem(msg)
	return nil
}
