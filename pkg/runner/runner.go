package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/chembot/pkg/chat"
	"github.com/aretw0/chembot/pkg/ports"
)

// Runner handles the execution loop of a Shell using the provided IO.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on Stdin/Stdout.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Headless suppresses the banner and makes input errors fatal.
	Headless bool

	// Recoverable reports whether a Navigate error should be shown to the
	// user instead of ending the run. Defaults to chat.IsInputError.
	Recoverable func(error) bool
}

// NewRunner creates a new Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Recoverable: chat.IsInputError,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run renders and navigates shell until the conversation ends, the input is
// exhausted or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, shell ports.Shell) error {
	handler := r.resolveHandler()

	signals := NewSignalManager(ctx)
	defer signals.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}
		current := signals.Context()

		actions, done, err := shell.Render(current)
		if err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if done {
			return nil
		}

		needsInput, err := handler.Output(current, actions)
		if err != nil {
			return fmt.Errorf("output error: %w", err)
		}
		if !needsInput {
			continue
		}

		line, err := handler.Input(current)
		if err != nil {
			signals.CheckRace()
			if errors.Is(err, io.EOF) || current.Err() != nil {
				r.Logger.Debug("runner input closed", "err", err)
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		if v := strings.ToLower(line); v == "exit" || v == "quit" {
			return nil
		}

		input, err := r.decode(handler, line)
		if err == nil {
			err = shell.Navigate(current, input)
		}
		if err == nil {
			continue
		}

		switch {
		case errors.Is(err, context.Canceled) && signals.Interrupted():
			// Ctrl+C while the bot is replying cancels the reply only.
			r.Logger.Debug("navigation interrupted")
			signals.Reset()
			if err := handler.SystemOutput(ctx, "Interrupted."); err != nil {
				return err
			}
		case !r.Headless && r.Recoverable != nil && r.Recoverable(err):
			r.Logger.Debug("input rejected", "err", err)
			if err := handler.SystemOutput(ctx, err.Error()); err != nil {
				return err
			}
		default:
			return fmt.Errorf("navigation error: %w", err)
		}
	}
}

func (r *Runner) decode(handler IOHandler, line string) (any, error) {
	if dec, ok := handler.(InputDecoder); ok {
		return dec.DecodeInput(line)
	}
	return line, nil
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler != nil {
		return r.Handler
	}
	th := NewTextHandler(os.Stdin, os.Stdout)
	if !r.Headless {
		fmt.Fprintln(th.Writer, "--- ChemBot CLI (Runner) ---")
	}
	// Memoize to prevent creating new Pumps on subsequent Run() calls
	r.Handler = th
	return th
}
