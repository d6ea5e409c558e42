package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/chembot/internal/config"
	"github.com/aretw0/chembot/internal/presentation/tui"
	"github.com/aretw0/chembot/pkg/runner"
)

// RunChat runs a line-based conversation on the given streams. In JSON mode
// every action is one NDJSON line and input errors end the session.
func RunChat(opts Options, stdio IO) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	logger := createSessionLogger(cfg, opts.Debug)
	headless := opts.Headless || opts.JSON

	session, deps, err := createSession(cfg, logger, nil)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()
	watchLibrary(sigCtx, deps.Library, logger)

	if !headless {
		tui.PrintBanner(stdio.Out)
	}

	r := runner.NewRunner(
		runner.WithLogger(logger),
		runner.WithHeadless(headless),
		runner.WithInputHandler(createHandler(cfg, opts, stdio, logger)),
	)
	runErr := r.Run(sigCtx, session)

	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}
	if !headless {
		logCompletion(stdio.Out, runErr, sigCtx.Signal())
	}
	return handleExecutionError(runErr)
}

func createHandler(cfg config.Config, opts Options, stdio IO, logger *slog.Logger) runner.IOHandler {
	if opts.JSON {
		return runner.NewJSONHandler(stdio.In, stdio.Out)
	}

	handlerOpts := []runner.TextHandlerOption{runner.WithTextHandlerMaxInput(cfg.MaxInputSize)}
	if !opts.Headless {
		render, err := tui.NewRenderer(cfg.Render.Style, cfg.Render.Width)
		if err != nil {
			logger.Warn("falling back to plain text output", "err", err)
		} else {
			handlerOpts = append(handlerOpts, runner.WithTextHandlerRenderer(render))
		}
	}
	return runner.NewTextHandler(stdio.In, stdio.Out, handlerOpts...)
}
