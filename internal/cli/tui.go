package cli

import (
	"context"

	"github.com/aretw0/chembot/internal/presentation/tui"
)

// RunTUI runs the full-screen terminal interface.
func RunTUI(opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	logger := createSessionLogger(cfg, opts.Debug)

	session, deps, err := createSession(cfg, logger, nil)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()
	watchLibrary(sigCtx, deps.Library, logger)

	tuiOpts := []tui.Option{tui.WithMaxInputSize(cfg.MaxInputSize)}
	render, err := tui.NewRenderer(cfg.Render.Style, cfg.Render.Width)
	if err != nil {
		logger.Warn("falling back to plain text output", "err", err)
	} else {
		tuiOpts = append(tuiOpts, tui.WithRenderer(render))
	}

	err = tui.Run(sigCtx, session, tuiOpts...)
	if sigCtx.Err() != nil {
		return nil
	}
	return handleExecutionError(err)
}
