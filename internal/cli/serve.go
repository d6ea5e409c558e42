package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/chembot/internal/config"
	httpadapter "github.com/aretw0/chembot/pkg/adapters/http"
	"github.com/aretw0/chembot/pkg/chat"
	"github.com/aretw0/chembot/pkg/domain"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions configures the serve command.
type ServeOptions struct {
	Options
	// Addr overrides server.addr from the config.
	Addr string
}

// RunServe serves the local web UI until interrupted.
func RunServe(opts ServeOptions, stdio IO) error {
	cfg, err := LoadConfig(opts.Options)
	if err != nil {
		return err
	}
	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}
	logger := createLogger(cfg)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	srv, err := newServer(sigCtx, cfg, logger)
	if err != nil {
		return err
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(stdio.Out, "ChemBot is running on http://%s", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-sigCtx.Done():
		logger.Info("shutting down", "signal", sigCtx.Signal())

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		printSystemMessage(stdio.Out, "Server stopped.")
		return nil
	}
}

// newServer wires a session, its event stream and metrics into an
// http.Server. The library watcher lives as long as ctx.
func newServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	streams := httpadapter.NewStreamManager(logger)

	session, deps, err := createSession(cfg, logger,
		[]domain.LifecycleHooks{streams.Hooks()},
		chat.WithAttachmentURL(httpadapter.AttachmentURL),
	)
	if err != nil {
		return nil, err
	}
	watchLibrary(ctx, deps.Library, logger)

	handler := httpadapter.NewHandler(session,
		httpadapter.WithStreams(streams),
		httpadapter.WithMetrics(deps.Metrics),
		httpadapter.WithLogger(logger),
		httpadapter.WithMaxUploadBytes(cfg.Server.MaxUploadBytes),
	)

	return &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}
