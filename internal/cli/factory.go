package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/chembot/internal/config"
	loamadapter "github.com/aretw0/chembot/pkg/adapters/loam"
	"github.com/aretw0/chembot/pkg/chat"
	"github.com/aretw0/chembot/pkg/domain"
	"github.com/aretw0/chembot/pkg/observability"
)

// sessionDeps are the pieces created alongside a session that some commands
// need to reach afterwards.
type sessionDeps struct {
	Library *loamadapter.Library
	Metrics *observability.Metrics
}

// createSession builds a chat session from cfg. The Loam library is only
// opened when a path is configured; otherwise the built-in sample answers
// every selection. hooks run after the metrics and logging hooks, and extra
// options are applied last.
func createSession(cfg config.Config, logger *slog.Logger, hooks []domain.LifecycleHooks, extra ...chat.Option) (*chat.Session, sessionDeps, error) {
	deps := sessionDeps{Metrics: observability.NewMetrics()}

	hooks = append([]domain.LifecycleHooks{
		deps.Metrics.Hooks(),
		observability.LoggingHooks(logger),
	}, hooks...)

	opts := []chat.Option{
		chat.WithLogger(logger),
		chat.WithLifecycleHooks(observability.ChainHooks(hooks...)),
		chat.WithReplyDelay(cfg.Chat.ReplyDelay),
		chat.WithGreeting(cfg.Chat.Greeting),
		chat.WithReplies(cfg.Chat.Replies...),
	}

	if cfg.Library != "" {
		lib, err := loamadapter.Open(cfg.Library, loamadapter.WithLogger(logger))
		if err != nil {
			return nil, sessionDeps{}, fmt.Errorf("error opening library %s: %w", cfg.Library, err)
		}
		deps.Library = lib
		opts = append(opts, chat.WithLibrary(lib))
		logger.Info("solution library opened", "path", cfg.Library)
	}

	return chat.New(append(opts, extra...)...), deps, nil
}

// watchLibrary keeps the library cache fresh while ctx is alive.
func watchLibrary(ctx context.Context, lib *loamadapter.Library, logger *slog.Logger) {
	if lib == nil {
		return
	}
	changes, err := lib.Watch(ctx)
	if err != nil {
		logger.Warn("library watcher unavailable", "err", err)
		return
	}
	go func() {
		for id := range changes {
			logger.Info("library reloaded", "changed", id)
		}
	}()
}
