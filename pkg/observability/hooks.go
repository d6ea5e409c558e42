package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/chembot/pkg/domain"
)

// Hooks returns lifecycle hooks that record conversation activity.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateChange: func(_ context.Context, e *domain.StateEvent) {
			m.StateChanges.WithLabelValues(string(e.To)).Inc()
		},
		OnMessage: func(_ context.Context, e *domain.MessageEvent) {
			m.Messages.WithLabelValues(string(e.Message.Role)).Inc()
		},
		OnSelectionComplete: func(_ context.Context, e *domain.SelectionEvent) {
			m.Selections.WithLabelValues(boolLabel(e.Found)).Inc()
		},
	}
}

// LoggingHooks returns lifecycle hooks that write each event to logger.
// Message content is not logged, only its size.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateChange: func(ctx context.Context, e *domain.StateEvent) {
			logger.InfoContext(ctx, "state_change", "from", e.From, "to", e.To)
		},
		OnMessage: func(ctx context.Context, e *domain.MessageEvent) {
			logger.DebugContext(ctx, "message",
				"id", e.Message.ID,
				"role", e.Message.Role,
				"bytes", len(e.Message.Content),
				"attachments", len(e.Message.Attachments),
			)
		},
		OnSelectionComplete: func(ctx context.Context, e *domain.SelectionEvent) {
			logger.InfoContext(ctx, "selection_complete", "selection", e.Selection.Key(), "found", e.Found)
		},
	}
}

// ChainHooks combines hooks so each event reaches all of them in order.
func ChainHooks(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range hooks {
		out.OnStateChange = chain(out.OnStateChange, h.OnStateChange)
		out.OnMessage = chain(out.OnMessage, h.OnMessage)
		out.OnSelectionComplete = chain(out.OnSelectionComplete, h.OnSelectionComplete)
	}
	return out
}

func chain[E any](first, second func(context.Context, E)) func(context.Context, E) {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	}
	return func(ctx context.Context, e E) {
		first(ctx, e)
		second(ctx, e)
	}
}
