package ports

import (
	"context"

	"github.com/aretw0/chembot/pkg/domain"
)

// Shell defines the interactive core driven by the runners and front ends.
// It owns its state; callers only render and feed input.
type Shell interface {
	// Render returns what the host should show and ask for next, and whether
	// the conversation has ended.
	Render(ctx context.Context) ([]domain.ActionRequest, bool, error)

	// Navigate interprets one unit of user input for the current screen.
	Navigate(ctx context.Context, input any) error

	// Inspect returns the flow graph for introspection (e.g. 'chembot graph').
	Inspect() []domain.Node
}
