package ports

import (
	"context"

	"github.com/aretw0/chembot/pkg/domain"
)

// SolutionLibrary defines where worked solutions come from.
// This allows the storage layer (Loam, Memory) to be decoupled from the chat shell.
type SolutionLibrary interface {
	// Find returns the solution answering sel.
	// It returns domain.ErrSolutionNotFound when nothing matches.
	Find(ctx context.Context, sel domain.PaperSelection) (domain.Solution, error)

	// List returns every solution in the library, in a deterministic order.
	List(ctx context.Context) ([]domain.Solution, error)
}

// Watchable defines an interface for libraries that can notify about backend changes.
// This is typically used for hot-reload while authoring solutions.
type Watchable interface {
	// Watch returns a channel that receives the ID of each changed document.
	Watch(ctx context.Context) (<-chan string, error)
}
