package loam

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	"github.com/aretw0/chembot/pkg/domain"
	"github.com/aretw0/loam"
)

// Library adapts a Loam repository of Markdown solutions to the
// ports.SolutionLibrary interface. Documents are decoded once and cached
// until the repository changes.
type Library struct {
	Repo *loam.TypedRepository[SolutionMetadata]

	logger *slog.Logger

	mu     sync.RWMutex
	cached []domain.Solution
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger used to report reloads.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) {
		l.logger = logger
	}
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[SolutionMetadata], opts ...Option) *Library {
	l := &Library{
		Repo:   repo,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open initializes a read-only Loam repository at path and wraps it.
func Open(path string, opts ...Option) (*Library, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numeric front matter consistent across serializers.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[SolutionMetadata](repo), opts...), nil
}

// Find returns the most specific solution for sel.
func (l *Library) Find(ctx context.Context, sel domain.PaperSelection) (domain.Solution, error) {
	all, err := l.load(ctx)
	if err != nil {
		return domain.Solution{}, err
	}
	if s, ok := domain.BestMatch(all, sel); ok {
		return s, nil
	}
	return domain.Solution{}, fmt.Errorf("%w: %s", domain.ErrSolutionNotFound, sel.Key())
}

// List returns every solution in the repository ordered by selection key.
func (l *Library) List(ctx context.Context) ([]domain.Solution, error) {
	all, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Solution, len(all))
	copy(out, all)
	return out, nil
}

// Invalidate drops the cached documents; the next call reloads them.
func (l *Library) Invalidate() {
	l.mu.Lock()
	l.cached = nil
	l.mu.Unlock()
}

func (l *Library) load(ctx context.Context) ([]domain.Solution, error) {
	l.mu.RLock()
	cached := l.cached
	l.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	solutions := make([]domain.Solution, 0, len(docs))
	for _, doc := range docs {
		s, err := ToSolution(doc.ID, doc.Data, doc.Content)
		if err != nil {
			return nil, fmt.Errorf("invalid solution document: %w", err)
		}

		key := s.Selection.Key()
		if existing, ok := seen[key]; ok {
			return nil, fmt.Errorf("collision detected: %s is answered by both '%s' and '%s'", key, existing, doc.ID)
		}
		seen[key] = doc.ID
		solutions = append(solutions, s)
	}
	sort.Slice(solutions, func(i, j int) bool {
		return solutions[i].Selection.Key() < solutions[j].Selection.Key()
	})

	l.mu.Lock()
	l.cached = solutions
	l.mu.Unlock()

	l.logger.Debug("solution library loaded", "solutions", len(solutions))
	return solutions, nil
}

// Watch implements ports.Watchable. Every change invalidates the cache before
// the changed document ID is forwarded.
func (l *Library) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				l.Invalidate()
				l.logger.Debug("solution document changed", "id", evt.ID)
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
