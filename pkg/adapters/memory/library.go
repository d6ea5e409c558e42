package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/chembot/pkg/domain"
)

// Library implements ports.SolutionLibrary over a fixed set of solutions.
// It is read-only after construction and safe for concurrent use.
type Library struct {
	solutions []domain.Solution
}

// NewLibrary creates a library from solutions. Two solutions for the same
// selection are rejected.
func NewLibrary(solutions ...domain.Solution) (*Library, error) {
	seen := make(map[string]string, len(solutions))
	out := make([]domain.Solution, 0, len(solutions))
	for _, s := range solutions {
		if err := s.Selection.Validate(); err != nil {
			return nil, fmt.Errorf("solution %q: %w", s.ID, err)
		}
		key := s.Selection.Key()
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("duplicate solution for %s: %q and %q", key, prev, s.ID)
		}
		seen[key] = s.ID
		if s.ID == "" {
			s.ID = key
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Selection.Key() < out[j].Selection.Key() })
	return &Library{solutions: out}, nil
}

// Find returns the most specific solution for sel.
func (l *Library) Find(ctx context.Context, sel domain.PaperSelection) (domain.Solution, error) {
	if s, ok := domain.BestMatch(l.solutions, sel); ok {
		return s, nil
	}
	return domain.Solution{}, fmt.Errorf("%w: %s", domain.ErrSolutionNotFound, sel.Key())
}

// List returns all solutions ordered by selection key.
func (l *Library) List(ctx context.Context) ([]domain.Solution, error) {
	out := make([]domain.Solution, len(l.solutions))
	copy(out, l.solutions)
	return out, nil
}
