package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/chembot/pkg/domain"
	"github.com/aretw0/chembot/pkg/ports"
)

// SolutionLibraryContractTest is a reusable test suite that verifies if an adapter complies with ports.SolutionLibrary.
// The library must hold exactly the solutions in want.
func SolutionLibraryContractTest(t *testing.T, lib ports.SolutionLibrary, want []domain.Solution) {
	t.Helper()
	ctx := context.Background()

	// 1. Test Find (Success)
	t.Run("Find_Success", func(t *testing.T) {
		for _, s := range want {
			got, err := lib.Find(ctx, s.Selection)
			if err != nil {
				t.Fatalf("unexpected error finding %s: %v", s.Selection.Key(), err)
			}
			if got.Content != s.Content {
				t.Errorf("content mismatch for %s. got %q, want %q", s.Selection.Key(), got.Content, s.Content)
			}
		}
	})

	// 2. Test Find (NotFound)
	t.Run("Find_NotFound", func(t *testing.T) {
		sel := domain.PaperSelection{Year: 1900, Session: domain.SessionMayJune, PaperNumber: 1, Variant: 1, QuestionNumber: 1}
		_, err := lib.Find(ctx, sel)
		if !errors.Is(err, domain.ErrSolutionNotFound) {
			t.Errorf("expected ErrSolutionNotFound, got %v", err)
		}
	})

	// 3. Test List
	t.Run("List", func(t *testing.T) {
		got, err := lib.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing solutions: %v", err)
		}
		if len(got) != len(want) {
			t.Errorf("expected %d solutions, got %d", len(want), len(got))
		}

		lookup := make(map[string]bool)
		for _, s := range got {
			lookup[s.Selection.Key()] = true
		}
		for _, s := range want {
			if !lookup[s.Selection.Key()] {
				t.Errorf("solution %s missing from list", s.Selection.Key())
			}
		}
	})
}
