// Package validator checks a solution library before it is served.
package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"

	loamadapter "github.com/aretw0/chembot/pkg/adapters/loam"
	"github.com/aretw0/chembot/pkg/document"
	"github.com/aretw0/chembot/pkg/wizard"
)

// ErrInvalidLibrary is returned when at least one document fails validation.
var ErrInvalidLibrary = errors.New("invalid library")

// Report summarises a validated library.
type Report struct {
	Solutions int
	Problems  []string
}

// Err returns nil for a clean report.
func (r Report) Err() error {
	if len(r.Problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: found %d errors:\n- %s", ErrInvalidLibrary, len(r.Problems), strings.Join(r.Problems, "\n- "))
}

// ValidateLibrary checks every document in repo: front matter must decode to
// a selection the wizard can produce, no two documents may answer the same
// selection, and the content must parse to at least one element.
func ValidateLibrary(ctx context.Context, repo core.Repository, catalog wizard.Catalog) (Report, error) {
	typedRepo := loam.NewTypedRepository[loamadapter.SolutionMetadata](repo)

	docs, err := typedRepo.List(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list library: %w", err)
	}

	var report Report
	seen := make(map[string]string, len(docs))
	for _, doc := range docs {
		s, err := loamadapter.ToSolution(doc.ID, doc.Data, doc.Content)
		if err != nil {
			report.Problems = append(report.Problems, fmt.Sprintf("'%s': %v", doc.ID, err))
			continue
		}
		if err := catalog.Validate(s.Selection); err != nil {
			report.Problems = append(report.Problems, fmt.Sprintf("'%s': %v", doc.ID, err))
			continue
		}

		key := s.Selection.Key()
		if other, ok := seen[key]; ok {
			report.Problems = append(report.Problems, fmt.Sprintf("'%s': duplicates '%s' (%s)", doc.ID, other, key))
			continue
		}
		seen[key] = doc.ID

		if len(document.Parse(s.Content)) == 0 {
			report.Problems = append(report.Problems, fmt.Sprintf("'%s': content is empty", doc.ID))
			continue
		}
		report.Solutions++
	}

	if len(docs) == 0 {
		report.Problems = append(report.Problems, "library has no documents")
	}
	return report, nil
}
