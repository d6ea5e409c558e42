package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aretw0/loam"

	"github.com/aretw0/chembot/internal/validator"
	"github.com/aretw0/chembot/pkg/wizard"
)

// RunValidate checks the solution library at dir, falling back to the
// configured library and then the working directory.
func RunValidate(opts Options, dir string, stdio IO) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	if dir == "" {
		dir = cfg.Library
	}
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(abs, loam.WithStrict(true), loam.WithReadOnly(true))
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}

	report, err := validator.ValidateLibrary(context.Background(), repo, wizard.DefaultCatalog())
	if err != nil {
		return err
	}
	if err := report.Err(); err != nil {
		return err
	}

	fmt.Fprintf(stdio.Out, "Library is valid! ✅ (%d solutions)\n", report.Solutions)
	return nil
}
