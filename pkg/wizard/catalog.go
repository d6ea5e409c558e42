package wizard

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/chembot/pkg/domain"
)

// Catalog lists what the wizard offers.
type Catalog struct {
	Years       []int
	Sessions    []domain.Session
	Papers      []int
	Variants    []int
	MaxQuestion int

	// SessionVariants restricts the variants offered for a session.
	// Sessions not listed offer every variant.
	SessionVariants map[domain.Session][]int
}

// DefaultCatalog returns the past papers ChemBot knows about.
func DefaultCatalog() Catalog {
	return Catalog{
		Years:       []int{2024, 2023, 2022, 2021, 2020, 2019, 2018, 2017, 2016, 2015},
		Sessions:    slices.Clone(domain.Sessions),
		Papers:      []int{1, 2, 3, 4, 5},
		Variants:    []int{1, 2, 3},
		MaxQuestion: 40,
		SessionVariants: map[domain.Session][]int{
			domain.SessionFebMarch: {2},
		},
	}
}

// VariantsFor returns the variants offered for session.
func (c Catalog) VariantsFor(session domain.Session) []int {
	if restricted, ok := c.SessionVariants[session]; ok {
		return restricted
	}
	return c.Variants
}

// PaperHint describes the accepted paper numbers, e.g. "Valid options: 1, 2, 3, 4, 5".
func (c Catalog) PaperHint() string {
	return "Valid options: " + joinInts(c.Papers)
}

// Validate checks that sel is complete and offered by the catalog.
func (c Catalog) Validate(sel domain.PaperSelection) error {
	if err := sel.Validate(); err != nil {
		return err
	}
	switch {
	case !slices.Contains(c.Years, sel.Year):
		return fmt.Errorf("%w: year %d is not available", domain.ErrInvalidSelection, sel.Year)
	case !slices.Contains(c.Sessions, sel.Session):
		return fmt.Errorf("%w: session %q is not available", domain.ErrInvalidSelection, sel.Session)
	case !slices.Contains(c.Papers, sel.PaperNumber):
		return fmt.Errorf("%w: paper %d is not available", domain.ErrInvalidSelection, sel.PaperNumber)
	case !slices.Contains(c.VariantsFor(sel.Session), sel.Variant):
		return fmt.Errorf("%w: variant %d is not offered for %s", domain.ErrInvalidSelection, sel.Variant, sel.Session.Label())
	case c.MaxQuestion > 0 && sel.QuestionNumber > c.MaxQuestion:
		return fmt.Errorf("%w: question %d is above %d", domain.ErrInvalidSelection, sel.QuestionNumber, c.MaxQuestion)
	}
	return nil
}

// parsePaper accepts a paper number ("2") or a paper code that also names the
// variant ("21" is paper 2, variant 1). The returned variant is 0 when absent.
func (c Catalog) parsePaper(s string) (paper, variant int, err error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, 0, fmt.Errorf("%w: paper %q is not a number", domain.ErrInvalidChoice, s)
	}
	if slices.Contains(c.Papers, n) {
		return n, 0, nil
	}
	if n >= 10 && n < 100 && slices.Contains(c.Papers, n/10) && slices.Contains(c.Variants, n%10) {
		return n / 10, n % 10, nil
	}
	return 0, 0, fmt.Errorf("%w: paper %q (%s)", domain.ErrInvalidChoice, s, c.PaperHint())
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
