package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/loam"

	loamadapter "github.com/aretw0/chembot/pkg/adapters/loam"
	"github.com/aretw0/chembot/pkg/chat"
	"github.com/aretw0/chembot/pkg/domain"
)

// solutions seeded into a new library. The first matches the built-in sample
// so the generated library can be compared against a session without one.
var solutions = []domain.Solution{
	{
		ID:        "2024/may-june/p2v1-q3",
		Title:     "Chemical Equilibrium Problem",
		Selection: domain.PaperSelection{Year: 2024, Session: domain.SessionMayJune, PaperNumber: 2, Variant: 1, QuestionNumber: 3},
		Content:   chat.SampleContent,
	},
	{
		ID:        "2023/oct-nov/p4v2-q1a",
		Title:     "Moles of Calcium Carbonate",
		Selection: domain.PaperSelection{Year: 2023, Session: domain.SessionOctNov, PaperNumber: 4, Variant: 2, QuestionNumber: 1, Subpart: "a"},
		Content: `## Moles of Calcium Carbonate

**Question:** How many moles are in 25.0 g of $CaCO_3$?

Molar mass of $CaCO_3$ = 40.1 + 12.0 + 3(16.0) = 100.1 g/mol
n = 25.0 / 100.1 = 0.250 mol

**Answer:** 0.250 mol of $CaCO_3$`,
	},
	{
		ID:        "2022/feb-march/p2v2-q5",
		Title:     "Enthalpy of Combustion",
		Selection: domain.PaperSelection{Year: 2022, Session: domain.SessionFebMarch, PaperNumber: 2, Variant: 2, QuestionNumber: 5},
		Content: `## Enthalpy of Combustion

**Given data:**

| Quantity | Value |
|---|---|
| Mass of water | 200 g |
| Temperature rise | 12.5 K |
| Mass of ethanol burned | 0.46 g |

q = 200 × 4.18 × 12.5 = 10450 J
n = 0.46 / 46.0 = 0.0100 mol
ΔH = -10.45 / 0.0100 = -1045 kJ/mol

**Answer:** $\Delta H_c$ = -1045 kJ/mol`,
	},
}

func main() {
	targetDir := "examples/library"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		check(err)
	}

	fmt.Printf("Generating solution library in: %s\n", targetDir)

	// No versioning: plain Markdown files an author can edit.
	repo, err := loam.Init(targetDir, loam.WithVersioning(false))
	check(err)

	typedRepo := loam.NewTypedRepository[loamadapter.SolutionMetadata](repo)
	ctx := context.TODO()

	for _, s := range solutions {
		err := typedRepo.Save(ctx, &loam.DocumentModel[loamadapter.SolutionMetadata]{
			ID:      s.ID,
			Content: s.Content,
			Data:    loamadapter.FromSolution(s),
		})
		check(err)
		fmt.Printf("  %s (%s)\n", s.ID, s.Selection.Key())
	}

	fmt.Println("Done. Check it with: chembot validate", targetDir)
}

func check(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
