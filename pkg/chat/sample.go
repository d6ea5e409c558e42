package chat

import "github.com/aretw0/chembot/pkg/domain"

// SampleContent is the worked solution shown when the library has nothing for
// a selection.
const SampleContent = `## Chemical Equilibrium Problem

**Question:** Calculate the equilibrium constant for the reaction:
$2NO_2(g) \rightarrow N_2O_4(g)$ at 298K

**Solution:**

Given data:
- Initial concentration of $NO_2$: 0.0400 M
- Equilibrium concentration of $NO_2$: 0.0292 M
- Temperature: 298 K

Step 1: Calculate the change in concentration
$\Delta [NO_2] = 0.0400 - 0.0292 = 0.0108$ M

Step 2: Use stoichiometry to find $[N_2O_4]$ at equilibrium
Since 2 moles of $NO_2$ form 1 mole of $N_2O_4$:
$[N_2O_4]_{eq} = \frac{\Delta [NO_2]}{2} = \frac{0.0108}{2} = 0.0054$ M

Step 3: Calculate the equilibrium constant
$K_c = \frac{[N_2O_4]}{[NO_2]^2}$

$K_c = \frac{0.0054}{(0.0292)^2} = \frac{0.0054}{0.000853} = 6.33$

**Answer:** The equilibrium constant $K_c = 6.33$ at 298K

Therefore, the reaction favors the formation of $N_2O_4$ at this temperature.
`

// Sample returns the built-in solution for sel.
func Sample(sel domain.PaperSelection) domain.Solution {
	return domain.Solution{
		ID:        "sample",
		Selection: sel,
		Title:     "Chemical Equilibrium Problem",
		Content:   SampleContent,
	}
}
