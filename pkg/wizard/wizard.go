package wizard

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/chembot/pkg/domain"
)

// Step is one screen of the wizard.
type Step string

const (
	StepYear     Step = "year"
	StepSession  Step = "session"
	StepPaper    Step = "paper"
	StepVariant  Step = "variant"
	StepQuestion Step = "question"
	StepSubpart  Step = "subpart"
)

// Steps lists the wizard steps in order.
var Steps = []Step{StepYear, StepSession, StepPaper, StepVariant, StepQuestion, StepSubpart}

var stepTitles = map[Step]string{
	StepYear:     "Select Year",
	StepSession:  "Select Session",
	StepPaper:    "Enter Paper Number",
	StepVariant:  "Select Variant",
	StepQuestion: "Enter Question Number",
	StepSubpart:  "Enter Subpart (Optional)",
}

var stepPlaceholders = map[Step]string{
	StepPaper:    "e.g., 1, 2, 21",
	StepQuestion: "e.g., 1, 2, 3",
	StepSubpart:  "e.g., a, b, c, i, ii",
}

// Title returns the heading shown for the step.
func (s Step) Title() string {
	return stepTitles[s]
}

// Name returns the short label used in progress indicators, e.g. "Year".
func (s Step) Name() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Input reports whether the step is answered by picking an option or typing.
func (s Step) Input() domain.InputType {
	switch s {
	case StepYear, StepSession, StepVariant:
		return domain.InputChoice
	}
	return domain.InputText
}

// StepStatus is the position of a step relative to the current one.
type StepStatus string

const (
	StatusDone    StepStatus = "done"
	StatusCurrent StepStatus = "current"
	StatusPending StepStatus = "pending"
)

// Progress is one entry of the progress indicator.
type Progress struct {
	Step   Step
	Number int
	Status StepStatus
}

// Choice is a value offered on a choice step.
type Choice struct {
	Value string
	Label string
}

// Wizard walks the user through picking a past-paper question.
// It is not safe for concurrent use.
type Wizard struct {
	catalog Catalog
	index   int
	sel     domain.PaperSelection
	done    bool
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithCatalog replaces the default catalog.
func WithCatalog(c Catalog) Option {
	return func(w *Wizard) {
		w.catalog = c
	}
}

// New creates a wizard positioned on the first step.
func New(opts ...Option) *Wizard {
	w := &Wizard{catalog: DefaultCatalog()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Catalog returns the catalog the wizard offers.
func (w *Wizard) Catalog() Catalog {
	return w.catalog
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	return Steps[w.index]
}

// Title returns the heading of the current step.
func (w *Wizard) Title() string {
	return w.Step().Title()
}

// Hint returns helper text for the current step, if any.
func (w *Wizard) Hint() string {
	if w.Step() == StepPaper {
		return w.catalog.PaperHint()
	}
	return ""
}

// Placeholder returns example input for text steps.
func (w *Wizard) Placeholder() string {
	return stepPlaceholders[w.Step()]
}

// Options returns the choices offered on the current step. Text steps have none.
func (w *Wizard) Options() []Choice {
	switch w.Step() {
	case StepYear:
		return intOptions(w.catalog.Years)
	case StepSession:
		opts := make([]Choice, 0, len(w.catalog.Sessions))
		for _, s := range w.catalog.Sessions {
			opts = append(opts, Choice{Value: string(s), Label: s.Label()})
		}
		return opts
	case StepVariant:
		return intOptions(w.catalog.VariantsFor(w.sel.Session))
	}
	return nil
}

// InputRequest describes the input the current step needs.
func (w *Wizard) InputRequest() domain.InputRequest {
	req := domain.InputRequest{
		Type:        w.Step().Input(),
		Prompt:      w.Title(),
		Placeholder: w.Placeholder(),
		Default:     w.Value(w.Step()),
	}
	for _, opt := range w.Options() {
		req.Options = append(req.Options, opt.Label)
	}
	return req
}

// Value returns the current value of step as text, or "" when unset.
func (w *Wizard) Value(step Step) string {
	switch step {
	case StepYear:
		return itoa(w.sel.Year)
	case StepSession:
		return string(w.sel.Session)
	case StepPaper:
		return itoa(w.sel.PaperNumber)
	case StepVariant:
		return itoa(w.sel.Variant)
	case StepQuestion:
		return itoa(w.sel.QuestionNumber)
	case StepSubpart:
		return w.sel.Subpart
	}
	return ""
}

// Select sets the value of the current step. Choice steps advance on a valid
// selection; text steps only store the value and wait for Next.
func (w *Wizard) Select(value string) error {
	if w.done {
		return domain.ErrWrongState
	}
	value = strings.TrimSpace(value)
	switch w.Step() {
	case StepYear:
		year, err := w.pick(value, w.catalog.Years)
		if err != nil {
			return err
		}
		w.sel.Year = year
	case StepSession:
		session, err := domain.ParseSession(value)
		if err != nil {
			return err
		}
		if !slices.Contains(w.catalog.Sessions, session) {
			return fmt.Errorf("%w: session %q", domain.ErrInvalidChoice, value)
		}
		w.sel.Session = session
		if w.sel.Variant != 0 && !slices.Contains(w.catalog.VariantsFor(session), w.sel.Variant) {
			w.sel.Variant = 0
		}
	case StepPaper:
		paper, variant, err := w.catalog.parsePaper(value)
		if err != nil {
			return err
		}
		w.sel.PaperNumber = paper
		if variant != 0 && slices.Contains(w.catalog.VariantsFor(w.sel.Session), variant) {
			w.sel.Variant = variant
		}
		return nil
	case StepVariant:
		variant, err := w.pick(value, w.catalog.VariantsFor(w.sel.Session))
		if err != nil {
			return err
		}
		w.sel.Variant = variant
	case StepQuestion:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 || (w.catalog.MaxQuestion > 0 && n > w.catalog.MaxQuestion) {
			return fmt.Errorf("%w: question %q", domain.ErrInvalidChoice, value)
		}
		w.sel.QuestionNumber = n
		return nil
	case StepSubpart:
		if !domain.ValidSubpart(value) {
			return fmt.Errorf("%w: subpart %q", domain.ErrInvalidChoice, value)
		}
		w.sel.Subpart = domain.NormalizeSubpart(value)
		return nil
	}
	w.index++
	return nil
}

func (w *Wizard) pick(value string, allowed []int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || !slices.Contains(allowed, n) {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidChoice, value)
	}
	return n, nil
}

// CanProceed reports whether the current step has a value. The subpart step
// is optional and can always proceed.
func (w *Wizard) CanProceed() bool {
	step := w.Step()
	return step == StepSubpart || w.Value(step) != ""
}

// Next moves to the following step, or completes the wizard on the last one.
func (w *Wizard) Next() (done bool, err error) {
	if w.done {
		return true, nil
	}
	if !w.CanProceed() {
		return false, fmt.Errorf("%w: %s", domain.ErrCannotProceed, w.Title())
	}
	if w.index == len(Steps)-1 {
		return w.complete()
	}
	w.index++
	return false, nil
}

// Back moves to the previous step. On the first step it reports exit instead,
// leaving the wizard unchanged.
func (w *Wizard) Back() (exit bool) {
	if w.index == 0 {
		return true
	}
	w.done = false
	w.index--
	return false
}

// Skip completes the wizard without a subpart. Only the subpart step can be skipped.
func (w *Wizard) Skip() error {
	if w.Step() != StepSubpart {
		return fmt.Errorf("%w: %s", domain.ErrSkipNotAllowed, w.Title())
	}
	w.sel.Subpart = ""
	_, err := w.complete()
	return err
}

func (w *Wizard) complete() (bool, error) {
	if err := w.catalog.Validate(w.sel); err != nil {
		return false, err
	}
	w.done = true
	return true, nil
}

// Done reports whether the wizard has been completed.
func (w *Wizard) Done() bool {
	return w.done
}

// Selection returns the values chosen so far.
func (w *Wizard) Selection() domain.PaperSelection {
	return w.sel
}

// Progress returns the status of every step for a progress indicator.
func (w *Wizard) Progress() []Progress {
	out := make([]Progress, len(Steps))
	for i, step := range Steps {
		status := StatusPending
		switch {
		case w.done || i < w.index:
			status = StatusDone
		case i == w.index:
			status = StatusCurrent
		}
		out[i] = Progress{Step: step, Number: i + 1, Status: status}
	}
	return out
}

// Reset clears every value and returns to the first step.
func (w *Wizard) Reset() {
	w.index = 0
	w.sel = domain.PaperSelection{}
	w.done = false
}

func intOptions(ns []int) []Choice {
	opts := make([]Choice, len(ns))
	for i, n := range ns {
		s := strconv.Itoa(n)
		opts[i] = Choice{Value: s, Label: s}
	}
	return opts
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
