package chat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/chembot/pkg/domain"
	"github.com/aretw0/chembot/pkg/wizard"
)

// Commands understood by Navigate on any screen.
const (
	CommandNew    = "/new"
	CommandQuit   = "/quit"
	CommandAttach = "/attach"
)

// IsInputError reports whether err was caused by the user's input and the
// conversation can simply carry on.
func IsInputError(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidChoice,
		domain.ErrCannotProceed,
		domain.ErrSkipNotAllowed,
		domain.ErrInvalidSelection,
		domain.ErrWrongState,
		domain.ErrEmptyMessage,
		domain.ErrAttachmentNotFound,
		os.ErrNotExist,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// WizardView is a snapshot of the wizard for front ends.
type WizardView struct {
	Step        wizard.Step
	Number      int
	Total       int
	Title       string
	Hint        string
	Placeholder string
	Value       string
	Options     []wizard.Choice
	Progress    []wizard.Progress
	Selection   domain.PaperSelection
	Input       domain.InputRequest
}

// WizardView returns the current wizard screen.
func (s *Session) WizardView() WizardView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizardView()
}

func (s *Session) wizardView() WizardView {
	w := s.wizard
	step := w.Step()
	number := 0
	for i, st := range wizard.Steps {
		if st == step {
			number = i + 1
		}
	}
	return WizardView{
		Step:        step,
		Number:      number,
		Total:       len(wizard.Steps),
		Title:       w.Title(),
		Hint:        w.Hint(),
		Placeholder: w.Placeholder(),
		Value:       w.Value(step),
		Options:     w.Options(),
		Progress:    w.Progress(),
		Selection:   w.Selection(),
		Input:       w.InputRequest(),
	}
}

// Render implements ports.Shell. Screen text is emitted when the screen
// changes; transcript messages are emitted once each. The bool reports
// whether the conversation has ended.
func (s *Session) Render(ctx context.Context) ([]domain.ActionRequest, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, true, nil
	}

	var actions []domain.ActionRequest
	for _, notice := range s.notices {
		actions = append(actions, domain.ActionRequest{Type: domain.ActionSystemMessage, Payload: notice})
	}
	s.notices = nil

	screen := s.currentNode()
	changed := screen != s.shown
	s.shown = screen

	switch s.state {
	case domain.StateWelcome:
		if changed {
			actions = append(actions, renderText(welcomeScreen()))
		}
		options := make([]string, len(Cards))
		for i, c := range Cards {
			options[i] = c.Title
		}
		actions = append(actions, domain.ActionRequest{
			Type: domain.ActionRequestInput,
			Payload: domain.InputRequest{
				Type:    domain.InputChoice,
				Prompt:  "Choose how to start",
				Options: options,
			},
		})

	case domain.StateSelectingPaper:
		view := s.wizardView()
		if changed {
			actions = append(actions, renderText(stepScreen(view)))
		}
		actions = append(actions, domain.ActionRequest{Type: domain.ActionRequestInput, Payload: view.Input})

	case domain.StateChat:
		if changed {
			actions = append(actions, renderText(chatHeader()))
			if len(s.messages) == 0 {
				actions = append(actions, renderText("**"+EmptyChatTitle+"**\n\n"+EmptyChatHint))
			}
		}
		for _, m := range s.messages[s.rendered:] {
			actions = append(actions, domain.ActionRequest{Type: domain.ActionRenderContent, Payload: m})
		}
		s.rendered = len(s.messages)
		actions = append(actions, domain.ActionRequest{
			Type: domain.ActionRequestInput,
			Payload: domain.InputRequest{
				Type:        domain.InputText,
				Placeholder: InputPlaceholder,
			},
		})
	}

	return actions, false, nil
}

func renderText(s string) domain.ActionRequest {
	return domain.ActionRequest{Type: domain.ActionRenderContent, Payload: s}
}

// Navigate implements ports.Shell. input is a line of text, or a complete
// domain.PaperSelection that skips the wizard.
func (s *Session) Navigate(ctx context.Context, input any) error {
	switch v := input.(type) {
	case domain.PaperSelection:
		if s.State() == domain.StateWelcome {
			if err := s.SolvePastPapers(ctx); err != nil {
				return err
			}
		}
		_, err := s.CompleteSelection(ctx, v)
		return err
	case string:
		return s.navigateText(ctx, strings.TrimSpace(v))
	default:
		return fmt.Errorf("%w: unsupported input %T", domain.ErrInvalidChoice, input)
	}
}

func (s *Session) navigateText(ctx context.Context, text string) error {
	switch strings.ToLower(text) {
	case CommandQuit, "/exit":
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		return nil
	case CommandNew:
		s.NewChat(ctx)
		return nil
	}

	switch s.State() {
	case domain.StateWelcome:
		return s.navigateWelcome(ctx, text)
	case domain.StateSelectingPaper:
		return s.navigateWizard(ctx, text)
	default:
		return s.navigateChat(ctx, text)
	}
}

func (s *Session) navigateWelcome(ctx context.Context, text string) error {
	switch strings.ToLower(text) {
	case "1", "solve", strings.ToLower(CardSolvePastPapers.Title), strings.ToLower(CardSolvePastPapers.Action):
		return s.SolvePastPapers(ctx)
	case "2", "ask", strings.ToLower(CardAskQuestions.Title), strings.ToLower(CardAskQuestions.Action):
		return s.AskQuestions(ctx)
	}
	return fmt.Errorf("%w: %q, pick %q or %q", domain.ErrInvalidChoice, text, CardSolvePastPapers.Title, CardAskQuestions.Title)
}

func (s *Session) navigateWizard(ctx context.Context, text string) error {
	s.mu.Lock()
	done, exit, err := s.stepWizard(text)
	sel := s.wizard.Selection()
	s.mu.Unlock()

	switch {
	case err != nil:
		return err
	case exit:
		return s.BackFromSelector(ctx)
	case done:
		_, err := s.CompleteSelection(ctx, sel)
		return err
	}
	return nil
}

// stepWizard must be called with mu held.
func (s *Session) stepWizard(text string) (done, exit bool, err error) {
	w := s.wizard
	switch strings.ToLower(text) {
	case "back":
		return false, w.Back(), nil
	case "skip":
		if err := w.Skip(); err != nil {
			return false, false, err
		}
		return true, false, nil
	case "", "next":
		done, err := w.Next()
		return done, false, err
	}

	step := w.Step()
	if err := w.Select(text); err != nil {
		value, ok := optionAt(w, step, text)
		if !errors.Is(err, domain.ErrInvalidChoice) || !ok {
			return false, false, err
		}
		if err := w.Select(value); err != nil {
			return false, false, err
		}
	}

	// Text steps confirm on enter.
	if step.Input() == domain.InputText {
		done, err := w.Next()
		return done, false, err
	}
	return false, false, nil
}

// optionAt resolves a 1-based menu index to an option value. Variants are
// themselves small numbers, so they are never picked by index.
func optionAt(w *wizard.Wizard, step wizard.Step, text string) (string, bool) {
	if step == wizard.StepVariant || step.Input() != domain.InputChoice {
		return "", false
	}
	n, err := strconv.Atoi(text)
	opts := w.Options()
	if err != nil || n < 1 || n > len(opts) {
		return "", false
	}
	return opts[n-1].Value, true
}

func (s *Session) navigateChat(ctx context.Context, text string) error {
	if cmd, path, _ := strings.Cut(text, " "); strings.EqualFold(cmd, CommandAttach) {
		return s.attachFile(ctx, strings.TrimSpace(path))
	}

	if _, err := s.Compose(ctx, text); err != nil {
		return err
	}
	_, err := s.Reply(ctx)
	return err
}

// Compose sends text along with the files queued by /attach. The queue is
// kept if the send fails.
func (s *Session) Compose(ctx context.Context, text string) (domain.Message, error) {
	s.mu.Lock()
	attachments := s.pending
	s.pending = nil
	s.mu.Unlock()

	msg, err := s.Send(ctx, text, attachments)
	if err != nil {
		s.mu.Lock()
		s.pending = append(attachments, s.pending...)
		s.mu.Unlock()
		return domain.Message{}, err
	}
	return msg, nil
}

// IsCommand reports whether text is handled by Navigate as a command rather
// than sent as a message.
func IsCommand(text string) bool {
	cmd, _, _ := strings.Cut(strings.TrimSpace(text), " ")
	switch strings.ToLower(cmd) {
	case CommandNew, CommandQuit, CommandAttach, "/exit":
		return true
	}
	return false
}

func (s *Session) attachFile(ctx context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("%w: usage %s <path>", domain.ErrInvalidChoice, CommandAttach)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read attachment: %w", err)
	}
	att, err := s.Attach(ctx, path, data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.pending = append(s.pending, att)
	s.notices = append(s.notices, fmt.Sprintf("Attached %s (%s). It will be sent with your next message.", att.Name, att.Type))
	s.mu.Unlock()
	return nil
}

func welcomeScreen() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n**%s**\n\n%s\n\n", HeroTitle, HeroSubtitle, HeroText)
	for i, c := range Cards {
		fmt.Fprintf(&sb, "%d. **%s**: %s _%s_\n", i+1, c.Title, c.Description, c.Action)
	}
	sb.WriteString("\n" + strings.Join(Features, " · ") + "\n")
	return sb.String()
}

func stepScreen(v WizardView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### Step %d of %d: %s\n\n", v.Number, v.Total, v.Title)

	marks := make([]string, len(v.Progress))
	for i, p := range v.Progress {
		mark := "○"
		switch p.Status {
		case wizard.StatusDone:
			mark = "✓"
		case wizard.StatusCurrent:
			mark = "●"
		}
		marks[i] = mark + " " + p.Step.Name()
	}
	sb.WriteString(strings.Join(marks, " › ") + "\n")

	if v.Hint != "" {
		sb.WriteString("\n" + v.Hint + "\n")
	}
	help := "Type `back` to go back."
	if v.Step == wizard.StepSubpart {
		help = "Press enter or type `skip` to continue without a subpart, or `back` to go back."
	}
	sb.WriteString("\n" + help + "\n")
	return sb.String()
}

func chatHeader() string {
	return fmt.Sprintf("**%s** · %s\n\n%s", AssistantName, AssistantStatus, AssistantTagline)
}
