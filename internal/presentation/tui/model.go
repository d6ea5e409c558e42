package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/chembot/pkg/chat"
	"github.com/aretw0/chembot/pkg/document"
	"github.com/aretw0/chembot/pkg/domain"
	"github.com/aretw0/chembot/pkg/runner"
	"github.com/aretw0/chembot/pkg/wizard"
)

// chrome is the number of rows around the transcript viewport.
const chrome = 8

// Model is the bubbletea program for a chat.Session.
type Model struct {
	ctx      context.Context
	session  *chat.Session
	render   func(string) (string, error)
	maxInput int

	input    textinput.Model
	viewport viewport.Model
	width    int
	ready    bool
	replying bool
	notice   string
	err      error
}

// Option configures a Model.
type Option func(*Model)

// WithRenderer sets the Markdown renderer used for worked solutions.
func WithRenderer(fn func(string) (string, error)) Option {
	return func(m *Model) {
		m.render = fn
	}
}

// WithMaxInputSize limits the input line in bytes.
func WithMaxInputSize(n int) Option {
	return func(m *Model) {
		m.maxInput = n
	}
}

type replyMsg struct {
	msg domain.Message
	err error
}

// NewModel creates the program model. ctx bounds replies.
func NewModel(ctx context.Context, session *chat.Session, opts ...Option) *Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	ti.PlaceholderStyle = mutedStyle.Italic(true)
	ti.Width = 70
	ti.Focus()

	m := &Model{
		ctx:      ctx,
		session:  session,
		maxInput: runner.DefaultMaxInputSize,
		input:    ti,
		viewport: viewport.New(80, 20),
		width:    80,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.input.CharLimit = m.maxInput
	m.refresh()
	return m
}

// Run starts the full-screen program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, session *chat.Session, opts ...Option) error {
	p := tea.NewProgram(NewModel(ctx, session, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 4
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chrome, 3)
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case replyMsg:
		m.replying = false
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
		}
		return m, m.sync()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	if m.replying {
		return m, nil
	}
	text, err := runner.SanitizeInputLimit(m.input.Value(), m.maxInput)
	m.input.SetValue("")
	m.err = err
	m.notice = ""
	if err != nil {
		return m, nil
	}

	if m.session.State() == domain.StateChat && !chat.IsCommand(text) {
		if _, err := m.session.Compose(m.ctx, text); err != nil {
			m.err = err
			return m, nil
		}
		m.replying = true
		m.refresh()
		return m, m.reply()
	}

	if err := m.session.Navigate(m.ctx, text); err != nil {
		m.err = err
	}
	return m, m.sync()
}

func (m *Model) reply() tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		msg, err := session.Reply(ctx)
		return replyMsg{msg: msg, err: err}
	}
}

// sync drains the session's pending notices and reports whether it ended.
func (m *Model) sync() tea.Cmd {
	actions, done, err := m.session.Render(m.ctx)
	if err != nil {
		m.err = err
	}
	if done {
		return tea.Quit
	}
	var notices []string
	for _, a := range actions {
		if s, ok := a.Payload.(string); ok && a.Type == domain.ActionSystemMessage {
			notices = append(notices, s)
		}
	}
	if len(notices) > 0 {
		m.notice = strings.Join(notices, " ")
	}
	m.refresh()
	return nil
}

func (m *Model) refresh() {
	switch m.session.State() {
	case domain.StateWelcome:
		m.input.Placeholder = "1 or 2"
	case domain.StateSelectingPaper:
		v := m.session.WizardView()
		m.input.Placeholder = v.Placeholder
		if m.input.Placeholder == "" {
			m.input.Placeholder = "Pick an option"
		}
	case domain.StateChat:
		m.input.Placeholder = chat.InputPlaceholder
		m.viewport.SetContent(m.transcript())
		m.viewport.GotoBottom()
	}
}

func (m *Model) View() string {
	var sb strings.Builder

	switch m.session.State() {
	case domain.StateWelcome:
		sb.WriteString(m.welcomeView())
	case domain.StateSelectingPaper:
		sb.WriteString(m.wizardView())
	case domain.StateChat:
		sb.WriteString(headerStyle.Render(
			botLabelStyle.Render(chat.AssistantName) + "  " + mutedStyle.Render(chat.AssistantStatus)))
		sb.WriteString("\n")
		if m.ready {
			sb.WriteString(m.viewport.View())
		} else {
			sb.WriteString(m.transcript())
		}
	}
	sb.WriteString("\n")

	switch {
	case m.err != nil:
		sb.WriteString(errorStyle.Render(m.err.Error()))
	case m.replying:
		sb.WriteString(noticeStyle.Render(chat.AssistantName + " is typing..."))
	case m.notice != "":
		sb.WriteString(noticeStyle.Render(m.notice))
	}
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render("enter: send · esc: quit · /new: start over"))
	return sb.String()
}

func (m *Model) welcomeView() string {
	cards := make([]string, len(chat.Cards))
	for i, c := range chat.Cards {
		style := cardStyle
		if i == 0 {
			style = selectedCardStyle
		}
		cards[i] = style.Render(fmt.Sprintf("%d. %s\n\n%s\n\n%s",
			i+1, titleStyle.Render(c.Title), c.Description, subtitleStyle.Render(c.Action+" →")))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(chat.HeroTitle),
		subtitleStyle.Render(chat.HeroSubtitle),
		"",
		lipgloss.NewStyle().Width(min(m.width, 72)).Render(chat.HeroText),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		"",
		mutedStyle.Render(strings.Join(chat.Features, " · ")),
	)
}

func (m *Model) wizardView() string {
	v := m.session.WizardView()

	marks := make([]string, len(v.Progress))
	for i, p := range v.Progress {
		switch p.Status {
		case wizard.StatusDone:
			marks[i] = stepDoneStyle.Render("✓ " + p.Step.Name())
		case wizard.StatusCurrent:
			marks[i] = stepCurrentStyle.Render("● " + p.Step.Name())
		default:
			marks[i] = stepPendingStyle.Render("○ " + p.Step.Name())
		}
	}

	lines := []string{
		titleStyle.Render(fmt.Sprintf("Step %d of %d: %s", v.Number, v.Total, v.Title)),
		strings.Join(marks, mutedStyle.Render(" › ")),
		"",
	}
	if v.Hint != "" {
		lines = append(lines, subtitleStyle.Render(v.Hint), "")
	}
	for i, opt := range v.Options {
		line := fmt.Sprintf("  %d) %s", i+1, opt.Label)
		if opt.Value == v.Value {
			line = stepCurrentStyle.Render(line + "  ✓")
		}
		lines = append(lines, line)
	}
	help := "back: previous step"
	if v.Step == wizard.StepSubpart {
		help = "enter or skip: no subpart · " + help
	}
	lines = append(lines, "", mutedStyle.Render(help))
	return strings.Join(lines, "\n")
}

func (m *Model) transcript() string {
	msgs := m.session.Messages()
	if len(msgs) == 0 {
		return titleStyle.Render(chat.EmptyChatTitle) + "\n" + mutedStyle.Render(chat.EmptyChatHint)
	}

	width := max(m.width-4, 20)
	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		label := userLabelStyle.Render("You")
		if msg.IsBot() {
			label = botLabelStyle.Render(chat.AssistantName)
		}
		block := label + " " + mutedStyle.Render(msg.Timestamp) + "\n" + m.body(msg, width)
		for _, a := range msg.Attachments {
			block += "\n" + mutedStyle.Render(fmt.Sprintf("  [%s] %s", a.Type, a.Name))
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n")
}

func (m *Model) body(msg domain.Message, width int) string {
	if !msg.IsDocument() {
		style := lipgloss.NewStyle().Width(width)
		if !msg.IsBot() {
			style = userBodyStyle.Width(width)
		}
		return style.Render(msg.Content)
	}

	elements := document.Parse(msg.Content)
	if m.render != nil {
		if out, err := m.render(document.RenderMarkdown(elements)); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return strings.TrimRight(document.RenderText(elements, width), "\n")
}
