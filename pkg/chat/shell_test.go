package chat_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/chembot/pkg/chat"
	"github.com/aretw0/chembot/pkg/domain"
	"github.com/aretw0/chembot/pkg/ports"
	"github.com/aretw0/chembot/pkg/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.Shell = (*chat.Session)(nil)

// drive feeds each line to Navigate, failing on the first error.
func drive(t *testing.T, s *chat.Session, lines ...string) {
	t.Helper()
	for _, line := range lines {
		require.NoError(t, s.Navigate(context.Background(), line), "input %q", line)
	}
}

func render(t *testing.T, s *chat.Session) []domain.ActionRequest {
	t.Helper()
	actions, done, err := s.Render(context.Background())
	require.NoError(t, err)
	require.False(t, done)
	return actions
}

func inputRequest(t *testing.T, actions []domain.ActionRequest) domain.InputRequest {
	t.Helper()
	require.NotEmpty(t, actions)
	last := actions[len(actions)-1]
	require.Equal(t, domain.ActionRequestInput, last.Type)
	req, ok := last.Payload.(domain.InputRequest)
	require.True(t, ok)
	return req
}

func messages(actions []domain.ActionRequest) []domain.Message {
	var out []domain.Message
	for _, a := range actions {
		if m, ok := a.Payload.(domain.Message); ok {
			out = append(out, m)
		}
	}
	return out
}

func TestShell_WelcomeScreen(t *testing.T) {
	s := newSession(t)

	actions := render(t, s)
	require.Len(t, actions, 2)
	screen, ok := actions[0].Payload.(string)
	require.True(t, ok)
	assert.Contains(t, screen, chat.HeroText)
	assert.Contains(t, screen, "Solve Past Papers")

	req := inputRequest(t, actions)
	assert.Equal(t, domain.InputChoice, req.Type)
	assert.Equal(t, []string{"Solve Past Papers", "Ask Questions"}, req.Options)

	actions = render(t, s)
	assert.Len(t, actions, 1, "screen text is not repeated")
}

func TestShell_WelcomeChoices(t *testing.T) {
	for _, input := range []string{"1", "solve", "Solve Past Papers", "get started"} {
		s := newSession(t)
		drive(t, s, input)
		assert.Equal(t, domain.StateSelectingPaper, s.State(), input)
	}
	for _, input := range []string{"2", "ASK", "Ask Questions", "Start Chatting"} {
		s := newSession(t)
		drive(t, s, input)
		assert.Equal(t, domain.StateChat, s.State(), input)
	}

	s := newSession(t)
	assert.ErrorIs(t, s.Navigate(context.Background(), "3"), domain.ErrInvalidChoice)
}

func TestShell_WizardWalkthrough(t *testing.T) {
	s := newSession(t)
	drive(t, s, "solve")

	actions := render(t, s)
	screen := actions[0].Payload.(string)
	assert.Contains(t, screen, "Step 1 of 6: Select Year")
	assert.Contains(t, screen, "● Year › ○ Session")
	assert.Equal(t, domain.InputChoice, inputRequest(t, actions).Type)

	// "1" picks the first session by menu index; "21" is paper 2 variant 1.
	drive(t, s, "2024", "1", "21")
	assert.Equal(t, "wizard/variant", s.CurrentNode())
	assert.Equal(t, "1", s.WizardView().Value)

	drive(t, s, "1", "3", "A")

	assert.Equal(t, domain.StateChat, s.State())
	msgs := messages(render(t, s))
	require.Len(t, msgs, 3)
	assert.Equal(t, "solve may/june 2024 paper 2 variant 1 q 3 a", msgs[1].Content)

	assert.Empty(t, messages(render(t, s)), "messages are rendered once")
}

func TestShell_WizardSkipAndEnter(t *testing.T) {
	s := newSession(t)
	drive(t, s, "solve", "2020", "oct/nov", "4", "2", "7")
	require.Equal(t, wizard.StepSubpart, s.WizardView().Step)

	drive(t, s, "skip")
	require.Equal(t, domain.StateChat, s.State())
	assert.Equal(t, "solve oct/nov 2020 paper 4 variant 2 q 7", s.Messages()[1].Content)

	s = newSession(t)
	drive(t, s, "solve", "2020", "oct/nov", "4", "2", "7", "")
	assert.Equal(t, domain.StateChat, s.State(), "enter on the optional step completes")
}

func TestShell_WizardErrors(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()
	drive(t, s, "solve")

	assert.ErrorIs(t, s.Navigate(ctx, "skip"), domain.ErrSkipNotAllowed)
	assert.ErrorIs(t, s.Navigate(ctx, "next"), domain.ErrCannotProceed)
	assert.ErrorIs(t, s.Navigate(ctx, "1890"), domain.ErrInvalidChoice)

	drive(t, s, "2024", "may-june")
	err := s.Navigate(ctx, "9")
	assert.ErrorIs(t, err, domain.ErrInvalidChoice)
	assert.True(t, chat.IsInputError(err))
	assert.Equal(t, wizard.StepPaper, s.WizardView().Step)
}

func TestShell_WizardVariantIsNotPickedByIndex(t *testing.T) {
	s := newSession(t)
	drive(t, s, "solve", "2022", "feb-march", "1")

	err := s.Navigate(context.Background(), "1")
	assert.ErrorIs(t, err, domain.ErrInvalidChoice)
}

func TestShell_WizardBackExits(t *testing.T) {
	s := newSession(t)
	drive(t, s, "solve", "2024", "back", "back")

	assert.Equal(t, domain.StateWelcome, s.State())
}

func TestShell_ChatSendAndReply(t *testing.T) {
	s := newSession(t, chat.WithReplies("canned"))
	drive(t, s, "ask")

	actions := render(t, s)
	assert.Equal(t, chat.InputPlaceholder, inputRequest(t, actions).Placeholder)
	require.Len(t, messages(actions), 1)

	drive(t, s, "What is Avogadro's number?")

	msgs := messages(render(t, s))
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.RoleUser, msgs[0].Role)
	assert.Equal(t, "canned", msgs[1].Content)

	assert.ErrorIs(t, s.Navigate(context.Background(), ""), domain.ErrEmptyMessage)
}

func TestShell_Attach(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spectrum.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n\x00\x00"), 0644))

	s := newSession(t)
	drive(t, s, "ask")
	render(t, s)

	drive(t, s, "/attach "+path)
	actions := render(t, s)
	assert.Equal(t, domain.ActionSystemMessage, actions[0].Type)
	assert.Contains(t, actions[0].Payload, "spectrum.png")

	drive(t, s, "")
	msgs := messages(render(t, s))
	require.NotEmpty(t, msgs)
	assert.Equal(t, chat.ImagePrompt, msgs[0].Content)
	require.Len(t, msgs[0].Attachments, 1)
	assert.Equal(t, domain.AttachmentImage, msgs[0].Attachments[0].Type)

	err := s.Navigate(context.Background(), "/attach "+filepath.Join(dir, "missing.png"))
	assert.True(t, chat.IsInputError(err))
}

func TestShell_NewAndQuit(t *testing.T) {
	s := newSession(t)
	drive(t, s, "ask", "/new")
	assert.Equal(t, domain.StateWelcome, s.State())

	drive(t, s, "/quit")
	_, done, err := s.Render(context.Background())
	require.NoError(t, err)
	assert.True(t, done)
}

func TestShell_SelectionInput(t *testing.T) {
	s := newSession(t)

	require.NoError(t, s.Navigate(context.Background(), selection()))

	assert.Equal(t, domain.StateChat, s.State())
	assert.Len(t, s.Messages(), 3)

	assert.ErrorIs(t, s.Navigate(context.Background(), 42), domain.ErrInvalidChoice)
}

func TestFlow(t *testing.T) {
	nodes := chat.Flow()
	require.Len(t, nodes, len(wizard.Steps)+2)

	assert.Equal(t, "welcome", nodes[0].ID)
	assert.Contains(t, nodes[0].Transitions, domain.Transition{ToNodeID: "wizard/year", Condition: "Solve Past Papers"})
	assert.Equal(t, "chat", nodes[len(nodes)-1].ID)

	ids := make(map[string]bool)
	for _, n := range nodes {
		ids[n.ID] = true
	}
	for _, n := range nodes {
		for _, tr := range n.Transitions {
			assert.True(t, ids[tr.ToNodeID], "%s -> %s", n.ID, tr.ToNodeID)
		}
	}
}

func TestShell_ComposeKeepsQueueOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("moles"), 0644))

	s := newSession(t)
	drive(t, s, "ask", "/attach "+path)

	s.NewChat(context.Background())
	drive(t, s, "ask")
	_, err := s.Compose(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage, "new chat drops queued files")

	drive(t, s, "/attach "+path)
	msg, err := s.Compose(context.Background(), "see file")
	require.NoError(t, err)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "notes.txt", msg.Attachments[0].Name)
}

func TestIsCommand(t *testing.T) {
	assert.True(t, chat.IsCommand("/new"))
	assert.True(t, chat.IsCommand(" /attach foo.png"))
	assert.True(t, chat.IsCommand("/QUIT"))
	assert.False(t, chat.IsCommand("what is /new?"))
	assert.False(t, chat.IsCommand("/unknown"))
}
