package chat_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/chembot/pkg/adapters/memory"
	"github.com/aretw0/chembot/pkg/chat"
	"github.com/aretw0/chembot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock = time.Date(2025, 3, 14, 17, 50, 0, 0, time.UTC)

func newSession(t *testing.T, opts ...chat.Option) *chat.Session {
	t.Helper()
	n := 0
	base := []chat.Option{
		chat.WithClock(func() time.Time { return clock }),
		chat.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		chat.WithReplyDelay(0),
	}
	return chat.New(append(base, opts...)...)
}

func selection() domain.PaperSelection {
	return domain.PaperSelection{
		Year:           2024,
		Session:        domain.SessionMayJune,
		PaperNumber:    2,
		Variant:        1,
		QuestionNumber: 3,
		Subpart:        "a",
	}
}

func TestSession_StartsOnWelcome(t *testing.T) {
	s := newSession(t)

	assert.Equal(t, domain.StateWelcome, s.State())
	assert.Empty(t, s.Messages())
}

func TestSession_AskQuestions(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	require.NoError(t, s.AskQuestions(ctx))

	assert.Equal(t, domain.StateChat, s.State())
	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.RoleBot, msgs[0].Role)
	assert.Equal(t, chat.DefaultGreeting, msgs[0].Content)
	assert.Equal(t, "17:50", msgs[0].Timestamp)

	assert.ErrorIs(t, s.AskQuestions(ctx), domain.ErrWrongState)
}

func TestSession_CompleteSelection_MessageOrder(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()
	require.NoError(t, s.SolvePastPapers(ctx))

	solution, err := s.CompleteSelection(ctx, selection())
	require.NoError(t, err)
	assert.Equal(t, "sample", solution.ID)

	assert.Equal(t, domain.StateChat, s.State())
	msgs := s.Messages()
	require.Len(t, msgs, 3)

	assert.Equal(t, domain.RoleBot, msgs[0].Role)
	assert.Equal(t, "Great! I'll help you solve may/june 2024 paper 2 variant 1 question 3 part a. Let me find the solution for you.", msgs[0].Content)

	assert.Equal(t, domain.RoleUser, msgs[1].Role)
	assert.Equal(t, "solve may/june 2024 paper 2 variant 1 q 3 a", msgs[1].Content)

	assert.Equal(t, domain.RoleBot, msgs[2].Role)
	assert.Equal(t, chat.SampleContent, msgs[2].Content)
	assert.True(t, msgs[2].IsDocument())
}

func TestSession_CompleteSelection_UsesLibrary(t *testing.T) {
	sel := selection()
	lib, err := memory.NewLibrary(domain.Solution{ID: "q3", Selection: sel, Content: "## Question 3"})
	require.NoError(t, err)

	var events []*domain.SelectionEvent
	s := newSession(t,
		chat.WithLibrary(lib),
		chat.WithLifecycleHooks(domain.LifecycleHooks{
			OnSelectionComplete: func(_ context.Context, e *domain.SelectionEvent) { events = append(events, e) },
		}),
	)
	ctx := context.Background()
	require.NoError(t, s.SolvePastPapers(ctx))

	solution, err := s.CompleteSelection(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, "q3", solution.ID)
	assert.Equal(t, "## Question 3", s.Messages()[2].Content)

	require.Len(t, events, 1)
	assert.True(t, events[0].Found)
	assert.Equal(t, sel, events[0].Selection)
}

func TestSession_CompleteSelection_Validates(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	_, err := s.CompleteSelection(ctx, selection())
	assert.ErrorIs(t, err, domain.ErrWrongState, "only from the wizard")

	require.NoError(t, s.SolvePastPapers(ctx))
	sel := selection()
	sel.Session = domain.SessionFebMarch
	_, err = s.CompleteSelection(ctx, sel)
	assert.ErrorIs(t, err, domain.ErrInvalidSelection, "feb/march has no variant 1")
	assert.Equal(t, domain.StateSelectingPaper, s.State())
}

// leavingLibrary backs out of the selector while the lookup is in flight.
type leavingLibrary struct {
	session *chat.Session
}

func (l *leavingLibrary) Find(ctx context.Context, _ domain.PaperSelection) (domain.Solution, error) {
	if err := l.session.BackFromSelector(ctx); err != nil {
		return domain.Solution{}, err
	}
	return domain.Solution{ID: "late", Content: "## Too late"}, nil
}

func (l *leavingLibrary) List(context.Context) ([]domain.Solution, error) {
	return nil, nil
}

func TestSession_CompleteSelection_StateChangedDuringLookup(t *testing.T) {
	lib := &leavingLibrary{}
	s := newSession(t, chat.WithLibrary(lib))
	lib.session = s
	ctx := context.Background()
	require.NoError(t, s.SolvePastPapers(ctx))

	_, err := s.CompleteSelection(ctx, selection())

	assert.ErrorIs(t, err, domain.ErrWrongState)
	assert.Equal(t, domain.StateWelcome, s.State(), "the back action wins")
	assert.Empty(t, s.Messages())
}

func TestSession_BackFromSelector(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.BackFromSelector(ctx), domain.ErrWrongState)

	require.NoError(t, s.SolvePastPapers(ctx))
	require.NoError(t, s.BackFromSelector(ctx))
	assert.Equal(t, domain.StateWelcome, s.State())
}

func TestSession_NewChat(t *testing.T) {
	var transitions []string
	s := newSession(t, chat.WithLifecycleHooks(domain.LifecycleHooks{
		OnStateChange: func(_ context.Context, e *domain.StateEvent) {
			transitions = append(transitions, string(e.From)+">"+string(e.To))
		},
	}))
	ctx := context.Background()
	require.NoError(t, s.AskQuestions(ctx))

	s.NewChat(ctx)

	assert.Equal(t, domain.StateWelcome, s.State())
	assert.Empty(t, s.Messages())
	assert.Equal(t, []string{"welcome>chat", "chat>welcome"}, transitions)
}

func TestSession_Send(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	_, err := s.Send(ctx, "hello", nil)
	assert.ErrorIs(t, err, domain.ErrWrongState)

	require.NoError(t, s.AskQuestions(ctx))

	_, err = s.Send(ctx, "   ", nil)
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)

	msg, err := s.Send(ctx, "  What is a mole?  ", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, msg.Role)
	assert.Equal(t, "What is a mole?", msg.Content)
	assert.Equal(t, "17:50", msg.Timestamp)
	assert.Len(t, s.Messages(), 2)
}

func TestSession_Send_AttachmentPrompts(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()
	require.NoError(t, s.AskQuestions(ctx))

	msg, err := s.Send(ctx, "", []domain.Attachment{{ID: "1", Type: domain.AttachmentImage}})
	require.NoError(t, err)
	assert.Equal(t, chat.ImagePrompt, msg.Content)

	msg, err = s.Send(ctx, "", []domain.Attachment{{ID: "2", Type: domain.AttachmentFile}})
	require.NoError(t, err)
	assert.Equal(t, chat.FilePrompt, msg.Content)
}

func TestSession_Reply_Rotates(t *testing.T) {
	s := newSession(t, chat.WithReplies("first", "second"))
	ctx := context.Background()
	require.NoError(t, s.AskQuestions(ctx))

	var got []string
	for i := 0; i < 3; i++ {
		msg, err := s.Reply(ctx)
		require.NoError(t, err)
		assert.True(t, msg.IsBot())
		got = append(got, msg.Content)
	}
	assert.Equal(t, []string{"first", "second", "first"}, got)
}

func TestSession_Reply_Cancelled(t *testing.T) {
	s := newSession(t, chat.WithReplyDelay(time.Hour))
	require.NoError(t, s.AskQuestions(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Reply(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, s.Messages(), 1)
}

func TestSession_Attach_SniffsType(t *testing.T) {
	s := newSession(t, chat.WithAttachmentURL(func(id string) string { return "/attachments/" + id }))
	ctx := context.Background()

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	att, err := s.Attach(ctx, "/tmp/photos/flask.txt", png)
	require.NoError(t, err)
	assert.Equal(t, domain.AttachmentImage, att.Type, "content wins over the extension")
	assert.Equal(t, "image/png", att.MIMEType)
	assert.Equal(t, "flask.txt", att.Name)
	assert.Equal(t, "/attachments/"+att.ID, att.URL)

	stored, data, err := s.Attachments().Load(ctx, att.ID)
	require.NoError(t, err)
	assert.Equal(t, att, stored)
	assert.Equal(t, png, data)

	att, err = s.Attach(ctx, "notes.png", []byte("plain notes"))
	require.NoError(t, err)
	assert.Equal(t, domain.AttachmentFile, att.Type)
}

func TestSession_MessageHooks(t *testing.T) {
	var roles []domain.Role
	s := newSession(t, chat.WithLifecycleHooks(domain.LifecycleHooks{
		OnMessage: func(_ context.Context, e *domain.MessageEvent) { roles = append(roles, e.Message.Role) },
	}))
	ctx := context.Background()
	require.NoError(t, s.SolvePastPapers(ctx))

	_, err := s.CompleteSelection(ctx, selection())
	require.NoError(t, err)

	assert.Equal(t, []domain.Role{domain.RoleBot, domain.RoleUser, domain.RoleBot}, roles)
}
