package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/chembot/pkg/adapters/memory"
	"github.com/aretw0/chembot/pkg/domain"
	"github.com/aretw0/chembot/pkg/ports"
	"github.com/aretw0/chembot/pkg/wizard"
	"github.com/google/uuid"
)

// TimestampLayout is the wall-clock format of message timestamps.
const TimestampLayout = "15:04"

// Session is one ChemBot conversation. It is safe for concurrent use.
type Session struct {
	library       ports.SolutionLibrary
	store         ports.AttachmentStore
	attachmentURL func(id string) string
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	catalog       wizard.Catalog
	replyDelay    time.Duration
	greeting      string
	replies       []string
	now           func() time.Time
	newID         func() string

	mu        sync.Mutex
	state     domain.AppState
	wizard    *wizard.Wizard
	messages  []domain.Message
	nextReply int

	// Shell bookkeeping, see shell.go.
	rendered int
	shown    string
	pending  []domain.Attachment
	notices  []string
	closed   bool
}

// New creates a session on the welcome screen.
func New(opts ...Option) *Session {
	s := &Session{
		attachmentURL: func(id string) string { return "attachments/" + id },
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		catalog:       wizard.DefaultCatalog(),
		replyDelay:    600 * time.Millisecond,
		greeting:      DefaultGreeting,
		replies:       DefaultReplies,
		now:           time.Now,
		newID:         uuid.NewString,
		state:         domain.StateWelcome,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = memory.NewStore()
	}
	s.wizard = wizard.New(wizard.WithCatalog(s.catalog))
	return s
}

// State returns the current screen.
func (s *Session) State() domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Wizard returns the past-paper wizard. Callers must not use it concurrently
// with the session.
func (s *Session) Wizard() *wizard.Wizard {
	return s.wizard
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Attachments returns the store holding attachment bytes.
func (s *Session) Attachments() ports.AttachmentStore {
	return s.store
}

// SolvePastPapers opens the wizard from the welcome screen.
func (s *Session) SolvePastPapers(ctx context.Context) error {
	s.mu.Lock()
	if s.state != domain.StateWelcome {
		s.mu.Unlock()
		return fmt.Errorf("%w: solve past papers from %s", domain.ErrWrongState, s.state)
	}
	s.wizard.Reset()
	from := s.setState(domain.StateSelectingPaper)
	s.mu.Unlock()

	s.emitState(ctx, from, domain.StateSelectingPaper)
	return nil
}

// AskQuestions opens a free chat that starts with the greeting.
func (s *Session) AskQuestions(ctx context.Context) error {
	s.mu.Lock()
	if s.state != domain.StateWelcome {
		s.mu.Unlock()
		return fmt.Errorf("%w: ask questions from %s", domain.ErrWrongState, s.state)
	}
	from := s.setState(domain.StateChat)
	s.resetTranscript()
	greeting := s.appendMessage(domain.RoleBot, s.greeting, nil)
	s.mu.Unlock()

	s.emitState(ctx, from, domain.StateChat)
	s.emitMessage(ctx, greeting)
	return nil
}

// NewChat drops the transcript and returns to the welcome screen.
func (s *Session) NewChat(ctx context.Context) {
	s.mu.Lock()
	from := s.setState(domain.StateWelcome)
	s.resetTranscript()
	s.wizard.Reset()
	s.mu.Unlock()

	if from != domain.StateWelcome {
		s.emitState(ctx, from, domain.StateWelcome)
	}
}

// BackFromSelector leaves the wizard for the welcome screen.
func (s *Session) BackFromSelector(ctx context.Context) error {
	s.mu.Lock()
	if s.state != domain.StateSelectingPaper {
		s.mu.Unlock()
		return fmt.Errorf("%w: back from %s", domain.ErrWrongState, s.state)
	}
	from := s.setState(domain.StateWelcome)
	s.mu.Unlock()

	s.emitState(ctx, from, domain.StateWelcome)
	return nil
}

// CompleteSelection opens the chat for sel. The transcript is replaced by the
// bot's confirmation, the user's command and the worked solution, in that order.
// When the library has no solution for sel the built-in sample is shown.
func (s *Session) CompleteSelection(ctx context.Context, sel domain.PaperSelection) (domain.Solution, error) {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()
	if state != domain.StateSelectingPaper {
		return domain.Solution{}, fmt.Errorf("%w: complete selection from %s", domain.ErrWrongState, state)
	}
	sel.Subpart = domain.NormalizeSubpart(sel.Subpart)
	if err := s.catalog.Validate(sel); err != nil {
		return domain.Solution{}, err
	}

	solution, found, err := s.lookup(ctx, sel)
	if err != nil {
		return domain.Solution{}, err
	}

	s.mu.Lock()
	if s.state != domain.StateSelectingPaper {
		state := s.state
		s.mu.Unlock()
		return domain.Solution{}, fmt.Errorf("%w: selector left during lookup, now %s", domain.ErrWrongState, state)
	}
	from := s.setState(domain.StateChat)
	s.resetTranscript()
	added := []domain.Message{
		s.appendMessage(domain.RoleBot, sel.Describe(), nil),
		s.appendMessage(domain.RoleUser, sel.Command(), nil),
		s.appendMessage(domain.RoleBot, solution.Content, nil),
	}
	s.mu.Unlock()

	s.logger.Debug("selection complete", "selection", sel.Key(), "solution", solution.ID, "found", found)

	if s.hooks.OnSelectionComplete != nil {
		s.hooks.OnSelectionComplete(ctx, &domain.SelectionEvent{
			EventBase: s.event(domain.EventSelectionComplete),
			Selection: sel,
			Found:     found,
		})
	}
	s.emitState(ctx, from, domain.StateChat)
	for _, m := range added {
		s.emitMessage(ctx, m)
	}
	return solution, nil
}

func (s *Session) lookup(ctx context.Context, sel domain.PaperSelection) (domain.Solution, bool, error) {
	if s.library == nil {
		return Sample(sel), false, nil
	}
	solution, err := s.library.Find(ctx, sel)
	if errors.Is(err, domain.ErrSolutionNotFound) {
		return Sample(sel), false, nil
	}
	if err != nil {
		return domain.Solution{}, false, fmt.Errorf("failed to look up solution: %w", err)
	}
	return solution, true, nil
}

// Send appends a user message. Empty text with attachments is replaced by a
// prompt asking the bot to look at them.
func (s *Session) Send(ctx context.Context, text string, attachments []domain.Attachment) (domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		if len(attachments) == 0 {
			return domain.Message{}, domain.ErrEmptyMessage
		}
		text = FilePrompt
		for _, a := range attachments {
			if a.Type == domain.AttachmentImage {
				text = ImagePrompt
				break
			}
		}
	}

	s.mu.Lock()
	if s.state != domain.StateChat {
		s.mu.Unlock()
		return domain.Message{}, fmt.Errorf("%w: send from %s", domain.ErrWrongState, s.state)
	}
	msg := s.appendMessage(domain.RoleUser, text, attachments)
	s.mu.Unlock()

	s.emitMessage(ctx, msg)
	return msg, nil
}

// Reply waits for the configured delay and appends the next canned answer.
// It returns ctx.Err() if cancelled while waiting.
func (s *Session) Reply(ctx context.Context) (domain.Message, error) {
	if s.State() != domain.StateChat {
		return domain.Message{}, fmt.Errorf("%w: reply outside chat", domain.ErrWrongState)
	}

	if s.replyDelay > 0 {
		timer := time.NewTimer(s.replyDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return domain.Message{}, ctx.Err()
		case <-timer.C:
		}
	}

	s.mu.Lock()
	if s.state != domain.StateChat {
		s.mu.Unlock()
		return domain.Message{}, fmt.Errorf("%w: chat closed while replying", domain.ErrWrongState)
	}
	content := s.replies[s.nextReply%len(s.replies)]
	s.nextReply++
	msg := s.appendMessage(domain.RoleBot, content, nil)
	s.mu.Unlock()

	s.emitMessage(ctx, msg)
	return msg, nil
}

// Attach stores data as an attachment named name. The type is taken from the
// sniffed content, not the file extension.
func (s *Session) Attach(ctx context.Context, name string, data []byte) (domain.Attachment, error) {
	mimeType := http.DetectContentType(data)
	att := domain.Attachment{
		ID:       s.newID(),
		Type:     domain.AttachmentFile,
		Name:     filepath.Base(name),
		MIMEType: mimeType,
	}
	if strings.HasPrefix(mimeType, "image/") {
		att.Type = domain.AttachmentImage
	}
	att.URL = s.attachmentURL(att.ID)

	if err := s.store.Save(ctx, att, data); err != nil {
		return domain.Attachment{}, fmt.Errorf("failed to store attachment %s: %w", att.Name, err)
	}
	s.logger.Debug("attachment stored", "id", att.ID, "name", att.Name, "mime", mimeType)
	return att, nil
}

// setState must be called with mu held. It returns the previous state.
func (s *Session) setState(to domain.AppState) domain.AppState {
	from := s.state
	s.state = to
	return from
}

// resetTranscript must be called with mu held.
func (s *Session) resetTranscript() {
	s.messages = nil
	s.rendered = 0
	s.pending = nil
	s.nextReply = 0
}

// appendMessage must be called with mu held.
func (s *Session) appendMessage(role domain.Role, content string, attachments []domain.Attachment) domain.Message {
	msg := domain.Message{
		ID:          s.newID(),
		Role:        role,
		Content:     content,
		Timestamp:   s.now().Format(TimestampLayout),
		Attachments: attachments,
	}
	s.messages = append(s.messages, msg)
	return msg
}

func (s *Session) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: s.now(), Type: t}
}

func (s *Session) emitState(ctx context.Context, from, to domain.AppState) {
	s.logger.Debug("state change", "from", from, "to", to)
	if s.hooks.OnStateChange != nil {
		s.hooks.OnStateChange(ctx, &domain.StateEvent{
			EventBase: s.event(domain.EventStateChange),
			From:      from,
			To:        to,
		})
	}
}

func (s *Session) emitMessage(ctx context.Context, msg domain.Message) {
	if s.hooks.OnMessage != nil {
		s.hooks.OnMessage(ctx, &domain.MessageEvent{
			EventBase: s.event(domain.EventMessage),
			Message:   msg,
		})
	}
}
