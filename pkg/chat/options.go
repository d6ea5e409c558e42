package chat

import (
	"log/slog"
	"time"

	"github.com/aretw0/chembot/pkg/domain"
	"github.com/aretw0/chembot/pkg/ports"
	"github.com/aretw0/chembot/pkg/wizard"
)

// Option configures a Session.
type Option func(*Session)

// WithLibrary sets where worked solutions are looked up.
// Without one, every selection gets the built-in sample.
func WithLibrary(lib ports.SolutionLibrary) Option {
	return func(s *Session) {
		s.library = lib
	}
}

// WithAttachmentStore sets where attachment bytes are kept.
func WithAttachmentStore(store ports.AttachmentStore) Option {
	return func(s *Session) {
		s.store = store
	}
}

// WithAttachmentURL sets how an attachment ID becomes its URL.
func WithAttachmentURL(fn func(id string) string) Option {
	return func(s *Session) {
		s.attachmentURL = fn
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithCatalog sets the past papers offered by the wizard.
func WithCatalog(c wizard.Catalog) Option {
	return func(s *Session) {
		s.catalog = c
	}
}

// WithReplyDelay sets how long Reply waits before answering.
func WithReplyDelay(d time.Duration) Option {
	return func(s *Session) {
		s.replyDelay = d
	}
}

// WithGreeting replaces the Ask Questions opening message.
func WithGreeting(greeting string) Option {
	return func(s *Session) {
		if greeting != "" {
			s.greeting = greeting
		}
	}
}

// WithReplies replaces the canned answers.
func WithReplies(replies ...string) Option {
	return func(s *Session) {
		if len(replies) > 0 {
			s.replies = replies
		}
	}
}

// WithClock overrides the time source, used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithIDGenerator overrides how message and attachment IDs are made.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) {
		s.newID = fn
	}
}
