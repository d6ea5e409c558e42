package chembot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	loamadapter "github.com/aretw0/chembot/pkg/adapters/loam"
	"github.com/aretw0/chembot/pkg/chat"
	"github.com/aretw0/chembot/pkg/document"
	"github.com/aretw0/chembot/pkg/domain"
	"github.com/aretw0/chembot/pkg/ports"
)

// Version is the ChemBot release. Builds override it with
// -ldflags "-X github.com/aretw0/chembot.Version=v1.2.3".
var Version = "0.1.0-dev"

// Bot is the high-level entry point for embedding ChemBot.
// It owns one conversation and the library answering its selections.
type Bot struct {
	session  *chat.Session
	library  ports.SolutionLibrary
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	chatOpts []chat.Option
	Name     string
}

// Option defines a functional option for configuring the Bot.
type Option func(*Bot)

// WithLibrary injects a custom SolutionLibrary, bypassing the default Loam initialization.
func WithLibrary(lib ports.SolutionLibrary) Option {
	return func(b *Bot) {
		b.library = lib
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(b *Bot) {
		b.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the bot.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) {
		b.logger = logger
	}
}

// WithChatOptions passes options through to the chat session, for example
// chat.WithReplyDelay or chat.WithReplies.
func WithChatOptions(opts ...chat.Option) Option {
	return func(b *Bot) {
		b.chatOpts = append(b.chatOpts, opts...)
	}
}

// New initializes a new Bot.
// libraryPath is a directory of Markdown solutions read through Loam. When it
// is empty and no WithLibrary option is given, every selection is answered
// with the built-in sample solution.
func New(libraryPath string, opts ...Option) (*Bot, error) {
	b := &Bot{}
	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if b.library == nil && libraryPath != "" {
		absPath, err := filepath.Abs(libraryPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		b.Name = filepath.Base(absPath)

		lib, err := loamadapter.Open(absPath, loamadapter.WithLogger(b.logger))
		if err != nil {
			return nil, err
		}
		b.library = lib
	}

	if b.Name != "" {
		b.logger = b.logger.With("library", b.Name)
	}

	sessionOpts := []chat.Option{
		chat.WithLogger(b.logger),
		chat.WithLifecycleHooks(b.hooks),
	}
	if b.library != nil {
		sessionOpts = append(sessionOpts, chat.WithLibrary(b.library))
	}
	b.session = chat.New(append(sessionOpts, b.chatOpts...)...)

	return b, nil
}

// Session returns the underlying conversation.
func (b *Bot) Session() *chat.Session {
	return b.session
}

// Library returns the library answering selections, or nil for the built-in sample.
func (b *Bot) Library() ports.SolutionLibrary {
	return b.library
}

// Render returns what to show and ask for next, and whether the conversation has ended.
func (b *Bot) Render(ctx context.Context) ([]domain.ActionRequest, bool, error) {
	return b.session.Render(ctx)
}

// Navigate feeds one line of user input, or a complete domain.PaperSelection.
func (b *Bot) Navigate(ctx context.Context, input any) error {
	return b.session.Navigate(ctx, input)
}

// Inspect returns the conversation flow for visualization.
func (b *Bot) Inspect() []domain.Node {
	return b.session.Inspect()
}

// Watch returns a channel that signals when the library changes.
// Returns error if the library does not support watching.
func (b *Bot) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := b.library.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current library does not support watching")
}

// RenderHTML parses a solution document and returns its HTML.
func RenderHTML(content string) string {
	return document.Render(content)
}
