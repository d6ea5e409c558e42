package runner

import (
	"log/slog"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithHeadless sets the runner to headless mode: no banner, and input
// errors end the run instead of prompting again.
func WithHeadless(headless bool) Option {
	return func(r *Runner) {
		r.Headless = headless
	}
}

// WithRecoverable decides which Navigate errors are reported and survived.
func WithRecoverable(fn func(error) bool) Option {
	return func(r *Runner) {
		r.Recoverable = fn
	}
}
