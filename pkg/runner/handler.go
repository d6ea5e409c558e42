package runner

import (
	"context"

	"github.com/aretw0/chembot/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents the actions to the user.
	// Returns true if the actions ask for input.
	Output(ctx context.Context, actions []domain.ActionRequest) (bool, error)

	// Input reads a response from the user.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message to the user (e.g. input errors, status updates).
	// This is distinct from content rendering.
	SystemOutput(ctx context.Context, msg string) error
}

// InputDecoder is implemented by handlers whose input lines can carry
// structured values, such as a complete paper selection.
type InputDecoder interface {
	DecodeInput(line string) (any, error)
}

// ContentRenderer is a function that transforms Markdown before outputting it.
// This allows terminal rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

func needsInput(actions []domain.ActionRequest) bool {
	for _, act := range actions {
		if act.Type == domain.ActionRequestInput {
			return true
		}
	}
	return false
}
