package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStateChange       EventType = "state_change"
	EventMessage           EventType = "message"
	EventSelectionComplete EventType = "selection_complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StateEvent represents a move between screens.
type StateEvent struct {
	EventBase
	From AppState `json:"from"`
	To   AppState `json:"to"`
}

// MessageEvent represents a message appended to the transcript.
type MessageEvent struct {
	EventBase
	Message Message `json:"message"`
}

// SelectionEvent represents a completed wizard run.
type SelectionEvent struct {
	EventBase
	Selection PaperSelection `json:"selection"`
	Found     bool           `json:"found"` // false when the built-in sample was used
}

// LifecycleHooks defines callbacks for chat shell observability.
type LifecycleHooks struct {
	OnStateChange       func(context.Context, *StateEvent)
	OnMessage           func(context.Context, *MessageEvent)
	OnSelectionComplete func(context.Context, *SelectionEvent)
}
