package domain

// ActionRequest represents something the chat shell asks the host to do.
type ActionRequest struct {
	Type    string `json:"type"`              // e.g., "RENDER_CONTENT", "REQUEST_INPUT"
	Payload any    `json:"payload,omitempty"` // The data needed to perform the action
}

// Standard Action Types
const (
	// ActionRenderContent requests the host to display content to the user.
	// Payload: Message for transcript entries, string for screen text.
	ActionRenderContent = "RENDER_CONTENT"

	// ActionRequestInput requests the host to collect input from the user.
	// Payload: InputRequest
	ActionRequestInput = "REQUEST_INPUT"

	// ActionSystemMessage represents a meta-message from the system (status, errors).
	// Payload: string (the message)
	ActionSystemMessage = "SYSTEM_MESSAGE"
)

// InputType defines the kind of input requested.
type InputType string

const (
	InputText   InputType = "text"
	InputChoice InputType = "choice"
)

// InputRequest describes the constraints and type of input needed.
type InputRequest struct {
	Type        InputType `json:"type"`
	Prompt      string    `json:"prompt,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Default     string    `json:"default,omitempty"`
}
