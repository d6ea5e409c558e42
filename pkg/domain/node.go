package domain

// NodeType constants classify the screens of the chat flow.
const (
	// NodeTypeScreen is a screen reached by navigation, such as welcome or chat.
	NodeTypeScreen = "screen"
	// NodeTypeChoice halts waiting for one of a fixed set of options.
	NodeTypeChoice = "choice"
	// NodeTypeText halts waiting for free text.
	NodeTypeText = "text"
)

// Node is one stop of the chat flow graph, used for documentation and debugging.
type Node struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label,omitempty"`

	// Transitions defines the possible paths from this node.
	Transitions []Transition `json:"transitions"`
}
