package domain

// Transition is an edge of the chat flow graph.
type Transition struct {
	ToNodeID string `json:"to_node_id"`

	// Condition names the user action that takes the edge, e.g. "back" or "skip".
	// Empty means the default forward move.
	Condition string `json:"condition,omitempty"`
}
