package wizard

import (
	"github.com/aretw0/chembot/pkg/domain"
)

// NodeID returns the flow graph ID of step, e.g. "wizard/year".
func NodeID(step Step) string {
	return "wizard/" + string(step)
}

// Graph describes the wizard steps as flow nodes. exit is the node reached by
// going back from the first step; done is the node reached on completion.
func Graph(exit, done string) []domain.Node {
	nodes := make([]domain.Node, 0, len(Steps))
	for i, step := range Steps {
		node := domain.Node{
			ID:    NodeID(step),
			Type:  domain.NodeTypeText,
			Label: step.Title(),
		}
		if step.Input() == domain.InputChoice {
			node.Type = domain.NodeTypeChoice
		}

		if i == len(Steps)-1 {
			node.Transitions = append(node.Transitions,
				domain.Transition{ToNodeID: done},
				domain.Transition{ToNodeID: done, Condition: "skip"},
			)
		} else {
			node.Transitions = append(node.Transitions, domain.Transition{ToNodeID: NodeID(Steps[i+1])})
		}

		back := exit
		if i > 0 {
			back = NodeID(Steps[i-1])
		}
		node.Transitions = append(node.Transitions, domain.Transition{ToNodeID: back, Condition: "back"})

		nodes = append(nodes, node)
	}
	return nodes
}
