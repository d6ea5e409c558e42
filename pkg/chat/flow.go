package chat

import (
	"github.com/aretw0/chembot/pkg/domain"
	"github.com/aretw0/chembot/pkg/wizard"
)

// Flow returns the screens of the chat shell and the moves between them.
func Flow() []domain.Node {
	welcome := string(domain.StateWelcome)
	chat := string(domain.StateChat)

	nodes := []domain.Node{{
		ID:    welcome,
		Type:  domain.NodeTypeScreen,
		Label: HeroTitle,
		Transitions: []domain.Transition{
			{ToNodeID: wizard.NodeID(wizard.Steps[0]), Condition: CardSolvePastPapers.Title},
			{ToNodeID: chat, Condition: CardAskQuestions.Title},
		},
	}}
	nodes = append(nodes, wizard.Graph(welcome, chat)...)
	nodes = append(nodes, domain.Node{
		ID:    chat,
		Type:  domain.NodeTypeText,
		Label: AssistantName,
		Transitions: []domain.Transition{
			{ToNodeID: chat, Condition: "send"},
			{ToNodeID: welcome, Condition: CommandNew},
		},
	})
	return nodes
}

// Inspect implements ports.Shell.
func (s *Session) Inspect() []domain.Node {
	return Flow()
}

// CurrentNode returns the flow node the session is on, e.g. "wizard/paper".
func (s *Session) CurrentNode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentNode()
}

func (s *Session) currentNode() string {
	if s.state == domain.StateSelectingPaper {
		return wizard.NodeID(s.wizard.Step())
	}
	return string(s.state)
}
