package cli

import (
	"fmt"

	"github.com/aretw0/chembot/internal/presentation/graph"
	"github.com/aretw0/chembot/pkg/chat"
)

// RunGraph prints the conversation flow as a Mermaid diagram.
func RunGraph(stdio IO) error {
	_, err := fmt.Fprint(stdio.Out, graph.GenerateMermaid(chat.Flow(), nil))
	return err
}
