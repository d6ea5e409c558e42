package graph

import (
	"fmt"
	"path"
	"strings"

	"github.com/aretw0/chembot/pkg/domain"
)

// GraphOverlay contains live session data to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from the flow nodes.
// It applies semantic styling:
// - Welcome: ((Circle))
// - Choice: {{Hexagon}}
// - Text input: [/Parallelogram/]
// - Default: [Rectangle]
// Edges between node groups ("wizard/year" to "chat") are drawn dotted.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(nodes []domain.Node, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch {
		case node.ID == string(domain.StateWelcome):
			opener, closer = "((", "))"
		case node.Type == domain.NodeTypeChoice:
			opener, closer = "{{", "}}"
		case node.Type == domain.NodeTypeText:
			opener, closer = "[/", "/]"
		}

		label := node.Label
		if label == "" {
			label = node.ID
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(label), closer))

		for _, t := range node.Transitions {
			safeTo := sanitizeMermaidID(t.ToNodeID)
			isJump := path.Dir(node.ID) != path.Dir(t.ToNodeID)

			arrow := "-->"
			if isJump {
				arrow = "-.->"
			}
			if t.Condition != "" {
				condition := escapeLabel(t.Condition)
				arrow = fmt.Sprintf("-- \"%s\" -->", condition)
				if isJump {
					arrow = fmt.Sprintf("-. \"%s\" .->", condition)
				}
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, safeTo))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentNode != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode)))
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
