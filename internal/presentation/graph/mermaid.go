package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/scene"
)

// GraphOverlay marks nodes to highlight on the diagram.
type GraphOverlay struct {
	// Changed holds nodes touched by a recent edit.
	Changed []domain.NodeID
	// Selected is the node under the cursor, if any.
	Selected domain.NodeID
}

// GenerateMermaid produces a Mermaid flowchart of the scene tree in pre-order.
// Node shapes follow the node type:
// - Container: [Rectangle]
// - Sprite: [[Subroutine]]
// - Rectangle: [/Parallelogram/]
// - Circle: ((Circle))
// - Path: >Flag]
// - Text: {{Hexagon}}
// Edges run from parent to child in child order.
func GenerateMermaid(sc *domain.Scene, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if sc == nil {
		return sb.String()
	}

	scene.Walk(sc, func(n *domain.Node, depth int) bool {
		safeID := sanitizeMermaidID(string(n.ID))
		opener, closer := shape(n.Type)
		label := strings.ReplaceAll(n.Name, "\"", "'")
		fmt.Fprintf(&sb, "    %s%s\"%s <br/> %s\"%s\n", safeID, opener, label, n.Type, closer)

		if parent, ok := n.Parent(); ok {
			fmt.Fprintf(&sb, "    %s --> %s\n", sanitizeMermaidID(string(parent)), safeID)
		}
		return true
	})

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef changed fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Changed {
			// Removed nodes have no box to style.
			if _, ok := sc.Nodes[id]; !ok {
				continue
			}
			safeID := sanitizeMermaidID(string(id))
			if !seen[safeID] {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s changed;\n", safeID)
			}
		}

		if overlay.Selected != "" {
			fmt.Fprintf(&sb, "    class %s selected;\n", sanitizeMermaidID(string(overlay.Selected)))
		}
	}

	return sb.String()
}

func shape(t domain.NodeType) (string, string) {
	switch t {
	case domain.NodeTypeSprite:
		return "[[", "]]"
	case domain.NodeTypeRectangle:
		return "[/", "/]"
	case domain.NodeTypeCircle:
		return "((", "))"
	case domain.NodeTypePath:
		return ">", "]"
	case domain.NodeTypeText:
		return "{{", "}}"
	default:
		return "[", "]"
	}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return "n_" + s
}
