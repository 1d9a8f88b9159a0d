package codegen

import (
	"github.com/aretw0/turbo-editor/pkg/domain"
)

// ContainerRule makes a node structurally transparent.
func ContainerRule() Rule {
	return Rule{Transparent: true}
}

// SpriteRule emits sprite!("<path>", x = .., y = .., w = .., h = ..);
func SpriteRule() Rule {
	return Rule{Emit: func(w *Writer, n *domain.Node) {
		w.Line("sprite!(%s, x = %s, y = %s, w = %s, h = %s);",
			QuoteString(n.Text("path", "default")),
			FormatNumber(n.Number("x", 0)),
			FormatNumber(n.Number("y", 0)),
			FormatNumber(n.Number("width", 100)),
			FormatNumber(n.Number("height", 100)),
		)
	}}
}

// RectangleRule emits rect!(x = .., y = .., w = .., h = .., color = 0x.., border_radius = ..);
func RectangleRule() Rule {
	return Rule{Emit: func(w *Writer, n *domain.Node) {
		w.Line("rect!(x = %s, y = %s, w = %s, h = %s, color = %s, border_radius = %s);",
			FormatNumber(n.Number("x", 0)),
			FormatNumber(n.Number("y", 0)),
			FormatNumber(n.Number("width", 100)),
			FormatNumber(n.Number("height", 100)),
			FormatColor(n.Color("color", 0xFFFFFFFF)),
			FormatNumber(n.Number("border_radius", 0)),
		)
	}}
}

// TextRule emits text!("<content>", x = .., y = .., color = 0x..);
// It is not part of DefaultRegistry; Text nodes get the placeholder unless a
// caller registers this rule.
func TextRule() Rule {
	return Rule{Emit: func(w *Writer, n *domain.Node) {
		w.Line("text!(%s, x = %s, y = %s, color = %s);",
			QuoteString(n.Text("content", n.Name)),
			FormatNumber(n.Number("x", 0)),
			FormatNumber(n.Number("y", 0)),
			FormatColor(n.Color("color", 0xFFFFFFFF)),
		)
	}}
}

func emitUnimplemented(w *Writer, n *domain.Node) {
	w.Line("// Unimplemented node type: %s", n.Type)
}
