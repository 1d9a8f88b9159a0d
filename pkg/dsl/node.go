package dsl

import (
	"fmt"

	"github.com/aretw0/turbo-editor/pkg/domain"
)

// NodeBuilder provides a fluent API for configuring a node and its children.
type NodeBuilder struct {
	name     string
	typ      domain.NodeType
	props    map[string]domain.PropertyValue
	children []*NodeBuilder
	errs     []error
}

// Node starts a builder for a node of the given type.
func Node(name string, t domain.NodeType) *NodeBuilder {
	return &NodeBuilder{
		name:  name,
		typ:   t,
		props: make(map[string]domain.PropertyValue),
	}
}

// Container starts a Container node.
func Container(name string) *NodeBuilder { return Node(name, domain.NodeTypeContainer) }

// Sprite starts a Sprite node.
func Sprite(name string) *NodeBuilder { return Node(name, domain.NodeTypeSprite) }

// Rect starts a Rectangle node.
func Rect(name string) *NodeBuilder { return Node(name, domain.NodeTypeRectangle) }

// Circle starts a Circle node.
func Circle(name string) *NodeBuilder { return Node(name, domain.NodeTypeCircle) }

// PathNode starts a Path node. Path is taken by the sprite setter.
func PathNode(name string) *NodeBuilder { return Node(name, domain.NodeTypePath) }

// Text starts a Text node.
func Text(name string) *NodeBuilder { return Node(name, domain.NodeTypeText) }

// At sets the x and y properties.
func (n *NodeBuilder) At(x, y float64) *NodeBuilder {
	n.props["x"] = domain.Number(x)
	n.props["y"] = domain.Number(y)
	return n
}

// Size sets the width and height properties.
func (n *NodeBuilder) Size(w, h float64) *NodeBuilder {
	n.props["width"] = domain.Number(w)
	n.props["height"] = domain.Number(h)
	return n
}

// Path sets the sprite image path.
func (n *NodeBuilder) Path(p string) *NodeBuilder {
	n.props["path"] = domain.Text(p)
	return n
}

// Color sets the packed 0xRRGGBBAA color.
func (n *NodeBuilder) Color(c uint32) *NodeBuilder {
	n.props["color"] = domain.Color(c)
	return n
}

// Radius sets border_radius.
func (n *NodeBuilder) Radius(r float64) *NodeBuilder {
	n.props["border_radius"] = domain.Number(r)
	return n
}

// Content sets the text content.
func (n *NodeBuilder) Content(s string) *NodeBuilder {
	n.props["content"] = domain.Text(s)
	return n
}

// Set stores an already typed property.
func (n *NodeBuilder) Set(key string, v domain.PropertyValue) *NodeBuilder {
	if !v.IsValid() {
		n.errs = append(n.errs, fmt.Errorf("node %q property %q: %w", n.name, key, domain.ErrTypeMismatch))
		return n
	}
	n.props[key] = v
	return n
}

// Prop decodes raw with domain.DecodePropertyValue. Decode errors are
// reported by Build.
func (n *NodeBuilder) Prop(key string, raw any) *NodeBuilder {
	v, err := domain.DecodePropertyValue(raw)
	if err != nil {
		n.errs = append(n.errs, fmt.Errorf("node %q property %q: %w", n.name, key, err))
		return n
	}
	n.props[key] = v
	return n
}

// Add appends children in order.
func (n *NodeBuilder) Add(children ...*NodeBuilder) *NodeBuilder {
	n.children = append(n.children, children...)
	return n
}

// Build returns the node as a template tree.
func (n *NodeBuilder) Build() (domain.TemplateNode, error) {
	var errs []error
	out := n.build(&errs)
	if len(errs) > 0 {
		return domain.TemplateNode{}, errs[0]
	}
	return out, nil
}

func (n *NodeBuilder) build(errs *[]error) domain.TemplateNode {
	*errs = append(*errs, n.errs...)
	tn := domain.TemplateNode{
		Name: n.name,
		Type: n.typ,
	}
	if len(n.props) > 0 {
		tn.Properties = make(map[string]domain.PropertyValue, len(n.props))
		for k, v := range n.props {
			tn.Properties[k] = v
		}
	}
	for _, c := range n.children {
		tn.Children = append(tn.Children, c.build(errs))
	}
	return tn
}
