package domain

import (
	"fmt"
	"slices"
)

// NodeID is an opaque, globally unique node identifier.
// It is assigned at creation time and never reused.
type NodeID string

// NodeType selects the emission rule and the default properties of a node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // structurally transparent group
	NodeTypeSprite                    // image drawn from a path
	NodeTypeRectangle                 // filled, optionally rounded rectangle
	NodeTypeCircle
	NodeTypePath
	NodeTypeText
)

var nodeTypeNames = [...]string{
	NodeTypeContainer: "Container",
	NodeTypeSprite:    "Sprite",
	NodeTypeRectangle: "Rectangle",
	NodeTypeCircle:    "Circle",
	NodeTypePath:      "Path",
	NodeTypeText:      "Text",
}

// NodeTypes lists every known node type in declaration order.
func NodeTypes() []NodeType {
	return []NodeType{
		NodeTypeContainer,
		NodeTypeSprite,
		NodeTypeRectangle,
		NodeTypeCircle,
		NodeTypePath,
		NodeTypeText,
	}
}

func (t NodeType) String() string {
	if int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return fmt.Sprintf("NodeType(%d)", uint8(t))
}

// ParseNodeType converts a type name (case-sensitive, e.g. "Sprite") into a NodeType.
func ParseNodeType(name string) (NodeType, error) {
	for i, n := range nodeTypeNames {
		if n == name {
			return NodeType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown node type %q", name)
}

// MarshalText encodes the type by name.
func (t NodeType) MarshalText() ([]byte, error) {
	if int(t) >= len(nodeTypeNames) {
		return nil, fmt.Errorf("unknown node type %d", uint8(t))
	}
	return []byte(nodeTypeNames[t]), nil
}

// UnmarshalText decodes a type name.
func (t *NodeType) UnmarshalText(b []byte) error {
	parsed, err := ParseNodeType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Node is a typed entity in the scene tree.
// Links to other nodes are identifiers resolved through the owning Scene.
type Node struct {
	ID         NodeID                   `json:"id" yaml:"id"`
	Name       string                   `json:"name" yaml:"name"`
	Type       NodeType                 `json:"node_type" yaml:"node_type"`
	ParentID   *NodeID                  `json:"parent_id" yaml:"parent_id"`
	Children   []NodeID                 `json:"children" yaml:"children"`
	Properties map[string]PropertyValue `json:"properties" yaml:"properties"`
}

// NewNode builds a detached node carrying the default properties of its type.
func NewNode(id NodeID, name string, t NodeType) *Node {
	return &Node{
		ID:         id,
		Name:       name,
		Type:       t,
		Children:   []NodeID{},
		Properties: DefaultProperties(t),
	}
}

// DefaultProperties returns the properties a fresh node of type t starts with.
func DefaultProperties(t NodeType) map[string]PropertyValue {
	props := map[string]PropertyValue{
		"x": Number(0),
		"y": Number(0),
	}
	switch t {
	case NodeTypeContainer:
		props["width"] = Number(100)
		props["height"] = Number(100)
	case NodeTypeSprite:
		props["width"] = Number(100)
		props["height"] = Number(100)
		props["path"] = Text("default")
	case NodeTypeRectangle:
		props["width"] = Number(100)
		props["height"] = Number(100)
		props["color"] = Color(0xFFFFFFFF)
		props["border_radius"] = Number(0)
	}
	return props
}

// Parent returns the parent identifier and whether the node has one.
func (n *Node) Parent() (NodeID, bool) {
	if n.ParentID == nil {
		return "", false
	}
	return *n.ParentID, true
}

// Property returns the raw value stored under key.
func (n *Node) Property(key string) (PropertyValue, bool) {
	v, ok := n.Properties[key]
	return v, ok
}

// Number reads a numeric property, falling back to def when the key is
// absent or holds another variant.
func (n *Node) Number(key string, def float64) float64 {
	if v, ok := n.Properties[key].AsNumber(); ok {
		return v
	}
	return def
}

// Text reads a text property with the same fallback rule as Number.
func (n *Node) Text(key string, def string) string {
	if v, ok := n.Properties[key].AsText(); ok {
		return v
	}
	return def
}

// Bool reads a boolean property with the same fallback rule as Number.
func (n *Node) Bool(key string, def bool) bool {
	if v, ok := n.Properties[key].AsBool(); ok {
		return v
	}
	return def
}

// Color reads a packed color property with the same fallback rule as Number.
func (n *Node) Color(key string, def uint32) uint32 {
	if v, ok := n.Properties[key].AsColor(); ok {
		return v
	}
	return def
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	c := *n
	if n.ParentID != nil {
		p := *n.ParentID
		c.ParentID = &p
	}
	c.Children = slices.Clone(n.Children)
	if c.Children == nil {
		c.Children = []NodeID{}
	}
	c.Properties = make(map[string]PropertyValue, len(n.Properties))
	for k, v := range n.Properties {
		c.Properties[k] = v
	}
	return &c
}
