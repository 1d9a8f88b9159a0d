package codegen

import (
	"sync"

	"github.com/aretw0/turbo-editor/pkg/domain"
)

// EmitFunc writes the statement for one node at the writer's current depth.
type EmitFunc func(w *Writer, n *domain.Node)

// Rule describes how a node type is emitted.
type Rule struct {
	// Emit writes the node's statement. It may be nil for transparent rules.
	Emit EmitFunc
	// Transparent nodes emit nothing and keep their children at the same depth.
	Transparent bool
}

// Registry maps node types to emission rules.
// Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	rules    map[domain.NodeType]Rule
	fallback Rule
}

// NewRegistry creates a registry with no rules and the comment fallback.
func NewRegistry() *Registry {
	return &Registry{
		rules:    make(map[domain.NodeType]Rule),
		fallback: Rule{Emit: emitUnimplemented},
	}
}

// DefaultRegistry returns a registry with rules for Container, Sprite and Rectangle.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(domain.NodeTypeContainer, ContainerRule())
	r.Register(domain.NodeTypeSprite, SpriteRule())
	r.Register(domain.NodeTypeRectangle, RectangleRule())
	return r
}

// Register sets the rule for a node type.
// If a rule for the type exists, it is overwritten.
func (r *Registry) Register(t domain.NodeType, rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[t] = rule
}

// Fallback replaces the rule used for types without a registration.
func (r *Registry) Fallback(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = rule
}

// Lookup returns the rule for t. When t has no registration it returns the
// fallback rule and false.
func (r *Registry) Lookup(t domain.NodeType) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rule, ok := r.rules[t]; ok {
		return rule, true
	}
	return r.fallback, false
}
