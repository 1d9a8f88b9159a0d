package dsl

import (
	"fmt"

	"github.com/aretw0/turbo-editor/pkg/adapters/memory"
	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/scene"
)

// Builder manages the construction of one scene.
type Builder struct {
	name  string
	nodes []*NodeBuilder
}

// NewScene creates a new scene builder.
func NewScene(name string) *Builder {
	return &Builder{name: name}
}

// Add attaches nodes under the scene root, in order.
func (b *Builder) Add(nodes ...*NodeBuilder) *Builder {
	b.nodes = append(b.nodes, nodes...)
	return b
}

// Node creates a node under the root and returns its builder.
func (b *Builder) Node(name string, t domain.NodeType) *NodeBuilder {
	nb := Node(name, t)
	b.nodes = append(b.nodes, nb)
	return nb
}

// Container creates a Container under the root.
func (b *Builder) Container(name string) *NodeBuilder {
	return b.Node(name, domain.NodeTypeContainer)
}

// Sprite creates a Sprite under the root.
func (b *Builder) Sprite(name string) *NodeBuilder { return b.Node(name, domain.NodeTypeSprite) }

// Rect creates a Rectangle under the root.
func (b *Builder) Rect(name string) *NodeBuilder { return b.Node(name, domain.NodeTypeRectangle) }

// Text creates a Text node under the root.
func (b *Builder) Text(name string) *NodeBuilder { return b.Node(name, domain.NodeTypeText) }

// Build compiles the description into a scene store.
func (b *Builder) Build(opts ...scene.Option) (*scene.Store, error) {
	s := scene.New(b.name, opts...)
	for _, nb := range b.nodes {
		root, err := nb.Build()
		if err != nil {
			return nil, err
		}
		if _, err := s.Instantiate(s.RootID(), &domain.Template{ID: root.Name, Root: root}); err != nil {
			return nil, fmt.Errorf("failed to build node %q: %w", root.Name, err)
		}
	}
	return s, nil
}

// TemplateBuilder is a node builder bound to a template id.
type TemplateBuilder struct {
	id          string
	description string
	root        *NodeBuilder
}

// Template names root as a reusable template.
func Template(id, description string, root *NodeBuilder) TemplateBuilder {
	return TemplateBuilder{id: id, description: description, root: root}
}

// Build returns the domain template.
func (t TemplateBuilder) Build() (*domain.Template, error) {
	if t.root == nil {
		return nil, fmt.Errorf("template %q has no root", t.id)
	}
	root, err := t.root.Build()
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", t.id, err)
	}
	return &domain.Template{ID: t.id, Description: t.description, Root: root}, nil
}

// Library compiles templates into a memory loader.
func Library(templates ...TemplateBuilder) (*memory.Loader, error) {
	out := make([]*domain.Template, 0, len(templates))
	for _, t := range templates {
		tpl, err := t.Build()
		if err != nil {
			return nil, err
		}
		out = append(out, tpl)
	}
	loader, err := memory.NewLoader(out...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
