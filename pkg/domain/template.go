package domain

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Template is a reusable subtree. Instantiating it copies the nodes under
// an existing parent with fresh identifiers.
type Template struct {
	ID          string       `json:"id" yaml:"id" mapstructure:"id"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Root        TemplateNode `json:"root" yaml:"root" mapstructure:"root"`
}

// TemplateNode describes one node of a template. Properties override the
// defaults of the node type.
type TemplateNode struct {
	Name       string                   `json:"name" yaml:"name" mapstructure:"name"`
	Type       NodeType                 `json:"type" yaml:"type" mapstructure:"type"`
	Properties map[string]PropertyValue `json:"properties,omitempty" yaml:"properties,omitempty" mapstructure:"properties"`
	Children   []TemplateNode           `json:"children,omitempty" yaml:"children,omitempty" mapstructure:"children"`
}

// Count returns the number of nodes the template creates.
func (t *TemplateNode) Count() int {
	n := 1
	for i := range t.Children {
		n += t.Children[i].Count()
	}
	return n
}

var (
	nodeTypeType      = reflect.TypeOf(NodeType(0))
	propertyValueType = reflect.TypeOf(PropertyValue{})
)

// templateHook converts raw document values into NodeType and PropertyValue.
// mapstructure flattens hook errors into strings, so the first one is kept in
// *firstErr for callers that match on sentinels.
func templateHook(firstErr *error) mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		var (
			out any = data
			err error
		)
		switch to {
		case nodeTypeType:
			if s, ok := data.(string); ok {
				out, err = ParseNodeType(s)
			}
		case propertyValueType:
			out, err = DecodePropertyValue(data)
		}
		if err != nil && *firstErr == nil {
			*firstErr = err
		}
		return out, err
	}
}

// DecodeTemplate builds a Template from a loosely typed document such as
// decoded frontmatter or a YAML/JSON object.
func DecodeTemplate(raw map[string]any) (*Template, error) {
	var (
		t       Template
		hookErr error
	)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  templateHook(&hookErr),
		ErrorUnused: true,
		Result:      &t,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		if hookErr != nil {
			return nil, fmt.Errorf("decode template: %w", hookErr)
		}
		return nil, fmt.Errorf("decode template: %w", err)
	}
	if t.Root.Name == "" {
		return nil, fmt.Errorf("decode template %q: root node needs a name", t.ID)
	}
	return &t, nil
}
