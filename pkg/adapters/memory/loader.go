package memory

import (
	"fmt"
	"sort"

	"github.com/aretw0/turbo-editor/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.TemplateLoader using an in-memory map.
type Loader struct {
	templates map[string]*domain.Template
}

// NewLoader creates a Loader from domain objects.
func NewLoader(templates ...*domain.Template) (*Loader, error) {
	l := &Loader{templates: make(map[string]*domain.Template, len(templates))}
	for _, t := range templates {
		if t == nil || t.ID == "" {
			return nil, fmt.Errorf("template missing ID")
		}
		l.templates[t.ID] = t
	}
	return l, nil
}

// NewFromYAML creates a Loader from raw YAML documents keyed by template ID.
// A document without an id field takes the key as its ID.
func NewFromYAML(data map[string]string) (*Loader, error) {
	l := &Loader{templates: make(map[string]*domain.Template, len(data))}
	for id, doc := range data {
		var raw map[string]any
		if err := yaml.Unmarshal([]byte(doc), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", id, err)
		}
		if raw == nil {
			raw = make(map[string]any)
		}
		if _, ok := raw["id"]; !ok {
			raw["id"] = id
		}
		tpl, err := domain.DecodeTemplate(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode template %s: %w", id, err)
		}
		l.templates[id] = tpl
	}
	return l, nil
}

// GetTemplate returns the template with the given ID.
func (l *Loader) GetTemplate(id string) (*domain.Template, error) {
	t, ok := l.templates[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, id)
	}
	return t, nil
}

// ListTemplates returns all available template IDs.
func (l *Loader) ListTemplates() ([]string, error) {
	keys := make([]string, 0, len(l.templates))
	for k := range l.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
