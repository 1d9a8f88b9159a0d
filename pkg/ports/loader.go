package ports

import (
	"context"

	"github.com/aretw0/turbo-editor/pkg/domain"
)

// TemplateLoader defines how the editor retrieves reusable templates.
// This allows the storage layer (Loam, FS, Memory) to be decoupled.
type TemplateLoader interface {
	// GetTemplate returns the template with the given ID.
	// Returns domain.ErrTemplateNotFound if it does not exist.
	GetTemplate(id string) (*domain.Template, error)

	// ListTemplates returns the IDs of all available templates, sorted.
	ListTemplates() ([]string, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload of a template library.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying templates change.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
