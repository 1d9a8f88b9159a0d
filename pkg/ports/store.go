package ports

import (
	"context"

	"github.com/aretw0/turbo-editor/pkg/domain"
)

// SceneStore defines the interface for persisting scene documents.
type SceneStore interface {
	// Save persists the scene under the given ID, replacing any previous version.
	Save(ctx context.Context, sceneID string, scene *domain.Scene) error

	// Load retrieves the scene for a given ID.
	// Returns domain.ErrSceneNotFound if the scene does not exist.
	Load(ctx context.Context, sceneID string) (*domain.Scene, error)

	// Delete removes the scene. Deleting a missing scene is not an error.
	Delete(ctx context.Context, sceneID string) error

	// List returns the IDs of all stored scenes.
	List(ctx context.Context) ([]string, error)
}
