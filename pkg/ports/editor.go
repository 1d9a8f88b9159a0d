package ports

import (
	"context"

	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/scene"
)

// EditFunc mutates a scene under the single-writer lock.
// Returning an error discards every change made by the function.
type EditFunc func(s *scene.Store) error

// SceneEditor is the application surface used by driving adapters (HTTP, MCP).
type SceneEditor interface {
	CreateScene(ctx context.Context, name string) (*domain.Scene, error)
	Scene(ctx context.Context, sceneID string) (*domain.Scene, error)
	Scenes(ctx context.Context) ([]string, error)
	DeleteScene(ctx context.Context, sceneID string) error

	// Edit applies fn atomically and returns what changed (nil when nothing did).
	Edit(ctx context.Context, sceneID string, fn EditFunc) (*domain.SceneDiff, error)

	// Generate renders the scene as DSL source text.
	Generate(ctx context.Context, sceneID string) (string, error)

	Templates(ctx context.Context) ([]string, error)
	Template(ctx context.Context, id string) (*domain.Template, error)
}
