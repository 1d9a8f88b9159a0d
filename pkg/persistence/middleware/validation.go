package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/ports"
	"github.com/aretw0/turbo-editor/pkg/scene"
)

type validationMiddleware struct {
	next ports.SceneStore
}

// NewValidationMiddleware rejects malformed trees on both Save and Load, so a
// corrupt document never reaches the editor and is never written.
// Wrap it inside the encryption middleware: it must see plain scenes.
func NewValidationMiddleware() Middleware {
	return func(next ports.SceneStore) ports.SceneStore {
		return &validationMiddleware{next: next}
	}
}

func (m *validationMiddleware) Save(ctx context.Context, sceneID string, sc *domain.Scene) error {
	if errs := scene.Validate(sc); len(errs) > 0 {
		return fmt.Errorf("refusing to save scene %s: %w", sceneID, errors.Join(errs...))
	}
	return m.next.Save(ctx, sceneID, sc)
}

func (m *validationMiddleware) Load(ctx context.Context, sceneID string) (*domain.Scene, error) {
	sc, err := m.next.Load(ctx, sceneID)
	if err != nil {
		return nil, err
	}
	if errs := scene.Validate(sc); len(errs) > 0 {
		return nil, fmt.Errorf("stored scene %s is corrupt: %w", sceneID, errors.Join(errs...))
	}
	return sc, nil
}

func (m *validationMiddleware) Delete(ctx context.Context, sceneID string) error {
	return m.next.Delete(ctx, sceneID)
}

func (m *validationMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
