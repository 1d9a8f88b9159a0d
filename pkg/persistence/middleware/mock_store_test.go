package middleware_test

import (
	"context"
	"sort"

	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
// It keeps the pointers it is given so tests can inspect what was written.
type MockStore struct {
	data map[string]*domain.Scene
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]*domain.Scene),
	}
}

func (s *MockStore) Save(ctx context.Context, sceneID string, scene *domain.Scene) error {
	s.data[sceneID] = scene
	return nil
}

func (s *MockStore) Load(ctx context.Context, sceneID string) (*domain.Scene, error) {
	scene, ok := s.data[sceneID]
	if !ok {
		return nil, domain.ErrSceneNotFound
	}
	return scene, nil
}

func (s *MockStore) Delete(ctx context.Context, sceneID string) error {
	delete(s.data, sceneID)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

var _ ports.SceneStore = (*MockStore)(nil)
