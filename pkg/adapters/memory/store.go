package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/turbo-editor/pkg/domain"
)

// Store implements ports.SceneStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Scene
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Scene),
	}
}

// Save persists a deep copy of the scene.
func (s *Store) Save(ctx context.Context, sceneID string, scene *domain.Scene) error {
	copied := scene.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sceneID] = copied
	return nil
}

// Load retrieves a copy of the scene so callers can't mutate stored state by pointer.
func (s *Store) Load(ctx context.Context, sceneID string) (*domain.Scene, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scene, ok := s.data[sceneID]
	if !ok {
		return nil, domain.ErrSceneNotFound
	}
	return scene.Snapshot(), nil
}

// Delete removes the scene.
func (s *Store) Delete(ctx context.Context, sceneID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sceneID)
	return nil
}

// List returns stored scene IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
