package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/turbo-editor/internal/logging"
	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/ports"
	"github.com/aretw0/turbo-editor/pkg/scene"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates scene access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.SceneStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker    ports.DistributedLocker // Optional distributed locker
	lockTTL   time.Duration
	sceneOpts []scene.Option // Applied to every scene.Store built by Edit

	retired map[string][]domain.NodeID // Removed node ids per scene, guarded by mu
	logger    *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithSceneOptions passes options (hooks, id generator, logger) to the stores built by Edit.
func WithSceneOptions(opts ...scene.Option) Option {
	return func(m *Manager) {
		m.sceneOpts = append(m.sceneOpts, opts...)
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Manager with the given persistence store.
func NewManager(store ports.SceneStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		retired: make(map[string][]domain.NodeID),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sceneID) after unlocking.
func (m *Manager) acquire(sceneID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sceneID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sceneID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sceneID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sceneID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sceneID)
	}
}

// Create persists a new scene. It fails with domain.ErrSceneExists when the ID is taken.
func (m *Manager) Create(ctx context.Context, sc *domain.Scene) error {
	if errs := scene.Validate(sc); len(errs) > 0 {
		return errors.Join(errs...)
	}
	return m.WithLock(ctx, sc.ID, func(ctx context.Context) error {
		_, err := m.store.Load(ctx, sc.ID)
		if err == nil {
			return fmt.Errorf("create %q: %w", sc.ID, domain.ErrSceneExists)
		}
		if !errors.Is(err, domain.ErrSceneNotFound) {
			return fmt.Errorf("failed to check scene existence: %w", err)
		}
		if err := m.store.Save(ctx, sc.ID, sc); err != nil {
			return fmt.Errorf("failed to create scene: %w", err)
		}
		m.logger.Info("Scene created", "scene_id", sc.ID, "name", sc.Name)
		return nil
	})
}

// Load retrieves an existing scene from the store.
func (m *Manager) Load(ctx context.Context, sceneID string) (*domain.Scene, error) {
	var sc *domain.Scene
	err := m.WithLock(ctx, sceneID, func(ctx context.Context) error {
		var err error
		sc, err = m.store.Load(ctx, sceneID)
		return err
	})
	return sc, err
}

// Save persists the scene as given, replacing any stored version.
func (m *Manager) Save(ctx context.Context, sceneID string, sc *domain.Scene) error {
	return m.WithLock(ctx, sceneID, func(ctx context.Context) error {
		return m.store.Save(ctx, sceneID, sc)
	})
}

// Delete removes the scene from the store.
// It returns domain.ErrSceneNotFound when there is nothing to delete.
func (m *Manager) Delete(ctx context.Context, sceneID string) error {
	return m.WithLock(ctx, sceneID, func(ctx context.Context) error {
		if _, err := m.store.Load(ctx, sceneID); err != nil {
			return err
		}
		if err := m.store.Delete(ctx, sceneID); err != nil {
			return err
		}
		m.setRetired(sceneID, nil)
		return nil
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying scene store.
func (m *Manager) Store() ports.SceneStore {
	return m.store
}

// Edit loads the scene, applies fn and saves the result, all under the scene lock.
// When fn fails nothing is saved and its error is returned unchanged.
// The returned diff is nil when fn changed nothing.
func (m *Manager) Edit(ctx context.Context, sceneID string, fn ports.EditFunc) (*domain.SceneDiff, error) {
	var diff *domain.SceneDiff
	err := m.WithLock(ctx, sceneID, func(ctx context.Context) error {
		sc, err := m.store.Load(ctx, sceneID)
		if err != nil {
			return err
		}
		opts := append(slices.Clone(m.sceneOpts), scene.WithRetired(m.retiredIDs(sceneID)...))
		st, err := scene.Load(sc, opts...)
		if err != nil {
			return err
		}
		before := st.Scene()

		if err := fn(st); err != nil {
			return err
		}

		after := st.Scene()
		diff = domain.Diff(before, after)
		if diff == nil {
			return nil
		}
		if err := m.store.Save(ctx, sceneID, after); err != nil {
			diff = nil
			return fmt.Errorf("failed to save scene: %w", err)
		}
		m.setRetired(sceneID, st.Retired())
		return nil
	})
	return diff, err
}

func (m *Manager) retiredIDs(sceneID string) []domain.NodeID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.retired[sceneID]
}

func (m *Manager) setRetired(sceneID string, ids []domain.NodeID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(ids) == 0 {
		delete(m.retired, sceneID)
		return
	}
	m.retired[sceneID] = ids
}

// WithLock executes a function while holding the lock for the scene.
func (m *Manager) WithLock(ctx context.Context, sceneID string, fn func(context.Context) error) error {
	entry := m.acquire(sceneID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sceneID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sceneID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"scene_id", sceneID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
