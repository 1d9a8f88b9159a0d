package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/turbo-editor/internal/logging"
	"github.com/aretw0/turbo-editor/pkg/adapters/loam"
	"github.com/aretw0/turbo-editor/pkg/adapters/memory"
	"github.com/aretw0/turbo-editor/pkg/codegen"
	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/persistence/middleware"
	"github.com/aretw0/turbo-editor/pkg/ports"
	"github.com/aretw0/turbo-editor/pkg/scene"
	"github.com/aretw0/turbo-editor/pkg/schema"
	"github.com/aretw0/turbo-editor/pkg/session"
)

// Editor is the high-level entry point for the library.
// It owns persistence, the single-writer session manager, the code generator
// and the template library, and exposes scene editing by scene ID.
type Editor struct {
	store       ports.SceneStore
	middlewares []middleware.Middleware
	locker      ports.DistributedLocker
	lockTTL     time.Duration
	loader      ports.TemplateLoader
	registry    *codegen.Registry
	indentWidth int
	schemas     schema.Set
	hooks       domain.LifecycleHooks
	logger      *slog.Logger

	sessions  *session.Manager
	generator *codegen.Generator
	optErr    error
}

// Ensure Editor implements the driving port used by adapters.
var _ ports.SceneEditor = (*Editor)(nil)

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithStore sets the scene store. The default keeps scenes in memory.
func WithStore(store ports.SceneStore) Option {
	return func(e *Editor) {
		e.store = store
	}
}

// WithMiddleware wraps the store; the first middleware is the outermost.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(e *Editor) {
		e.middlewares = append(e.middlewares, mws...)
	}
}

// WithLocker adds a distributed lock around every scene operation.
// A non-positive ttl keeps session.DefaultLockTTL.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(e *Editor) {
		e.locker = locker
		if ttl > 0 {
			e.lockTTL = ttl
		}
	}
}

// WithTemplates injects a template library.
func WithTemplates(loader ports.TemplateLoader) Option {
	return func(e *Editor) {
		e.loader = loader
	}
}

// WithTemplateDir reads templates from a Loam repository at dir.
func WithTemplateDir(dir string) Option {
	return func(e *Editor) {
		l, err := loam.Open(dir)
		if err != nil {
			e.optErr = errors.Join(e.optErr, err)
			return
		}
		e.loader = l
	}
}

// WithRegistry replaces the code generation rules.
func WithRegistry(r *codegen.Registry) Option {
	return func(e *Editor) {
		e.registry = r
	}
}

// WithIndentWidth sets the spaces per nesting level of generated code.
func WithIndentWidth(width int) Option {
	return func(e *Editor) {
		e.indentWidth = width
	}
}

// WithSchemas replaces the property schemas used by Validate.
func WithSchemas(set schema.Set) Option {
	return func(e *Editor) {
		e.schemas = set
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls merge.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Editor) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// New initializes an Editor. Without options it keeps scenes in memory and
// has an empty template library.
func New(opts ...Option) (*Editor, error) {
	e := &Editor{
		lockTTL:     session.DefaultLockTTL,
		indentWidth: codegen.DefaultIndentWidth,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.optErr != nil {
		return nil, e.optErr
	}

	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.store == nil {
		e.store = memory.NewStore()
	}
	if e.loader == nil {
		e.loader, _ = memory.NewLoader()
	}
	if e.registry == nil {
		e.registry = codegen.DefaultRegistry()
	}
	if e.schemas == nil {
		e.schemas = schema.Defaults()
	}

	store := middleware.Chain(e.store, e.middlewares...)
	sessionOpts := []session.Option{
		session.WithLogger(e.logger),
		session.WithSceneOptions(scene.WithHooks(e.hooks), scene.WithLogger(e.logger)),
	}
	if e.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(e.locker), session.WithLockTTL(e.lockTTL))
	}
	e.sessions = session.NewManager(store, sessionOpts...)
	e.generator = codegen.New(
		codegen.WithRegistry(e.registry),
		codegen.WithIndentWidth(e.indentWidth),
		codegen.WithHooks(e.hooks),
		codegen.WithLogger(e.logger),
	)
	return e, nil
}

// Sessions returns the session manager.
func (e *Editor) Sessions() *session.Manager {
	return e.sessions
}

// Loader returns the template library.
func (e *Editor) Loader() ports.TemplateLoader {
	return e.loader
}

// Generator returns the code generator.
func (e *Editor) Generator() *codegen.Generator {
	return e.generator
}

// CreateScene persists a fresh scene whose root is an empty Container.
func (e *Editor) CreateScene(ctx context.Context, name string) (*domain.Scene, error) {
	sc := scene.New(name, scene.WithLogger(e.logger)).Scene()
	if err := e.sessions.Create(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// ImportScene persists an existing scene document after validation.
func (e *Editor) ImportScene(ctx context.Context, sc *domain.Scene) error {
	if sc == nil {
		return fmt.Errorf("import: %w", domain.ErrInvalidScene)
	}
	return e.sessions.Create(ctx, sc.Snapshot())
}

// Scene returns a copy of the stored scene.
func (e *Editor) Scene(ctx context.Context, sceneID string) (*domain.Scene, error) {
	return e.sessions.Load(ctx, sceneID)
}

// Scenes lists stored scene IDs.
func (e *Editor) Scenes(ctx context.Context) ([]string, error) {
	return e.sessions.List(ctx)
}

// DeleteScene removes a scene.
func (e *Editor) DeleteScene(ctx context.Context, sceneID string) error {
	return e.sessions.Delete(ctx, sceneID)
}

// Edit applies fn under the scene lock and returns what changed.
func (e *Editor) Edit(ctx context.Context, sceneID string, fn ports.EditFunc) (*domain.SceneDiff, error) {
	return e.sessions.Edit(ctx, sceneID, fn)
}

// AddNode appends a node under parent, given as a node ID or a /path.
// An empty parent means the root.
func (e *Editor) AddNode(ctx context.Context, sceneID, parent, name string, t domain.NodeType) (domain.NodeID, *domain.SceneDiff, error) {
	var id domain.NodeID
	diff, err := e.Edit(ctx, sceneID, func(s *scene.Store) error {
		p, err := resolve(s, parent)
		if err != nil {
			return err
		}
		id, err = s.AddNode(p, name, t)
		return err
	})
	return id, diff, err
}

// RemoveNode deletes a node and its subtree.
func (e *Editor) RemoveNode(ctx context.Context, sceneID, ref string) (*domain.SceneDiff, error) {
	return e.Edit(ctx, sceneID, func(s *scene.Store) error {
		id, err := s.Resolve(ref)
		if err != nil {
			return err
		}
		return s.RemoveNode(id)
	})
}

// MoveNode reparents or reorders a node. index -1 appends.
func (e *Editor) MoveNode(ctx context.Context, sceneID, ref, parent string, index int) (*domain.SceneDiff, error) {
	return e.Edit(ctx, sceneID, func(s *scene.Store) error {
		id, err := s.Resolve(ref)
		if err != nil {
			return err
		}
		p, err := resolve(s, parent)
		if err != nil {
			return err
		}
		return s.MoveNode(id, p, index)
	})
}

// RenameNode changes a node's display name.
func (e *Editor) RenameNode(ctx context.Context, sceneID, ref, name string) (*domain.SceneDiff, error) {
	return e.Edit(ctx, sceneID, func(s *scene.Store) error {
		id, err := s.Resolve(ref)
		if err != nil {
			return err
		}
		return s.RenameNode(id, name)
	})
}

// SetProperty writes a property. value is a domain.PropertyValue or anything
// domain.DecodePropertyValue accepts.
func (e *Editor) SetProperty(ctx context.Context, sceneID, ref, key string, value any) (*domain.SceneDiff, error) {
	return e.Edit(ctx, sceneID, func(s *scene.Store) error {
		id, err := s.Resolve(ref)
		if err != nil {
			return err
		}
		return s.SetPropertyRaw(id, key, value)
	})
}

// Node returns a copy of the node at ref.
func (e *Editor) Node(ctx context.Context, sceneID, ref string) (*domain.Node, error) {
	sc, err := e.Scene(ctx, sceneID)
	if err != nil {
		return nil, err
	}
	s, err := scene.Load(sc)
	if err != nil {
		return nil, err
	}
	id, err := s.Resolve(ref)
	if err != nil {
		return nil, err
	}
	n, _ := s.Node(id)
	return n, nil
}

// Generate renders the stored scene as DSL source text.
func (e *Editor) Generate(ctx context.Context, sceneID string) (string, error) {
	sc, err := e.Scene(ctx, sceneID)
	if err != nil {
		return "", err
	}
	return e.generator.GenerateContext(ctx, sc), nil
}

// ApplyTemplate instantiates a library template under parent.
func (e *Editor) ApplyTemplate(ctx context.Context, sceneID, templateID, parent string) (domain.NodeID, *domain.SceneDiff, error) {
	tpl, err := e.Template(ctx, templateID)
	if err != nil {
		return "", nil, err
	}
	var id domain.NodeID
	diff, err := e.Edit(ctx, sceneID, func(s *scene.Store) error {
		p, err := resolve(s, parent)
		if err != nil {
			return err
		}
		id, err = s.Instantiate(p, tpl)
		return err
	})
	return id, diff, err
}

// Templates lists the template library.
func (e *Editor) Templates(ctx context.Context) ([]string, error) {
	return e.loader.ListTemplates()
}

// Template returns one library template.
func (e *Editor) Template(ctx context.Context, id string) (*domain.Template, error) {
	return e.loader.GetTemplate(id)
}

// Report lists the problems found in a scene.
type Report struct {
	// Invariants holds tree structure violations; the scene is unusable.
	Invariants []error
	// Properties holds schema findings; generation still works.
	Properties []error
}

// OK reports whether no problem was found.
func (r Report) OK() bool {
	return len(r.Invariants) == 0 && len(r.Properties) == 0
}

// Validate checks a stored scene's tree invariants and property schemas.
func (e *Editor) Validate(ctx context.Context, sceneID string) (Report, error) {
	sc, err := e.Scene(ctx, sceneID)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Invariants: scene.Validate(sc),
		Properties: e.schemas.Check(sc),
	}, nil
}

// Watch signals template library changes.
// It fails with errors.ErrUnsupported when the library cannot be watched.
func (e *Editor) Watch(ctx context.Context) (<-chan struct{}, error) {
	if w, ok := e.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("template library %T cannot be watched: %w", e.loader, errors.ErrUnsupported)
}

func resolve(s *scene.Store, ref string) (domain.NodeID, error) {
	if ref == "" {
		return s.RootID(), nil
	}
	return s.Resolve(ref)
}
