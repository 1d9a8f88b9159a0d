package codegen

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/turbo-editor/internal/logging"
	"github.com/aretw0/turbo-editor/pkg/domain"
)

const (
	header = "turbo::go! {\n"
	footer = "}\n"
)

// Generator turns scenes into DSL text.
type Generator struct {
	registry *Registry
	width    int
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRegistry replaces the default rule set.
func WithRegistry(r *Registry) Option {
	return func(g *Generator) {
		g.registry = r
	}
}

// WithIndentWidth sets the number of spaces per depth level.
func WithIndentWidth(width int) Option {
	return func(g *Generator) {
		if width >= 0 {
			g.width = width
		}
	}
}

// WithHooks registers the OnGenerate callback.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Generator) {
		g.hooks = hooks
	}
}

// WithLogger configures a logger for the Generator.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New creates a Generator using DefaultRegistry unless overridden.
func New(opts ...Option) *Generator {
	g := &Generator{
		width:  DefaultIndentWidth,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.registry == nil {
		g.registry = DefaultRegistry()
	}
	return g
}

// Registry returns the rule set in use.
func (g *Generator) Registry() *Registry {
	return g.registry
}

var defaultGenerator = New()

// Generate renders sc with the default rules.
func Generate(sc *domain.Scene) string {
	return defaultGenerator.Generate(sc)
}

// Generate renders sc. It does not modify the scene.
func (g *Generator) Generate(sc *domain.Scene) string {
	return g.GenerateContext(context.Background(), sc)
}

// GenerateContext renders sc and passes ctx to the OnGenerate hook.
func (g *Generator) GenerateContext(ctx context.Context, sc *domain.Scene) string {
	start := time.Now()
	w := newWriter(g.width)
	w.raw(header)
	if sc != nil {
		g.walk(w, sc)
	}
	w.raw(footer)
	out := w.String()

	g.logger.Debug("Code generated", "scene_id", sceneID(sc), "statements", w.lines, "bytes", len(out))
	if g.hooks.OnGenerate != nil {
		g.hooks.OnGenerate(ctx, &domain.GenerateEvent{
			EventBase: domain.EventBase{
				Timestamp: start,
				Type:      domain.EventGenerate,
				SceneID:   sceneID(sc),
			},
			Statements: w.lines,
			Bytes:      len(out),
			Duration:   time.Since(start),
		})
	}
	return out
}

// walk is a pre-order traversal with an explicit stack. Children are pushed in
// reverse so they pop in stored order.
func (g *Generator) walk(w *Writer, sc *domain.Scene) {
	type frame struct {
		id    domain.NodeID
		depth int
	}
	stack := []frame{{sc.RootID, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n, ok := sc.Nodes[f.id]
		if !ok || n == nil {
			continue
		}

		rule, _ := g.registry.Lookup(n.Type)
		childDepth := f.depth
		if !rule.Transparent {
			w.depth = f.depth
			if rule.Emit != nil {
				rule.Emit(w, n)
			}
			childDepth = f.depth + 1
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{n.Children[i], childDepth})
		}
	}
}

func sceneID(sc *domain.Scene) string {
	if sc == nil {
		return ""
	}
	return sc.ID
}
