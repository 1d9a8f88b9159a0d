package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/ports"
)

type transientMiddleware struct {
	next     ports.SceneStore
	patterns []*regexp.Regexp
}

// NewTransientMiddleware creates a middleware that drops properties whose key
// matches any pattern before the scene is persisted. It is meant for
// editor-only state such as selection or hover flags.
func NewTransientMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.SceneStore) ports.SceneStore {
		return &transientMiddleware{next: next, patterns: patterns}
	}
}

func (m *transientMiddleware) Save(ctx context.Context, sceneID string, scene *domain.Scene) error {
	// Work on a copy; the caller keeps its transient properties.
	cloned := scene.Snapshot()
	for _, n := range cloned.Nodes {
		for key := range n.Properties {
			if m.matches(key) {
				delete(n.Properties, key)
			}
		}
	}
	return m.next.Save(ctx, sceneID, cloned)
}

func (m *transientMiddleware) matches(key string) bool {
	for _, p := range m.patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}

func (m *transientMiddleware) Load(ctx context.Context, sceneID string) (*domain.Scene, error) {
	return m.next.Load(ctx, sceneID)
}

func (m *transientMiddleware) Delete(ctx context.Context, sceneID string) error {
	return m.next.Delete(ctx, sceneID)
}

func (m *transientMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
