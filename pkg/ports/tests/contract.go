package tests

import (
	"errors"
	"testing"

	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/ports"
)

// TemplateLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.TemplateLoader.
// want maps each template ID to the name of its root node.
func TemplateLoaderContractTest(t *testing.T, loader ports.TemplateLoader, want map[string]string) {
	t.Helper()

	t.Run("GetTemplate_Success", func(t *testing.T) {
		for id, rootName := range want {
			tpl, err := loader.GetTemplate(id)
			if err != nil {
				t.Fatalf("unexpected error getting template %s: %v", id, err)
			}
			if tpl.ID != id {
				t.Errorf("template id mismatch: got %q, want %q", tpl.ID, id)
			}
			if tpl.Root.Name != rootName {
				t.Errorf("root name mismatch for %s: got %q, want %q", id, tpl.Root.Name, rootName)
			}
		}
	})

	t.Run("GetTemplate_NotFound", func(t *testing.T) {
		_, err := loader.GetTemplate("non-existent-template")
		if !errors.Is(err, domain.ErrTemplateNotFound) {
			t.Errorf("expected ErrTemplateNotFound, got %v", err)
		}
	})

	t.Run("ListTemplates", func(t *testing.T) {
		ids, err := loader.ListTemplates()
		if err != nil {
			t.Fatalf("unexpected error listing templates: %v", err)
		}
		if len(ids) != len(want) {
			t.Errorf("expected %d templates, got %d", len(want), len(ids))
		}
		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}
		for id := range want {
			if !lookup[id] {
				t.Errorf("template %s missing from list", id)
			}
		}
	})
}
