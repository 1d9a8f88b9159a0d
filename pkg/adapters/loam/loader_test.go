package loam

import (
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/turbo-editor/internal/testutils"
	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buttonDoc = `---
id: button
root:
  name: Button
  type: Container
  children:
    - name: Background
      type: Rectangle
      properties:
        color: {Color: 4278190335}
        border_radius: {Number: 6}
    - name: Label
      type: Text
      properties:
        content: {String: OK}
---
A clickable button with a rounded background.`

const heroDoc = `{
  "description": "Player sprite",
  "root": {
    "name": "Hero",
    "type": "Sprite",
    "properties": {"path": {"String": "hero.png"}}
  }
}`

func newLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	dir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, dir, files)
	return New(loam.NewTypedRepository[TemplateMetadata](repo))
}

func TestLoader_Contract(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"button.md": buttonDoc,
		"hero.json": heroDoc,
	})

	tests.TemplateLoaderContractTest(t, loader, map[string]string{
		"button": "Button",
		"hero":   "Hero",
	})
}

func TestLoader_GetTemplate_DecodesTree(t *testing.T) {
	loader := newLoader(t, map[string]string{"button.md": buttonDoc})

	tpl, err := loader.GetTemplate("button")
	require.NoError(t, err)
	assert.Equal(t, "A clickable button with a rounded background.", tpl.Description)
	require.Len(t, tpl.Root.Children, 2)

	bg := tpl.Root.Children[0]
	assert.Equal(t, domain.NodeTypeRectangle, bg.Type)
	assert.Equal(t, domain.Color(0xFF0000FF), bg.Properties["color"])
	assert.Equal(t, domain.Number(6), bg.Properties["border_radius"])
	assert.Equal(t, domain.Text("OK"), tpl.Root.Children[1].Properties["content"])
}

func TestLoader_GetTemplate_RejectsUnknownType(t *testing.T) {
	loader := newLoader(t, map[string]string{"bad.md": `---
root:
  name: Blob
  type: Hexagon
---
`})

	_, err := loader.GetTemplate("bad")
	assert.Error(t, err)
}

func TestLoader_ListTemplates_DetectsCollisions(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"card.md": `---
id: card
root: {name: Card, type: Container}
---
`,
		"card.json": `{"id": "card", "root": {"name": "Card", "type": "Container"}}`,
	})

	_, err := loader.ListTemplates()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}
