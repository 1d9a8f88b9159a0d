package memory_test

import (
	"testing"

	"github.com/aretw0/turbo-editor/pkg/adapters/memory"
	"github.com/aretw0/turbo-editor/pkg/domain"
	contract "github.com/aretw0/turbo-editor/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardYAML = `
description: Card with a background and an icon
root:
  name: Card
  type: Container
  children:
    - name: Background
      type: Rectangle
      properties:
        color: {Color: 0x00FF00FF}
        border_radius: {Number: 8}
    - name: Icon
      type: Sprite
      properties:
        path: {String: icon.png}
`

func TestInMemoryLoader_Contract(t *testing.T) {
	loader, err := memory.NewFromYAML(map[string]string{
		"card": cardYAML,
		"dot":  "root: {name: Dot, type: Circle}",
	})
	require.NoError(t, err)

	contract.TemplateLoaderContractTest(t, loader, map[string]string{
		"card": "Card",
		"dot":  "Dot",
	})
}

func TestNewFromYAML_DecodesProperties(t *testing.T) {
	loader, err := memory.NewFromYAML(map[string]string{"card": cardYAML})
	require.NoError(t, err)

	tpl, err := loader.GetTemplate("card")
	require.NoError(t, err)
	require.Len(t, tpl.Root.Children, 2)
	bg := tpl.Root.Children[0]
	assert.Equal(t, domain.NodeTypeRectangle, bg.Type)
	assert.Equal(t, domain.Color(0x00FF00FF), bg.Properties["color"])
	assert.Equal(t, domain.Number(8), bg.Properties["border_radius"])
	assert.Equal(t, domain.Text("icon.png"), tpl.Root.Children[1].Properties["path"])
}

func TestNewFromYAML_RejectsBadTemplates(t *testing.T) {
	_, err := memory.NewFromYAML(map[string]string{"bad": "root: {name: X, type: Hexagon}"})
	assert.Error(t, err)

	_, err = memory.NewFromYAML(map[string]string{"bad": "root: {name: X, type: Sprite, properties: {path: {Vector: 1}}}"})
	assert.ErrorIs(t, err, domain.ErrTypeMismatch)
}

func TestNewLoader(t *testing.T) {
	tpl := &domain.Template{ID: "one", Root: domain.TemplateNode{Name: "One"}}
	loader, err := memory.NewLoader(tpl)
	require.NoError(t, err)
	ids, _ := loader.ListTemplates()
	assert.Equal(t, []string{"one"}, ids)

	_, err = memory.NewLoader(&domain.Template{})
	assert.Error(t, err)
}
