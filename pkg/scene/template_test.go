package scene

import (
	"testing"

	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buttonTemplate() *domain.Template {
	return &domain.Template{
		ID: "button",
		Root: domain.TemplateNode{
			Name: "Button",
			Type: domain.NodeTypeContainer,
			Children: []domain.TemplateNode{
				{
					Name:       "Background",
					Type:       domain.NodeTypeRectangle,
					Properties: map[string]domain.PropertyValue{"color": domain.Color(0x00FF00FF)},
				},
				{
					Name: "Icon",
					Type: domain.NodeTypeSprite,
					Children: []domain.TemplateNode{
						{Name: "Badge", Type: domain.NodeTypeCircle},
					},
				},
			},
		},
	}
}

func TestInstantiate(t *testing.T) {
	s := New("Demo")

	id, err := s.Instantiate(s.RootID(), buttonTemplate())
	require.NoError(t, err)
	assert.Equal(t, 5, s.Len())
	requireValid(t, s)

	bg, ok := s.Find("/Button/Background")
	require.True(t, ok)
	assert.Equal(t, uint32(0x00FF00FF), s.Color(bg, "color", 0))
	assert.Equal(t, 100.0, s.Number(bg, "width", 0), "defaults are kept under overrides")

	children, err := s.Children(id)
	require.NoError(t, err)
	require.Len(t, children, 2)
	first, _ := s.Node(children[0])
	assert.Equal(t, "Background", first.Name, "template child order is preserved")

	_, ok = s.Find("/Button/Icon/Badge")
	assert.True(t, ok)

	second, err := s.Instantiate(s.RootID(), buttonTemplate())
	require.NoError(t, err)
	assert.NotEqual(t, id, second)
	assert.Equal(t, 9, s.Len())
}

func TestInstantiate_IsAtomic(t *testing.T) {
	s := New("Demo")
	before := marshal(t, s)

	bad := buttonTemplate()
	bad.Root.Children[1].Children[0].Properties = map[string]domain.PropertyValue{"radius": {}}
	_, err := s.Instantiate(s.RootID(), bad)
	assert.ErrorIs(t, err, domain.ErrTypeMismatch)

	_, err = s.Instantiate("missing", buttonTemplate())
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)

	_, err = s.Instantiate(s.RootID(), nil)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)

	assert.Equal(t, before, marshal(t, s))
}
