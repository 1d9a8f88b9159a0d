package dsl_test

import (
	"testing"

	"github.com/aretw0/turbo-editor/pkg/codegen"
	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/dsl"
	"github.com/aretw0/turbo-editor/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_DemoScene(t *testing.T) {
	b := dsl.NewScene("Demo")
	b.Rect("Bg").Color(0x00FF00FF)
	b.Sprite("Hero").Path("hero.png")

	s, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "Demo", s.Name())
	assert.Equal(t, 3, s.Len())

	want := "turbo::go! {\n" +
		"    rect!(x = 0, y = 0, w = 100, h = 100, color = 0x00FF00FF, border_radius = 0);\n" +
		"    sprite!(\"hero.png\", x = 0, y = 0, w = 100, h = 100);\n" +
		"}\n"
	assert.Equal(t, want, codegen.Generate(s.Scene()))
}

func TestBuilder_NestedOrder(t *testing.T) {
	b := dsl.NewScene("Nested").Add(
		dsl.Container("Layer").Add(
			dsl.Sprite("A").At(1, 2).Size(3, 4),
			dsl.Rect("B").Radius(6).Add(dsl.Sprite("C")),
		),
	)

	s, err := b.Build()
	require.NoError(t, err)
	assert.Empty(t, scene.Validate(s.Scene()))

	layer, ok := s.Find("/Layer")
	require.True(t, ok)
	kids, err := s.Children(layer)
	require.NoError(t, err)
	require.Len(t, kids, 2)

	a, _ := s.Node(kids[0])
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, 1.0, a.Number("x", -1))
	assert.Equal(t, 4.0, a.Number("height", -1))

	c, ok := s.Find("/Layer/B/C")
	require.True(t, ok)
	node, _ := s.Node(c)
	assert.Equal(t, domain.NodeTypeSprite, node.Type)

	want := "turbo::go! {\n" +
		"    sprite!(\"default\", x = 1, y = 2, w = 3, h = 4);\n" +
		"    rect!(x = 0, y = 0, w = 100, h = 100, color = 0xFFFFFFFF, border_radius = 6);\n" +
		"        sprite!(\"default\", x = 0, y = 0, w = 100, h = 100);\n" +
		"}\n"
	assert.Equal(t, want, codegen.Generate(s.Scene()))
}

func TestBuilder_PropDecodeError(t *testing.T) {
	b := dsl.NewScene("Bad")
	b.Sprite("Hero").Prop("path", []int{1, 2})
	_, err := b.Build()
	assert.ErrorIs(t, err, domain.ErrTypeMismatch)

	n := dsl.Rect("R").Set("color", domain.PropertyValue{})
	_, err = n.Build()
	assert.ErrorIs(t, err, domain.ErrTypeMismatch)
}

func TestBuilder_Prop(t *testing.T) {
	n := dsl.Sprite("S").
		Prop("visible", map[string]any{"Boolean": true}).
		Prop("path", domain.Text("p.png"))
	tn, err := n.Build()
	require.NoError(t, err)
	assert.Equal(t, domain.Bool(true), tn.Properties["visible"])
	assert.Equal(t, domain.Text("p.png"), tn.Properties["path"])
}

func TestLibrary(t *testing.T) {
	card := dsl.Rect("Card").Size(200, 120).Radius(8).
		Add(dsl.Text("Title").Content("Hello"))

	loader, err := dsl.Library(dsl.Template("card", "A rounded card", card))
	require.NoError(t, err)

	ids, err := loader.ListTemplates()
	require.NoError(t, err)
	assert.Equal(t, []string{"card"}, ids)

	tpl, err := loader.GetTemplate("card")
	require.NoError(t, err)
	assert.Equal(t, "A rounded card", tpl.Description)
	assert.Equal(t, 2, tpl.Root.Count())

	s := scene.New("uses card")
	id, err := s.Instantiate(s.RootID(), tpl)
	require.NoError(t, err)
	assert.Equal(t, "Hello", s.Text(mustFind(t, s, "/Card/Title"), "content", ""))
	assert.Equal(t, 8.0, s.Number(id, "border_radius", 0))

	_, err = dsl.Library(dsl.Template("empty", "", nil))
	assert.Error(t, err)
}

func mustFind(t *testing.T, s *scene.Store, path string) domain.NodeID {
	t.Helper()
	id, ok := s.Find(path)
	require.True(t, ok, path)
	return id
}
