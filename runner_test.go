package editor_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	editor "github.com/aretw0/turbo-editor"
	"github.com/aretw0/turbo-editor/pkg/adapters/memory"
	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScript(t *testing.T, ed *editor.Editor, sceneID, script string) string {
	t.Helper()
	var out bytes.Buffer
	r := editor.NewRunner()
	r.Input = strings.NewReader(script)
	r.Output = &out
	r.Headless = true
	require.NoError(t, r.Run(context.Background(), ed, sceneID))
	return out.String()
}

func TestRunner_EditsAndGenerates(t *testing.T) {
	ctx := context.Background()
	ed := newEditor(t)
	sc, err := ed.CreateScene(ctx, "Shell")
	require.NoError(t, err)

	script := `# build a small scene
add / Bg Rectangle
set /Bg color #00FF00
add / Hero Sprite
set /Hero path "hero.png"
mv /Hero / 0
rename /Hero Player
get /Player path
gen
`
	out := runScript(t, ed, sc.ID, script)
	assert.Contains(t, out, `"hero.png"`+"\n")
	assert.Contains(t, out, "turbo::go! {\n"+
		"    sprite!(\"hero.png\", x = 0, y = 0, w = 100, h = 100);\n"+
		"    rect!(x = 0, y = 0, w = 100, h = 100, color = 0xFF00FF00, border_radius = 0);\n"+
		"}\n")
	assert.NotContains(t, out, "error:")

	n, err := ed.Node(ctx, sc.ID, "/Player")
	require.NoError(t, err)
	assert.Equal(t, domain.NodeTypeSprite, n.Type)
}

func TestRunner_QuotedNames(t *testing.T) {
	ctx := context.Background()
	ed := newEditor(t)
	sc, err := ed.CreateScene(ctx, "Shell")
	require.NoError(t, err)

	script := `add / "Hero Sprite" Sprite
set "/Hero Sprite" path "my hero.png"
rename "/Hero Sprite" "Main Hero"
add / Box Rectangle
mv /Box "/Main Hero"
`
	out := runScript(t, ed, sc.ID, script)
	assert.NotContains(t, out, "error:")

	n, err := ed.Node(ctx, sc.ID, "/Main Hero")
	require.NoError(t, err)
	assert.Equal(t, "Main Hero", n.Name)
	assert.Len(t, n.Children, 1)
	v, ok := n.Property("path")
	require.True(t, ok)
	assert.Equal(t, domain.Text("my hero.png"), v)

	box, err := ed.Node(ctx, sc.ID, "/Main Hero/Box")
	require.NoError(t, err)
	assert.Equal(t, domain.NodeTypeRectangle, box.Type)
}

func TestRunner_ErrorsDoNotStopTheLoop(t *testing.T) {
	ctx := context.Background()
	ed := newEditor(t)
	sc, err := ed.CreateScene(ctx, "Shell")
	require.NoError(t, err)

	out := runScript(t, ed, sc.ID, "bogus\nrm /\nadd / X Blob\nadd /Nope X Sprite\nadd / Ok Sprite\nexit\nadd / Never Sprite\n")
	assert.Equal(t, 4, strings.Count(out, "error:"))
	assert.Contains(t, out, `unknown command "bogus"`)

	sc, err = ed.Scene(ctx, sc.ID)
	require.NoError(t, err)
	assert.Len(t, sc.Nodes, 2, "root and Ok")
}

func TestRunner_TreeAndTemplates(t *testing.T) {
	ctx := context.Background()
	loader, err := memory.NewFromYAML(map[string]string{"card": cardTemplate})
	require.NoError(t, err)
	ed := newEditor(t, editor.WithTemplates(loader))
	sc, err := ed.CreateScene(ctx, "Shell")
	require.NoError(t, err)

	out := runScript(t, ed, sc.ID, "apply card\ntree\nrm /Card\n")
	assert.Contains(t, out, "Shell [Container]")
	assert.Contains(t, out, "\n  Card [Rectangle]")
	assert.Contains(t, out, "\n    Caption [Sprite]")
	assert.Contains(t, out, "removed 2 node(s)")
}

func TestRunner_Renderer(t *testing.T) {
	ctx := context.Background()
	ed := newEditor(t)
	sc, err := ed.CreateScene(ctx, "Shell")
	require.NoError(t, err)

	var out bytes.Buffer
	r := editor.NewRunner()
	r.Input = strings.NewReader("gen")
	r.Output = &out
	r.Headless = true
	r.Renderer = func(s string) (string, error) { return strings.ToUpper(s), nil }
	require.NoError(t, r.Run(ctx, ed, sc.ID))
	assert.Equal(t, "TURBO::GO! {\n}\n", out.String())
}

func TestRunner_RequiresIO(t *testing.T) {
	ed := newEditor(t)
	r := editor.NewRunner()
	assert.Error(t, r.Run(context.Background(), ed, "x"))
	r.Input = strings.NewReader("")
	assert.Error(t, r.Run(context.Background(), ed, "x"))
	r.Output = &bytes.Buffer{}
	assert.ErrorIs(t, r.Run(context.Background(), ed, "missing"), domain.ErrSceneNotFound)
}
