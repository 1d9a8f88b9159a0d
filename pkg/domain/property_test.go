package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyValue_JSONForm(t *testing.T) {
	tests := []struct {
		value PropertyValue
		want  string
	}{
		{Text("hero.png"), `{"String":"hero.png"}`},
		{Number(12.5), `{"Number":12.5}`},
		{Bool(true), `{"Boolean":true}`},
		{Color(0x00FF00FF), `{"Color":16711935}`},
	}
	for _, tt := range tests {
		t.Run(tt.value.Kind().String(), func(t *testing.T) {
			b, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))

			var back PropertyValue
			require.NoError(t, json.Unmarshal(b, &back))
			assert.Equal(t, tt.value, back)
		})
	}
}

func TestPropertyValue_MarshalInvalid(t *testing.T) {
	_, err := json.Marshal(PropertyValue{})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestDecodePropertyValue(t *testing.T) {
	t.Run("Accepts Loose Numbers For Color", func(t *testing.T) {
		v, err := DecodePropertyValue(map[string]any{"Color": 255})
		require.NoError(t, err)
		c, ok := v.AsColor()
		assert.True(t, ok)
		assert.Equal(t, uint32(255), c)
	})

	t.Run("Accepts YAML Style Maps", func(t *testing.T) {
		v, err := DecodePropertyValue(map[any]any{"Boolean": false})
		require.NoError(t, err)
		assert.Equal(t, Bool(false), v)
	})

	bad := map[string]any{
		"unknown variant":  map[string]any{"Vector": 1},
		"two variants":     map[string]any{"Number": 1, "String": "x"},
		"wrong payload":    map[string]any{"Number": "ten"},
		"fractional color": map[string]any{"Color": 1.5},
		"negative color":   map[string]any{"Color": -1},
		"null payload":     map[string]any{"String": nil},
		"scalar":           42,
	}
	for name, raw := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := DecodePropertyValue(raw)
			assert.ErrorIs(t, err, ErrTypeMismatch)
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := map[string]uint32{
		"0x00FF00FF": 0x00FF00FF,
		"#00FF00":    0xFF00FF00,
		"#11223344":  0x44112233,
		"ff0000":     0xFFFF0000,
		"80FFFFFF":   0x80FFFFFF,
	}
	for in, want := range tests {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseColor("#12345")
	assert.Error(t, err)
	_, err = ParseColor("zz")
	assert.Error(t, err)
}

func TestNode_DefaultFallback(t *testing.T) {
	n := NewNode("n", "Rect", NodeTypeRectangle)
	n.Properties["width"] = Text("wide")

	assert.Equal(t, 7.0, n.Number("width", 7), "wrong variant falls back")
	assert.Equal(t, 3.0, n.Number("missing", 3), "absent key falls back")
	assert.Equal(t, uint32(0xFFFFFFFF), n.Color("color", 0))
	assert.Equal(t, "fallback", n.Text("x", "fallback"))
	assert.True(t, n.Bool("visible", true))
}

func TestDefaultProperties(t *testing.T) {
	assert.Len(t, DefaultProperties(NodeTypeContainer), 4)
	assert.Len(t, DefaultProperties(NodeTypeSprite), 5)
	assert.Len(t, DefaultProperties(NodeTypeRectangle), 6)
	assert.Len(t, DefaultProperties(NodeTypeCircle), 2)

	sprite := DefaultProperties(NodeTypeSprite)
	assert.Equal(t, Text("default"), sprite["path"])
}

func TestNodeType_Text(t *testing.T) {
	for _, nt := range NodeTypes() {
		b, err := nt.MarshalText()
		require.NoError(t, err)

		var back NodeType
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, nt, back)
	}

	_, err := ParseNodeType("Hexagon")
	assert.Error(t, err)
}

func TestDecodeTemplate(t *testing.T) {
	raw := map[string]any{
		"id":          "button",
		"description": "A clickable panel",
		"root": map[string]any{
			"name": "Button",
			"type": "Container",
			"children": []any{
				map[string]any{
					"name": "Background",
					"type": "Rectangle",
					"properties": map[string]any{
						"color": map[string]any{"Color": 0x00FF00FF},
					},
				},
				map[string]any{"name": "Label", "type": "Text"},
			},
		},
	}

	tpl, err := DecodeTemplate(raw)
	require.NoError(t, err)
	assert.Equal(t, "button", tpl.ID)
	assert.Equal(t, NodeTypeContainer, tpl.Root.Type)
	assert.Equal(t, 3, tpl.Root.Count())
	require.Len(t, tpl.Root.Children, 2)
	assert.Equal(t, Color(0x00FF00FF), tpl.Root.Children[0].Properties["color"])
	assert.Equal(t, NodeTypeText, tpl.Root.Children[1].Type)

	_, err = DecodeTemplate(map[string]any{"id": "x", "root": map[string]any{"name": "A", "type": "Blob"}})
	assert.Error(t, err)
}
