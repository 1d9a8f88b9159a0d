package editor

import (
	"testing"

	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want domain.PropertyValue
	}{
		{"true", domain.Bool(true)},
		{"false", domain.Bool(false)},
		{"12", domain.Number(12)},
		{"-3.5", domain.Number(-3.5)},
		{"1e3", domain.Number(1000)},
		{"#FF0000", domain.Color(0xFFFF0000)},
		{"#00FF0080", domain.Color(0x8000FF00)},
		{"0x11223344", domain.Color(0x11223344)},
		{`"12"`, domain.Text("12")},
		{`"a b"`, domain.Text("a b")},
		{"hero.png", domain.Text("hero.png")},
		{"0xfeed.png", domain.Text("0xfeed.png")},
		{"0xZZ", domain.Text("0xZZ")},
		{"inf", domain.Text("inf")},
		{"-Infinity", domain.Text("-Infinity")},
		{"NaN", domain.Text("NaN")},
		{"1e400", domain.Text("1e400")},
		{`{"Number": 4}`, domain.Number(4)},
		{`{"String": "x"}`, domain.Text("x")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseValue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseValue_Errors(t *testing.T) {
	for _, in := range []string{"#GG0000", "#12345", `{"Number": 1, "String": "x"}`} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseValue(in)
			assert.Error(t, err)
		})
	}
}

func TestSplitArgs(t *testing.T) {
	assert.Equal(t, []string{"set", "/Hero", "path", `"my hero.png"`}, splitArgs(`set /Hero  path "my hero.png"`))
	assert.Equal(t, []string{"tree"}, splitArgs("tree"))
	assert.Empty(t, splitArgs("   "))
	assert.Equal(t, "Hero Sprite", unquote(`"Hero Sprite"`))
	assert.Equal(t, "/Menu/Main Hero", unquote(`"/Menu/Main Hero"`))
}
