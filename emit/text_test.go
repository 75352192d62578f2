package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"none", nil, ""},
		{"single", []string{"CLAY_LEFT_TO_RIGHT"}, "CLAY_LEFT_TO_RIGHT"},
		{"shared word", []string{"A_FOO", "A_BAR", "A_BAZ"}, "A_"},
		{"shared letters", []string{"CLAY_ALIGN_X_LEFT", "CLAY_ALIGN_X_RIGHT", "CLAY_ALIGN_X_CENTER"}, "CLAY_ALIGN_X_"},
		{"partial word", []string{"CLAY__SIZING_TYPE_FIT", "CLAY__SIZING_TYPE_FIXED"}, "CLAY__SIZING_TYPE_FI"},
		{"prefix of another", []string{"AB", "ABC"}, "AB"},
		{"nothing shared", []string{"X", "Y"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommonPrefix(tt.keys))
		})
	}
}

func TestCommonPrefixStripsInjectively(t *testing.T) {
	keys := []string{
		"CLAY_RENDER_COMMAND_TYPE_NONE",
		"CLAY_RENDER_COMMAND_TYPE_RECTANGLE",
		"CLAY_RENDER_COMMAND_TYPE_BORDER",
		"CLAY_RENDER_COMMAND_TYPE_TEXT",
		"CLAY_RENDER_COMMAND_TYPE_SCISSOR_START",
	}
	prefix := CommonPrefix(keys)
	seen := make(map[string]bool)
	for _, key := range keys {
		assert.True(t, strings.HasPrefix(key, prefix))
		stripped := strings.TrimPrefix(key, prefix)
		assert.False(t, seen[stripped], "duplicate %q", stripped)
		seen[stripped] = true
	}
	next := make(map[byte]bool)
	for _, key := range keys {
		next[key[len(prefix)]] = true
	}
	assert.Greater(t, len(next), 1, "prefix is maximal")
}

func TestStrippablePrefix(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"shared word", []string{"A_FOO", "A_BAR", "A_BAZ"}, "A_"},
		{"partial word", []string{"CLAY__SIZING_TYPE_FIT", "CLAY__SIZING_TYPE_FIXED"}, "CLAY__SIZING_TYPE_FI"},
		{"name is prefix of another", []string{"CLAY_A", "CLAY_A_B"}, "CLAY_"},
		{"digit after prefix", []string{"CLAY_SCALE_1X", "CLAY_SCALE_2X"}, "CLAY_"},
		{"no word boundary", []string{"AB", "ABC"}, ""},
		{"nothing shared", []string{"X", "Y"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix := StrippablePrefix(tt.keys)
			assert.Equal(t, tt.want, prefix)
			for _, key := range tt.keys {
				assert.NotEmpty(t, strings.TrimPrefix(key, prefix))
			}
		})
	}
}

func TestSnakeToPascal(t *testing.T) {
	tests := map[string]string{
		"SCISSOR_START":   "ScissorStart",
		"RECTANGLE":       "Rectangle",
		"TOP_TO_BOTTOM":   "TopToBottom",
		"border":          "Border",
		"CUSTOM_ELEMENT_": "CustomElement",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, SnakeToPascal(in))
		})
	}
}

func TestSubstitute(t *testing.T) {
	template := "package clay\n{{structs}}\n{{enums}}\n{{structs}}\n{{unknown}}\n"
	out := Substitute(template, map[string]string{
		"structs": "A :: struct {}",
		"enums":   "B :: enum {}",
	})
	assert.Equal(t, "package clay\nA :: struct {}\nB :: enum {}\nA :: struct {}\n{{unknown}}\n", out)
}
