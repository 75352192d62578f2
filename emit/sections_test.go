package emit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSections(t *testing.T) {
	s := NewSections()
	s.Write("struct", "// Clay_Color")
	s.Write("struct", "Color :: [4]c.float")
	s.Write("struct", "")
	s.Write("enum", "// Clay_Mode")

	assert.Equal(t, []string{"// Clay_Color", "Color :: [4]c.float", ""}, s.Lines("struct"))
	assert.Equal(t, "// Clay_Color\nColor :: [4]c.float\n", s.Take("struct"))
	assert.Nil(t, s.Lines("struct"))
	assert.Equal(t, "", s.Take("struct"))

	s.Put("clay.odin", "package clay\n")
	assert.Equal(t, map[string]string{
		"enum":      "// Clay_Mode",
		"clay.odin": "package clay\n",
	}, s.Outputs())
}

func TestWriteOutputs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteOutputs(dir, map[string]string{
		"clay.odin":        "package clay\n",
		"nested/extra.txt": "x",
	}))

	data, err := os.ReadFile(filepath.Join(dir, "clay.odin"))
	require.NoError(t, err)
	assert.Equal(t, "package clay\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "nested", "extra.txt"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestWriteOutputsError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	err := WriteOutputs(blocker, map[string]string{"clay.odin": ""})
	assert.Error(t, err)
}
