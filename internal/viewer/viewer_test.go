package viewer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPlainText(t *testing.T) {
	path := writeFile(t, t.TempDir(), "notes.txt", "first\nsecond\nthird\n")

	doc, err := Load(path, Options{MaxLines: 100})
	require.NoError(t, err)

	assert.False(t, doc.Binary)
	assert.False(t, doc.Truncated)
	assert.Equal(t, []string{"first", "second", "third"}, doc.PlainText())
}

func TestLoadBoundsLineCount(t *testing.T) {
	path := writeFile(t, t.TempDir(), "long.txt", strings.Repeat("line\n", 50))

	doc, err := Load(path, Options{MaxLines: 10})
	require.NoError(t, err)

	assert.Len(t, doc.Lines, 10)
	assert.True(t, doc.Truncated)
}

func TestLoadDetectsBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x7f, 'E', 'L', 'F', 0x00, 0x01, 0x02}, 0o644))

	doc, err := Load(path, Options{MaxLines: 100})
	require.NoError(t, err)

	require.True(t, doc.Binary)
	require.NotEmpty(t, doc.Lines)
	first := doc.PlainText()[0]
	assert.True(t, strings.HasPrefix(first, "00000000  "), "hex line starts with offset: %q", first)
	assert.Contains(t, first, "7F 45 4C 46")
	assert.Contains(t, first, "|.ELF")
}

func TestLoadHighlightsByExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.go", "package main\n\nfunc main() {}\n")

	doc, err := Load(path, Options{MaxLines: 100, Highlight: true, Theme: "monokai"})
	require.NoError(t, err)

	assert.Equal(t, "Go", doc.Language)
	assert.Equal(t, []string{"package main", "", "func main() {}"}, doc.PlainText())

	colored := false
	for _, line := range doc.Lines {
		for _, span := range line {
			if span.Color != "" {
				colored = true
			}
		}
	}
	assert.True(t, colored, "expected at least one coloured span")
}

func TestLoadSanitizesControlCharacters(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tricky.txt", "safe\x1b[31mred\n")

	doc, err := Load(path, Options{MaxLines: 100})
	require.NoError(t, err)

	assert.Equal(t, "safe?[31mred", doc.PlainText()[0])
}

func TestLoadRejectsDirectories(t *testing.T) {
	_, err := Load(t.TempDir(), Options{MaxLines: 100})
	assert.Error(t, err)
}
