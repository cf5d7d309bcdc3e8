package cli

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	single := filepath.Join(dir, "notice.txt")
	writeTestFile(t, single, "извещение")

	docs := filepath.Join(dir, "docs")
	writeTestFile(t, filepath.Join(docs, "b.pdf"), "%PDF")
	writeTestFile(t, filepath.Join(docs, "a.docx"), "PK")
	writeTestFile(t, filepath.Join(docs, "sub", "c.xlsx"), "PK")
	writeTestFile(t, filepath.Join(docs, ".hidden.txt"), "skip")
	writeTestFile(t, filepath.Join(docs, ".git", "config"), "skip")

	files, err := collectFiles([]string{"file://" + single, docs})

	require.NoError(t, err)
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name()
	}
	assert.Equal(t, []string{"notice.txt", "a.docx", "b.pdf", "sub/c.xlsx"}, names)
	assert.Equal(t, single, files[0].Path)
	assert.Equal(t, ".xlsx", files[3].Ext)
}

func TestCollectFiles_Missing(t *testing.T) {
	_, err := collectFiles([]string{filepath.Join(t.TempDir(), "missing.pdf")})

	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.pdf")
}

func TestCollectFiles_Empty(t *testing.T) {
	files, err := collectFiles(nil)

	require.NoError(t, err)
	assert.Empty(t, files)
}
