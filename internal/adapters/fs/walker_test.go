package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fusionary/internal/adapters/fs"
)

func collect(t *testing.T, w *fs.Walker, root string) []string {
	t.Helper()
	files := make([]string, 0)
	for path, err := range w.WalkFiles(root) {
		require.NoError(t, err)
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		files = append(files, filepath.ToSlash(rel))
	}
	return files
}

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "js"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "css"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "favicon.png"), []byte("png"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "js", "index.js"), []byte("import '../css/main.css'"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "css", "main.css"), []byte("body{}"), 0o600))

	files := collect(t, fs.NewWalker(), tmpDir)

	assert.Equal(t, []string{"css/main.css", "favicon.png", "js/index.js"}, files)
}

func TestWalker_WalkFiles_SkipsIgnoredDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	for _, dir := range []string{".git", "node_modules/lodash", ".fusionary", "vendor", "js"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, dir), 0o750))
	}
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".git", "config"), []byte("gitconfig"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "node_modules", "lodash", "index.js"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".fusionary", "state.json"), []byte("{}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "vendor", "lib.js"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "js", "index.js"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.tmp"), []byte("x"), 0o600))

	files := collect(t, fs.NewWalker("vendor", "*.tmp"), tmpDir)

	assert.Equal(t, []string{"js/index.js"}, files)
}

func TestWalker_WalkFiles_MissingRoot(t *testing.T) {
	files := collect(t, fs.NewWalker(), filepath.Join(t.TempDir(), "missing"))
	assert.Empty(t, files)
}

func TestWalker_WalkFiles_EarlyBreak(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a.js", "b.js", "c.js"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte(name), 0o600))
	}

	count := 0
	for range fs.NewWalker().WalkFiles(tmpDir) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}
