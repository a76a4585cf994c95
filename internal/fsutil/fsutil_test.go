package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.True(t, Exists(dir))
	assert.False(t, Exists(filepath.Join(dir, "nope")))

	file := filepath.Join(dir, "f.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o600))
	assert.True(t, Exists(file))
}

func TestFindSummaries(t *testing.T) {
	t.Parallel()

	t.Run("regular file is returned as-is", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "meta.json")
		require.NoError(t, os.WriteFile(file, []byte("{}"), 0o600))

		files, err := FindSummaries(file)
		require.NoError(t, err)
		assert.Equal(t, []string{file}, files)
	})

	t.Run("directory is searched recursively for json files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
		a := filepath.Join(dir, "a.json")
		b := filepath.Join(dir, "nested", "b.json")
		require.NoError(t, os.WriteFile(a, []byte("{}"), 0o600))
		require.NoError(t, os.WriteFile(b, []byte("{}"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

		files, err := FindSummaries(dir)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{a, b}, files)
	})

	t.Run("missing path is an error", func(t *testing.T) {
		_, err := FindSummaries(filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
	})
}
