package profile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("empty path yields the identity mapper", func(t *testing.T) {
		mapper, err := Load(context.Background(), "")
		require.NoError(t, err)
		_, ok := mapper.NewTargetDir()
		assert.False(t, ok)
	})

	t.Run("profile with target_dir yields a target dir mapper", func(t *testing.T) {
		path := writeProfile(t, `
reuse_build {
  target_dir = "/srv/ci/artifacts/target"
}
`)
		mapper, err := Load(context.Background(), path)
		require.NoError(t, err)
		dir, ok := mapper.NewTargetDir()
		require.True(t, ok)
		assert.Equal(t, "/srv/ci/artifacts/target", dir)
	})

	t.Run("profile without a reuse_build block yields identity", func(t *testing.T) {
		path := writeProfile(t, "")
		mapper, err := Load(context.Background(), path)
		require.NoError(t, err)
		_, ok := mapper.NewTargetDir()
		assert.False(t, ok)
	})

	t.Run("empty reuse_build block yields identity", func(t *testing.T) {
		path := writeProfile(t, "reuse_build {}\n")
		mapper, err := Load(context.Background(), path)
		require.NoError(t, err)
		_, ok := mapper.NewTargetDir()
		assert.False(t, ok)
	})

	t.Run("malformed HCL is an error", func(t *testing.T) {
		path := writeProfile(t, "reuse_build {\n")
		_, err := Load(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})

	t.Run("non-string target_dir is an error", func(t *testing.T) {
		path := writeProfile(t, "reuse_build {\n  target_dir = 42\n}\n")
		_, err := Load(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be a string")
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"))
		require.Error(t, err)
	})
}
