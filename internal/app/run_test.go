package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/harnessgo/internal/platform"
	"github.com/vk/harnessgo/internal/summary"
)

// writeSummary writes a summary fixture describing a build rooted at
// targetDir and returns the file path.
func writeSummary(t *testing.T, targetDir string) string {
	t.Helper()

	hostLibdir := "/fake/toolchain/host/lib"
	s := &summary.BuildMetaSummary{
		TargetDirectory:       targetDir,
		BaseOutputDirectories: []string{"release"},
		LinkedPaths:           []string{"native-libs"},
		Platforms: &summary.BuildPlatformsSummary{
			Host: summary.HostPlatformSummary{
				Platform: platform.Current().Triple(),
				Libdir:   &hostLibdir,
			},
		},
	}

	path := filepath.Join(t.TempDir(), "meta.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, s.Encode(f))
	return path
}

func newTestConfig(t *testing.T, cfg Config) *Config {
	t.Helper()
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	out, err := NewConfig(cfg)
	require.NoError(t, err)
	return out
}

func TestRun_PrintsDylibPathsInOrder(t *testing.T) {
	t.Parallel()

	targetDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(targetDir, "native-libs"), 0o755))
	summaryPath := writeSummary(t, targetDir)

	cfg := newTestConfig(t, Config{SummaryPath: summaryPath, Output: OutputLines})
	out := &bytes.Buffer{}
	a := NewApp(out, &bytes.Buffer{}, cfg)

	require.NoError(t, a.Run(context.Background(), cfg))

	want := fmt.Sprintf("%s\n%s\n%s\n%s\n",
		filepath.Join(targetDir, "native-libs"),
		filepath.Join(targetDir, "release", "deps"),
		filepath.Join(targetDir, "release"),
		"/fake/toolchain/host/lib",
	)
	assert.Equal(t, want, out.String())
}

func TestRun_EnvOutput(t *testing.T) {
	t.Parallel()

	targetDir := t.TempDir()
	summaryPath := writeSummary(t, targetDir)

	cfg := newTestConfig(t, Config{SummaryPath: summaryPath, Output: OutputEnv})
	out := &bytes.Buffer{}
	a := NewApp(out, &bytes.Buffer{}, cfg)

	require.NoError(t, a.Run(context.Background(), cfg))

	line := strings.TrimSuffix(out.String(), "\n")
	require.True(t, strings.HasPrefix(line, platform.DylibPathEnvVar()+"="),
		"expected a %s assignment, got %q", platform.DylibPathEnvVar(), line)

	value := strings.TrimPrefix(line, platform.DylibPathEnvVar()+"=")
	entries := strings.Split(value, string(os.PathListSeparator))
	assert.Equal(t, []string{
		filepath.Join(targetDir, "release", "deps"),
		filepath.Join(targetDir, "release"),
		"/fake/toolchain/host/lib",
	}, entries)
}

func TestRun_ProfileRemapsTargetDirectory(t *testing.T) {
	t.Parallel()

	// The summary says the build happened under originalDir; the profile
	// relocates it to reusedDir, where the linked path actually exists.
	originalDir := filepath.Join(t.TempDir(), "never-created")
	reusedDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(reusedDir, "native-libs"), 0o755))
	summaryPath := writeSummary(t, originalDir)

	profilePath := filepath.Join(t.TempDir(), "reuse.hcl")
	require.NoError(t, os.WriteFile(profilePath,
		[]byte(fmt.Sprintf("reuse_build {\n  target_dir = %q\n}\n", reusedDir)), 0o600))

	cfg := newTestConfig(t, Config{
		SummaryPath: summaryPath,
		ProfilePath: profilePath,
		Output:      OutputLines,
	})
	out := &bytes.Buffer{}
	a := NewApp(out, &bytes.Buffer{}, cfg)

	require.NoError(t, a.Run(context.Background(), cfg))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Equal(t, []string{
		filepath.Join(reusedDir, "native-libs"),
		filepath.Join(reusedDir, "release", "deps"),
		filepath.Join(reusedDir, "release"),
		"/fake/toolchain/host/lib",
	}, lines)
}

func TestRun_ReencodeWritesCanonicalSummary(t *testing.T) {
	t.Parallel()

	targetDir := t.TempDir()
	summaryPath := writeSummary(t, targetDir)

	cfg := newTestConfig(t, Config{
		SummaryPath: summaryPath,
		Output:      OutputLines,
		Reencode:    true,
	})
	a := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg)
	require.NoError(t, a.Run(context.Background(), cfg))

	f, err := os.Open(summaryPath + ".canonical.json")
	require.NoError(t, err)
	defer f.Close()

	s, err := summary.Decode(f)
	require.NoError(t, err)
	// Canonical form keeps the original target directory and carries the
	// redundant legacy platform fields.
	assert.Equal(t, targetDir, s.TargetDirectory)
	require.NotNil(t, s.Platforms)
	assert.Equal(t, platform.Current().Triple(), s.Platforms.Host.Platform)
	require.Len(t, s.TargetPlatforms, 1)
}

func TestRun_DecodeFailureIsFatal(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	cfg := newTestConfig(t, Config{SummaryPath: path, Output: OutputLines})
	a := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg)

	err := a.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.json")
}

func TestRun_EmptyDirectoryWarnsAndSucceeds(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t, Config{
		SummaryPath: t.TempDir(),
		Output:      OutputLines,
		LogLevel:    "warn",
	})
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	a := NewApp(out, logs, cfg)

	require.NoError(t, a.Run(context.Background(), cfg))
	assert.Empty(t, out.String())
	assert.Contains(t, logs.String(), "No summary files found")
}

func TestNewConfig_RequiresSummaryPath(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.Error(t, err)
}
