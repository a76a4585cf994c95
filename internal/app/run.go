package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vk/harnessgo/internal/buildmeta"
	"github.com/vk/harnessgo/internal/ctxlog"
	"github.com/vk/harnessgo/internal/fsutil"
	"github.com/vk/harnessgo/internal/platform"
	"github.com/vk/harnessgo/internal/summary"
)

// Run executes the main application logic based on the provided
// configuration: every summary file under the configured path is decoded,
// remapped through the profile's path mapper, and its library search paths
// are printed in the configured output mode.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	files, err := fsutil.FindSummaries(appConfig.SummaryPath)
	if err != nil {
		return fmt.Errorf("failed to find summary files in %s: %w", appConfig.SummaryPath, err)
	}
	if len(files) == 0 {
		a.logger.Warn("No summary files found in path.", "path", appConfig.SummaryPath)
		return nil
	}
	a.logger.Debug("Summary files resolved.", "count", len(files))

	for _, file := range files {
		if err := a.processSummary(ctx, appConfig, file); err != nil {
			// A decode failure is fatal to the whole run; there is no
			// partial-success mode for a metadata record.
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// processSummary handles a single summary file end to end.
func (a *App) processSummary(ctx context.Context, appConfig *Config, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open summary file %s: %w", file, err)
	}
	defer f.Close()

	s, err := summary.Decode(f)
	if err != nil {
		return fmt.Errorf("summary file %s: %w", file, err)
	}

	raw, err := buildmeta.FromSummary(s)
	if err != nil {
		return fmt.Errorf("summary file %s: %w", file, err)
	}
	a.logger.Debug("Summary decoded.",
		"file", file,
		"target_directory", raw.TargetDirectory(),
		"host", raw.BuildPlatforms().Host.Triple(),
	)

	exec := raw.Remap(a.mapper)
	paths := exec.DylibPaths(ctx)

	switch appConfig.Output {
	case OutputEnv:
		fmt.Fprintf(a.outW, "%s=%s\n",
			platform.DylibPathEnvVar(), strings.Join(paths, string(os.PathListSeparator)))
	default:
		for _, p := range paths {
			fmt.Fprintln(a.outW, p)
		}
	}

	if appConfig.Reencode {
		// Canonical form keeps the original target directory: the remapped
		// one only has meaning on this machine.
		if err := a.reencode(raw, file); err != nil {
			return err
		}
	}
	return nil
}

// reencode writes the canonical form of raw next to its source file.
func (a *App) reencode(raw *buildmeta.RawMeta, file string) error {
	out := file + ".canonical.json"
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create canonical summary %s: %w", out, err)
	}
	defer f.Close()

	if err := raw.ToSummary().Encode(f); err != nil {
		return fmt.Errorf("canonical summary %s: %w", out, err)
	}
	a.logger.Info("Canonical summary written.", "path", out)
	return nil
}
