package buildmeta

import (
	"context"
	"path/filepath"

	"github.com/vk/harnessgo/internal/ctxlog"
	"github.com/vk/harnessgo/internal/fsutil"
)

// DylibPaths returns the ordered, duplicate-free list of absolute
// directories that must be searched for shared libraries when running a
// test binary. The composition order replicates the build tool exactly and
// is an external contract, since spawned processes see it verbatim in their
// dynamic-linker environment variable:
//
//  1. linked paths, in sorted key order, joined with the target directory
//     and kept only if they exist on disk;
//  2. for each base output directory in sorted order, its "deps"
//     subdirectory followed by the directory itself, with no existence
//     filter;
//  3. the host libdir if known, then the target libdir if known.
//
// Duplicates keep their first occurrence. The computation never fails:
// missing directories are skipped, and missing libdirs are reported as a
// warning through the context logger because test binaries may then fail to
// locate some shared libraries at runtime.
func (m *ExecMeta) DylibPaths(ctx context.Context) []string {
	var libdirs []string
	if m.buildPlatforms.HostLibdir != "" {
		libdirs = append(libdirs, m.buildPlatforms.HostLibdir)
	}
	if m.buildPlatforms.Target != nil && m.buildPlatforms.Target.Libdir != "" {
		libdirs = append(libdirs, m.buildPlatforms.Target.Libdir)
	}
	if len(libdirs) == 0 {
		ctxlog.FromContext(ctx).Warn(
			"no toolchain libdir detected, test binaries may fail to load shared libraries")
	}

	var paths []string
	for _, rel := range sortedKeys(m.linkedPaths) {
		joined := filepath.Join(m.targetDirectory, filepath.FromSlash(rel))
		if fsutil.Exists(joined) {
			paths = append(paths, joined)
		}
	}
	// The build tool adds the "deps" subdirectory ahead of each base output
	// directory, and neither is filtered for existence.
	for _, rel := range sortedKeys(m.baseOutputDirectories) {
		absBase := filepath.Join(m.targetDirectory, filepath.FromSlash(rel))
		paths = append(paths, filepath.Join(absBase, "deps"), absBase)
	}
	paths = append(paths, libdirs...)

	return dedupFirst(paths)
}

// dedupFirst removes duplicates from paths, keeping each entry's first
// occurrence in place.
func dedupFirst(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
