package buildmeta

import (
	"fmt"

	"github.com/vk/harnessgo/internal/platform"
	"github.com/vk/harnessgo/internal/summary"
)

// FromSummary builds a RawMeta from its serialized form.
//
// Platform information is resolved newest-generation-first:
//
//  1. the structured "platforms" object, when present;
//  2. otherwise the first entry of the legacy "target_platforms" list;
//  3. otherwise the legacy "target_platform" string, which may itself be
//     absent, in which case the host is taken to be the current platform
//     and no target is set.
//
// Resolution failures are typed: a *platform.UnsupportedError when the
// summary specifies more than one target, a *platform.ParseError when a
// triple does not parse.
func FromSummary(s *summary.BuildMetaSummary) (*RawMeta, error) {
	var buildPlatforms platform.BuildPlatforms
	var err error
	switch {
	case s.Platforms != nil:
		buildPlatforms, err = platform.FromSummary(s.Platforms)
	case len(s.TargetPlatforms) > 0:
		buildPlatforms, err = platform.FromTargetSummary(s.TargetPlatforms[0])
	default:
		buildPlatforms, err = platform.FromTripleString(s.TargetPlatform)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve build platforms: %w", err)
	}

	m := NewRaw(s.TargetDirectory, buildPlatforms)
	for _, rel := range s.BaseOutputDirectories {
		m.AddBaseOutputDir(rel)
	}
	for packageID, descriptors := range s.NonTestBinaries {
		for _, descriptor := range descriptors {
			m.AddNonTestBinary(packageID, descriptor)
		}
	}
	for packageID, rel := range s.BuildScriptOutDirs {
		m.SetBuildScriptOutDir(packageID, rel)
	}
	// The wire form stores linked paths without their requesting packages,
	// so the requester sets come back empty.
	for _, rel := range s.LinkedPaths {
		m.AddLinkedPath(rel)
	}
	return m, nil
}

// ToSummary converts the metadata to its serialized form. It is available
// in both phases. The modern "platforms" object is always emitted, and the
// two legacy platform fields are populated redundantly from the same
// resolved target so that older readers keep working.
func (c *core) ToSummary() *summary.BuildMetaSummary {
	return &summary.BuildMetaSummary{
		TargetDirectory:       c.targetDirectory,
		BaseOutputDirectories: sortedKeys(c.baseOutputDirectories),
		NonTestBinaries:       c.NonTestBinaries(),
		BuildScriptOutDirs:    c.BuildScriptOutDirs(),
		LinkedPaths:           sortedKeys(c.linkedPaths),
		TargetPlatform:        c.buildPlatforms.TripleString(),
		TargetPlatforms:       c.buildPlatforms.LegacyTargetSummaries(),
		Platforms:             c.buildPlatforms.ToSummary(),
	}
}
