package buildmeta

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/vk/harnessgo/internal/platform"
	"github.com/vk/harnessgo/internal/remap"
)

// core holds the fields shared by both metadata phases. All collections are
// keyed sets or maps; accessors expose them in sorted key order so every
// observable ordering is deterministic.
type core struct {
	targetDirectory       string
	baseOutputDirectories map[string]struct{}
	nonTestBinaries       map[string][]json.RawMessage
	buildScriptOutDirs    map[string]string
	linkedPaths           map[string]map[string]struct{}
	buildPlatforms        platform.BuildPlatforms
}

// RawMeta is build metadata in its raw phase: paths are valid on the
// machine that produced the build. It is the only phase that can be
// constructed or populated directly.
type RawMeta struct {
	core
}

// ExecMeta is build metadata remapped for execution. The sole way to obtain
// one is RawMeta.Remap.
type ExecMeta struct {
	core
}

// NewRaw returns an empty RawMeta rooted at targetDirectory.
func NewRaw(targetDirectory string, buildPlatforms platform.BuildPlatforms) *RawMeta {
	return &RawMeta{core: core{
		targetDirectory:       targetDirectory,
		baseOutputDirectories: map[string]struct{}{},
		nonTestBinaries:       map[string][]json.RawMessage{},
		buildScriptOutDirs:    map[string]string{},
		linkedPaths:           map[string]map[string]struct{}{},
		buildPlatforms:        buildPlatforms,
	}}
}

// AddBaseOutputDir records an output directory, relative to the target
// directory. Duplicates are ignored.
func (m *RawMeta) AddBaseOutputDir(rel string) {
	m.baseOutputDirectories[rel] = struct{}{}
}

// AddNonTestBinary records an opaque non-test binary descriptor for a
// package.
func (m *RawMeta) AddNonTestBinary(packageID string, descriptor json.RawMessage) {
	m.nonTestBinaries[packageID] = append(m.nonTestBinaries[packageID], descriptor)
}

// SetBuildScriptOutDir records a build-script output directory, relative to
// the target directory, for a package.
func (m *RawMeta) SetBuildScriptOutDir(packageID, rel string) {
	m.buildScriptOutDirs[packageID] = rel
}

// AddLinkedPath records a directory requested for library search, relative
// to the target directory, along with the packages that requested it.
func (m *RawMeta) AddLinkedPath(rel string, packageIDs ...string) {
	requesters, ok := m.linkedPaths[rel]
	if !ok {
		requesters = map[string]struct{}{}
		m.linkedPaths[rel] = requesters
	}
	for _, id := range packageIDs {
		requesters[id] = struct{}{}
	}
}

// Remap transitions this metadata into the execution phase using the given
// path mapper. Only the target directory changes, and only if the mapper
// supplies a replacement; relative paths stored in the record are anchored
// to the target directory and need no remapping of their own. The returned
// ExecMeta shares no mutable state with the receiver.
func (m *RawMeta) Remap(mapper remap.Mapper) *ExecMeta {
	targetDirectory := m.targetDirectory
	if dir, ok := mapper.NewTargetDir(); ok {
		targetDirectory = dir
	}

	linkedPaths := make(map[string]map[string]struct{}, len(m.linkedPaths))
	for rel, requesters := range m.linkedPaths {
		linkedPaths[rel] = maps.Clone(requesters)
	}
	nonTestBinaries := make(map[string][]json.RawMessage, len(m.nonTestBinaries))
	for packageID, descriptors := range m.nonTestBinaries {
		nonTestBinaries[packageID] = slices.Clone(descriptors)
	}

	return &ExecMeta{core: core{
		targetDirectory:       targetDirectory,
		baseOutputDirectories: maps.Clone(m.baseOutputDirectories),
		nonTestBinaries:       nonTestBinaries,
		buildScriptOutDirs:    maps.Clone(m.buildScriptOutDirs),
		linkedPaths:           linkedPaths,
		buildPlatforms:        m.buildPlatforms,
	}}
}

// TargetDirectory returns the root of build outputs. All relative paths in
// the record are anchored to it.
func (c *core) TargetDirectory() string {
	return c.targetDirectory
}

// BaseOutputDirectories returns the output directories relative to the
// target directory, in sorted order.
func (c *core) BaseOutputDirectories() []string {
	return sortedKeys(c.baseOutputDirectories)
}

// NonTestBinaries returns the opaque non-test binary descriptors keyed by
// package ID.
func (c *core) NonTestBinaries() map[string][]json.RawMessage {
	out := make(map[string][]json.RawMessage, len(c.nonTestBinaries))
	for packageID, descriptors := range c.nonTestBinaries {
		out[packageID] = slices.Clone(descriptors)
	}
	return out
}

// BuildScriptOutDirs returns the build-script output directories keyed by
// package ID, relative to the target directory.
func (c *core) BuildScriptOutDirs() map[string]string {
	return maps.Clone(c.buildScriptOutDirs)
}

// LinkedPaths returns the directories requested for library search,
// relative to the target directory, in sorted order.
func (c *core) LinkedPaths() []string {
	return sortedKeys(c.linkedPaths)
}

// LinkedPathRequesters returns the package IDs that requested the given
// linked path, in sorted order. Paths decoded from a summary have no
// recorded requesters.
func (c *core) LinkedPathRequesters(rel string) []string {
	return sortedKeys(c.linkedPaths[rel])
}

// BuildPlatforms returns the host and target platforms of the build.
func (c *core) BuildPlatforms() platform.BuildPlatforms {
	return c.buildPlatforms
}

// sortedKeys returns the keys of m sorted ascending. The result is never
// nil, so it serializes as an empty list rather than null.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
