// Package summary defines the serializable wire form of build metadata, as
// written by the build-discovery step and re-read on later runs. The shapes
// here are a compatibility surface: several historical generations of the
// format are still decoded, so fields are never removed, only superseded.
//
// Platform information in particular exists in three generations:
//
//   - "platforms": the modern structured object (host + targets, each with
//     an optional libdir);
//   - "target_platforms": an older list of target descriptors, of which only
//     the first entry was ever honored;
//   - "target_platform": the oldest single-triple string.
//
// Writers emit all three so older readers keep working; readers resolve them
// newest-first (see the buildmeta package).
package summary

import (
	"encoding/json"
	"fmt"
	"io"
)

// BuildMetaSummary is the top-level serialized record describing one build
// invocation's outputs.
type BuildMetaSummary struct {
	// TargetDirectory is the root of build outputs. Every relative path in
	// this record is anchored to it.
	TargetDirectory string `json:"target_directory"`

	// BaseOutputDirectories lists output directories relative to the target
	// directory. Each one, and its "deps" subdirectory, is a library search
	// candidate.
	BaseOutputDirectories []string `json:"base_output_directories"`

	// NonTestBinaries indexes non-test binary descriptors by package ID.
	// The descriptor payloads are opaque to this tool and passed through
	// unchanged.
	NonTestBinaries map[string][]json.RawMessage `json:"non_test_binaries"`

	// BuildScriptOutDirs maps package IDs to build-script output
	// directories, relative to the target directory.
	BuildScriptOutDirs map[string]string `json:"build_script_out_dirs"`

	// LinkedPaths lists directories requested for library search by
	// compiled artifacts, relative to the target directory. The packages
	// that requested each path are not persisted.
	LinkedPaths []string `json:"linked_paths"`

	// TargetPlatform is the oldest-generation target triple field.
	TargetPlatform *string `json:"target_platform,omitempty"`

	// TargetPlatforms is the older-generation target descriptor list. Only
	// the first entry is honored on read.
	TargetPlatforms []TargetPlatformSummary `json:"target_platforms"`

	// Platforms is the modern structured platform object.
	Platforms *BuildPlatformsSummary `json:"platforms,omitempty"`
}

// BuildPlatformsSummary is the modern platform object: the host the build
// ran on plus at most one cross-compilation target.
type BuildPlatformsSummary struct {
	Host    HostPlatformSummary     `json:"host"`
	Targets []TargetPlatformSummary `json:"targets"`
}

// HostPlatformSummary describes the host platform of a build.
type HostPlatformSummary struct {
	Platform string  `json:"platform"`
	Libdir   *string `json:"libdir,omitempty"`
}

// TargetPlatformSummary describes one target platform of a build.
type TargetPlatformSummary struct {
	Platform string  `json:"platform"`
	Libdir   *string `json:"libdir,omitempty"`
}

// Decode reads one BuildMetaSummary from r. Unknown fields are ignored so
// newer writers remain readable.
func Decode(r io.Reader) (*BuildMetaSummary, error) {
	var s BuildMetaSummary
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode build metadata summary: %w", err)
	}
	return &s, nil
}

// Encode writes s to w as indented JSON.
func (s *BuildMetaSummary) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode build metadata summary: %w", err)
	}
	return nil
}
