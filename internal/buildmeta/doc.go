// Package buildmeta models the build-output metadata a test run needs to
// locate, relocate, and dynamically link compiled test binaries produced by
// the upstream build tool.
//
// # Core Concepts
//
// The central type is the metadata record: the target directory of a build
// invocation plus the relative paths, binary indexes, and platform
// information discovered alongside it. The record exists in exactly two
// phases, each its own Go type:
//
//   - RawMeta: freshly produced by a build or decoded from a summary file.
//     Its paths are valid on the machine that ran the build.
//
//   - ExecMeta: remapped for execution, possibly on a different machine or
//     path layout. This is the only phase on which library search paths may
//     be computed.
//
// Why two types instead of a flag?
//
// The only way to obtain an ExecMeta is RawMeta.Remap, which consults the
// path-remapping collaborator. Because ExecMeta has no public constructor
// and no public mutators, the compiler guarantees execution-time logic can
// never run on metadata that skipped remapping. The phase carries no runtime
// state and never appears in serialized form.
//
// Both phases serialize through ToSummary; FromSummary always produces a
// RawMeta and performs the platform compatibility resolution described in
// the summary package.
package buildmeta
