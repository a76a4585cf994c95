package platform

import (
	"fmt"

	"github.com/vk/harnessgo/internal/summary"
)

// Target is a cross-compilation target: a platform plus the library
// directory reported by the toolchain for it, when known.
type Target struct {
	Platform Platform
	// Libdir is the toolchain library directory for the target. Empty means
	// unknown.
	Libdir string
}

// BuildPlatforms describes the platforms of one build invocation: the host
// it ran on and at most one target. The data model has no slot for a second
// target; decoding input that implies one fails with an UnsupportedError.
type BuildPlatforms struct {
	Host Platform
	// HostLibdir is the toolchain library directory for the host. Empty
	// means unknown.
	HostLibdir string
	// Target is nil when the build targeted the host itself.
	Target *Target
}

// NewBuildPlatforms returns a BuildPlatforms for a build running on and
// targeting the current host.
func NewBuildPlatforms() BuildPlatforms {
	return BuildPlatforms{Host: Current()}
}

// FromSummary resolves the modern structured platform object. More than one
// target entry is rejected: only single-target builds are representable.
func FromSummary(s *summary.BuildPlatformsSummary) (BuildPlatforms, error) {
	host, err := Parse(s.Host.Platform)
	if err != nil {
		return BuildPlatforms{}, err
	}
	bp := BuildPlatforms{
		Host:       host,
		HostLibdir: stringValue(s.Host.Libdir),
	}

	switch len(s.Targets) {
	case 0:
	case 1:
		target, err := parseTargetSummary(s.Targets[0])
		if err != nil {
			return BuildPlatforms{}, err
		}
		bp.Target = target
	default:
		return BuildPlatforms{}, &UnsupportedError{
			Reason: fmt.Sprintf("summary specifies %d target platforms, at most 1 is supported", len(s.Targets)),
		}
	}
	return bp, nil
}

// FromTargetSummary resolves the older-generation target descriptor shape:
// the host is taken to be the current platform.
func FromTargetSummary(s summary.TargetPlatformSummary) (BuildPlatforms, error) {
	target, err := parseTargetSummary(s)
	if err != nil {
		return BuildPlatforms{}, err
	}
	return BuildPlatforms{Host: Current(), Target: target}, nil
}

// FromTripleString resolves the oldest-generation shape: an optional bare
// target triple. A nil triple means the build targeted the host.
func FromTripleString(triple *string) (BuildPlatforms, error) {
	bp := BuildPlatforms{Host: Current()}
	if triple == nil {
		return bp, nil
	}
	p, err := Parse(*triple)
	if err != nil {
		return BuildPlatforms{}, err
	}
	bp.Target = &Target{Platform: p}
	return bp, nil
}

// ToSummary converts to the modern structured platform object.
func (bp BuildPlatforms) ToSummary() *summary.BuildPlatformsSummary {
	s := &summary.BuildPlatformsSummary{
		Host: summary.HostPlatformSummary{
			Platform: bp.Host.Triple(),
			Libdir:   stringPtr(bp.HostLibdir),
		},
		Targets: []summary.TargetPlatformSummary{},
	}
	if bp.Target != nil {
		s.Targets = append(s.Targets, summary.TargetPlatformSummary{
			Platform: bp.Target.Platform.Triple(),
			Libdir:   stringPtr(bp.Target.Libdir),
		})
	}
	return s
}

// TripleString returns the target triple for the oldest-generation
// "target_platform" field, or nil when the build targeted the host.
func (bp BuildPlatforms) TripleString() *string {
	if bp.Target == nil {
		return nil
	}
	triple := bp.Target.Platform.Triple()
	return &triple
}

// LegacyTargetSummaries returns the older-generation "target_platforms"
// list: a single descriptor for the target, or for the host when no target
// is configured. Libdirs were never part of this shape and are omitted.
func (bp BuildPlatforms) LegacyTargetSummaries() []summary.TargetPlatformSummary {
	if bp.Target != nil {
		return []summary.TargetPlatformSummary{{Platform: bp.Target.Platform.Triple()}}
	}
	return []summary.TargetPlatformSummary{{Platform: bp.Host.Triple()}}
}

func parseTargetSummary(s summary.TargetPlatformSummary) (*Target, error) {
	p, err := Parse(s.Platform)
	if err != nil {
		return nil, err
	}
	return &Target{Platform: p, Libdir: stringValue(s.Libdir)}, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
