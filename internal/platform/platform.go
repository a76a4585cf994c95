// Package platform models build platforms: validated target triples, the
// host the tool is running on, and the library directories associated with
// each platform. A build has exactly one host and at most one target;
// multi-target builds are rejected at decode time.
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform is a validated platform triple, e.g. "x86_64-unknown-linux-gnu".
// It is immutable once constructed; obtain one via Parse or Current.
type Platform struct {
	triple string
}

// Triple returns the canonical triple string.
func (p Platform) Triple() string {
	return p.triple
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return p.triple
}

// knownArches is the set of accepted leading triple components. Parsing does
// not understand every vendor/OS/ABI combination, but an unknown architecture
// is always a malformed triple.
var knownArches = map[string]bool{
	"aarch64":     true,
	"arm":         true,
	"armv7":       true,
	"i586":        true,
	"i686":        true,
	"loongarch64": true,
	"mips":        true,
	"mips64":      true,
	"powerpc":     true,
	"powerpc64":   true,
	"powerpc64le": true,
	"riscv32":     true,
	"riscv64":     true,
	"s390x":       true,
	"sparc64":     true,
	"thumbv7":     true,
	"wasm32":      true,
	"wasm64":      true,
	"x86_64":      true,
}

// Parse validates a platform triple string. A triple must have at least two
// non-empty dash-separated components and start with a known architecture.
func Parse(triple string) (Platform, error) {
	parts := strings.Split(triple, "-")
	if len(parts) < 2 {
		return Platform{}, &ParseError{Triple: triple, Reason: "expected at least two dash-separated components"}
	}
	for _, part := range parts {
		if part == "" {
			return Platform{}, &ParseError{Triple: triple, Reason: "triple contains an empty component"}
		}
	}
	if !knownArches[parts[0]] {
		return Platform{}, &ParseError{Triple: triple, Reason: fmt.Sprintf("unknown architecture %q", parts[0])}
	}
	return Platform{triple: triple}, nil
}

// goarchToArch maps runtime.GOARCH values to triple architectures.
var goarchToArch = map[string]string{
	"386":      "i686",
	"amd64":    "x86_64",
	"arm":      "armv7",
	"arm64":    "aarch64",
	"loong64":  "loongarch64",
	"mips":     "mips",
	"mips64":   "mips64",
	"ppc64":    "powerpc64",
	"ppc64le":  "powerpc64le",
	"riscv64":  "riscv64",
	"s390x":    "s390x",
	"wasm":     "wasm32",
}

// goosToSuffix maps runtime.GOOS values to triple vendor/OS/ABI suffixes.
var goosToSuffix = map[string]string{
	"linux":   "unknown-linux-gnu",
	"darwin":  "apple-darwin",
	"windows": "pc-windows-msvc",
	"freebsd": "unknown-freebsd",
	"netbsd":  "unknown-netbsd",
	"openbsd": "unknown-openbsd",
	"illumos": "unknown-illumos",
}

// Current returns the platform this process is running on, derived from
// runtime.GOOS and runtime.GOARCH. Unrecognized values degrade to an
// "<arch>-unknown-<os>" triple rather than failing: the host platform is a
// fallback used only when a summary carries no platform information at all.
func Current() Platform {
	arch, ok := goarchToArch[runtime.GOARCH]
	if !ok {
		arch = runtime.GOARCH
	}
	suffix, ok := goosToSuffix[runtime.GOOS]
	if !ok {
		suffix = "unknown-" + runtime.GOOS
	}
	return Platform{triple: arch + "-" + suffix}
}

// DylibPathEnvVar returns the name of the environment variable the dynamic
// linker consults on the current OS. Computed library search paths are meant
// to be prepended to this variable when spawning test binaries.
func DylibPathEnvVar() string {
	switch runtime.GOOS {
	case "windows":
		return "PATH"
	case "darwin":
		return "DYLD_FALLBACK_LIBRARY_PATH"
	default:
		return "LD_LIBRARY_PATH"
	}
}
