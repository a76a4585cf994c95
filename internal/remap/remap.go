// Package remap supplies the path-remapping collaborator applied when build
// artifacts produced on one machine are reused on another. Only the target
// directory is remapped; every other path in the metadata is stored relative
// to it and needs no translation.
package remap

// Mapper yields the replacement target directory for reused build
// artifacts, if one is configured.
type Mapper interface {
	// NewTargetDir returns the replacement target directory and true, or
	// ("", false) when the original directory should be kept.
	NewTargetDir() (string, bool)
}

type identityMapper struct{}

func (identityMapper) NewTargetDir() (string, bool) {
	return "", false
}

// Identity returns a Mapper that keeps every path unchanged. It is used when
// artifacts are executed on the machine that built them.
func Identity() Mapper {
	return identityMapper{}
}

type targetDirMapper struct {
	dir string
}

func (m targetDirMapper) NewTargetDir() (string, bool) {
	return m.dir, true
}

// NewTargetDirMapper returns a Mapper that replaces the target directory
// with dir.
func NewTargetDirMapper(dir string) Mapper {
	return targetDirMapper{dir: dir}
}
