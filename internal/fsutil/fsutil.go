// Package fsutil provides file system helpers shared by the summary loader
// and the dylib path computation.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Exists reports whether path is present on disk. Any stat failure,
// including permission errors, is treated the same as "does not exist":
// the caller cannot use an unreadable directory as a library search entry
// anyway, so the distinction carries no information here.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FindSummaries resolves rootPath to the list of summary files it denotes.
// A regular file is returned as-is; a directory is searched recursively for
// files ending in .json. The result preserves walk order, which is
// lexicographic within each directory.
func FindSummaries(rootPath string) ([]string, error) {
	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{rootPath}, nil
	}

	var files []string
	err = filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
