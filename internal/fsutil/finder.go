// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindFilesByExtension recursively searches rootPath for regular files whose
// name ends with extension, compared case-insensitively. Paths are returned in
// lexical order, which is the order filepath.WalkDir visits them.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}
	extension = strings.ToLower(extension)

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && strings.HasSuffix(strings.ToLower(d.Name()), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// ResolveSources expands path into the list of files to read. A regular file
// is returned as is; a directory expands to every file with the given
// extension beneath it.
func ResolveSources(path, extension string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := FindFilesByExtension(path, extension)
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", path, err)
	}
	return files, nil
}
