// Package scan enumerates transcode candidates under a source tree and maps
// their paths into the destination tree.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks root recursively and returns the regular files whose name
// ends with "." + ext. The match is byte-wise: "mkv" does not pick up
// "Movie.MKV". Symlinked directories are not followed, so cycles cannot
// occur. Results are sorted lexicographically for a deterministic
// processing order.
func Discover(root, ext string) ([]string, error) {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return nil, fmt.Errorf("discover: empty extension")
	}
	suffix := "." + ext

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if strings.HasSuffix(d.Name(), suffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// MapPath translates a discovered source path into its destination
// counterpart, reproducing the nesting the file had under sourceRoot.
// Paths that resolve outside sourceRoot are rejected.
func MapPath(source, sourceRoot, destRoot string) (string, error) {
	rel, err := filepath.Rel(sourceRoot, source)
	if err != nil {
		return "", fmt.Errorf("relative path for %s: %w", source, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s escapes source root %s", source, sourceRoot)
	}
	return filepath.Join(destRoot, rel), nil
}
