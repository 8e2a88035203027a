package importer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"partsite/internal/catalog"
)

// Entry is a descriptor file found under the repository root.
type Entry struct {
	Path string
	Key  catalog.NaturalKey
}

// Scan lists descriptor files exactly three directories below root, in
// lexical path order. Hidden directories such as .git are skipped.
func Scan(root string) ([]Entry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: not a directory", root)
	}

	// Globbing inside the root keeps metacharacters in root itself literal.
	matches, err := fs.Glob(os.DirFS(root), "*/*/*/"+DescriptorFile)
	if err != nil {
		return nil, fmt.Errorf("glob descriptors: %w", err)
	}
	sort.Strings(matches)

	entries := make([]Entry, 0, len(matches))
	for _, rel := range matches {
		path := filepath.Join(root, filepath.FromSlash(rel))
		key, ok := keyFromPath(root, path)
		if !ok {
			continue
		}
		if fi, err := os.Stat(path); err != nil || !fi.Mode().IsRegular() {
			continue
		}
		entries = append(entries, Entry{Path: path, Key: key})
	}
	return entries, nil
}

// keyFromPath derives the natural key from <root>/<system>/<device>/<part>/metadata.json.
func keyFromPath(root, path string) (catalog.NaturalKey, bool) {
	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil {
		return catalog.NaturalKey{}, false
	}
	segments := strings.Split(filepath.ToSlash(rel), "/")
	if len(segments) != 3 {
		return catalog.NaturalKey{}, false
	}
	for _, s := range segments {
		if s == "" || strings.HasPrefix(s, ".") {
			return catalog.NaturalKey{}, false
		}
	}
	return catalog.NaturalKey{System: segments[0], Device: segments[1], Part: segments[2]}, true
}
