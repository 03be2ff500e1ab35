package domain

import (
	"sort"
	"strings"
)

// DefaultExtensions lists the content file extensions in priority order.
var DefaultExtensions = []string{".mdx", ".md"}

// ValidKey reports whether key can name a document: a plain file stem with no
// path separators that is not hidden.
func ValidKey(key string) bool {
	if key == "" || strings.HasPrefix(key, ".") {
		return false
	}
	return !strings.ContainsAny(key, "/\\\x00")
}

// KeyFromFilename derives a document key from a file name. rank is the index
// of the matching extension; lower ranks win when two files share a key.
func KeyFromFilename(name string, extensions []string) (key string, rank int, ok bool) {
	for i, ext := range extensions {
		if !strings.HasSuffix(name, ext) {
			continue
		}
		key = strings.TrimSuffix(name, ext)
		if ValidKey(key) {
			return key, i, true
		}
	}
	return "", 0, false
}

// DocumentFiles picks the file backing each key out of a directory listing.
// It returns the keys in ascending order, the chosen file per key, and the
// files that were shadowed by a higher priority extension.
func DocumentFiles(names []string, extensions []string) (keys []string, files map[string]string, shadowed []string) {
	files = make(map[string]string)
	ranks := make(map[string]int)

	for _, name := range names {
		key, rank, ok := KeyFromFilename(name, extensions)
		if !ok {
			continue
		}

		if current, exists := files[key]; exists {
			if rank >= ranks[key] {
				shadowed = append(shadowed, name)
				continue
			}
			shadowed = append(shadowed, current)
		} else {
			keys = append(keys, key)
		}
		files[key] = name
		ranks[key] = rank
	}

	sort.Strings(keys)
	return keys, files, shadowed
}
