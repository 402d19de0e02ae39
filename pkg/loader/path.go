package loader

import (
	"io/fs"
	"strings"
)

// relPath maps a resource URL to a path inside the resource root. Query
// strings and fragments are dropped and one leading "/" or "./" means the
// root. Anything fs.ValidPath refuses is rejected rather than cleaned, so
// "a/../b" fails instead of resolving to "b".
func relPath(url string) (string, bool) {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	rel := strings.TrimPrefix(url, "./")
	rel = strings.TrimPrefix(rel, "/")

	// Backslashes are separators on Windows and NUL truncates in syscalls.
	if rel == "" || rel == "." || strings.ContainsAny(rel, "\\\x00") {
		return "", false
	}
	if !fs.ValidPath(rel) {
		return "", false
	}
	return rel, true
}
