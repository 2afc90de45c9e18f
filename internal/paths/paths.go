package paths

import (
	"path/filepath"
	"strings"
)

// NormalizePath normalizes a repo-relative path:
// - Converts backslashes to forward slashes
// - Strips leading "./" and trailing slashes
// Git already emits repo-relative forward-slash paths; this keeps
// user-supplied prefixes comparable with them.
func NormalizePath(path string) string {
	normalized := filepath.ToSlash(path)
	normalized = strings.TrimPrefix(normalized, "./")
	normalized = strings.TrimRight(normalized, "/")
	return normalized
}

// IsRelative reports whether a path is relative in the repo sense:
// no leading slash and no Windows drive or UNC prefix.
func IsRelative(path string) bool {
	if strings.HasPrefix(path, "/") || strings.HasPrefix(path, "\\") {
		return false
	}
	if len(path) >= 2 && path[1] == ':' {
		return false
	}
	return true
}

// HasDotSegments reports whether a normalized path contains "." or ".." segments
func HasDotSegments(path string) bool {
	for _, seg := range strings.Split(path, "/") {
		if seg == "." || seg == ".." {
			return true
		}
	}
	return false
}

// IsUnder reports whether path is equal to, or nested under, prefix using
// path-segment-aware matching: "src" matches "src" and "src/lib.rs" but
// never "srcfoo.rs". Both arguments must already be normalized.
func IsUnder(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}
