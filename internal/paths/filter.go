package paths

import (
	"sort"

	"frec/internal/errors"
)

// Filter restricts touched-path lists to entries under a set of path prefixes.
// An empty filter passes every path through unchanged.
type Filter struct {
	prefixes []string
}

// NewFilter builds a Filter from optional prefix strings. Each prefix is
// normalized and validated: it must be non-empty, relative, and free of
// "." / ".." segments. A malformed prefix fails filter construction with
// InvalidFilter; there are no partial results.
func NewFilter(prefixes []string) (*Filter, error) {
	seen := make(map[string]bool, len(prefixes))
	normalized := make([]string, 0, len(prefixes))

	for _, raw := range prefixes {
		prefix := NormalizePath(raw)
		if prefix == "" {
			return nil, errors.NewFrecError(
				errors.InvalidFilter,
				"Path prefix must not be empty",
				nil,
				nil,
			).WithDetails(map[string]interface{}{"prefix": raw})
		}
		if !IsRelative(prefix) {
			return nil, errors.NewFrecError(
				errors.InvalidFilter,
				"Path prefix must be repository-relative",
				nil,
				nil,
			).WithDetails(map[string]interface{}{"prefix": raw})
		}
		if HasDotSegments(prefix) {
			return nil, errors.NewFrecError(
				errors.InvalidFilter,
				"Path prefix must not contain '.' or '..' segments",
				nil,
				nil,
			).WithDetails(map[string]interface{}{"prefix": raw})
		}
		if !seen[prefix] {
			seen[prefix] = true
			normalized = append(normalized, prefix)
		}
	}

	sort.Strings(normalized)
	return &Filter{prefixes: normalized}, nil
}

// Empty reports whether the filter passes everything through
func (f *Filter) Empty() bool {
	return len(f.prefixes) == 0
}

// Prefixes returns the normalized prefixes in sorted order
func (f *Filter) Prefixes() []string {
	out := make([]string, len(f.prefixes))
	copy(out, f.prefixes)
	return out
}

// Match reports whether a normalized path survives the filter
func (f *Filter) Match(path string) bool {
	if len(f.prefixes) == 0 {
		return true
	}
	for _, prefix := range f.prefixes {
		if IsUnder(path, prefix) {
			return true
		}
	}
	return false
}

// Apply returns the subset of paths that survive the filter, preserving
// input order. With no prefixes the input slice is returned as-is.
func (f *Filter) Apply(touched []string) []string {
	if len(f.prefixes) == 0 {
		return touched
	}
	kept := make([]string, 0, len(touched))
	for _, path := range touched {
		if f.Match(path) {
			kept = append(kept, path)
		}
	}
	return kept
}
