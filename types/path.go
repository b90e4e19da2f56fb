package types

import "strings"

// ResourcePath is the parsed form of a /-separated resource path. The zero
// value is the root path.
type ResourcePath struct {
	segments []string
}

// ParsePath parses a string path into a ResourcePath. Leading and trailing
// slashes and empty segments are ignored, so "/widgets/", "widgets" and
// "//widgets" all address the same resource.
func ParsePath(path string) ResourcePath {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return ResourcePath{segments: segments}
}

// NewPath builds a path from individual segments.
func NewPath(segments ...string) ResourcePath {
	return ResourcePath{segments: append([]string(nil), segments...)}
}

// Segments returns a copy of the path segments.
func (p ResourcePath) Segments() []string {
	return append([]string(nil), p.segments...)
}

// IsRoot reports whether the path addresses the tree root.
func (p ResourcePath) IsRoot() bool { return len(p.segments) == 0 }

// Name returns the final segment, or "" for the root path.
func (p ResourcePath) Name() string {
	if p.IsRoot() {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Head returns the first segment, or "" for the root path.
func (p ResourcePath) Head() string {
	if p.IsRoot() {
		return ""
	}
	return p.segments[0]
}

// Parent returns the path with the final segment removed. The parent of the
// root is the root.
func (p ResourcePath) Parent() ResourcePath {
	if p.IsRoot() {
		return p
	}
	return ResourcePath{segments: append([]string(nil), p.segments[:len(p.segments)-1]...)}
}

// Child returns the path extended by one segment.
func (p ResourcePath) Child(id string) ResourcePath {
	segments := make([]string, 0, len(p.segments)+1)
	segments = append(segments, p.segments...)
	segments = append(segments, id)
	return ResourcePath{segments: segments}
}

// HasPrefix reports whether prefix is an ancestor of (or equal to) p.
func (p ResourcePath) HasPrefix(prefix ResourcePath) bool {
	if len(prefix.segments) > len(p.segments) {
		return false
	}
	for i, s := range prefix.segments {
		if p.segments[i] != s {
			return false
		}
	}
	return true
}

// String returns the canonical string form, always with a leading slash.
func (p ResourcePath) String() string {
	if p.IsRoot() {
		return "/"
	}
	return "/" + strings.Join(p.segments, "/")
}
