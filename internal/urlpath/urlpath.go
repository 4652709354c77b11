// Package urlpath provides a segment-based URL path value type.
//
// A Path is an ordered list of segments; segments never contain a raw "/".
// Paths are values: every operation returns a new Path and never mutates
// the receiver.
package urlpath

import (
	"path/filepath"
	"slices"
	"strings"
)

// Path is an ordered sequence of URL path segments.
type Path struct {
	segs []string
}

// New builds a Path from segments. Segments containing "/" are split so the
// no-raw-slash invariant always holds.
func New(segments ...string) Path {
	return Parse(strings.Join(segments, "/"))
}

// Parse splits s on "/" and drops empty segments, so "/a//b/" and "a/b"
// parse equal.
func Parse(s string) Path {
	parts := strings.Split(s, "/")
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return Path{segs: segs}
}

// FromFilePath converts an OS file path into a Path.
func FromFilePath(p string) Path {
	return Parse(filepath.ToSlash(p))
}

// Segments returns a copy of the path's segments.
func (p Path) Segments() []string {
	return slices.Clone(p.segs)
}

// IsEmpty reports whether the path has no segments.
func (p Path) IsEmpty() bool {
	return len(p.segs) == 0
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segs)
}

// Last returns the final segment, or "" for an empty path.
func (p Path) Last() string {
	if len(p.segs) == 0 {
		return ""
	}
	return p.segs[len(p.segs)-1]
}

// Join appends q's segments after p's.
func (p Path) Join(q Path) Path {
	segs := make([]string, 0, len(p.segs)+len(q.segs))
	segs = append(segs, p.segs...)
	segs = append(segs, q.segs...)
	return Path{segs: segs}
}

// Equal reports segment-sequence equality.
func (p Path) Equal(q Path) bool {
	return slices.Equal(p.segs, q.segs)
}

// RemoveExtension strips ext from the last segment if present.
func (p Path) RemoveExtension(ext string) Path {
	if len(p.segs) == 0 || !strings.HasSuffix(p.segs[len(p.segs)-1], ext) {
		return p
	}
	segs := slices.Clone(p.segs)
	segs[len(segs)-1] = strings.TrimSuffix(segs[len(segs)-1], ext)
	return Path{segs: segs}
}

// AppendToLast appends suffix to the final segment. Appending an empty
// suffix returns the path unchanged; appending to an empty path creates a
// single segment.
func (p Path) AppendToLast(suffix string) Path {
	if suffix == "" {
		return p
	}
	if len(p.segs) == 0 {
		return Path{segs: []string{suffix}}
	}
	segs := slices.Clone(p.segs)
	segs[len(segs)-1] += suffix
	return Path{segs: segs}
}

// HasPrefix reports whether q's segments are a leading subsequence of p's.
func (p Path) HasPrefix(q Path) bool {
	if len(q.segs) > len(p.segs) {
		return false
	}
	return slices.Equal(p.segs[:len(q.segs)], q.segs)
}

// StripPrefix removes the leading segments matching q. The second return
// value is false when q is not a prefix of p.
func (p Path) StripPrefix(q Path) (Path, bool) {
	if !p.HasPrefix(q) {
		return p, false
	}
	return Path{segs: slices.Clone(p.segs[len(q.segs):])}, true
}

// String joins the segments with "/". The result carries no leading slash;
// use ToAbsolute to anchor the path.
func (p Path) String() string {
	return strings.Join(p.segs, "/")
}

// ToAbsolute resolves the path against a site base URL. With an empty base
// the result is root-relative ("/a/b"); otherwise the base is joined with
// exactly one slash between base and path.
func (p Path) ToAbsolute(base string) string {
	if base == "" {
		return "/" + p.String()
	}
	return strings.TrimSuffix(base, "/") + "/" + p.String()
}
