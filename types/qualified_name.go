package types

import "strings"

// QualifiedName identifies a class or module by its full constant path
// (e.g. "Api::V1::User"). The zero value is the empty name. Equality is
// string identity of the full path; a leading "::" is normalized away and
// empty segments are dropped at construction.
type QualifiedName struct {
	full string
}

// NewQualifiedName builds a QualifiedName from a constant path.
func NewQualifiedName(full string) QualifiedName {
	full = strings.TrimPrefix(full, "::")
	if strings.Contains(full, "::") {
		segments := strings.Split(full, "::")
		kept := segments[:0]
		for _, seg := range segments {
			if seg != "" {
				kept = append(kept, seg)
			}
		}
		full = strings.Join(kept, "::")
	}
	return QualifiedName{full: full}
}

// SimpleName builds a QualifiedName for a single, non-namespaced segment.
func SimpleName(name string) QualifiedName {
	return QualifiedName{full: name}
}

func (q QualifiedName) String() string { return q.full }

// Name returns the last segment (the class/module name without namespace).
func (q QualifiedName) Name() string {
	if i := strings.LastIndex(q.full, "::"); i >= 0 {
		return q.full[i+2:]
	}
	return q.full
}

// Depth returns the number of segments.
func (q QualifiedName) Depth() int {
	if q.full == "" {
		return 0
	}
	return strings.Count(q.full, "::") + 1
}

// IsSimple reports whether the name has a single segment.
func (q QualifiedName) IsSimple() bool { return q.Depth() <= 1 }

// IsZero reports whether the name is empty.
func (q QualifiedName) IsZero() bool { return q.full == "" }

// Segment returns the n-th segment (0-indexed).
func (q QualifiedName) Segment(n int) (string, bool) {
	if q.full == "" {
		return "", false
	}
	segments := strings.Split(q.full, "::")
	if n < 0 || n >= len(segments) {
		return "", false
	}
	return segments[n], true
}

// Parent projects away the last segment ("Api::V1" for "Api::V1::User").
func (q QualifiedName) Parent() (QualifiedName, bool) {
	i := strings.LastIndex(q.full, "::")
	if i < 0 {
		return QualifiedName{}, false
	}
	return QualifiedName{full: q.full[:i]}, true
}

// Child appends a segment.
func (q QualifiedName) Child(name string) QualifiedName {
	if q.full == "" {
		return NewQualifiedName(name)
	}
	return QualifiedName{full: q.full + "::" + name}
}

// Join appends every segment of other.
func (q QualifiedName) Join(other QualifiedName) QualifiedName {
	if other.IsZero() {
		return q
	}
	return q.Child(other.full)
}
