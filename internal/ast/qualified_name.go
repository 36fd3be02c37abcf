package ast

import "strings"

// QualifiedName is an ordered, non-empty sequence of identifier segments.
// Two names are equal iff their segments match pairwise. Component
// instantiation builds new qualified names by prepending an instance
// name to every type/relation name it pulls in from the instantiated
// component, e.g. "g" ++ "edge" -> "g.edge".
type QualifiedName struct {
	Segments []string
}

// NewQualifiedName builds a name from one or more plain identifier
// segments, e.g. NewQualifiedName("g", "edge").
func NewQualifiedName(segments ...string) QualifiedName {
	cp := make([]string, len(segments))
	copy(cp, segments)
	return QualifiedName{Segments: cp}
}

// ParseQualifiedName splits a dotted string into a QualifiedName.
func ParseQualifiedName(s string) QualifiedName {
	if s == "" {
		return QualifiedName{}
	}
	return NewQualifiedName(strings.Split(s, ".")...)
}

func (q QualifiedName) String() string {
	return strings.Join(q.Segments, ".")
}

// IsZero reports whether q carries no segments (the "absent name" case,
// e.g. an unset optional record-init type tag).
func (q QualifiedName) IsZero() bool {
	return len(q.Segments) == 0
}

// Equal reports whether two qualified names have identical segments.
func (q QualifiedName) Equal(other QualifiedName) bool {
	if len(q.Segments) != len(other.Segments) {
		return false
	}
	for i := range q.Segments {
		if q.Segments[i] != other.Segments[i] {
			return false
		}
	}
	return true
}

// Append concatenates two qualified names, e.g. ("g").Append("edge") =>
// "g.edge". Used to reseat a component's local names under an instance
// prefix during instantiation.
func (q QualifiedName) Append(other QualifiedName) QualifiedName {
	segs := make([]string, 0, len(q.Segments)+len(other.Segments))
	segs = append(segs, q.Segments...)
	segs = append(segs, other.Segments...)
	return QualifiedName{Segments: segs}
}

// Prefix reports whether q is a (possibly equal) leading segment run of
// other.
func (q QualifiedName) Prefix(other QualifiedName) bool {
	if len(q.Segments) > len(other.Segments) {
		return false
	}
	for i := range q.Segments {
		if q.Segments[i] != other.Segments[i] {
			return false
		}
	}
	return true
}
