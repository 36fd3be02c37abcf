package typesystem

import (
	"sort"

	"github.com/ohamel-softwaresecure/souffle/internal/ast"
)

// TypeSet is either the universal set (every type in an Environment) or
// a finite, unordered collection of qualified type names. It is the
// value the inferencer's constraint solver assigns to each argument
// occurrence (see package inference).
type TypeSet struct {
	all   bool
	elems map[string]ast.QualifiedName
}

// AllTypes returns the universal TypeSet -- the identity element for
// Intersect and the initial assignment before any constraint narrows it.
func AllTypes() TypeSet { return TypeSet{all: true} }

// EmptyTypeSet returns the TypeSet with no members -- the identity
// element for Union and the result of an unsatisfiable constraint.
func EmptyTypeSet() TypeSet { return TypeSet{elems: map[string]ast.QualifiedName{}} }

// SingletonTypeSet returns the TypeSet containing exactly name.
func SingletonTypeSet(name ast.QualifiedName) TypeSet {
	s := EmptyTypeSet()
	s.elems[name.String()] = name
	return s
}

// NewTypeSet returns the TypeSet containing exactly the given names.
func NewTypeSet(names ...ast.QualifiedName) TypeSet {
	s := EmptyTypeSet()
	for _, n := range names {
		s.elems[n.String()] = n
	}
	return s
}

// IsAll reports whether s is the universal set.
func (s TypeSet) IsAll() bool { return s.all }

// IsEmpty reports whether s has no members (false for the universal set).
func (s TypeSet) IsEmpty() bool { return !s.all && len(s.elems) == 0 }

// Contains reports whether name is a member of s.
func (s TypeSet) Contains(name ast.QualifiedName) bool {
	if s.all {
		return true
	}
	_, ok := s.elems[name.String()]
	return ok
}

// Len returns the number of members of s, or -1 for the universal set.
func (s TypeSet) Len() int {
	if s.all {
		return -1
	}
	return len(s.elems)
}

// Elements returns the members of s in a stable, sorted order. Returns
// nil for the universal set.
func (s TypeSet) Elements() []ast.QualifiedName {
	if s.all {
		return nil
	}
	out := make([]ast.QualifiedName, 0, len(s.elems))
	for _, n := range s.elems {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Union returns the set union of s and other.
func (s TypeSet) Union(other TypeSet) TypeSet {
	if s.all || other.all {
		return AllTypes()
	}
	out := EmptyTypeSet()
	for k, n := range s.elems {
		out.elems[k] = n
	}
	for k, n := range other.elems {
		out.elems[k] = n
	}
	return out
}

// Intersect returns the set intersection of s and other. The constraint
// solver's own meet is the pairwise greatest-common-subtype, not this
// plain intersection; GetGreatestCommonSubtypes uses Intersect on two
// unions' element closures.
func (s TypeSet) Intersect(other TypeSet) TypeSet {
	if s.all {
		return other
	}
	if other.all {
		return s
	}
	out := EmptyTypeSet()
	small, big := s, other
	if len(big.elems) < len(small.elems) {
		small, big = big, small
	}
	for k, n := range small.elems {
		if _, ok := big.elems[k]; ok {
			out.elems[k] = n
		}
	}
	return out
}

// Equal reports whether s and other have exactly the same members.
func (s TypeSet) Equal(other TypeSet) bool {
	if s.all != other.all {
		return false
	}
	if s.all {
		return true
	}
	if len(s.elems) != len(other.elems) {
		return false
	}
	for k := range s.elems {
		if _, ok := other.elems[k]; !ok {
			return false
		}
	}
	return true
}
