package typesystem

import "github.com/ohamel-softwaresecure/souffle/internal/ast"

// visitKey packs an ordered pair of qualified names into a single map
// key for cycle detection during a recursive lattice walk. Grounded on
// the teacher's ApplyWithCycleCheck: thread a visited set through the
// recursion and treat a revisit as the walk's fixed point rather than
// recursing forever.
func visitKey(a, b ast.QualifiedName) string { return a.String() + "\x00" + b.String() }

// IsSubtype reports whether a is a subtype of b. Reflexive for every
// declared name. A primitive delegates to its base type's subtype
// chain; a union is a supertype of anything any of its elements is a
// supertype of. Any cycle encountered while walking either chain
// terminates the walk as "not a subtype" -- the walk has already proven
// every acyclic path failed.
func (e *Environment) IsSubtype(a, b ast.QualifiedName) bool {
	return e.isSubtype(a, b, make(map[string]bool))
}

func (e *Environment) isSubtype(a, b ast.QualifiedName, visited map[string]bool) bool {
	if a.Equal(b) {
		return true
	}
	key := visitKey(a, b)
	if visited[key] {
		return false
	}
	visited[key] = true

	// When b is one of the four predefined roots, subtyping against it
	// is exactly the root predicate: a primitive chain must bottom out
	// at b, and a union must have every element (not merely some) bottom
	// out at b. This is the case isSubtypeOf special-cases for number
	// and symbol; generalised here to all four roots since isOfRootType
	// itself already dispatches generically on a's shape.
	if tb, ok := e.Lookup(b); ok {
		if _, isRoot := tb.(Predefined); isRoot {
			return e.isOfRootType(a, b, visited)
		}
	}

	if ta, ok := e.Lookup(a); ok {
		if prim, ok := ta.(Primitive); ok {
			if e.isSubtype(prim.Base, b, visited) {
				return true
			}
		}
	}
	if tb, ok := e.Lookup(b); ok {
		if union, ok := tb.(Union); ok {
			for _, el := range union.Elements {
				if e.isSubtype(a, el, visited) {
					return true
				}
			}
		}
	}
	return false
}

// isOfRootType reports whether a reduces entirely to the predefined root
// named root: true for root itself, true for a primitive whose base
// chain bottoms out at root, and true for a union only if every element
// does -- the opposite of isSubtype's any-of-elements rule, since "this
// union is wholly a number" requires each branch to actually be one.
// Grounded directly on TypeSystem.cpp's isOfRootType visitor.
func (e *Environment) isOfRootType(a, root ast.QualifiedName, visited map[string]bool) bool {
	if a.Equal(root) {
		return true
	}
	key := visitKey(a, root) + "\x00root"
	if visited[key] {
		return false
	}
	visited[key] = true

	t, ok := e.Lookup(a)
	if !ok {
		return false
	}
	switch ty := t.(type) {
	case Primitive:
		return e.isOfRootType(ty.Base, root, visited)
	case Union:
		if len(ty.Elements) == 0 {
			return false
		}
		for _, el := range ty.Elements {
			if !e.isOfRootType(el, root, visited) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// GetLeastCommonSupertypes returns the ⊂-minimal set of types that are
// supertypes of both a and b: if a and b are equal or one is a subtype
// of the other, the set is the single more general type. Otherwise it
// is every declared type that is a supertype of both, with any member
// that is itself a strict supertype of another member removed.
func (e *Environment) GetLeastCommonSupertypes(a, b ast.QualifiedName) TypeSet {
	if a.Equal(b) {
		return SingletonTypeSet(a)
	}
	if e.IsSubtype(a, b) {
		return SingletonTypeSet(b)
	}
	if e.IsSubtype(b, a) {
		return SingletonTypeSet(a)
	}

	var candidates []ast.QualifiedName
	for _, name := range e.Names() {
		if e.IsSubtype(a, name) && e.IsSubtype(b, name) {
			candidates = append(candidates, name)
		}
	}

	minimal := make([]ast.QualifiedName, 0, len(candidates))
	for i, c := range candidates {
		redundant := false
		for j, other := range candidates {
			if i == j {
				continue
			}
			if !c.Equal(other) && e.IsSubtype(other, c) {
				redundant = true
				break
			}
		}
		if !redundant {
			minimal = append(minimal, c)
		}
	}
	return NewTypeSet(minimal...)
}

// GetGreatestCommonSubtypes returns the set of types that are subtypes
// of both a and b. If a and b are equal or one is a subtype of the
// other, the set is the single more specific type. If both resolve to
// unions, the result is the intersection of their (transitively
// flattened) element closures. Otherwise the result is empty: the core
// never needs a GCS of two unrelated nominal types, so it does not
// invent one.
func (e *Environment) GetGreatestCommonSubtypes(a, b ast.QualifiedName) TypeSet {
	if a.Equal(b) {
		return SingletonTypeSet(a)
	}
	if e.IsSubtype(a, b) {
		return SingletonTypeSet(a)
	}
	if e.IsSubtype(b, a) {
		return SingletonTypeSet(b)
	}

	ua, aIsUnion := e.unionClosure(a)
	ub, bIsUnion := e.unionClosure(b)
	if aIsUnion && bIsUnion {
		return ua.Intersect(ub)
	}
	return EmptyTypeSet()
}

// unionClosure flattens a union's elements through any nested unions
// into a set of leaf (non-union) type names. Returns ok=false if name
// does not resolve to a Union.
func (e *Environment) unionClosure(name ast.QualifiedName) (TypeSet, bool) {
	t, ok := e.Lookup(name)
	if !ok {
		return EmptyTypeSet(), false
	}
	union, ok := t.(Union)
	if !ok {
		return EmptyTypeSet(), false
	}
	out := EmptyTypeSet()
	e.flattenUnion(union, out, make(map[string]bool))
	return out, true
}

func (e *Environment) flattenUnion(u Union, out TypeSet, visited map[string]bool) {
	key := u.Qualifier.String()
	if visited[key] {
		return
	}
	visited[key] = true
	for _, el := range u.Elements {
		if t, ok := e.Lookup(el); ok {
			if nested, ok := t.(Union); ok {
				e.flattenUnion(nested, out, visited)
				continue
			}
		}
		out.elems[el.String()] = el
	}
}

// GetLeastCommonSupertypesOf folds GetLeastCommonSupertypes over every
// pairwise combination of s's members, returning the types that are
// common supertypes of the whole set. The universal set and the empty
// set both fold to the empty set: there is no meaningful single
// supertype of "anything" or of nothing at all.
func (e *Environment) GetLeastCommonSupertypesOf(s TypeSet) TypeSet {
	if s.IsAll() {
		return EmptyTypeSet()
	}
	elems := s.Elements()
	if len(elems) == 0 {
		return EmptyTypeSet()
	}
	acc := SingletonTypeSet(elems[0])
	for _, el := range elems[1:] {
		acc = e.lcsOfSets(acc, SingletonTypeSet(el))
	}
	return acc
}

func (e *Environment) lcsOfSets(a, b TypeSet) TypeSet {
	out := EmptyTypeSet()
	for _, x := range a.Elements() {
		for _, y := range b.Elements() {
			out = out.Union(e.GetLeastCommonSupertypes(x, y))
		}
	}
	return out
}

// IsRecursive reports whether the record or sum type named name contains
// itself, directly or indirectly, through a chain of field/branch
// payload types, primitive aliases, and union elements. Predefined and
// primitive types are never recursive by construction.
func (e *Environment) IsRecursive(name ast.QualifiedName) bool {
	t, ok := e.Lookup(name)
	if !ok {
		return false
	}
	switch t.(type) {
	case Record, Sum:
	default:
		return false
	}
	return e.reaches(name, name, make(map[string]bool), true)
}

// reaches walks the "contains" relation (record field / sum branch /
// primitive base / union element) from cur looking for target, treating
// a second visit to any already-seen name as a dead end rather than
// recursing forever. origin=true only on the very first call, so that
// target trivially "reaching itself" at depth zero is not mistaken for
// a cycle.
func (e *Environment) reaches(cur, target ast.QualifiedName, visited map[string]bool, origin bool) bool {
	if !origin && cur.Equal(target) {
		return true
	}
	key := cur.String()
	if visited[key] {
		return false
	}
	visited[key] = true

	t, ok := e.Lookup(cur)
	if !ok {
		return false
	}
	switch v := t.(type) {
	case Primitive:
		return e.reaches(v.Base, target, visited, false)
	case Union:
		for _, el := range v.Elements {
			if e.reaches(el, target, visited, false) {
				return true
			}
		}
	case Record:
		for _, f := range v.Fields {
			if e.reaches(f.Type, target, visited, false) {
				return true
			}
		}
	case Sum:
		for _, b := range v.Branches {
			if e.reaches(b.Payload, target, visited, false) {
				return true
			}
		}
	}
	return false
}
