package inference

import (
	"github.com/ohamel-softwaresecure/souffle/internal/ast"
	"github.com/ohamel-softwaresecure/souffle/internal/typesystem"
)

// Assignment is the solver's working state for one clause: a TypeSet
// per argument occurrence, except that every occurrence of a variable
// with a given name within the clause shares one slot (they are the
// same logic variable). Every other argument kind gets its own slot
// keyed by its own node identity.
type Assignment struct {
	env   *typesystem.Environment
	slots map[interface{}]typesystem.TypeSet
}

func newAssignment(env *typesystem.Environment) *Assignment {
	return &Assignment{env: env, slots: make(map[interface{}]typesystem.TypeSet)}
}

func slotKey(arg ast.Argument) interface{} {
	if v, ok := arg.(*ast.Variable); ok {
		return "var:" + v.Name
	}
	return arg
}

// Get returns arg's current TypeSet, defaulting to the universal set
// (the lattice bottom, most permissive) if no constraint has touched it
// yet.
func (a *Assignment) Get(arg ast.Argument) typesystem.TypeSet {
	if ts, ok := a.slots[slotKey(arg)]; ok {
		return ts
	}
	return typesystem.AllTypes()
}

func (a *Assignment) set(arg ast.Argument, ts typesystem.TypeSet) {
	a.slots[slotKey(arg)] = ts
}

// meet narrows arg's TypeSet toward ts via pairwise greatest-common-
// subtype, reporting whether the slot actually changed.
func (a *Assignment) meet(arg ast.Argument, ts typesystem.TypeSet) bool {
	cur := a.Get(arg)
	next := meetTypeSets(a.env, cur, ts)
	if next.Equal(cur) {
		return false
	}
	a.set(arg, next)
	return true
}

// meetTypeSets computes a ⊓ b = GCS(a, b), generalised pairwise over
// every combination of elements when neither set is a singleton.
func meetTypeSets(env *typesystem.Environment, a, b typesystem.TypeSet) typesystem.TypeSet {
	if a.IsAll() {
		return b
	}
	if b.IsAll() {
		return a
	}
	out := typesystem.EmptyTypeSet()
	for _, x := range a.Elements() {
		for _, y := range b.Elements() {
			out = out.Union(env.GetGreatestCommonSubtypes(x, y))
		}
	}
	return out
}

// joinSupertype widens s to admit b: when s is still the universal set
// it collapses straight to {b}; otherwise every existing element t is
// replaced by LCS(t, b), unioned across all of them. This is the
// "supertype" direction used for negated-atom positions.
func joinSupertype(env *typesystem.Environment, s typesystem.TypeSet, b ast.QualifiedName) typesystem.TypeSet {
	if s.IsAll() {
		return typesystem.SingletonTypeSet(b)
	}
	out := typesystem.EmptyTypeSet()
	for _, t := range s.Elements() {
		out = out.Union(env.GetLeastCommonSupertypes(t, b))
	}
	return out
}

// Result is the solver's final output for one clause: every argument
// occurrence's resolved TypeSet, addressable the same way Assignment
// itself addresses slots (shared per variable name, per-node otherwise).
type Result struct {
	assignment *Assignment
}

// TypeOf returns arg's inferred TypeSet. A singleton means well-typed,
// an empty set means a type error, and a multi-element set means the
// argument's type remains ambiguous.
func (r Result) TypeOf(arg ast.Argument) typesystem.TypeSet {
	return r.assignment.Get(arg)
}
