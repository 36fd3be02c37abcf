package inference

import (
	"github.com/ohamel-softwaresecure/souffle/internal/ast"
	"github.com/ohamel-softwaresecure/souffle/internal/typesystem"
)

// constraint is one unit the solver's worklist-free sweep applies
// repeatedly until a full sweep makes no change anywhere.
type constraint interface {
	update(a *Assignment) bool
}

// subtypeConstraint narrows arg's TypeSet by meeting it with target:
// τ(arg) ⊑ target, i.e. τ(arg) := τ(arg) ⊓ target.
type subtypeConstraint struct {
	arg    ast.Argument
	target typesystem.TypeSet
}

func (c *subtypeConstraint) update(a *Assignment) bool { return a.meet(c.arg, c.target) }

// supertypeConstraint widens arg's TypeSet so it contains at least one
// supertype of target -- the direction used for atoms inside a
// negation. Applied at most once: the down-then-up combination with
// subtypeConstraint is not monotone, so repeated application could
// oscillate forever instead of converging.
type supertypeConstraint struct {
	arg    ast.Argument
	target ast.QualifiedName
	repeat bool
}

func newSupertypeConstraint(arg ast.Argument, target ast.QualifiedName) *supertypeConstraint {
	return &supertypeConstraint{arg: arg, target: target, repeat: true}
}

func (c *supertypeConstraint) update(a *Assignment) bool {
	if !c.repeat {
		return false
	}
	c.repeat = false
	cur := a.Get(c.arg)
	next := joinSupertype(a.env, cur, c.target)
	if next.Equal(cur) {
		return false
	}
	a.set(c.arg, next)
	return true
}

// mutualSubtypeConstraint enforces τ(lhs) ⊑ τ(rhs) and τ(rhs) ⊑ τ(lhs)
// simultaneously, converging both slots to their shared GCS. Used for
// binary constraints and overloaded-functor argument/result agreement.
// An explicitly-tagged record init's type equality is instead a
// subtypeConstraint plus a supertypeConstraint against the tag.
type mutualSubtypeConstraint struct {
	lhs, rhs ast.Argument
}

func (c *mutualSubtypeConstraint) update(a *Assignment) bool {
	ls, rs := a.Get(c.lhs), a.Get(c.rhs)
	changedL := a.meet(c.lhs, rs)
	changedR := a.meet(c.rhs, ls)
	return changedL || changedR
}

// recordComponentConstraint narrows sub's TypeSet to the declared type
// of field index i of the record type(s) currently assigned to rec,
// re-evaluated every sweep since rec's own TypeSet may still be
// narrowing.
type recordComponentConstraint struct {
	env   *typesystem.Environment
	rec   ast.Argument
	index int
	sub   ast.Argument
}

func (c *recordComponentConstraint) update(a *Assignment) bool {
	recTypes := a.Get(c.rec)
	if recTypes.IsAll() {
		return false
	}
	fieldTypes := typesystem.EmptyTypeSet()
	for _, name := range recTypes.Elements() {
		t, ok := c.env.Lookup(name)
		if !ok {
			continue
		}
		rec, ok := t.(typesystem.Record)
		if !ok || c.index >= len(rec.Fields) {
			continue
		}
		fieldTypes = fieldTypes.Union(typesystem.SingletonTypeSet(rec.Fields[c.index].Type))
	}
	if fieldTypes.IsEmpty() {
		return false
	}
	return a.meet(c.sub, fieldTypes)
}

// recordArityConstraint narrows rec's TypeSet down to only those record
// types declared with exactly arity fields.
type recordArityConstraint struct {
	env   *typesystem.Environment
	rec   ast.Argument
	arity int
}

func (c *recordArityConstraint) update(a *Assignment) bool {
	matching := typesystem.EmptyTypeSet()
	for _, name := range c.env.Names() {
		t, ok := c.env.Lookup(name)
		if !ok {
			continue
		}
		if rec, ok := t.(typesystem.Record); ok && len(rec.Fields) == c.arity {
			matching = matching.Union(typesystem.SingletonTypeSet(name))
		}
	}
	return a.meet(c.rec, matching)
}
