// Package inference computes, for every argument occurrence in every
// clause, the set of types it may take: a constraint-based fixed-point
// solver over the type lattice in package typesystem.
package inference

import (
	"github.com/ohamel-softwaresecure/souffle/internal/ast"
	"github.com/ohamel-softwaresecure/souffle/internal/reltable"
	"github.com/ohamel-softwaresecure/souffle/internal/typesystem"
)

// Solver accumulates constraints for one clause and solves them to a
// fixed point.
type Solver struct {
	env         *typesystem.Environment
	relations   *reltable.Table
	functors    *FunctorTable
	constraints []constraint
}

// NewSolver returns a Solver that resolves attribute and functor types
// against env/relations/functors.
func NewSolver(env *typesystem.Environment, relations *reltable.Table, functors *FunctorTable) *Solver {
	return &Solver{env: env, relations: relations, functors: functors}
}

func (s *Solver) add(c constraint) { s.constraints = append(s.constraints, c) }

func (s *Solver) addSubtype(arg ast.Argument, target typesystem.TypeSet) {
	s.add(&subtypeConstraint{arg: arg, target: target})
}

func (s *Solver) addSupertype(arg ast.Argument, target ast.QualifiedName) {
	s.add(newSupertypeConstraint(arg, target))
}

func (s *Solver) addMutualSubtype(lhs, rhs ast.Argument) {
	s.add(&mutualSubtypeConstraint{lhs: lhs, rhs: rhs})
}

// InferClause generates every constraint from cl's head and body and
// solves them, returning the resulting Argument -> TypeSet mapping.
func InferClause(env *typesystem.Environment, relations *reltable.Table, functors *FunctorTable, cl *ast.Clause) Result {
	s := NewSolver(env, relations, functors)
	if cl.Head != nil {
		s.generateAtom(cl.Head, false)
	}
	for _, lit := range cl.Body {
		s.generateLiteral(lit)
	}
	return s.solve()
}

// solve runs the worklist-free sweep: repeat a full pass over every
// constraint until one entire pass makes no change anywhere. Monotone
// narrowing over a finite lattice guarantees termination.
func (s *Solver) solve() Result {
	a := newAssignment(s.env)
	for {
		changed := false
		for _, c := range s.constraints {
			if c.update(a) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return Result{assignment: a}
}

// generateLiteral dispatches one body literal to its constraint
// generator.
func (s *Solver) generateLiteral(lit ast.Literal) {
	switch l := lit.(type) {
	case *ast.Atom:
		s.generateAtom(l, false)
	case *ast.Negation:
		s.generateAtom(l.Atom, true)
	case *ast.BinaryConstraint:
		s.addMutualSubtype(l.LHS, l.RHS)
		s.generateArgument(l.LHS)
		s.generateArgument(l.RHS)
	}
}

// generateAtom emits the positional attribute-type constraint for every
// argument of atom -- subtype in positive position, supertype when
// negated -- and recurses into each argument's own internal structure.
func (s *Solver) generateAtom(atom *ast.Atom, negated bool) {
	rel, _ := s.relations.Lookup(atom.Relation)
	for i, arg := range atom.Args {
		if rel != nil && i < rel.Arity() {
			t := rel.AttributeType(i)
			if negated {
				s.addSupertype(arg, t)
			} else {
				s.addSubtype(arg, typesystem.SingletonTypeSet(t))
			}
		}
		s.generateArgument(arg)
	}
}

// generateArgument emits the constraints intrinsic to arg's own shape,
// independent of the position it occurs in, and recurses into its
// sub-arguments.
func (s *Solver) generateArgument(arg ast.Argument) {
	number := typesystem.RootNumber()
	unsigned := typesystem.RootUnsigned()
	float := typesystem.RootFloat()
	symbol := typesystem.RootSymbol()

	switch a := arg.(type) {
	case *ast.Variable, *ast.UnnamedVar:
		// No intrinsic constraint; only position-based constraints apply.

	case *ast.Counter:
		s.addSubtype(a, typesystem.SingletonTypeSet(number))

	case *ast.Constant:
		switch a.Kind {
		case ast.ConstantString:
			s.addSubtype(a, typesystem.SingletonTypeSet(symbol))
		case ast.ConstantSigned:
			s.addSubtype(a, typesystem.SingletonTypeSet(number))
		case ast.ConstantUnsigned:
			s.addSubtype(a, typesystem.SingletonTypeSet(unsigned))
		case ast.ConstantFloat:
			s.addSubtype(a, typesystem.SingletonTypeSet(float))
		}

	case *ast.IntrinsicFunctor:
		if sig, ok := s.functors.Intrinsic(a.Op); ok {
			s.generateFunctorSignature(a, a.Args, sig)
		}
		for _, sub := range a.Args {
			s.generateArgument(sub)
		}

	case *ast.UserFunctor:
		if sig, ok := s.functors.UserDefined(a.Name); ok {
			s.generateFunctorSignature(a, a.Args, sig)
		}
		for _, sub := range a.Args {
			s.generateArgument(sub)
		}

	case *ast.RecordInit:
		s.add(&recordArityConstraint{env: s.env, rec: a, arity: len(a.Args)})
		for i, sub := range a.Args {
			s.add(&recordComponentConstraint{env: s.env, rec: a, index: i, sub: sub})
			s.generateArgument(sub)
		}
		if a.HasTypeTag() {
			s.addSubtype(a, typesystem.SingletonTypeSet(a.Type))
			s.addSupertype(a, a.Type)
		}

	case *ast.SumInit:
		s.addSubtype(a, typesystem.SingletonTypeSet(a.Type))
		s.add(&sumBranchConstraint{env: s.env, sumArg: a, branch: a.Branch, sub: a.Arg})
		s.generateArgument(a.Arg)

	case *ast.TypeCast:
		s.addSubtype(a, typesystem.SingletonTypeSet(a.Type))
		s.generateArgument(a.Arg)

	case *ast.Aggregator:
		s.addSubtype(a, typesystem.SingletonTypeSet(number))
		if a.Target != nil {
			s.addSubtype(a.Target, typesystem.SingletonTypeSet(number))
			s.generateArgument(a.Target)
		}
		for _, lit := range a.Body {
			s.generateLiteral(lit)
		}
	}
}

// generateFunctorSignature emits the return/argument constraints
// declared by sig for a functor node, or the overloaded pairwise-equal
// form when sig.Overloaded.
func (s *Solver) generateFunctorSignature(node ast.Argument, args []ast.Argument, sig FunctorSignature) {
	if sig.Overloaded {
		for _, arg := range args {
			s.addMutualSubtype(node, arg)
		}
		return
	}
	if !sig.ReturnType.IsZero() {
		s.addSubtype(node, typesystem.SingletonTypeSet(sig.ReturnType))
	}
	if sig.NoArgConstraint {
		return
	}
	for i, arg := range args {
		t := sig.ArgType(i)
		if t.IsZero() {
			continue
		}
		s.addSubtype(arg, typesystem.SingletonTypeSet(t))
	}
}
