package ast

// Literal is one element of a clause body: a positive atom, a negated
// atom, or a binary constraint between two arguments.
type Literal interface {
	Node
	literalNode()
}

// Atom is "R(arg1, ..., argN)", a positive occurrence of relation R.
type Atom struct {
	Location SourceLocation
	Relation QualifiedName
	Args     []Argument
}

func (a *Atom) Loc() SourceLocation { return a.Location }
func (a *Atom) literalNode()        {}

// Clone deep-copies an atom, rewriting its relation name and any type
// tags carried by its arguments through rename.
func (a *Atom) Clone(rename func(QualifiedName) QualifiedName) *Atom {
	return &Atom{Location: a.Location, Relation: rename(a.Relation), Args: cloneArgs(a.Args, rename)}
}

// Negation is "!Atom": the clause only fires when no matching tuple for
// Atom exists.
type Negation struct {
	Location SourceLocation
	Atom     *Atom
}

func (n *Negation) Loc() SourceLocation { return n.Location }
func (n *Negation) literalNode()        {}

// BinaryConstraint is a comparison between two arguments, e.g. "x < y".
type BinaryConstraint struct {
	Location SourceLocation
	Op       string
	LHS      Argument
	RHS      Argument
}

func (b *BinaryConstraint) Loc() SourceLocation { return b.Location }
func (b *BinaryConstraint) literalNode()        {}

// CloneLiteral deep-copies a literal subtree, rewriting every type/
// relation reference it carries through rename.
func CloneLiteral(l Literal, rename func(QualifiedName) QualifiedName) Literal {
	switch lit := l.(type) {
	case *Atom:
		return lit.Clone(rename)
	case *Negation:
		return &Negation{Location: lit.Location, Atom: lit.Atom.Clone(rename)}
	case *BinaryConstraint:
		return &BinaryConstraint{
			Location: lit.Location,
			Op:       lit.Op,
			LHS:      CloneArgument(lit.LHS, rename),
			RHS:      CloneArgument(lit.RHS, rename),
		}
	default:
		return l
	}
}

func cloneLiterals(lits []Literal, rename func(QualifiedName) QualifiedName) []Literal {
	if lits == nil {
		return nil
	}
	out := make([]Literal, len(lits))
	for i, l := range lits {
		out[i] = CloneLiteral(l, rename)
	}
	return out
}
