package ast

import "sync/atomic"

// ExecutionPlan is an optional, opaque per-clause evaluation order hint
// produced by the parser ".plan" directive. The core never inspects it;
// it is carried through unchanged for the lowering stage.
type ExecutionPlan struct {
	Orderings map[int][]int
}

// Clause is a single rule or fact: "head :- body." (body empty => fact).
// ID is a stable identifier assigned once, at parse time, and never
// renumbered by any later pass. The provenance transformer computes its
// own independent, program-order clause numbering for @info relations
// and rule-number columns (see package provenance's assignClauseNumbers)
// rather than reusing ID, since a program may be provenance-transformed
// more than once and the numbering must reflect the clause list's shape
// at transform time.
type Clause struct {
	Location SourceLocation
	ID       int
	Head     *Atom
	Body     []Literal
	Plan     *ExecutionPlan
}

func (c *Clause) Loc() SourceLocation { return c.Location }

// IsFact reports whether the clause has an empty body.
func (c *Clause) IsFact() bool { return len(c.Body) == 0 }

var clauseIDSeq int64

// NextClauseID hands out a process-wide monotonically increasing clause
// id. The parser (out of scope here) is the real assigner in production;
// this is for test fixtures and the cmd-line driver's toy program loader.
func NextClauseID() int {
	return int(atomic.AddInt64(&clauseIDSeq, 1))
}

// Clone deep-copies a clause, rewriting every relation/type reference it
// carries through rename. The clause ID and plan are preserved as-is:
// component instantiation produces a distinct logical clause per
// instance, but renumbering would violate the "assign once" invariant,
// so cloned clauses keep their origin's ID and rely on the
// instance-qualified head/body relation names to disambiguate.
func (c *Clause) Clone(rename func(QualifiedName) QualifiedName) *Clause {
	var head *Atom
	if c.Head != nil {
		head = c.Head.Clone(rename)
	}
	return &Clause{
		Location: c.Location,
		ID:       c.ID,
		Head:     head,
		Body:     cloneLiterals(c.Body, rename),
		Plan:     c.Plan,
	}
}
