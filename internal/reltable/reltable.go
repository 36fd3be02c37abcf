// Package reltable indexes a program's relations by qualified name, the
// one source of truth every later pass consults to resolve an atom's
// relation name and validate its arity. Modelled on the teacher's
// symbol table: a flat, scope-free map plus the diagnostics a
// redefinition or unresolved lookup produces.
package reltable

import (
	"github.com/ohamel-softwaresecure/souffle/internal/ast"
	"github.com/ohamel-softwaresecure/souffle/internal/diagnostics"
)

// Table indexes relations by qualified name. I/O directives are not
// stored; CheckIODirective only resolves their target against it.
type Table struct {
	relations map[string]*ast.Relation
	order     []string
}

// New returns an empty Table.
func New() *Table {
	return &Table{relations: make(map[string]*ast.Relation)}
}

// Build indexes every relation in relations, reporting a redefinition
// diagnostic for any name used twice.
func Build(relations []*ast.Relation, report *diagnostics.Report) *Table {
	t := New()
	for _, r := range relations {
		t.Register(r, report)
	}
	return t
}

// Register adds r to the table, reporting a redefinition diagnostic
// against the earlier declaration if its name is already present.
func (t *Table) Register(r *ast.Relation, report *diagnostics.Report) {
	key := r.Name.String()
	if prior, exists := t.relations[key]; exists {
		report.ErrorfWithSecondary(diagnostics.CodeRedefinition, r.Loc(),
			"first declared here", prior.Loc(),
			"relation %q redeclared", r.Name)
		return
	}
	t.relations[key] = r
	t.order = append(t.order, key)
}

// Lookup returns the relation registered under name, if any.
func (t *Table) Lookup(name ast.QualifiedName) (*ast.Relation, bool) {
	r, ok := t.relations[name.String()]
	return r, ok
}

// All returns every registered relation in registration order.
func (t *Table) All() []*ast.Relation {
	out := make([]*ast.Relation, len(t.order))
	for i, k := range t.order {
		out[i] = t.relations[k]
	}
	return out
}

// CheckAtom resolves atom's relation and, if found, validates that its
// argument count matches the relation's declared arity. Reports an
// unresolved-reference diagnostic if the relation name is unknown, or
// an arity-mismatch diagnostic if the counts disagree. Returns the
// resolved relation, or nil if the name did not resolve.
func (t *Table) CheckAtom(atom *ast.Atom, report *diagnostics.Report) *ast.Relation {
	rel, ok := t.Lookup(atom.Relation)
	if !ok {
		report.Errorf(diagnostics.CodeUnresolvedReference, atom.Loc(),
			"atom references undeclared relation %q", atom.Relation)
		return nil
	}
	if len(atom.Args) != rel.Arity() {
		report.Errorf(diagnostics.CodeArityMismatch, atom.Loc(),
			"relation %q expects %d argument(s), atom supplies %d", atom.Relation, rel.Arity(), len(atom.Args))
	}
	return rel
}

// CheckIODirective resolves d's relation, reporting an unresolved-
// reference diagnostic if it does not name a declared relation.
func (t *Table) CheckIODirective(d *ast.IODirective, report *diagnostics.Report) *ast.Relation {
	rel, ok := t.Lookup(d.Relation)
	if !ok {
		report.Errorf(diagnostics.CodeUnresolvedReference, d.Loc(),
			"I/O directive references undeclared relation %q", d.Relation)
		return nil
	}
	return rel
}
