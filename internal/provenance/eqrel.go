package provenance

import "github.com/ohamel-softwaresecure/souffle/internal/ast"

// rewriteEquivalenceRelations converts every binary EQREL relation in p
// to an ordinary BTREE relation and adds the three clauses that make it
// behave as an equivalence closure: transitivity, symmetry, reflexivity.
func rewriteEquivalenceRelations(p *ast.Program) {
	for _, r := range p.Relations {
		if r.Repr != ast.ReprEqrel || r.Arity() != 2 {
			continue
		}
		r.Repr = ast.ReprBTree
		p.Clauses = append(p.Clauses, equivalenceClauses(r)...)
	}
}

func equivalenceClauses(r *ast.Relation) []*ast.Clause {
	x := &ast.Variable{Name: "x"}
	y := &ast.Variable{Name: "y"}
	z := &ast.Variable{Name: "z"}

	atom := func(args ...ast.Argument) *ast.Atom {
		return &ast.Atom{Relation: r.Name, Args: args}
	}

	transitivity := &ast.Clause{
		ID:   ast.NextClauseID(),
		Head: atom(x, z),
		Body: []ast.Literal{atom(x, y), atom(y, z)},
	}
	symmetry := &ast.Clause{
		ID:   ast.NextClauseID(),
		Head: atom(x, y),
		Body: []ast.Literal{atom(y, x)},
	}
	reflexivity := &ast.Clause{
		ID:   ast.NextClauseID(),
		Head: atom(x, x),
		Body: []ast.Literal{atom(x, &ast.UnnamedVar{})},
	}

	return []*ast.Clause{transitivity, symmetry, reflexivity}
}
