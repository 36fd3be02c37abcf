package cmd

import (
	"github.com/ohamel-softwaresecure/souffle/internal/ast"
)

// scenario names one of the specification's literal worked examples,
// built by hand the way an (out-of-scope) parser would have produced
// them from source text.
type scenario struct {
	name        string
	description string
	build       func() *ast.Program
}

func numAttrs(names ...string) []ast.Attribute {
	out := make([]ast.Attribute, len(names))
	for i, n := range names {
		out[i] = ast.Attribute{Name: n, Type: ast.NewQualifiedName("number")}
	}
	return out
}

func transitiveClosureProgram() *ast.Program {
	e := &ast.Relation{Name: ast.NewQualifiedName("e"), Attributes: numAttrs("x", "y")}
	p := &ast.Relation{Name: ast.NewQualifiedName("p"), Attributes: numAttrs("x", "y")}
	x, y, z := &ast.Variable{Name: "x"}, &ast.Variable{Name: "y"}, &ast.Variable{Name: "z"}

	base := &ast.Clause{
		ID:   ast.NextClauseID(),
		Head: &ast.Atom{Relation: p.Name, Args: []ast.Argument{x, y}},
		Body: []ast.Literal{&ast.Atom{Relation: e.Name, Args: []ast.Argument{x, y}}},
	}
	recursive := &ast.Clause{
		ID:   ast.NextClauseID(),
		Head: &ast.Atom{Relation: p.Name, Args: []ast.Argument{x, z}},
		Body: []ast.Literal{
			&ast.Atom{Relation: e.Name, Args: []ast.Argument{x, y}},
			&ast.Atom{Relation: p.Name, Args: []ast.Argument{y, z}},
		},
	}
	return &ast.Program{Relations: []*ast.Relation{e, p}, Clauses: []*ast.Clause{base, recursive}}
}

func unionSubtypingProgram() *ast.Program {
	b := &ast.PrimitiveTypeDecl{Name: ast.NewQualifiedName("B"), Base: ast.NewQualifiedName("symbol")}
	c := &ast.PrimitiveTypeDecl{Name: ast.NewQualifiedName("C"), Base: ast.NewQualifiedName("symbol")}
	a := &ast.UnionTypeDecl{Name: ast.NewQualifiedName("A"), Elements: []ast.QualifiedName{b.Name, c.Name}}

	r := &ast.Relation{Name: ast.NewQualifiedName("r"), Attributes: []ast.Attribute{{Name: "a", Type: a.Name}}}
	fact := &ast.Clause{
		ID:   ast.NextClauseID(),
		Head: &ast.Atom{Relation: r.Name, Args: []ast.Argument{&ast.Constant{Kind: ast.ConstantString, StringVal: "hi"}}},
	}
	return &ast.Program{
		Types:     []ast.TypeDecl{b, c, a},
		Relations: []*ast.Relation{r},
		Clauses:   []*ast.Clause{fact},
	}
}

func graphComponentProgram() *ast.Program {
	edge := &ast.Relation{Name: ast.NewQualifiedName("edge"), Attributes: []ast.Attribute{
		{Name: "x", Type: ast.NewQualifiedName("T")}, {Name: "y", Type: ast.NewQualifiedName("T")},
	}}
	path := &ast.Relation{Name: ast.NewQualifiedName("path"), Attributes: []ast.Attribute{
		{Name: "x", Type: ast.NewQualifiedName("T")}, {Name: "y", Type: ast.NewQualifiedName("T")},
	}}
	clause := &ast.Clause{
		ID:   ast.NextClauseID(),
		Head: &ast.Atom{Relation: path.Name, Args: []ast.Argument{&ast.Variable{Name: "x"}, &ast.Variable{Name: "y"}}},
		Body: []ast.Literal{&ast.Atom{Relation: edge.Name, Args: []ast.Argument{&ast.Variable{Name: "x"}, &ast.Variable{Name: "y"}}}},
	}
	graph := &ast.Component{Name: "Graph", TypeParams: []string{"T"}, Relations: []*ast.Relation{edge, path}, Clauses: []*ast.Clause{clause}}

	return &ast.Program{
		Components: []*ast.Component{graph},
		Instantiations: []*ast.ComponentInit{
			{Ref: ast.ComponentRef{Name: "Graph", ActualParams: []ast.QualifiedName{ast.NewQualifiedName("number")}}, InstanceName: "g"},
		},
	}
}

func instantiationOverflowProgram() *ast.Program {
	selfRef := &ast.Component{Name: "Self"}
	init := &ast.ComponentInit{Ref: ast.ComponentRef{Name: "Self"}, InstanceName: "s"}
	selfRef.Instantiations = []*ast.ComponentInit{init}
	return &ast.Program{Components: []*ast.Component{selfRef}, Instantiations: []*ast.ComponentInit{init}}
}

func provenanceRewriteProgram() *ast.Program {
	p := &ast.Relation{Name: ast.NewQualifiedName("p"), Attributes: numAttrs("x")}
	fact := &ast.Clause{
		ID:   ast.NextClauseID(),
		Head: &ast.Atom{Relation: p.Name, Args: []ast.Argument{&ast.Constant{Kind: ast.ConstantSigned, SignedVal: 1}}},
	}
	x := &ast.Variable{Name: "x"}
	recursive := &ast.Clause{
		ID:   ast.NextClauseID(),
		Head: &ast.Atom{Relation: p.Name, Args: []ast.Argument{x}},
		Body: []ast.Literal{&ast.Atom{Relation: p.Name, Args: []ast.Argument{x}}},
	}
	return &ast.Program{Relations: []*ast.Relation{p}, Clauses: []*ast.Clause{fact, recursive}}
}

func negationSupertypeProgram() *ast.Program {
	a := &ast.PrimitiveTypeDecl{Name: ast.NewQualifiedName("A"), Base: ast.NewQualifiedName("number")}
	r := &ast.Relation{Name: ast.NewQualifiedName("r"), Attributes: []ast.Attribute{{Name: "x", Type: a.Name}}}
	q := &ast.Relation{Name: ast.NewQualifiedName("q"), Attributes: numAttrs("x")}
	x := &ast.Variable{Name: "x"}
	clause := &ast.Clause{
		ID:   ast.NextClauseID(),
		Head: &ast.Atom{Relation: q.Name, Args: []ast.Argument{x}},
		Body: []ast.Literal{&ast.Negation{Atom: &ast.Atom{Relation: r.Name, Args: []ast.Argument{x}}}},
	}
	return &ast.Program{
		Types:     []ast.TypeDecl{a},
		Relations: []*ast.Relation{r, q},
		Clauses:   []*ast.Clause{clause},
	}
}

var scenarios = []scenario{
	{"transitive-closure", "S1: p(x,y):-e(x,y). p(x,z):-e(x,y),p(y,z).", transitiveClosureProgram},
	{"union-subtyping", `S2: .type A = B | C  r("hi").`, unionSubtypingProgram},
	{"component-instantiation", "S3: .comp Graph<T>{...}  .init g = Graph<number>", graphComponentProgram},
	{"instantiation-overflow", "S4: a component that instantiates itself", instantiationOverflowProgram},
	{"provenance-rewrite", "S5: p(1). p(x):-p(x). (provenance runs only if --config enables it)", provenanceRewriteProgram},
	{"negation-supertype", "S6: q(x):-!r(x). with r:A<:number, q:number", negationSupertypeProgram},
}

func findScenario(name string) (scenario, bool) {
	for _, s := range scenarios {
		if s.name == name {
			return s, true
		}
	}
	return scenario{}, false
}
