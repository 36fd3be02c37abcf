package component

import (
	"testing"

	"github.com/ohamel-softwaresecure/souffle/internal/ast"
	"github.com/ohamel-softwaresecure/souffle/internal/diagnostics"
)

// graphComponent builds ".comp Graph<T> { .decl edge(x:T,y:T) .decl
// path(x:T,y:T) path(x,y) :- edge(x,y). }" by hand, the way a parser
// (out of scope here) would have produced it.
func graphComponent() *ast.Component {
	edge := &ast.Relation{
		Name: ast.NewQualifiedName("edge"),
		Attributes: []ast.Attribute{
			{Name: "x", Type: ast.NewQualifiedName("T")},
			{Name: "y", Type: ast.NewQualifiedName("T")},
		},
	}
	path := &ast.Relation{
		Name: ast.NewQualifiedName("path"),
		Attributes: []ast.Attribute{
			{Name: "x", Type: ast.NewQualifiedName("T")},
			{Name: "y", Type: ast.NewQualifiedName("T")},
		},
	}
	clause := &ast.Clause{
		ID:   ast.NextClauseID(),
		Head: &ast.Atom{Relation: ast.NewQualifiedName("path"), Args: []ast.Argument{
			&ast.Variable{Name: "x"}, &ast.Variable{Name: "y"},
		}},
		Body: []ast.Literal{
			&ast.Atom{Relation: ast.NewQualifiedName("edge"), Args: []ast.Argument{
				&ast.Variable{Name: "x"}, &ast.Variable{Name: "y"},
			}},
		},
	}
	return &ast.Component{
		Name:       "Graph",
		TypeParams: []string{"T"},
		Relations:  []*ast.Relation{edge, path},
		Clauses:    []*ast.Clause{clause},
	}
}

func TestInstantiateProgramScenarioS3(t *testing.T) {
	prog := &ast.Program{
		Components: []*ast.Component{graphComponent()},
		Instantiations: []*ast.ComponentInit{
			{
				Ref:          ast.ComponentRef{Name: "Graph", ActualParams: []ast.QualifiedName{ast.NewQualifiedName("number")}},
				InstanceName: "g",
			},
		},
	}

	report := diagnostics.NewReport()
	InstantiateProgram(prog, report)

	if report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", report.Entries())
	}
	if !prog.IsComponentFree() {
		t.Fatal("expected no Component/ComponentInit nodes to remain")
	}

	edge := prog.RelationByName(ast.NewQualifiedName("g", "edge"))
	if edge == nil {
		t.Fatal("expected g.edge to be declared")
	}
	if got := edge.AttributeType(0); got.String() != "number" {
		t.Errorf("g.edge attribute 0 type = %q, want \"number\"", got)
	}

	path := prog.RelationByName(ast.NewQualifiedName("g", "path"))
	if path == nil {
		t.Fatal("expected g.path to be declared")
	}

	var found bool
	for _, cl := range prog.Clauses {
		if cl.Head != nil && cl.Head.Relation.Equal(ast.NewQualifiedName("g", "path")) {
			found = true
			if len(cl.Body) != 1 {
				t.Fatalf("expected one body literal, got %d", len(cl.Body))
			}
			atom, ok := cl.Body[0].(*ast.Atom)
			if !ok || !atom.Relation.Equal(ast.NewQualifiedName("g", "edge")) {
				t.Errorf("expected body atom g.edge, got %#v", cl.Body[0])
			}
		}
	}
	if !found {
		t.Fatal("expected a clause with head g.path")
	}
}

func TestInstantiateProgramOverflow(t *testing.T) {
	selfRef := &ast.Component{Name: "Self"}
	init := &ast.ComponentInit{Ref: ast.ComponentRef{Name: "Self"}, InstanceName: "s"}
	selfRef.Instantiations = []*ast.ComponentInit{init}

	prog := &ast.Program{
		Components:     []*ast.Component{selfRef},
		Instantiations: []*ast.ComponentInit{init},
	}

	report := diagnostics.NewReport()
	InstantiateProgram(prog, report)

	if !report.HasErrors() {
		t.Fatal("expected an instantiation-overflow diagnostic")
	}
	var sawOverflow bool
	for _, d := range report.Entries() {
		if d.Code == diagnostics.CodeInstantiationOverflow {
			sawOverflow = true
		}
	}
	if !sawOverflow {
		t.Fatalf("expected a %s diagnostic, got %v", diagnostics.CodeInstantiationOverflow, report.Entries())
	}
}
