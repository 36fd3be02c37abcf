package provenance

import (
	"strings"
	"testing"

	"github.com/ohamel-softwaresecure/souffle/internal/ast"
)

func edgeFact(x, y int64) *ast.Clause {
	return &ast.Clause{
		ID: ast.NextClauseID(),
		Head: &ast.Atom{
			Relation: ast.NewQualifiedName("edge"),
			Args: []ast.Argument{
				&ast.Constant{Kind: ast.ConstantSigned, SignedVal: x},
				&ast.Constant{Kind: ast.ConstantSigned, SignedVal: y},
			},
		},
	}
}

// buildPathProgram reproduces: edge(x,y) is a base relation with two
// facts, and p(x,y) :- edge(x,y). ; p(x,z) :- p(x,y), edge(y,z).
func buildPathProgram() *ast.Program {
	numAttrs := []ast.Attribute{
		{Name: "x", Type: ast.NewQualifiedName("number")},
		{Name: "y", Type: ast.NewQualifiedName("number")},
	}
	edge := &ast.Relation{Name: ast.NewQualifiedName("edge"), Attributes: numAttrs, Repr: ast.ReprBTree}
	p := &ast.Relation{Name: ast.NewQualifiedName("p"), Attributes: numAttrs, Repr: ast.ReprBTree}

	x := &ast.Variable{Name: "x"}
	y := &ast.Variable{Name: "y"}
	z := &ast.Variable{Name: "z"}

	base := &ast.Clause{
		ID:   ast.NextClauseID(),
		Head: &ast.Atom{Relation: p.Name, Args: []ast.Argument{x, y}},
		Body: []ast.Literal{
			&ast.Atom{Relation: edge.Name, Args: []ast.Argument{x, y}},
		},
	}
	recursive := &ast.Clause{
		ID:   ast.NextClauseID(),
		Head: &ast.Atom{Relation: p.Name, Args: []ast.Argument{x, z}},
		Body: []ast.Literal{
			&ast.Atom{Relation: p.Name, Args: []ast.Argument{x, y}},
			&ast.Atom{Relation: edge.Name, Args: []ast.Argument{y, z}},
		},
	}

	return &ast.Program{
		Relations: []*ast.Relation{edge, p},
		Clauses:   []*ast.Clause{edgeFact(1, 2), edgeFact(2, 3), base, recursive},
	}
}

func findRelation(p *ast.Program, name string) *ast.Relation {
	for _, r := range p.Relations {
		if r.Name.String() == name {
			return r
		}
	}
	return nil
}

func hasAttr(r *ast.Relation, name string) bool {
	for _, a := range r.Attributes {
		if a.Name == name {
			return true
		}
	}
	return false
}

func TestTransformMaxHeightAppendsRuleAndLevelColumns(t *testing.T) {
	prog := buildPathProgram()
	Transform(prog, MaxHeight)

	p := findRelation(prog, "p")
	if p == nil {
		t.Fatalf("relation p not found after transform")
	}
	if !hasAttr(p, ruleNumberAttr) || !hasAttr(p, levelNumberAttr) {
		t.Fatalf("expected %s and %s attributes, got %+v", ruleNumberAttr, levelNumberAttr, p.Attributes)
	}
	if hasAttr(p, sublevelAttr(0)) {
		t.Fatalf("MaxHeight mode must not add sublevel columns")
	}

	var fact, base, recursive *ast.Clause
	for _, cl := range prog.Clauses {
		if cl.Head == nil || cl.Head.Relation.String() != "p" {
			continue
		}
		switch {
		case len(cl.Body) == 0:
			fact = cl
		case len(cl.Body) == 1:
			base = cl
		case len(cl.Body) == 2:
			recursive = cl
		}
	}
	if fact != nil {
		t.Fatalf("p has no fact clauses in this fixture, got one unexpectedly")
	}
	if base == nil || recursive == nil {
		t.Fatalf("expected to find base and recursive clauses for p")
	}

	if len(base.Head.Args) != 4 {
		t.Fatalf("base head expected 4 args (x,y,rule,level), got %d", len(base.Head.Args))
	}
	ruleArg, ok := base.Head.Args[2].(*ast.Constant)
	if !ok {
		t.Fatalf("base rule-number arg is not a constant: %T", base.Head.Args[2])
	}
	if ruleArg.SignedVal != 1 {
		t.Fatalf("expected base clause to be rule 1, got %d", ruleArg.SignedVal)
	}
	baseLevel, ok := base.Head.Args[3].(*ast.IntrinsicFunctor)
	if !ok || baseLevel.Op != "+" {
		t.Fatalf("expected base level to be ADD(1, max(level_0)), got %#v", base.Head.Args[3])
	}

	if len(recursive.Head.Args) != 4 {
		t.Fatalf("recursive head expected 4 args, got %d", len(recursive.Head.Args))
	}
	recRule, ok := recursive.Head.Args[2].(*ast.Constant)
	if !ok || recRule.SignedVal != 2 {
		t.Fatalf("expected recursive clause to be rule 2, got %#v", recursive.Head.Args[2])
	}
	recLevel, ok := recursive.Head.Args[3].(*ast.IntrinsicFunctor)
	if !ok || recLevel.Op != "+" {
		t.Fatalf("expected recursive level to be an ADD expression, got %#v", recursive.Head.Args[3])
	}
	maxExpr, ok := recLevel.Args[1].(*ast.IntrinsicFunctor)
	if !ok || maxExpr.Op != "max" {
		t.Fatalf("expected ADD's second arg to be a max expression, got %#v", recLevel.Args[1])
	}

	for _, lit := range recursive.Body {
		atom := lit.(*ast.Atom)
		if atom.Relation.String() != "p" {
			continue
		}
		last := atom.Args[len(atom.Args)-1]
		v, ok := last.(*ast.Variable)
		if !ok || v.Name != "@level_num_0" {
			t.Fatalf("expected body atom p's trailing arg to be @level_num_0, got %#v", last)
		}
	}
}

func TestTransformSubtreeHeightsAddsSublevelColumns(t *testing.T) {
	prog := buildPathProgram()
	Transform(prog, SubtreeHeights)

	p := findRelation(prog, "p")
	if p == nil {
		t.Fatalf("relation p not found")
	}
	if !hasAttr(p, sublevelAttr(0)) || !hasAttr(p, sublevelAttr(1)) {
		t.Fatalf("expected two sublevel columns (recursive clause has 2 body atoms), got %+v", p.Attributes)
	}
	if hasAttr(p, sublevelAttr(2)) {
		t.Fatalf("expected exactly two sublevel columns, got a third at index 2: %+v", p.Attributes)
	}
}

func TestTransformRewritesEqrelRelations(t *testing.T) {
	attrs := []ast.Attribute{
		{Name: "a", Type: ast.NewQualifiedName("symbol")},
		{Name: "b", Type: ast.NewQualifiedName("symbol")},
	}
	rel := &ast.Relation{Name: ast.NewQualifiedName("same"), Attributes: attrs, Repr: ast.ReprEqrel}
	prog := &ast.Program{Relations: []*ast.Relation{rel}}

	Transform(prog, MaxHeight)

	if rel.Repr != ast.ReprBTree {
		t.Fatalf("expected eqrel relation to be rewritten to btree, got %v", rel.Repr)
	}

	foundTransitivity, foundSymmetry, foundReflexivity := false, false, false
	for _, cl := range prog.Clauses {
		if cl.Head == nil || cl.Head.Relation.String() != "same" || len(cl.Body) == 0 {
			continue
		}
		switch len(cl.Body) {
		case 2:
			foundTransitivity = true
		case 1:
			if _, ok := cl.Body[0].(*ast.Atom); ok {
				body := cl.Body[0].(*ast.Atom)
				if _, isUnnamed := body.Args[1].(*ast.UnnamedVar); isUnnamed {
					foundReflexivity = true
				} else {
					foundSymmetry = true
				}
			}
		}
	}
	if !foundTransitivity || !foundSymmetry || !foundReflexivity {
		t.Fatalf("expected transitivity, symmetry and reflexivity clauses, got %d clauses total", len(prog.Clauses))
	}
}

func TestSynthesizeInfoRelationsOneFactPerRule(t *testing.T) {
	prog := buildPathProgram()
	clauseNums := assignClauseNumbers(prog)
	relations, facts := synthesizeInfoRelations(prog, clauseNums)

	if len(relations) != 2 || len(facts) != 2 {
		t.Fatalf("expected one @info relation/fact per rule clause (2 rules for p), got %d/%d", len(relations), len(facts))
	}
	for _, r := range relations {
		if !strings.Contains(r.Name.String(), "@info_") {
			t.Fatalf("expected an @info_N relation name, got %q", r.Name.String())
		}
	}
	for _, cl := range facts {
		if !cl.IsFact() {
			t.Fatalf("expected synthesized info clauses to be facts")
		}
	}
}

func TestSynthesizeInfoRelationsRecordsReprTag(t *testing.T) {
	prog := buildPathProgram()
	clauseNums := assignClauseNumbers(prog)
	_, facts := synthesizeInfoRelations(prog, clauseNums)

	for _, cl := range facts {
		repr, ok := cl.Head.Args[len(cl.Head.Args)-1].(*ast.Constant)
		if !ok || repr.Kind != ast.ConstantString {
			t.Fatalf("expected clause_repr's final argument to be a string constant, got %#v", cl.Head.Args[len(cl.Head.Args)-1])
		}
		if !strings.HasPrefix(repr.StringVal, "btree ") {
			t.Fatalf("expected clause_repr to lead with the relation's representation tag, got %q", repr.StringVal)
		}
	}
}

func TestAssignClauseNumbersSkipsFacts(t *testing.T) {
	prog := buildPathProgram()
	nums := assignClauseNumbers(prog)
	for _, cl := range prog.Clauses {
		if cl.IsFact() {
			if _, ok := nums[cl]; ok {
				t.Fatalf("fact clause should not receive a clause number")
			}
		}
	}
	if len(nums) != 2 {
		t.Fatalf("expected 2 numbered rule clauses, got %d", len(nums))
	}
}

func TestAssignClauseNumbersOneBasedPerRelation(t *testing.T) {
	prog := buildPathProgram()
	nums := assignClauseNumbers(prog)

	var base, recursive *ast.Clause
	for _, cl := range prog.Clauses {
		if cl.Head == nil || cl.Head.Relation.String() != "p" {
			continue
		}
		if len(cl.Body) == 1 {
			base = cl
		} else if len(cl.Body) == 2 {
			recursive = cl
		}
	}
	if base == nil || recursive == nil {
		t.Fatalf("expected to find base and recursive clauses for p")
	}
	if nums[base] != 1 {
		t.Fatalf("expected relation p's first rule to be numbered 1, got %d", nums[base])
	}
	if nums[recursive] != 2 {
		t.Fatalf("expected relation p's second rule to be numbered 2, got %d", nums[recursive])
	}
}

func TestModeFromConfig(t *testing.T) {
	if ModeFromConfig("subtreeHeights") != SubtreeHeights {
		t.Fatalf("expected subtreeHeights config to map to SubtreeHeights")
	}
	if ModeFromConfig("") != MaxHeight {
		t.Fatalf("expected default config to map to MaxHeight")
	}
	if ModeFromConfig("none") != MaxHeight {
		t.Fatalf("expected none config to map to MaxHeight")
	}
}
