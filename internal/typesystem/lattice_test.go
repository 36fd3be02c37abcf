package typesystem

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ohamel-softwaresecure/souffle/internal/ast"
	"github.com/ohamel-softwaresecure/souffle/internal/diagnostics"
)

// elementNames sorts a TypeSet's members by name for order-independent
// comparison.
func elementNames(ts TypeSet) []string {
	names := make([]string, 0, ts.Len())
	for _, n := range ts.Elements() {
		names = append(names, n.String())
	}
	sort.Strings(names)
	return names
}

// buildFixture wires up: adult_age <: age <: number, name <: symbol,
// U = age | name, and a self-referential record "list" { head: number,
// tail: list }.
func buildFixture(t *testing.T) *Environment {
	t.Helper()
	decls := []ast.TypeDecl{
		&ast.PrimitiveTypeDecl{Name: ast.NewQualifiedName("age"), Base: ast.NewQualifiedName("number")},
		&ast.PrimitiveTypeDecl{Name: ast.NewQualifiedName("adult_age"), Base: ast.NewQualifiedName("age")},
		&ast.PrimitiveTypeDecl{Name: ast.NewQualifiedName("name"), Base: ast.NewQualifiedName("symbol")},
		&ast.UnionTypeDecl{Name: ast.NewQualifiedName("u"), Elements: []ast.QualifiedName{
			ast.NewQualifiedName("age"), ast.NewQualifiedName("name"),
		}},
		&ast.RecordTypeDecl{Name: ast.NewQualifiedName("list"), Fields: []ast.FieldDecl{
			{Name: "head", Type: ast.NewQualifiedName("number")},
			{Name: "tail", Type: ast.NewQualifiedName("list")},
		}},
	}
	report := diagnostics.NewReport()
	env := Build(decls, report)
	if report.HasErrors() {
		t.Fatalf("unexpected errors building fixture: %v", report.Entries())
	}
	return env
}

func TestIsSubtypeReflexive(t *testing.T) {
	env := buildFixture(t)
	for _, name := range env.Names() {
		if !env.IsSubtype(name, name) {
			t.Errorf("IsSubtype(%s, %s) = false, want true", name, name)
		}
	}
}

func TestIsSubtypeChain(t *testing.T) {
	env := buildFixture(t)
	cases := []struct {
		a, b string
		want bool
	}{
		{"adult_age", "age", true},
		{"adult_age", "number", true},
		{"age", "number", true},
		{"name", "symbol", true},
		{"number", "age", false},
		{"age", "name", false},
	}
	for _, c := range cases {
		got := env.IsSubtype(ast.ParseQualifiedName(c.a), ast.ParseQualifiedName(c.b))
		if got != c.want {
			t.Errorf("IsSubtype(%s, %s) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestIsSubtypeUnionMembership(t *testing.T) {
	env := buildFixture(t)
	if !env.IsSubtype(ast.ParseQualifiedName("adult_age"), ast.ParseQualifiedName("u")) {
		t.Error("adult_age should be a subtype of u via transitive union membership through age")
	}
	if env.IsSubtype(ast.ParseQualifiedName("symbol"), ast.ParseQualifiedName("u")) {
		t.Error("symbol should not be a subtype of u: only name, not its root, is a union element")
	}
}

func TestGetLeastCommonSupertypesSpecialCases(t *testing.T) {
	env := buildFixture(t)

	got := env.GetLeastCommonSupertypes(ast.ParseQualifiedName("age"), ast.ParseQualifiedName("age"))
	if !got.Equal(SingletonTypeSet(ast.ParseQualifiedName("age"))) {
		t.Errorf("LCS(age,age) = %v, want {age}", got.Elements())
	}

	got = env.GetLeastCommonSupertypes(ast.ParseQualifiedName("adult_age"), ast.ParseQualifiedName("age"))
	if !got.Equal(SingletonTypeSet(ast.ParseQualifiedName("age"))) {
		t.Errorf("LCS(adult_age,age) = %v, want {age}", got.Elements())
	}
}

func TestGetLeastCommonSupertypesSymmetric(t *testing.T) {
	env := buildFixture(t)
	a, b := ast.ParseQualifiedName("age"), ast.ParseQualifiedName("name")
	ab := env.GetLeastCommonSupertypes(a, b)
	ba := env.GetLeastCommonSupertypes(b, a)
	if !ab.Equal(ba) {
		t.Errorf("LCS(age,name) = %v, LCS(name,age) = %v, want equal", ab.Elements(), ba.Elements())
	}
}

func TestGetLeastCommonSupertypesOfUnionMembers(t *testing.T) {
	env := buildFixture(t)
	members := NewTypeSet(ast.ParseQualifiedName("age"), ast.ParseQualifiedName("name"))
	got := elementNames(env.GetLeastCommonSupertypesOf(members))
	want := []string{"u"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetLeastCommonSupertypesOf(age, name) mismatch (-want +got):\n%s", diff)
	}
}

func TestGetGreatestCommonSubtypesSpecialCases(t *testing.T) {
	env := buildFixture(t)

	got := env.GetGreatestCommonSubtypes(ast.ParseQualifiedName("age"), ast.ParseQualifiedName("number"))
	if !got.Equal(SingletonTypeSet(ast.ParseQualifiedName("age"))) {
		t.Errorf("GCS(age,number) = %v, want {age}", got.Elements())
	}

	got = env.GetGreatestCommonSubtypes(ast.ParseQualifiedName("age"), ast.ParseQualifiedName("name"))
	if !got.IsEmpty() {
		t.Errorf("GCS(age,name) = %v, want empty (unrelated primitives)", got.Elements())
	}
}

func TestIsRecursive(t *testing.T) {
	env := buildFixture(t)
	if !env.IsRecursive(ast.ParseQualifiedName("list")) {
		t.Error("list should be recursive: tail refers back to list")
	}
	if env.IsRecursive(ast.ParseQualifiedName("age")) {
		t.Error("age is a primitive, should never be reported recursive")
	}
}

func TestPredefinedRootPredicates(t *testing.T) {
	env := buildFixture(t)
	cases := []struct {
		name string
		pred func(ast.QualifiedName) bool
	}{
		{"number", env.IsNumberType},
		{"unsigned", env.IsUnsignedType},
		{"float", env.IsFloatType},
		{"symbol", env.IsSymbolType},
	}
	for _, c := range cases {
		if !c.pred(ast.ParseQualifiedName(c.name)) {
			t.Errorf("predicate for %q returned false on its own root", c.name)
		}
	}

	// age <: number, so it is number-rooted but nothing else: the
	// predicate follows the primitive's base chain, it doesn't just
	// compare names.
	if !env.IsNumberType(ast.ParseQualifiedName("age")) {
		t.Error("IsNumberType(age) should be true: age <: number")
	}
	if env.IsUnsignedType(ast.ParseQualifiedName("age")) || env.IsFloatType(ast.ParseQualifiedName("age")) || env.IsSymbolType(ast.ParseQualifiedName("age")) {
		t.Error("age should only be number-rooted")
	}

	// u = age | name, where age <: number and name <: symbol: a union
	// whose elements disagree on root is rooted in neither.
	if env.IsNumberType(ast.ParseQualifiedName("u")) || env.IsSymbolType(ast.ParseQualifiedName("u")) {
		t.Error("u's elements disagree on root (age->number, name->symbol): should be rooted in neither")
	}
}

func TestIsOfRootTypeUnionRequiresAllElements(t *testing.T) {
	decls := []ast.TypeDecl{
		&ast.PrimitiveTypeDecl{Name: ast.NewQualifiedName("B"), Base: ast.NewQualifiedName("symbol")},
		&ast.PrimitiveTypeDecl{Name: ast.NewQualifiedName("C"), Base: ast.NewQualifiedName("symbol")},
		&ast.UnionTypeDecl{Name: ast.NewQualifiedName("A"), Elements: []ast.QualifiedName{
			ast.NewQualifiedName("B"), ast.NewQualifiedName("C"),
		}},
	}
	report := diagnostics.NewReport()
	env := Build(decls, report)
	if report.HasErrors() {
		t.Fatalf("unexpected errors: %v", report.Entries())
	}

	a := ast.ParseQualifiedName("A")
	if !env.IsSymbolType(a) {
		t.Fatal("A = B | C, both B and C <: symbol: A should be symbol-rooted")
	}
	if !env.IsSubtype(a, ast.ParseQualifiedName("symbol")) {
		t.Fatal("A should be a subtype of symbol via the root predicate")
	}
}

func TestBuildReportsRedefinition(t *testing.T) {
	decls := []ast.TypeDecl{
		&ast.PrimitiveTypeDecl{Name: ast.NewQualifiedName("age"), Base: ast.NewQualifiedName("number")},
		&ast.PrimitiveTypeDecl{Name: ast.NewQualifiedName("age"), Base: ast.NewQualifiedName("number")},
	}
	report := diagnostics.NewReport()
	Build(decls, report)
	if !report.HasErrors() {
		t.Fatal("expected a redefinition error, got none")
	}
}

func TestBuildReportsUnresolvedReference(t *testing.T) {
	decls := []ast.TypeDecl{
		&ast.PrimitiveTypeDecl{Name: ast.NewQualifiedName("age"), Base: ast.NewQualifiedName("nonexistent")},
	}
	report := diagnostics.NewReport()
	Build(decls, report)
	if !report.HasErrors() {
		t.Fatal("expected an unresolved-reference error, got none")
	}
}
