package typesystem

import (
	"sort"

	"github.com/ohamel-softwaresecure/souffle/internal/ast"
	"github.com/ohamel-softwaresecure/souffle/internal/diagnostics"
)

// Environment owns every Type reachable in a program: the four
// predefined roots plus every user-declared primitive, union, record and
// sum. It is built in two passes (see Build below) so that forward
// references between declarations -- a record field naming a type
// declared later in the same file -- resolve correctly.
type Environment struct {
	types map[string]Type
	order []string
}

// NewEnvironment returns an Environment pre-populated with the four
// predefined roots.
func NewEnvironment() *Environment {
	e := &Environment{types: make(map[string]Type)}
	for _, k := range []ast.PredefinedKind{
		ast.PredefinedNumber, ast.PredefinedUnsigned, ast.PredefinedFloat, ast.PredefinedSymbol,
	} {
		name := ast.NewQualifiedName(k.String())
		e.register(Predefined{Qualifier: name, Kind: k})
	}
	return e
}

func (e *Environment) register(t Type) {
	key := t.Name().String()
	if _, exists := e.types[key]; !exists {
		e.order = append(e.order, key)
	}
	e.types[key] = t
}

// Lookup returns the type registered under name, if any.
func (e *Environment) Lookup(name ast.QualifiedName) (Type, bool) {
	t, ok := e.types[name.String()]
	return t, ok
}

// IsDeclared reports whether name is registered in e.
func (e *Environment) IsDeclared(name ast.QualifiedName) bool {
	_, ok := e.types[name.String()]
	return ok
}

// Names returns every registered type name in declaration order (the
// four predefined roots first, then user declarations in the order
// Build saw them).
func (e *Environment) Names() []ast.QualifiedName {
	out := make([]ast.QualifiedName, len(e.order))
	for i, k := range e.order {
		out[i] = e.types[k].Name()
	}
	return out
}

// Build constructs an Environment from a flat list of type declarations,
// reporting redefinitions and dangling references into report. It runs
// in two passes: pass one collects every declared name (skipping
// duplicates and names that collide with a predefined root); pass two
// registers each declaration's content. Only after every name is
// registered is each reference validated, so a declaration may name a
// type declared later in the same list.
//
// This mirrors the type-environment analysis's own two-phase, cache-by-
// tag construction: a first sweep that only learns which names exist,
// and a second that links them together. See the pipeline driver in
// package pipeline for why this same construction runs a second time,
// after component instantiation, over the fully expanded program.
func Build(decls []ast.TypeDecl, report *diagnostics.Report) *Environment {
	e := NewEnvironment()

	declared := make(map[string]ast.TypeDecl, len(decls))
	for _, d := range decls {
		key := d.TypeName().String()
		if prior, exists := declared[key]; exists {
			report.ErrorfWithSecondary(diagnostics.CodeRedefinition, d.Loc(),
				"first declared here", prior.Loc(),
				"type %q redeclared", d.TypeName())
			continue
		}
		declared[key] = d
	}

	// Pass one: reserve every declared name, reporting and skipping any
	// that collides with a predefined root.
	names := make([]string, 0, len(declared))
	for key, d := range declared {
		if e.IsDeclared(d.TypeName()) {
			report.Errorf(diagnostics.CodeRedefinition, d.Loc(),
				"type %q redefines a predefined root", d.TypeName())
			continue
		}
		names = append(names, key)
	}
	sort.Strings(names)

	// Pass two: link each declaration's body, validating every
	// reference against the now-complete name set.
	for _, key := range names {
		d := declared[key]
		switch t := d.(type) {
		case *ast.PrimitiveTypeDecl:
			e.register(Primitive{Qualifier: t.Name, Base: t.Base})
		case *ast.UnionTypeDecl:
			e.register(Union{Qualifier: t.Name, Elements: append([]ast.QualifiedName(nil), t.Elements...)})
		case *ast.RecordTypeDecl:
			fields := make([]RecordField, len(t.Fields))
			for i, f := range t.Fields {
				fields[i] = RecordField{Name: f.Name, Type: f.Type}
			}
			e.register(Record{Qualifier: t.Name, Fields: fields})
		case *ast.SumTypeDecl:
			branches := make([]SumBranch, len(t.Branches))
			for i, b := range t.Branches {
				branches[i] = SumBranch{Name: b.Name, Payload: b.Payload}
			}
			e.register(Sum{Qualifier: t.Name, Branches: branches})
		}
	}

	for _, key := range names {
		validateReferences(e, declared[key], report)
	}

	return e
}

func validateReferences(e *Environment, d ast.TypeDecl, report *diagnostics.Report) {
	check := func(ref ast.QualifiedName) {
		if ref.IsZero() {
			return
		}
		if !e.IsDeclared(ref) {
			report.Errorf(diagnostics.CodeUnresolvedReference, d.Loc(),
				"type %q references undeclared type %q", d.TypeName(), ref)
		}
	}
	switch t := d.(type) {
	case *ast.PrimitiveTypeDecl:
		check(t.Base)
	case *ast.UnionTypeDecl:
		for _, el := range t.Elements {
			check(el)
		}
	case *ast.RecordTypeDecl:
		for _, f := range t.Fields {
			check(f.Type)
		}
	case *ast.SumTypeDecl:
		for _, b := range t.Branches {
			check(b.Payload)
		}
	}
}
