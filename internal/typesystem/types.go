// Package typesystem implements the core's type lattice: the five type
// variants, the type environment that owns them, and the subtype/LCS/GCS
// algebra the constraint solver in package inference runs over.
package typesystem

import "github.com/ohamel-softwaresecure/souffle/internal/ast"

// Type is a named entity registered in an Environment. It is always one
// of Predefined, Primitive, Union, Record, Sum.
type Type interface {
	Name() ast.QualifiedName
	typeNode()
}

// Predefined is one of the four built-in roots: number, unsigned, float,
// symbol. They are always present in an Environment and are never
// redefined.
type Predefined struct {
	Qualifier ast.QualifiedName
	Kind      ast.PredefinedKind
}

func (t Predefined) Name() ast.QualifiedName { return t.Qualifier }
func (Predefined) typeNode()                 {}

// RootNumber, RootUnsigned, RootFloat and RootSymbol name the four
// predefined roots. They are stable qualified names, not environment
// lookups: every Environment registers exactly these four under
// exactly these names, so callers that only need the name (e.g. to
// build a constraint against "the number root") never need an
// *Environment in hand.
func RootNumber() ast.QualifiedName   { return ast.NewQualifiedName(ast.PredefinedNumber.String()) }
func RootUnsigned() ast.QualifiedName { return ast.NewQualifiedName(ast.PredefinedUnsigned.String()) }
func RootFloat() ast.QualifiedName    { return ast.NewQualifiedName(ast.PredefinedFloat.String()) }
func RootSymbol() ast.QualifiedName   { return ast.NewQualifiedName(ast.PredefinedSymbol.String()) }

// IsNumberType, IsUnsignedType, IsFloatType and IsSymbolType report
// whether name reduces entirely to the corresponding predefined root:
// the root itself, a primitive whose base chain bottoms out at it, or a
// union all of whose elements do. Recursive, via isOfRootType, so that a
// union of root-primitives (e.g. ".type A = B | C" with B, C <: symbol)
// correctly reports as symbol-rooted rather than only the bare root name
// matching. Callers that need to special-case "is this fundamentally
// numeric" read better against one of these than a raw
// IsSubtype(t, RootNumber()) call.
func (e *Environment) IsNumberType(name ast.QualifiedName) bool {
	return e.isOfRootType(name, RootNumber(), make(map[string]bool))
}
func (e *Environment) IsUnsignedType(name ast.QualifiedName) bool {
	return e.isOfRootType(name, RootUnsigned(), make(map[string]bool))
}
func (e *Environment) IsFloatType(name ast.QualifiedName) bool {
	return e.isOfRootType(name, RootFloat(), make(map[string]bool))
}
func (e *Environment) IsSymbolType(name ast.QualifiedName) bool {
	return e.isOfRootType(name, RootSymbol(), make(map[string]bool))
}

// Primitive is a user alias carrying a reference to a base type
// (predefined or another primitive), defining a subtype chain.
type Primitive struct {
	Qualifier ast.QualifiedName
	Base      ast.QualifiedName
}

func (t Primitive) Name() ast.QualifiedName { return t.Qualifier }
func (Primitive) typeNode()                 {}

// Union is an unordered list of element types; semantically a set union
// of the values of its elements.
type Union struct {
	Qualifier ast.QualifiedName
	Elements  []ast.QualifiedName
}

func (t Union) Name() ast.QualifiedName { return t.Qualifier }
func (Union) typeNode()                 {}

// RecordField is one (name, type) pair of a Record.
type RecordField struct {
	Name string
	Type ast.QualifiedName
}

// Record is an ordered list of named, typed fields. Structural in shape
// but nominally identified by name.
type Record struct {
	Qualifier ast.QualifiedName
	Fields    []RecordField
}

func (t Record) Name() ast.QualifiedName { return t.Qualifier }
func (Record) typeNode()                 {}

// SumBranch is one (name, payload type) pair of a Sum.
type SumBranch struct {
	Name    string
	Payload ast.QualifiedName
}

// Sum is an ordered list of branches with disjoint names; at runtime a
// value is represented as (branch-index, payload).
type Sum struct {
	Qualifier ast.QualifiedName
	Branches  []SumBranch
}

func (t Sum) Name() ast.QualifiedName { return t.Qualifier }
func (Sum) typeNode()                 {}

// BranchIndex returns the position of branch name within the sum, or -1
// if no such branch exists.
func (t Sum) BranchIndex(name string) int {
	for i, b := range t.Branches {
		if b.Name == name {
			return i
		}
	}
	return -1
}
