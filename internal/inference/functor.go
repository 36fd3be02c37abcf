package inference

import (
	"github.com/ohamel-softwaresecure/souffle/internal/ast"
	"github.com/ohamel-softwaresecure/souffle/internal/typesystem"
)

// FunctorSignature is the declared shape of a functor: the type its
// result must be a subtype of, and the type each of its arguments must
// be a subtype of. Overloaded signatures (the builtin polymorphic
// arithmetic operators) instead require every argument and the result
// to share one mutual-subtype type set.
type FunctorSignature struct {
	ReturnType      ast.QualifiedName
	ArgTypes        []ast.QualifiedName
	AllArgsType     ast.QualifiedName // used when arity is variable and every argument shares one type
	Overloaded      bool
	NoArgConstraint bool // the "ord" special case: no constraint on arguments at all
}

// ArgType returns the declared type of argument i, falling back to
// AllArgsType when ArgTypes does not cover i (variable-arity functors
// like cat/substr).
func (sig FunctorSignature) ArgType(i int) ast.QualifiedName {
	if i < len(sig.ArgTypes) {
		return sig.ArgTypes[i]
	}
	return sig.AllArgsType
}

// FunctorTable resolves an intrinsic or user-defined functor's name to
// its declared signature.
type FunctorTable struct {
	intrinsics map[string]FunctorSignature
	userDefined map[string]FunctorSignature
}

// NewFunctorTable returns a table pre-populated with the built-in
// intrinsic operators: the overloaded polymorphic arithmetic family,
// ord's no-constraint special case, and the string/number conversion
// and concatenation functors.
func NewFunctorTable() *FunctorTable {
	number := typesystem.RootNumber()
	unsigned := typesystem.RootUnsigned()
	float := typesystem.RootFloat()
	symbol := typesystem.RootSymbol()

	t := &FunctorTable{
		intrinsics:  make(map[string]FunctorSignature),
		userDefined: make(map[string]FunctorSignature),
	}

	for _, op := range []string{"+", "-", "*", "/", "%", "max", "min", "band", "bor", "bxor", "bshl", "bshr"} {
		t.intrinsics[op] = FunctorSignature{Overloaded: true}
	}
	t.intrinsics["ord"] = FunctorSignature{ReturnType: number, NoArgConstraint: true}
	t.intrinsics["cat"] = FunctorSignature{ReturnType: symbol, AllArgsType: symbol}
	t.intrinsics["strlen"] = FunctorSignature{ReturnType: number, AllArgsType: symbol}
	t.intrinsics["substr"] = FunctorSignature{ReturnType: symbol, ArgTypes: []ast.QualifiedName{symbol, number, number}}
	t.intrinsics["to_number"] = FunctorSignature{ReturnType: number, AllArgsType: symbol}
	t.intrinsics["to_unsigned"] = FunctorSignature{ReturnType: unsigned, AllArgsType: symbol}
	t.intrinsics["to_float"] = FunctorSignature{ReturnType: float, AllArgsType: symbol}
	t.intrinsics["to_string"] = FunctorSignature{ReturnType: symbol, AllArgsType: number}

	return t
}

// RegisterUserFunctor declares the signature of a user-defined functor,
// as would be parsed from a ".functor" declaration.
func (t *FunctorTable) RegisterUserFunctor(name string, sig FunctorSignature) {
	t.userDefined[name] = sig
}

// Intrinsic resolves the signature of a built-in operator.
func (t *FunctorTable) Intrinsic(op string) (FunctorSignature, bool) {
	sig, ok := t.intrinsics[op]
	return sig, ok
}

// UserDefined resolves the signature of a user-declared functor.
func (t *FunctorTable) UserDefined(name string) (FunctorSignature, bool) {
	sig, ok := t.userDefined[name]
	return sig, ok
}
