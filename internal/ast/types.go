package ast

// PredefinedKind names one of the four built-in root types.
type PredefinedKind int

const (
	PredefinedNumber PredefinedKind = iota
	PredefinedUnsigned
	PredefinedFloat
	PredefinedSymbol
)

func (k PredefinedKind) String() string {
	switch k {
	case PredefinedNumber:
		return "number"
	case PredefinedUnsigned:
		return "unsigned"
	case PredefinedFloat:
		return "float"
	case PredefinedSymbol:
		return "symbol"
	default:
		return "?predefined"
	}
}

// TypeDecl is a type declaration as it comes out of the parser, before
// the type environment builder (see package typesystem) links it into
// the lattice. One of PrimitiveTypeDecl, UnionTypeDecl, RecordTypeDecl,
// SumTypeDecl.
type TypeDecl interface {
	Node
	TypeName() QualifiedName
	typeDeclNode()
}

// PrimitiveTypeDecl declares a user alias over a predefined or another
// primitive type: ".type Age <: number".
type PrimitiveTypeDecl struct {
	Location SourceLocation
	Name     QualifiedName
	Base     QualifiedName // resolves to a predefined or primitive type
}

func (d *PrimitiveTypeDecl) Loc() SourceLocation    { return d.Location }
func (d *PrimitiveTypeDecl) TypeName() QualifiedName { return d.Name }
func (d *PrimitiveTypeDecl) typeDeclNode()           {}

// UnionTypeDecl declares a set union of element types: ".type A = B | C".
type UnionTypeDecl struct {
	Location SourceLocation
	Name     QualifiedName
	Elements []QualifiedName
}

func (d *UnionTypeDecl) Loc() SourceLocation    { return d.Location }
func (d *UnionTypeDecl) TypeName() QualifiedName { return d.Name }
func (d *UnionTypeDecl) typeDeclNode()           {}

// FieldDecl is one (name, type) pair of a record declaration.
type FieldDecl struct {
	Name string
	Type QualifiedName
}

// RecordTypeDecl declares an ordered list of named, typed fields.
type RecordTypeDecl struct {
	Location SourceLocation
	Name     QualifiedName
	Fields   []FieldDecl
}

func (d *RecordTypeDecl) Loc() SourceLocation    { return d.Location }
func (d *RecordTypeDecl) TypeName() QualifiedName { return d.Name }
func (d *RecordTypeDecl) typeDeclNode()           {}

// BranchDecl is one (name, payload type) pair of a sum declaration.
type BranchDecl struct {
	Name    string
	Payload QualifiedName
}

// SumTypeDecl declares a tagged union of disjointly-named branches.
type SumTypeDecl struct {
	Location SourceLocation
	Name     QualifiedName
	Branches []BranchDecl
}

func (d *SumTypeDecl) Loc() SourceLocation    { return d.Location }
func (d *SumTypeDecl) TypeName() QualifiedName { return d.Name }
func (d *SumTypeDecl) typeDeclNode()           {}

// CloneTypeDecl deep-clones a type declaration, rewriting every internal
// type reference (base/elements/fields/branches) through rename. Used by
// the component instantiator to hand each instance an independent copy.
func CloneTypeDecl(d TypeDecl, rename func(QualifiedName) QualifiedName) TypeDecl {
	switch t := d.(type) {
	case *PrimitiveTypeDecl:
		return &PrimitiveTypeDecl{
			Location: t.Location,
			Name:     rename(t.Name),
			Base:     rename(t.Base),
		}
	case *UnionTypeDecl:
		elems := make([]QualifiedName, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = rename(e)
		}
		return &UnionTypeDecl{Location: t.Location, Name: rename(t.Name), Elements: elems}
	case *RecordTypeDecl:
		fields := make([]FieldDecl, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = FieldDecl{Name: f.Name, Type: rename(f.Type)}
		}
		return &RecordTypeDecl{Location: t.Location, Name: rename(t.Name), Fields: fields}
	case *SumTypeDecl:
		branches := make([]BranchDecl, len(t.Branches))
		for i, b := range t.Branches {
			branches[i] = BranchDecl{Name: b.Name, Payload: rename(b.Payload)}
		}
		return &SumTypeDecl{Location: t.Location, Name: rename(t.Name), Branches: branches}
	default:
		return d
	}
}
