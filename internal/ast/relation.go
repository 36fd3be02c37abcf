package ast

// RelationRepr is the storage representation requested for a relation.
type RelationRepr int

const (
	ReprBTree RelationRepr = iota
	ReprBrie
	ReprEqrel
)

func (r RelationRepr) String() string {
	switch r {
	case ReprBrie:
		return "brie"
	case ReprEqrel:
		return "eqrel"
	default:
		return "btree"
	}
}

// QualifierBits records the declared qualifier flags of a relation
// (input/output/printsize/overridable/...). Only the bits the core
// cares about are named; the rest pass through opaquely to lowering.
type QualifierBits uint32

const (
	QualifierInput QualifierBits = 1 << iota
	QualifierOutput
	QualifierPrintsize
)

func (b QualifierBits) Has(bit QualifierBits) bool { return b&bit != 0 }

// Attribute is one (name, declared type) column of a relation.
type Attribute struct {
	Name string
	Type QualifiedName
}

// Relation is a named table with a fixed attribute schema.
type Relation struct {
	Location   SourceLocation
	Name       QualifiedName
	Attributes []Attribute
	Repr       RelationRepr
	Qualifiers QualifierBits
}

func (r *Relation) Loc() SourceLocation { return r.Location }

// Arity returns the number of declared attributes.
func (r *Relation) Arity() int { return len(r.Attributes) }

// AttributeType returns the declared type of attribute i, or the zero
// QualifiedName if i is out of range.
func (r *Relation) AttributeType(i int) QualifiedName {
	if i < 0 || i >= len(r.Attributes) {
		return QualifiedName{}
	}
	return r.Attributes[i].Type
}

// Clone deep-copies a relation, rewriting its name and attribute types
// through rename.
func (r *Relation) Clone(rename func(QualifiedName) QualifiedName) *Relation {
	attrs := make([]Attribute, len(r.Attributes))
	for i, a := range r.Attributes {
		attrs[i] = Attribute{Name: a.Name, Type: rename(a.Type)}
	}
	return &Relation{
		Location:   r.Location,
		Name:       rename(r.Name),
		Attributes: attrs,
		Repr:       r.Repr,
		Qualifiers: r.Qualifiers,
	}
}

// IODirectiveKind distinguishes the three I/O directive forms.
type IODirectiveKind int

const (
	IOLoad IODirectiveKind = iota
	IOStore
	IOPrintsize
)

// IODirective binds a relation to an external I/O stream (.input/.output/
// .printsize); the stream machinery itself is out of scope here.
type IODirective struct {
	Location SourceLocation
	Kind     IODirectiveKind
	Relation QualifiedName
	Params   map[string]string
}

func (d *IODirective) Loc() SourceLocation { return d.Location }

// Clone deep-copies an I/O directive, rewriting its target relation name.
func (d *IODirective) Clone(rename func(QualifiedName) QualifiedName) *IODirective {
	params := make(map[string]string, len(d.Params))
	for k, v := range d.Params {
		params[k] = v
	}
	return &IODirective{Location: d.Location, Kind: d.Kind, Relation: rename(d.Relation), Params: params}
}
