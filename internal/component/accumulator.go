package component

import (
	"github.com/ohamel-softwaresecure/souffle/internal/ast"
	"github.com/ohamel-softwaresecure/souffle/internal/diagnostics"
)

// accumulator holds the flattened content produced by one instantiation
// (or the whole program-level expansion): types, an index of relations
// by qualified name, clauses that have found their head relation,
// clauses still waiting to (orphans), I/O directives, and the subset of
// relations that were already present in the program before this
// expansion ran (so the final merge doesn't re-append them).
type accumulator struct {
	types        []ast.TypeDecl
	relationsIdx map[string]*ast.Relation
	relOrder     []string
	existing     map[string]bool
	printsizeIdx map[string]*ast.IODirective
	clauses      []*ast.Clause
	orphans      []*ast.Clause
	io           []*ast.IODirective
}

func newAccumulator() *accumulator {
	return &accumulator{
		relationsIdx: make(map[string]*ast.Relation),
		existing:     make(map[string]bool),
		printsizeIdx: make(map[string]*ast.IODirective),
	}
}

func (a *accumulator) addType(t ast.TypeDecl) {
	a.types = append(a.types, t)
}

// addRelation indexes r, reporting a redefinition diagnostic if its
// name collides with one already accumulated.
func (a *accumulator) addRelation(r *ast.Relation, report *diagnostics.Report) {
	key := r.Name.String()
	if prior, exists := a.relationsIdx[key]; exists {
		report.ErrorfWithSecondary(diagnostics.CodeRedefinition, r.Loc(),
			"first declared here", prior.Loc(),
			"relation %q redeclared", r.Name)
		return
	}
	a.relationsIdx[key] = r
	a.relOrder = append(a.relOrder, key)
}

// seedExisting registers a relation that was already part of the
// program before expansion began, purely so orphan clauses may resolve
// against it; it is never re-appended to the program's relation list.
func (a *accumulator) seedExisting(r *ast.Relation) {
	key := r.Name.String()
	if _, exists := a.relationsIdx[key]; !exists {
		a.relationsIdx[key] = r
		a.relOrder = append(a.relOrder, key)
	}
	a.existing[key] = true
}

// newRelations returns the relations accumulated by this expansion,
// excluding any seeded via seedExisting.
func (a *accumulator) newRelations() []*ast.Relation {
	out := make([]*ast.Relation, 0, len(a.relOrder))
	for _, key := range a.relOrder {
		if a.existing[key] {
			continue
		}
		out = append(out, a.relationsIdx[key])
	}
	return out
}

// addIO records an I/O directive. Only printsize directives are
// deduplicated by relation name; loads and stores are accepted as-is.
func (a *accumulator) addIO(d *ast.IODirective, report *diagnostics.Report) {
	if d.Kind == ast.IOPrintsize {
		key := d.Relation.String()
		if prior, exists := a.printsizeIdx[key]; exists {
			report.ErrorfWithSecondary(diagnostics.CodeRedefinition, d.Loc(),
				"first declared here", prior.Loc(),
				"printsize directive for %q redeclared", d.Relation)
		} else {
			a.printsizeIdx[key] = d
		}
	}
	a.io = append(a.io, d)
}

// attachOrOrphan appends cl to the resolved clause list if its head
// relation is already indexed, else parks it on the orphan list.
func (a *accumulator) attachOrOrphan(cl *ast.Clause) {
	if cl.Head == nil {
		a.clauses = append(a.clauses, cl)
		return
	}
	if _, ok := a.relationsIdx[cl.Head.Relation.String()]; ok {
		a.clauses = append(a.clauses, cl)
		return
	}
	a.orphans = append(a.orphans, cl)
}

// sweepOrphans re-checks every parked orphan against the current
// relation index, moving any that now resolve into the clause list.
func (a *accumulator) sweepOrphans() {
	var remaining []*ast.Clause
	for _, cl := range a.orphans {
		if cl.Head != nil {
			if _, ok := a.relationsIdx[cl.Head.Relation.String()]; ok {
				a.clauses = append(a.clauses, cl)
				continue
			}
		}
		remaining = append(remaining, cl)
	}
	a.orphans = remaining
}

// mergeFrom absorbs sub's content into a, running sub's relations
// through a's own redefinition check and re-sweeping orphans afterward
// so a clause orphaned in sub may resolve against a relation a already
// held (or vice versa).
func (a *accumulator) mergeFrom(sub *accumulator, report *diagnostics.Report) {
	a.types = append(a.types, sub.types...)
	for _, key := range sub.relOrder {
		a.addRelation(sub.relationsIdx[key], report)
	}
	for _, d := range sub.io {
		a.addIO(d, report)
	}
	a.clauses = append(a.clauses, sub.clauses...)
	a.orphans = append(a.orphans, sub.orphans...)
	a.sweepOrphans()
}

// instanceRenamer builds the combined type+relation name-mapping table
// for this instance: every accumulated type and relation name maps to
// instanceName ++ oldName. Types and relations share one table because
// they occupy disjoint declaration namespaces and the AST Clone helpers
// apply a single rename function across both type and relation
// references uniformly.
func (a *accumulator) instanceRenamer(instanceName string) func(ast.QualifiedName) ast.QualifiedName {
	prefix := ast.NewQualifiedName(instanceName)
	mapping := make(map[string]ast.QualifiedName, len(a.types)+len(a.relOrder))
	for _, t := range a.types {
		old := t.TypeName()
		mapping[old.String()] = prefix.Append(old)
	}
	for _, key := range a.relOrder {
		old := a.relationsIdx[key].Name
		mapping[old.String()] = prefix.Append(old)
	}
	return func(n ast.QualifiedName) ast.QualifiedName {
		if n.IsZero() {
			return n
		}
		if renamed, ok := mapping[n.String()]; ok {
			return renamed
		}
		return n
	}
}

// applyRename rewrites every accumulated type, relation, clause, orphan
// and I/O directive through rename in place.
func (a *accumulator) applyRename(rename func(ast.QualifiedName) ast.QualifiedName) {
	for i, t := range a.types {
		a.types[i] = ast.CloneTypeDecl(t, rename)
	}

	newIdx := make(map[string]*ast.Relation, len(a.relationsIdx))
	newOrder := make([]string, len(a.relOrder))
	for i, key := range a.relOrder {
		r := a.relationsIdx[key].Clone(rename)
		newKey := r.Name.String()
		newIdx[newKey] = r
		newOrder[i] = newKey
	}
	a.relationsIdx = newIdx
	a.relOrder = newOrder

	for i, cl := range a.clauses {
		a.clauses[i] = cl.Clone(rename)
	}
	for i, cl := range a.orphans {
		a.orphans[i] = cl.Clone(rename)
	}
	for i, d := range a.io {
		a.io[i] = d.Clone(rename)
	}
}
