// Package component expands component instantiations into a flat,
// component-free program: every ".init" is walked recursively, binding
// formal type parameters to actuals, pulling in base-component content,
// reseating orphan clauses against their head relation, and finally
// qualifying every accumulated name under its instance prefix.
package component

import (
	"github.com/ohamel-softwaresecure/souffle/internal/ast"
	"github.com/ohamel-softwaresecure/souffle/internal/diagnostics"
)

// MaxInstantiationDepth bounds the recursion a chain of nested ".init"
// instantiations may reach before the instantiator gives up and reports
// a fatal diagnostic rather than looping forever on a self-referential
// component graph.
const MaxInstantiationDepth = 1000

// TypeBinding maps a component's formal type parameter names to the
// actual qualified names bound at one particular instantiation site.
type TypeBinding map[string]ast.QualifiedName

// Resolve rewrites name through the binding if it is a single-segment
// formal parameter reference; any other name passes through unchanged.
func (b TypeBinding) Resolve(name ast.QualifiedName) ast.QualifiedName {
	if len(name.Segments) == 1 {
		if actual, ok := b[name.Segments[0]]; ok {
			return actual
		}
	}
	return name
}

// Extend returns a new binding that maps each params[i] to actuals[i],
// seeded with b's existing entries (which may still be referenced by
// actuals computed in the caller's own scope).
func (b TypeBinding) Extend(params []string, actuals []ast.QualifiedName) TypeBinding {
	out := make(TypeBinding, len(b)+len(params))
	for k, v := range b {
		out[k] = v
	}
	for i, p := range params {
		if i < len(actuals) {
			out[p] = actuals[i]
		}
	}
	return out
}

// Instantiator expands every ComponentInit in a Program against that
// Program's globally-declared components.
type Instantiator struct {
	program *ast.Program
	byName  map[string]*ast.Component
	report  *diagnostics.Report
	depth   int // not updated; instantiate carries the remaining depth as a parameter
}

// NewInstantiator returns an Instantiator over p's top-level components,
// recording diagnostics into report.
func NewInstantiator(p *ast.Program, report *diagnostics.Report) *Instantiator {
	inst := &Instantiator{program: p, report: report, byName: make(map[string]*ast.Component)}
	for _, c := range p.Components {
		inst.byName[c.Name] = c
	}
	return inst
}

// lookup resolves a component reference by name. Components are
// declared at the top level in this dialect (no further nested
// component declarations), so the enclosing component is consulted only
// to report diagnostics with the right lexical context; the name itself
// always resolves against the program-wide table.
func (inst *Instantiator) lookup(name string, _ *ast.Component) (*ast.Component, bool) {
	c, ok := inst.byName[name]
	return c, ok
}

// InstantiateProgram expands every top-level ComponentInit in p,
// appending the flattened result back into p and clearing p.Components
// and p.Instantiations so the program is component-free afterward.
func InstantiateProgram(p *ast.Program, report *diagnostics.Report) {
	inst := NewInstantiator(p, report)

	final := newAccumulator()
	for _, init := range p.Instantiations {
		sub := inst.instantiate(init, TypeBinding{}, MaxInstantiationDepth)
		final.mergeFrom(sub, report)
	}
	for _, r := range p.Relations {
		final.seedExisting(r)
	}
	final.sweepOrphans()

	p.Types = append(p.Types, final.types...)
	p.Relations = append(p.Relations, final.newRelations()...)
	p.Clauses = append(p.Clauses, final.clauses...)
	// Clauses whose head relation never resolved anywhere in the
	// expansion are kept rather than dropped; the inference pass's
	// relation table will flag the dangling head name on its own.
	p.Clauses = append(p.Clauses, final.orphans...)
	p.IODirectives = append(p.IODirectives, final.io...)
	p.Instantiations = nil
	p.Components = nil
}

// instantiate expands one ComponentInit, returning the flattened
// content it and everything it (transitively) contains produces. depth
// counts down from MaxInstantiationDepth and guards against a cyclic
// instantiation graph.
func (inst *Instantiator) instantiate(init *ast.ComponentInit, binding TypeBinding, depth int) *accumulator {
	if depth <= 0 {
		inst.report.Errorf(diagnostics.CodeInstantiationOverflow, init.Loc(),
			"component instantiation %q exceeds maximum depth of %d", init.InstanceName, MaxInstantiationDepth)
		return newAccumulator()
	}

	comp, ok := inst.lookup(init.Ref.Name, init.EnclosingComponent)
	if !ok {
		// Unresolved component references are silently dropped; a
		// later pass flags the dangling name via its own lookups.
		return newAccumulator()
	}

	actuals := make([]ast.QualifiedName, len(init.Ref.ActualParams))
	for i, p := range init.Ref.ActualParams {
		actuals[i] = binding.Resolve(p)
	}
	localBinding := TypeBinding{}.Extend(comp.TypeParams, actuals)
	rename := func(n ast.QualifiedName) ast.QualifiedName { return localBinding.Resolve(n) }

	acc := newAccumulator()

	// Step 3: nested instantiations declared inside the referenced
	// component expand first, at one less depth.
	for _, nested := range comp.Instantiations {
		sub := inst.instantiate(nested, localBinding, depth-1)
		acc.mergeFrom(sub, inst.report)
	}

	// Step 4: base-component content, depth unchanged (the base chain
	// is orthogonal to instantiation nesting depth).
	overridden := make(map[string]bool, len(comp.Overridden))
	for k := range comp.Overridden {
		overridden[k] = true
	}
	inst.collectBase(comp, localBinding, overridden, acc, depth)

	// Step 5: clone this component's own local content under the
	// binding.
	for _, td := range comp.Types {
		acc.addType(ast.CloneTypeDecl(td, rename))
	}
	for _, r := range comp.Relations {
		acc.addRelation(r.Clone(rename), inst.report)
	}
	for _, d := range comp.IODirectives {
		acc.addIO(d.Clone(rename), inst.report)
	}

	// Step 6: attach local clauses to their head relation if it has
	// already been accumulated, else park them as orphans and sweep.
	for _, cl := range comp.Clauses {
		acc.attachOrOrphan(cl.Clone(rename))
	}
	acc.sweepOrphans()

	// Step 7: qualify every accumulated name under this instance.
	instRename := acc.instanceRenamer(init.InstanceName)
	acc.applyRename(instRename)

	return acc
}

// collectBase walks comp's base-component chain, pulling in each base's
// types, relations, I/O directives and (non-overridden) clauses. Also
// expands each base's own nested instantiations. overridden accumulates
// as the walk descends: a component's own Overridden set applies to
// every base beneath it in the chain.
func (inst *Instantiator) collectBase(comp *ast.Component, binding TypeBinding, overridden map[string]bool, acc *accumulator, depth int) {
	for k := range comp.Overridden {
		overridden[k] = true
	}
	for _, baseRef := range comp.BaseComponents {
		baseComp, ok := inst.lookup(baseRef.Name, comp.EnclosingComponent)
		if !ok {
			continue
		}

		actuals := make([]ast.QualifiedName, len(baseRef.ActualParams))
		for i, p := range baseRef.ActualParams {
			actuals[i] = binding.Resolve(p)
		}
		baseBinding := TypeBinding{}.Extend(baseComp.TypeParams, actuals)
		baseRename := func(n ast.QualifiedName) ast.QualifiedName { return baseBinding.Resolve(n) }

		inst.collectBase(baseComp, baseBinding, overridden, acc, depth)

		for _, td := range baseComp.Types {
			acc.addType(ast.CloneTypeDecl(td, baseRename))
		}
		for _, r := range baseComp.Relations {
			acc.addRelation(r.Clone(baseRename), inst.report)
		}
		for _, d := range baseComp.IODirectives {
			acc.addIO(d.Clone(baseRename), inst.report)
		}
		for _, cl := range baseComp.Clauses {
			if cl.Head != nil && overridden[cl.Head.Relation.String()] {
				continue
			}
			acc.attachOrOrphan(cl.Clone(baseRename))
		}
		for _, nested := range baseComp.Instantiations {
			sub := inst.instantiate(nested, baseBinding, depth-1)
			acc.mergeFrom(sub, inst.report)
		}
	}
}
