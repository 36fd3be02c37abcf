package pipeline

import (
	"github.com/ohamel-softwaresecure/souffle/internal/ast"
	"github.com/ohamel-softwaresecure/souffle/internal/component"
	"github.com/ohamel-softwaresecure/souffle/internal/inference"
	"github.com/ohamel-softwaresecure/souffle/internal/provenance"
	"github.com/ohamel-softwaresecure/souffle/internal/reltable"
	"github.com/ohamel-softwaresecure/souffle/internal/typesystem"
)

// TypeEnvironmentProcessor is pass B: build the type lattice from the
// program's declarations in two passes (create symbols, then link).
type TypeEnvironmentProcessor struct{}

func (p *TypeEnvironmentProcessor) Name() string { return "type-environment" }

func (p *TypeEnvironmentProcessor) Process(ctx *Context) {
	ctx.Types = typesystem.Build(ctx.Program.Types, ctx.Report)
}

// ComponentInstantiationProcessor is pass C: expand every top-level
// component instantiation into a flat, component-free program, then
// re-derive the type environment and relation table since instantiation
// renames existing declarations and introduces new ones.
type ComponentInstantiationProcessor struct{}

func (p *ComponentInstantiationProcessor) Name() string { return "component-instantiation" }

func (p *ComponentInstantiationProcessor) Process(ctx *Context) {
	component.InstantiateProgram(ctx.Program, ctx.Report)
	ctx.Types = typesystem.Build(ctx.Program.Types, ctx.Report)
	ctx.Relations = reltable.Build(ctx.Program.Relations, ctx.Report)
}

// InferenceProcessor is pass D: check every atom against the relation
// table, then solve per-clause subtype/supertype constraints to a fixed
// point and record the resulting TypeSet of every argument occurrence.
type InferenceProcessor struct{}

func (p *InferenceProcessor) Name() string { return "inference" }

func (p *InferenceProcessor) Process(ctx *Context) {
	functors := inference.NewFunctorTable()
	ctx.ArgumentTypes = make(map[*ast.Clause]map[ast.Argument]typesystem.TypeSet, len(ctx.Program.Clauses))

	for _, cl := range ctx.Program.Clauses {
		checkClauseAtoms(ctx, cl)

		result := inference.InferClause(ctx.Types, ctx.Relations, functors, cl)
		ctx.ArgumentTypes[cl] = snapshotArgumentTypes(cl, result)
	}

	for _, d := range ctx.Program.IODirectives {
		ctx.Relations.CheckIODirective(d, ctx.Report)
	}
}

// checkClauseAtoms validates every atom referenced by cl (head and
// body, including atoms nested inside aggregator bodies) against the
// relation table, reporting unresolved references and arity mismatches.
func checkClauseAtoms(ctx *Context, cl *ast.Clause) {
	if cl.Head != nil {
		ctx.Relations.CheckAtom(cl.Head, ctx.Report)
	}
	for _, lit := range cl.Body {
		checkLiteralAtoms(ctx, lit)
	}
}

func checkLiteralAtoms(ctx *Context, lit ast.Literal) {
	switch l := lit.(type) {
	case *ast.Atom:
		ctx.Relations.CheckAtom(l, ctx.Report)
		for _, arg := range l.Args {
			checkArgumentAtoms(ctx, arg)
		}
	case *ast.Negation:
		checkLiteralAtoms(ctx, l.Atom)
	case *ast.BinaryConstraint:
		checkArgumentAtoms(ctx, l.LHS)
		checkArgumentAtoms(ctx, l.RHS)
	}
}

func checkArgumentAtoms(ctx *Context, arg ast.Argument) {
	switch a := arg.(type) {
	case *ast.IntrinsicFunctor:
		for _, sub := range a.Args {
			checkArgumentAtoms(ctx, sub)
		}
	case *ast.UserFunctor:
		for _, sub := range a.Args {
			checkArgumentAtoms(ctx, sub)
		}
	case *ast.RecordInit:
		for _, sub := range a.Args {
			checkArgumentAtoms(ctx, sub)
		}
	case *ast.SumInit:
		checkArgumentAtoms(ctx, a.Arg)
	case *ast.TypeCast:
		checkArgumentAtoms(ctx, a.Arg)
	case *ast.Aggregator:
		if a.Target != nil {
			checkArgumentAtoms(ctx, a.Target)
		}
		for _, lit := range a.Body {
			checkLiteralAtoms(ctx, lit)
		}
	}
}

// snapshotArgumentTypes walks every argument occurrence reachable from
// cl and records its solved TypeSet, mirroring the walk checkClauseAtoms
// performs so the two stay in lockstep.
func snapshotArgumentTypes(cl *ast.Clause, result inference.Result) map[ast.Argument]typesystem.TypeSet {
	out := make(map[ast.Argument]typesystem.TypeSet)
	var walkLiteral func(lit ast.Literal)
	var walkArgument func(arg ast.Argument)

	walkArgument = func(arg ast.Argument) {
		if arg == nil {
			return
		}
		out[arg] = result.TypeOf(arg)
		switch a := arg.(type) {
		case *ast.IntrinsicFunctor:
			for _, sub := range a.Args {
				walkArgument(sub)
			}
		case *ast.UserFunctor:
			for _, sub := range a.Args {
				walkArgument(sub)
			}
		case *ast.RecordInit:
			for _, sub := range a.Args {
				walkArgument(sub)
			}
		case *ast.SumInit:
			walkArgument(a.Arg)
		case *ast.TypeCast:
			walkArgument(a.Arg)
		case *ast.Aggregator:
			if a.Target != nil {
				walkArgument(a.Target)
			}
			for _, lit := range a.Body {
				walkLiteral(lit)
			}
		}
	}

	walkLiteral = func(lit ast.Literal) {
		switch l := lit.(type) {
		case *ast.Atom:
			for _, arg := range l.Args {
				walkArgument(arg)
			}
		case *ast.Negation:
			walkLiteral(l.Atom)
		case *ast.BinaryConstraint:
			walkArgument(l.LHS)
			walkArgument(l.RHS)
		}
	}

	if cl.Head != nil {
		for _, arg := range cl.Head.Args {
			walkArgument(arg)
		}
	}
	for _, lit := range cl.Body {
		walkLiteral(lit)
	}
	return out
}

// ProvenanceProcessor is pass E: instrument the program with derivation
// columns, or do nothing when the configuration disables it.
type ProvenanceProcessor struct{}

func (p *ProvenanceProcessor) Name() string { return "provenance" }

func (p *ProvenanceProcessor) Process(ctx *Context) {
	if !ctx.Config.RunsProvenance() {
		return
	}
	provenance.Transform(ctx.Program, provenance.ModeFromConfig(string(ctx.Config.Provenance)))
}
