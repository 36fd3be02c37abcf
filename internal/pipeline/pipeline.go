// Package pipeline orders the semantic core's passes: type environment
// construction, component instantiation, constraint-based inference,
// and provenance instrumentation. Each pass is a Processor; the driver
// runs them in sequence and aborts after any pass whose diagnostics
// report contains an Error-kind entry, per the "collect, don't throw"
// policy documented on package diagnostics.
package pipeline

import (
	"github.com/google/uuid"

	"github.com/ohamel-softwaresecure/souffle/internal/ast"
	"github.com/ohamel-softwaresecure/souffle/internal/config"
	"github.com/ohamel-softwaresecure/souffle/internal/diagnostics"
	"github.com/ohamel-softwaresecure/souffle/internal/reltable"
	"github.com/ohamel-softwaresecure/souffle/internal/typesystem"
)

// Context carries one compilation's state through every pass. Program
// is mutated or replaced in place; Types and Relations are populated by
// the B and C passes respectively and read by D and E; Report
// accumulates across the whole run.
type Context struct {
	// RunID identifies one pipeline invocation for correlating log lines
	// and debug-report output across passes; it has no semantic effect.
	RunID string

	Config    *config.Config
	Program   *ast.Program
	Types     *typesystem.Environment
	Relations *reltable.Table
	Report    *diagnostics.Report

	// ArgumentTypes is populated by the inference pass: one
	// typesystem.TypeSet per argument occurrence, keyed by clause and
	// merged across the whole program once inference completes.
	ArgumentTypes map[*ast.Clause]map[ast.Argument]typesystem.TypeSet

	// Aborted is set by the driver once a pass reports an Error-kind
	// diagnostic; later passes are skipped.
	Aborted bool
}

// NewContext seeds a fresh compilation context around an
// already-parsed program.
func NewContext(cfg *config.Config, program *ast.Program) *Context {
	return &Context{
		RunID:   uuid.NewString(),
		Config:  cfg,
		Program: program,
		Report:  diagnostics.NewReport(),
	}
}

// Processor is one pass of the pipeline.
type Processor interface {
	Name() string
	Process(ctx *Context)
}

// Pipeline is an ordered sequence of passes.
type Pipeline struct {
	processors []Processor
}

// New builds a pipeline from its passes in run order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Default builds the core's standard pass order: type environment,
// component instantiation, inference, provenance. Provenance is included
// unconditionally; ProvenanceProcessor itself is a no-op when the
// configuration selects ProvenanceNone.
func Default() *Pipeline {
	return New(
		&TypeEnvironmentProcessor{},
		&ComponentInstantiationProcessor{},
		&InferenceProcessor{},
		&ProvenanceProcessor{},
	)
}

// Run executes every pass in order, stopping early once a pass leaves
// an Error-kind diagnostic in ctx.Report.
func (p *Pipeline) Run(ctx *Context) *Context {
	for _, proc := range p.processors {
		if ctx.Aborted {
			break
		}
		proc.Process(ctx)
		if ctx.Report.HasErrors() {
			ctx.Aborted = true
		}
	}
	return ctx
}
