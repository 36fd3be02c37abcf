// Package diagnostics accumulates the typed errors and warnings raised
// by every pass of the semantic core. Passes never abort on the first
// problem they find; they record it here and keep going so a single
// invocation reports as much as it can (see the pass driver in package
// pipeline for the abort-after-pass-with-errors policy).
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/ohamel-softwaresecure/souffle/internal/ast"
)

// Kind distinguishes a hard failure from an advisory note.
type Kind int

const (
	Error Kind = iota
	Warning
)

func (k Kind) String() string {
	if k == Warning {
		return "warning"
	}
	return "error"
}

// Code identifies the taxonomy entry a diagnostic belongs to (see §7 of
// the design: redefinition, unresolved reference, arity mismatch, type
// conflict, instantiation overflow, malformed program).
type Code string

const (
	CodeRedefinition         Code = "S-REDEF"
	CodeUnresolvedReference  Code = "S-UNRESOLVED"
	CodeArityMismatch        Code = "S-ARITY"
	CodeTypeConflict         Code = "S-TYPECONFLICT"
	CodeInstantiationOverflow Code = "S-INSTOVERFLOW"
	CodeMalformedProgram     Code = "S-MALFORMED"
)

// Secondary is an additional (message, location) pair attached to a
// diagnostic, e.g. pointing at the earlier definition of a redefined name.
type Secondary struct {
	Message  string
	Location ast.SourceLocation
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Kind      Kind
	Code      Code
	Message   string
	Location  ast.SourceLocation
	Secondary []Secondary
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s [%s] %s", d.Location, d.Kind, d.Code, d.Message)
}

// Report is the shared, mutable sink every pass writes into. A single
// Report is threaded through the whole pipeline invocation.
type Report struct {
	entries []*Diagnostic
}

// NewReport returns an empty diagnostics report.
func NewReport() *Report {
	return &Report{}
}

// Add appends a diagnostic as-is.
func (r *Report) Add(d *Diagnostic) {
	r.entries = append(r.entries, d)
}

// Errorf records an Error-kind diagnostic.
func (r *Report) Errorf(code Code, loc ast.SourceLocation, format string, args ...interface{}) {
	r.Add(&Diagnostic{Kind: Error, Code: code, Message: fmt.Sprintf(format, args...), Location: loc})
}

// Warningf records a Warning-kind diagnostic.
func (r *Report) Warningf(code Code, loc ast.SourceLocation, format string, args ...interface{}) {
	r.Add(&Diagnostic{Kind: Warning, Code: code, Message: fmt.Sprintf(format, args...), Location: loc})
}

// ErrorfWithSecondary records an Error-kind diagnostic naming a second
// location, e.g. a redefinition pointing back at the earlier definition.
func (r *Report) ErrorfWithSecondary(code Code, loc ast.SourceLocation, secondaryMsg string, secondaryLoc ast.SourceLocation, format string, args ...interface{}) {
	r.Add(&Diagnostic{
		Kind:      Error,
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		Location:  loc,
		Secondary: []Secondary{{Message: secondaryMsg, Location: secondaryLoc}},
	})
}

// HasErrors reports whether any Error-kind diagnostic has been recorded.
func (r *Report) HasErrors() bool {
	for _, e := range r.entries {
		if e.Kind == Error {
			return true
		}
	}
	return false
}

// Entries returns all recorded diagnostics sorted in source order.
func (r *Report) Entries() []*Diagnostic {
	out := make([]*Diagnostic, len(r.entries))
	copy(out, r.entries)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Location, out[j].Location
		if a.File != b.File {
			return a.File < b.File
		}
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		return a.StartCol < b.StartCol
	})
	return out
}

// Merge appends every entry of other into r.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.entries = append(r.entries, other.entries...)
}
