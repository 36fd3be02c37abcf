// Package provenance instruments a component-free, type-checked
// program with derivation-tracking columns: it rewrites EQREL relations
// into explicit BTREE closures, synthesises a single-fact @info
// meta-relation per rule clause describing that rule's shape, and
// appends rule/level (and, in subtreeHeights mode, sublevel) columns to
// every relation and every clause that touches it.
package provenance

import "github.com/ohamel-softwaresecure/souffle/internal/ast"

// Mode selects the auxiliary-column layout the transformer produces.
// SubtreeHeights carries one level variable per body atom through to
// the head; MaxHeight (the default) collapses them to a single
// aggregate level.
type Mode int

const (
	MaxHeight Mode = iota
	SubtreeHeights
)

// ModeFromConfig maps the four-valued "provenance" configuration key to
// the transformer's internal algorithm mode. "none" is handled by the
// caller (the pass is skipped entirely); any other value other than
// "subtreeHeights" runs the default MaxHeight algorithm.
func ModeFromConfig(provenanceConfig string) Mode {
	if provenanceConfig == "subtreeHeights" {
		return SubtreeHeights
	}
	return MaxHeight
}

// Transform instruments p in place: equivalence relations are expanded,
// info relations are synthesised, and every relation/clause gains its
// auxiliary derivation columns. clauseNum is assigned independently
// here, over the final flattened clause list, rather than reusing each
// clause's stable parse-time ast.Clause.ID.
func Transform(p *ast.Program, mode Mode) {
	rewriteEquivalenceRelations(p)

	clauseNums := assignClauseNumbers(p)
	infoRelations, infoFacts := synthesizeInfoRelations(p, clauseNums)
	appendAuxiliaryColumns(p, mode, clauseNums)

	p.Relations = append(p.Relations, infoRelations...)
	p.Clauses = append(p.Clauses, infoFacts...)
}
