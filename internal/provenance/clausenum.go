package provenance

import "github.com/ohamel-softwaresecure/souffle/internal/ast"

// assignClauseNumbers numbers every rule (non-fact) clause per its head
// relation, in program order, starting at 1 (a fact would number 0, but
// facts never enter this map since nothing downstream needs a fact's
// number). This matches getClauseNum's per-relation, 1-based rule
// numbering: a relation's first rule is always @rule_number 1, never 0,
// regardless of how many other relations' clauses precede it in the
// program.
//
// This numbering is independent of each clause's stable, parse-time
// ast.Clause.ID: the same program may be provenance-transformed more
// than once (e.g. once per debug run), and each run recomputes this
// numbering fresh over whatever the clause list looks like at that
// point, while ID keeps tracking a clause back to the line that
// introduced it.
func assignClauseNumbers(p *ast.Program) map[*ast.Clause]int {
	nums := make(map[*ast.Clause]int)
	next := make(map[string]int)
	for _, cl := range p.Clauses {
		if cl.IsFact() || cl.Head == nil {
			continue
		}
		head := cl.Head.Relation.String()
		n := next[head]
		if n == 0 {
			n = 1
		}
		nums[cl] = n
		next[head] = n + 1
	}
	return nums
}
