package inference

import (
	"github.com/ohamel-softwaresecure/souffle/internal/ast"
	"github.com/ohamel-softwaresecure/souffle/internal/typesystem"
)

// sumBranchConstraint narrows sub's TypeSet to the declared payload
// type of branch within whichever Sum type(s) are currently assigned to
// sumArg, re-evaluated every sweep as sumArg's own TypeSet narrows.
type sumBranchConstraint struct {
	env    *typesystem.Environment
	sumArg ast.Argument
	branch string
	sub    ast.Argument
}

func (c *sumBranchConstraint) update(a *Assignment) bool {
	cur := a.Get(c.sumArg)
	if cur.IsAll() {
		return false
	}
	payloadTypes := typesystem.EmptyTypeSet()
	for _, name := range cur.Elements() {
		t, ok := c.env.Lookup(name)
		if !ok {
			continue
		}
		sum, ok := t.(typesystem.Sum)
		if !ok {
			continue
		}
		idx := sum.BranchIndex(c.branch)
		if idx < 0 {
			continue
		}
		payloadTypes = payloadTypes.Union(typesystem.SingletonTypeSet(sum.Branches[idx].Payload))
	}
	if payloadTypes.IsEmpty() {
		return false
	}
	return a.meet(c.sub, payloadTypes)
}
