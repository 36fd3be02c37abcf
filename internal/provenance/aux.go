package provenance

import (
	"fmt"

	"github.com/ohamel-softwaresecure/souffle/internal/ast"
)

const (
	ruleNumberAttr  = "@rule_number"
	levelNumberAttr = "@level_number"
)

// sublevelAttr names the i-th subtree-height column; unused in MaxHeight
// mode.
func sublevelAttr(i int) string { return fmt.Sprintf("@sublevel_number_%d", i) }

// levelVarName names the fresh variable a body atom's level slot binds
// to, which differs by mode per the spec's own naming for each variant.
func levelVarName(mode Mode, i int) string {
	if mode == SubtreeHeights {
		return fmt.Sprintf("@level_number_%d", i)
	}
	return fmt.Sprintf("@level_num_%d", i)
}

func numberAttr(name string) ast.Attribute {
	return ast.Attribute{Name: name, Type: ast.NewQualifiedName("number")}
}

// bodyAtomCount counts the literals of a clause's body that are atoms
// (positive or negated) -- the ones that carry a level value forward --
// ignoring binary constraints, which carry none.
func bodyAtomCount(body []ast.Literal) int {
	n := 0
	for _, lit := range body {
		switch lit.(type) {
		case *ast.Atom, *ast.Negation:
			n++
		}
	}
	return n
}

// auxArity computes, for relation rel, the total number of auxiliary
// columns it needs: the two fixed rule/level columns, plus in
// SubtreeHeights mode one sublevel column per body atom of its widest
// defining rule.
func auxArity(p *ast.Program, rel *ast.Relation, mode Mode) int {
	if mode != SubtreeHeights {
		return 2
	}
	maxAtoms := 0
	for _, cl := range p.Clauses {
		if cl.Head == nil || cl.IsFact() || !cl.Head.Relation.Equal(rel.Name) {
			continue
		}
		if n := bodyAtomCount(cl.Body); n > maxAtoms {
			maxAtoms = n
		}
	}
	return 2 + maxAtoms
}

// appendAuxiliaryColumns appends the derivation columns to every
// relation and rewrites every clause's head/body atoms to carry the
// matching extra arguments.
func appendAuxiliaryColumns(p *ast.Program, mode Mode, clauseNums map[*ast.Clause]int) {
	sublevelCount := make(map[string]int, len(p.Relations))

	for _, r := range p.Relations {
		n := auxArity(p, r, mode) - 2
		sublevelCount[r.Name.String()] = n
		r.Attributes = append(r.Attributes, numberAttr(ruleNumberAttr), numberAttr(levelNumberAttr))
		for i := 0; i < n; i++ {
			r.Attributes = append(r.Attributes, numberAttr(sublevelAttr(i)))
		}
	}

	for _, cl := range p.Clauses {
		rewriteClause(cl, mode, sublevelCount, clauseNums)
	}
}

func zeroConst() *ast.Constant   { return &ast.Constant{Kind: ast.ConstantSigned, SignedVal: 0} }
func negOneConst() *ast.Constant { return &ast.Constant{Kind: ast.ConstantSigned, SignedVal: -1} }
func intConst(v int) *ast.Constant {
	return &ast.Constant{Kind: ast.ConstantSigned, SignedVal: int64(v)}
}

// rewriteClause appends the auxiliary rule/level/sublevel arguments to
// cl's head and every body atom (recursing into functor/aggregator
// sub-expressions that themselves carry atoms).
func rewriteClause(cl *ast.Clause, mode Mode, sublevelCount map[string]int, clauseNums map[*ast.Clause]int) {
	levelVars := make([]ast.Argument, 0, len(cl.Body))
	bodyIndex := 0
	for _, lit := range cl.Body {
		switch l := lit.(type) {
		case *ast.Atom:
			levelVars = append(levelVars, bindBodyAuxArgs(l, mode, bodyIndex, sublevelCount))
			bodyIndex++
		case *ast.Negation:
			levelVars = append(levelVars, bindBodyAuxArgs(l.Atom, mode, bodyIndex, sublevelCount))
			bodyIndex++
		default:
			rewriteLiteral(lit, mode, sublevelCount)
		}
	}

	if cl.Head == nil {
		return
	}
	headSublevels := sublevelCount[cl.Head.Relation.String()]

	if cl.IsFact() {
		cl.Head.Args = append(cl.Head.Args, zeroConst(), zeroConst())
		for i := 0; i < headSublevels; i++ {
			cl.Head.Args = append(cl.Head.Args, zeroConst())
		}
		return
	}

	ruleNumber := intConst(clauseNums[cl])
	level := nextLevelExpr(levelVars)
	cl.Head.Args = append(cl.Head.Args, ruleNumber, level)
	for i := 0; i < headSublevels; i++ {
		if i < len(levelVars) {
			cl.Head.Args = append(cl.Head.Args, levelVars[i])
		} else {
			cl.Head.Args = append(cl.Head.Args, negOneConst())
		}
	}
}

// rewriteLiteral binds the aux args of an atom nested inside an
// aggregator body (or the atom underlying a negation there), using a
// throwaway body index: an aggregator's own level derivation is folded
// into its single scalar result rather than threaded into any
// enclosing clause's level expression, so only the binding matters here,
// not the generated level variable's name. A binary constraint's
// operands are searched for nested aggregator atoms the same way.
func rewriteLiteral(lit ast.Literal, mode Mode, sublevelCount map[string]int) {
	switch l := lit.(type) {
	case *ast.Atom:
		bindBodyAuxArgs(l, mode, 0, sublevelCount)
	case *ast.Negation:
		bindBodyAuxArgs(l.Atom, mode, 0, sublevelCount)
	case *ast.BinaryConstraint:
		rewriteNestedArgument(l.LHS, mode, sublevelCount)
		rewriteNestedArgument(l.RHS, mode, sublevelCount)
	}
}

// bindBodyAuxArgs appends the aux columns of atom's own relation as
// fresh trailing arguments -- an unnamed wildcard for the rule-number
// column, a fresh level variable (returned so the head's level
// expression can reference it) for the level column, and a wildcard per
// remaining sublevel column -- then recurses into atom's existing
// arguments for any nested atoms (aggregator bodies).
func bindBodyAuxArgs(atom *ast.Atom, mode Mode, bodyIndex int, sublevelCount map[string]int) ast.Argument {
	for _, arg := range atom.Args {
		rewriteNestedArgument(arg, mode, sublevelCount)
	}

	levelVar := &ast.Variable{Name: levelVarName(mode, bodyIndex)}
	atom.Args = append(atom.Args, &ast.UnnamedVar{}, levelVar)
	for i := 0; i < sublevelCount[atom.Relation.String()]; i++ {
		atom.Args = append(atom.Args, &ast.UnnamedVar{})
	}
	return levelVar
}

// rewriteNestedArgument recurses into a functor/aggregator/record/sum
// argument looking for atoms nested inside an aggregator's body, which
// need the same auxiliary-column treatment.
func rewriteNestedArgument(arg ast.Argument, mode Mode, sublevelCount map[string]int) {
	switch a := arg.(type) {
	case *ast.IntrinsicFunctor:
		for _, sub := range a.Args {
			rewriteNestedArgument(sub, mode, sublevelCount)
		}
	case *ast.UserFunctor:
		for _, sub := range a.Args {
			rewriteNestedArgument(sub, mode, sublevelCount)
		}
	case *ast.RecordInit:
		for _, sub := range a.Args {
			rewriteNestedArgument(sub, mode, sublevelCount)
		}
	case *ast.SumInit:
		rewriteNestedArgument(a.Arg, mode, sublevelCount)
	case *ast.TypeCast:
		rewriteNestedArgument(a.Arg, mode, sublevelCount)
	case *ast.Aggregator:
		if a.Target != nil {
			rewriteNestedArgument(a.Target, mode, sublevelCount)
		}
		for _, lit := range a.Body {
			rewriteLiteral(lit, mode, sublevelCount)
		}
	}
}

// nextLevelExpr builds the head's @level_number expression: 0 for a
// body with no atoms, otherwise ADD(1, MAX(level_0, level_1, ...))
// folded right-to-left over the body's per-atom level variables.
func nextLevelExpr(levelVars []ast.Argument) ast.Argument {
	if len(levelVars) == 0 {
		return zeroConst()
	}
	maxExpr := levelVars[len(levelVars)-1]
	for i := len(levelVars) - 2; i >= 0; i-- {
		maxExpr = &ast.IntrinsicFunctor{Op: "max", Args: []ast.Argument{levelVars[i], maxExpr}}
	}
	return &ast.IntrinsicFunctor{Op: "+", Args: []ast.Argument{intConst(1), maxExpr}}
}
