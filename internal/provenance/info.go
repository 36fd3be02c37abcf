package provenance

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ohamel-softwaresecure/souffle/internal/ast"
)

// encodeCounters numbers the anonymous sub-expressions (functor and
// aggregator occurrences) encountered while stringifying one clause, so
// that two distinct occurrences never collide on the same placeholder
// name.
type encodeCounters struct {
	functor int
	agg     int
}

func encodeArgument(arg ast.Argument, c *encodeCounters) string {
	switch a := arg.(type) {
	case *ast.Variable:
		return a.Name
	case *ast.UnnamedVar:
		return "_"
	case *ast.Counter:
		return "$"
	case *ast.Constant:
		return encodeConstant(a)
	case *ast.IntrinsicFunctor:
		c.functor++
		return fmt.Sprintf("functor_%d", c.functor)
	case *ast.UserFunctor:
		c.functor++
		return fmt.Sprintf("functor_%d", c.functor)
	case *ast.Aggregator:
		c.agg++
		return fmt.Sprintf("agg_%d", c.agg)
	default:
		return encodeArgumentFallback(arg)
	}
}

// encodeArgumentFallback covers argument kinds the info-relation
// encoding doesn't name explicitly (record/sum inits, type casts): they
// print as their Go-level shape, which is enough to keep the @info
// tuple stable and diagnosable without claiming a spec-defined form.
func encodeArgumentFallback(arg ast.Argument) string {
	switch a := arg.(type) {
	case *ast.RecordInit:
		return fmt.Sprintf("record_%d", len(a.Args))
	case *ast.SumInit:
		return "$" + a.Branch
	case *ast.TypeCast:
		return a.Type.String()
	default:
		return "?"
	}
}

func encodeConstant(c *ast.Constant) string {
	switch c.Kind {
	case ast.ConstantString:
		return strconv.Quote(c.StringVal)
	case ast.ConstantSigned:
		return strconv.FormatInt(c.SignedVal, 10)
	case ast.ConstantUnsigned:
		return strconv.FormatUint(c.UnsignedVal, 10)
	case ast.ConstantFloat:
		return strconv.FormatFloat(c.FloatVal, 'g', -1, 64)
	default:
		return "nil"
	}
}

func encodeLiteral(lit ast.Literal, c *encodeCounters) string {
	switch l := lit.(type) {
	case *ast.Atom:
		parts := make([]string, 0, len(l.Args)+1)
		parts = append(parts, l.Relation.String())
		for _, a := range l.Args {
			parts = append(parts, encodeArgument(a, c))
		}
		return strings.Join(parts, ",")
	case *ast.Negation:
		return "!" + l.Atom.Relation.String()
	case *ast.BinaryConstraint:
		return fmt.Sprintf("%s,%s,%s", l.Op, encodeArgument(l.LHS, c), encodeArgument(l.RHS, c))
	default:
		return ""
	}
}

// reprTag names the relation representation tag (btree/brie/eqrel/…) of
// the relation named name, so the info-relation's clause_repr column
// records not just the rule text but the storage form it derives into.
// An unrecognised or not-yet-declared relation falls back to "btree",
// the representation every relation defaults to.
func reprTag(p *ast.Program, name ast.QualifiedName) string {
	for _, rel := range p.Relations {
		if rel.Name.Equal(name) {
			return rel.Repr.String()
		}
	}
	return ast.ReprBTree.String()
}

func encodeClause(cl *ast.Clause, c *encodeCounters) string {
	var b strings.Builder
	if cl.Head != nil {
		b.WriteString(encodeLiteral(cl.Head, c))
	}
	b.WriteString(" :- ")
	for i, lit := range cl.Body {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(encodeLiteral(lit, c))
	}
	b.WriteString(".")
	return b.String()
}

// symbolAttr is the (symbol-typed) attribute shape every @info column
// other than clauseNum uses.
func symbolAttr(name string) ast.Attribute {
	return ast.Attribute{Name: name, Type: ast.NewQualifiedName("symbol")}
}

func stringConst(s string) *ast.Constant {
	return &ast.Constant{Kind: ast.ConstantString, StringVal: s}
}

// synthesizeInfoRelations builds one @info_N meta-relation and its
// single defining fact for every non-fact clause in p, numbering N per
// distinct head relation name. clauseNums supplies each clause's
// 1-based rule number within its head relation (see assignClauseNumbers).
func synthesizeInfoRelations(p *ast.Program, clauseNums map[*ast.Clause]int) ([]*ast.Relation, []*ast.Clause) {
	var relations []*ast.Relation
	var facts []*ast.Clause
	perHead := make(map[string]int)

	for _, cl := range p.Clauses {
		if cl.IsFact() || cl.Head == nil {
			continue
		}
		headName := cl.Head.Relation.String()
		n := perHead[headName]
		perHead[headName] = n + 1

		infoName := ast.NewQualifiedName(fmt.Sprintf("%s@info_%d", headName, n))

		counters := &encodeCounters{}
		headVars := make([]string, len(cl.Head.Args))
		for i, a := range cl.Head.Args {
			headVars[i] = encodeArgument(a, counters)
		}
		headVarsStr := strings.Join(headVars, ",")

		relLiterals := make([]string, len(cl.Body))
		for i, lit := range cl.Body {
			relLiterals[i] = encodeLiteral(lit, counters)
		}

		clauseRepr := reprTag(p, cl.Head.Relation) + " " + encodeClause(cl, &encodeCounters{})

		attrs := []ast.Attribute{{Name: "clauseNum", Type: ast.NewQualifiedName("number")}, symbolAttr("headVars")}
		factArgs := []ast.Argument{
			&ast.Constant{Kind: ast.ConstantSigned, SignedVal: int64(clauseNums[cl])},
			stringConst(headVarsStr),
		}
		for i, enc := range relLiterals {
			attrs = append(attrs, symbolAttr(fmt.Sprintf("rel_%d", i)))
			factArgs = append(factArgs, stringConst(enc))
		}
		attrs = append(attrs, symbolAttr("clause_repr"))
		factArgs = append(factArgs, stringConst(clauseRepr))

		relations = append(relations, &ast.Relation{Name: infoName, Attributes: attrs, Repr: ast.ReprBTree})
		facts = append(facts, &ast.Clause{
			ID:   ast.NextClauseID(),
			Head: &ast.Atom{Relation: infoName, Args: factArgs},
		})
	}

	return relations, facts
}
