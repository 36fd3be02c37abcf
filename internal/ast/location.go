// Package ast defines the abstract syntax tree consumed by the semantic
// core: types, relations, clauses, components and the argument/literal
// variants that make up a clause body. Nodes are produced by an upstream
// parser (out of scope here) and owned exclusively by the Program that
// holds them; passes replace or mutate subtrees in place but never share
// a subtree between two owners.
package ast

import "fmt"

// SourceLocation pins a node to the input text that produced it, so
// diagnostics can point a user back at their source file.
type SourceLocation struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

func (l SourceLocation) String() string {
	if l.File == "" && l.StartLine == 0 {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}

// Node is the base interface implemented by every AST entity.
type Node interface {
	Loc() SourceLocation
}
