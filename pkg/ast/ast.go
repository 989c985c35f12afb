// Package ast defines the syntax tree for .zc sources.
//
// The tree is produced by pkg/parser and read, never mutated, by the semantic
// token pipeline. Every node kind implements [Node]; the interface is sealed so
// the set of kinds is closed and listed by [Kinds].
package ast

import "fmt"

// Token is the highlightable span a node owns. Line and Column are 1-based,
// matching go/token; Length counts UTF-16 code units. The zero Token marks a
// node without a span of its own.
type Token struct {
	Line   int
	Column int
	Length int
}

// NoToken is the sentinel for nodes that carry no span.
var NoToken = Token{}

func (t Token) IsValid() bool {
	return t != NoToken
}

func (t Token) String() string {
	if !t.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d+%d", t.Line, t.Column, t.Length)
}

// Node is implemented by every syntax tree node.
type Node interface {
	Kind() Kind
	// Span returns the token the node is highlighted by, or NoToken.
	Span() Token
	// Children returns the direct child nodes in source order. Absent optional
	// children are omitted.
	Children() []Node

	node()
}

//go:generate stringer -type=Kind

// Kind identifies the concrete type of a Node.
type Kind int

const (
	KindInvalid Kind = iota
	KindFile
	KindFuncDecl
	KindParam
	KindVarDecl
	KindConstDecl
	KindTypeAlias
	KindStructDecl
	KindTraitDecl
	KindImplDecl
	KindImplTraitDecl
	KindField
	KindEnumDecl
	KindVariant
	KindTypeRef
	KindIdent
	KindMemberExpr
	KindLiteral
	KindBlock
	KindReturnStmt
	KindExprStmt
	KindIfStmt
	KindWhileStmt
	KindForRange
	KindBinaryExpr
	KindUnaryExpr
	KindCallExpr
	KindDestructDecl
	KindMatchExpr
	KindMatchArm
	KindLambda

	kindCount
)

// Kinds returns every valid node kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindFile; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// LitKind distinguishes literal flavours.
type LitKind int

const (
	LitString LitKind = iota
	LitChar
	LitInt
	LitFloat
	LitBool
)

func (k LitKind) String() string {
	switch k {
	case LitString:
		return "string"
	case LitChar:
		return "char"
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitBool:
		return "bool"
	}
	return fmt.Sprintf("LitKind(%d)", int(k))
}

// Inspect traverses the tree rooted at n in pre-order. If f returns false the
// children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range n.Children() {
		Inspect(c, f)
	}
}

type nodeRef interface {
	Node
	comparable
}

// collect appends the non-nil nodes to dst.
func collect[T nodeRef](dst []Node, nodes ...T) []Node {
	var zero T
	for _, n := range nodes {
		if n != zero {
			dst = append(dst, n)
		}
	}
	return dst
}
