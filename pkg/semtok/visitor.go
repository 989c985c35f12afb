package semtok

import "github.com/walteh/semls/pkg/ast"

// step is one unit of pending work: either a node to classify or, when node
// is nil, a token whose emission was deferred until after its siblings.
type step struct {
	node ast.Node
	tok  ast.Token
	typ  TokenType
	mods TokenModifier
}

type visitor struct {
	buf   *Buffer
	stack []step
	next  []step
}

// Walk classifies every node reachable from roots into buf. Roots are
// processed in order; within a root the traversal is pre-order.
func Walk(buf *Buffer, roots ...ast.Node) {
	v := &visitor{buf: buf}
	for _, root := range roots {
		if root == nil {
			continue
		}
		v.run(root)
	}
}

func (v *visitor) run(root ast.Node) {
	v.stack = append(v.stack[:0], step{node: root})
	for len(v.stack) > 0 {
		s := v.stack[len(v.stack)-1]
		v.stack = v.stack[:len(v.stack)-1]

		if s.node == nil {
			v.emit(s.tok, s.typ, s.mods)
			continue
		}

		v.next = v.next[:0]
		v.visitNode(s.node)
		for i := len(v.next) - 1; i >= 0; i-- {
			v.stack = append(v.stack, v.next[i])
		}
	}
}

func (v *visitor) emit(tok ast.Token, typ TokenType, mods TokenModifier) {
	if !tok.IsValid() {
		return
	}
	v.buf.Push(tok.Line-1, tok.Column-1, tok.Length, typ, mods)
}

// later queues an emission behind the children already queued.
func (v *visitor) later(tok ast.Token, typ TokenType, mods TokenModifier) {
	v.next = append(v.next, step{tok: tok, typ: typ, mods: mods})
}

type nodeRef interface {
	ast.Node
	comparable
}

// then queues the non-nil nodes for classification in the given order.
func then[T nodeRef](v *visitor, nodes ...T) {
	var zero T
	for _, n := range nodes {
		if n != zero {
			v.next = append(v.next, step{node: n})
		}
	}
}

func (v *visitor) visitNode(node ast.Node) {
	switch n := node.(type) {
	case *ast.File:
		then(v, n.Decls...)

	case *ast.FuncDecl:
		v.emit(n.Name, TokenFunction, ModifierDeclaration)
		then(v, n.Params...)
		then(v, n.Result)
		then(v, n.Body)

	case *ast.Param:
		v.emit(n.Name, TokenParameter, ModifierDeclaration)
		then(v, n.Type)

	case *ast.VarDecl:
		v.emit(n.Name, TokenVariable, ModifierNone)
		then(v, n.Init)

	case *ast.ConstDecl:
		v.emit(n.Name, TokenVariable, ModifierReadonly)
		then(v, n.Init)

	case *ast.TypeAlias:
		v.emit(n.Name, TokenTypeKind, ModifierNone)

	case *ast.Ident:
		v.emit(n.Name, TokenVariable, ModifierNone)

	case *ast.StructDecl:
		v.emit(n.Name, TokenStruct, ModifierNone)
		then(v, n.Fields...)

	case *ast.TraitDecl:
		v.emit(n.Name, TokenStruct, ModifierNone)
		then(v, n.Methods...)

	case *ast.ImplDecl:
		v.emit(n.Name, TokenStruct, ModifierNone)
		then(v, n.Methods...)

	case *ast.ImplTraitDecl:
		v.emit(n.Trait, TokenStruct, ModifierNone)
		then(v, n.Methods...)

	case *ast.Field:
		v.emit(n.Name, TokenMember, ModifierNone)

	case *ast.MemberExpr:
		then(v, n.Target)
		v.later(n.Member, TokenMember, ModifierNone)

	case *ast.Literal:
		switch n.LitKind {
		case ast.LitString, ast.LitChar:
			v.emit(n.Value, TokenString, ModifierNone)
		case ast.LitInt, ast.LitFloat:
			v.emit(n.Value, TokenNumber, ModifierNone)
		case ast.LitBool:
			v.emit(n.Value, TokenKeyword, ModifierNone)
		}

	case *ast.EnumDecl:
		v.emit(n.Name, TokenEnum, ModifierNone)
		then(v, n.Variants...)

	case *ast.Variant:
		v.emit(n.Name, TokenEnum, ModifierNone)
		then(v, n.Payload)

	case *ast.TypeRef:
		v.emit(n.Name, TokenTypeKind, ModifierNone)
		then(v, n.Args...)

	case *ast.Block:
		then(v, n.Stmts...)

	case *ast.ReturnStmt:
		then(v, n.Value)

	case *ast.BinaryExpr:
		then(v, n.Left, n.Right)

	case *ast.CallExpr:
		then(v, n.Callee)
		then(v, n.Args...)

	case *ast.DestructDecl:
		then(v, n.Init)
		then(v, n.Else)

	case *ast.MatchArm:
		then(v, n.Guard, n.Body)

	case *ast.Lambda:
		then(v, n.Params...)
		then(v, n.Body)

	case *ast.ForRange:
		then(v, n.Start, n.End)
		then(v, n.Body)

	default:
		then(v, node.Children()...)
	}
}
