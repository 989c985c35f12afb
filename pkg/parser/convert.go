package parser

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/walteh/semls/pkg/ast"
	"github.com/walteh/semls/pkg/position"
)

type converter struct {
	index *position.Index
}

// token builds the 1-based ast.Token for text starting at pos.
func (c *converter) token(pos lexer.Position, text string) ast.Token {
	pl := c.index.Place(pos.Offset)
	return ast.Token{
		Line:   pl.Line + 1,
		Column: pl.Character + 1,
		Length: position.UTF16Len(text),
	}
}

func (c *converter) name(n *nameNode) ast.Token {
	if n == nil {
		return ast.NoToken
	}
	return c.token(n.Pos, n.Value)
}

func (c *converter) file(filename string, f *fileNode) *ast.File {
	out := &ast.File{Name: filename}
	for _, item := range f.Items {
		if d := c.item(item); d != nil {
			out.Decls = append(out.Decls, d)
		}
	}
	return out
}

func (c *converter) item(n *itemNode) ast.Node {
	switch {
	case n.Func != nil:
		return c.funcDecl(n.Func)
	case n.Struct != nil:
		s := &ast.StructDecl{Name: c.name(n.Struct.Name)}
		for _, f := range n.Struct.Fields {
			s.Fields = append(s.Fields, &ast.Field{Name: c.name(f.Name), Type: c.typeRef(f.Type)})
		}
		return s
	case n.Trait != nil:
		return &ast.TraitDecl{Name: c.name(n.Trait.Name), Methods: c.methods(n.Trait.Methods)}
	case n.Impl != nil:
		if n.Impl.For != nil {
			return &ast.ImplTraitDecl{
				Trait:   c.name(n.Impl.Name),
				Target:  c.name(n.Impl.For),
				Methods: c.methods(n.Impl.Methods),
			}
		}
		return &ast.ImplDecl{Name: c.name(n.Impl.Name), Methods: c.methods(n.Impl.Methods)}
	case n.Enum != nil:
		e := &ast.EnumDecl{Name: c.name(n.Enum.Name)}
		for _, v := range n.Enum.Variants {
			e.Variants = append(e.Variants, &ast.Variant{Name: c.name(v.Name), Payload: c.typeRef(v.Payload)})
		}
		return e
	case n.TypeAlias != nil:
		return &ast.TypeAlias{Name: c.name(n.TypeAlias.Name), Target: c.typeRef(n.TypeAlias.Target)}
	case n.Const != nil:
		return c.constDecl(n.Const)
	case n.Destruct != nil:
		return c.destruct(n.Destruct)
	case n.Let != nil:
		return c.letDecl(n.Let)
	}
	return nil
}

func (c *converter) methods(fns []*funcNode) []*ast.FuncDecl {
	out := make([]*ast.FuncDecl, 0, len(fns))
	for _, fn := range fns {
		out = append(out, c.funcDecl(fn))
	}
	return out
}

func (c *converter) funcDecl(n *funcNode) *ast.FuncDecl {
	return &ast.FuncDecl{
		Name:   c.name(n.Name),
		Params: c.params(n.Params),
		Result: c.typeRef(n.Result),
		Body:   c.block(n.Body),
	}
}

func (c *converter) params(ps []*paramNode) []*ast.Param {
	out := make([]*ast.Param, 0, len(ps))
	for _, p := range ps {
		out = append(out, &ast.Param{Name: c.name(p.Name), Type: c.typeRef(p.Type)})
	}
	return out
}

func (c *converter) typeRef(n *typeNode) *ast.TypeRef {
	if n == nil {
		return nil
	}
	t := &ast.TypeRef{Name: c.name(n.Name)}
	for _, a := range n.Args {
		t.Args = append(t.Args, c.typeRef(a))
	}
	return t
}

func (c *converter) constDecl(n *constNode) *ast.ConstDecl {
	return &ast.ConstDecl{Name: c.name(n.Name), Type: c.typeRef(n.Type), Init: c.expr(n.Value)}
}

func (c *converter) letDecl(n *letNode) *ast.VarDecl {
	return &ast.VarDecl{Name: c.name(n.Name), Type: c.typeRef(n.Type), Init: c.expr(n.Value)}
}

func (c *converter) destruct(n *destructNode) *ast.DestructDecl {
	d := &ast.DestructDecl{Init: c.expr(n.Value), Else: c.block(n.Else)}
	for _, name := range n.Names {
		d.Names = append(d.Names, c.name(name))
	}
	return d
}

func (c *converter) block(n *blockNode) *ast.Block {
	if n == nil {
		return nil
	}
	b := &ast.Block{}
	for _, s := range n.Stmts {
		if st := c.stmt(s); st != nil {
			b.Stmts = append(b.Stmts, st)
		}
	}
	return b
}

func (c *converter) stmt(n *stmtNode) ast.Node {
	switch {
	case n.Const != nil:
		return c.constDecl(n.Const)
	case n.Destruct != nil:
		return c.destruct(n.Destruct)
	case n.Let != nil:
		return c.letDecl(n.Let)
	case n.Return != nil:
		return &ast.ReturnStmt{Value: c.expr(n.Return.Value)}
	case n.If != nil:
		return c.ifStmt(n.If)
	case n.While != nil:
		return &ast.WhileStmt{Cond: c.expr(n.While.Cond), Body: c.block(n.While.Body)}
	case n.For != nil:
		return &ast.ForRange{
			Var:   c.name(n.For.Var),
			Start: c.expr(n.For.Start),
			End:   c.expr(n.For.End),
			Body:  c.block(n.For.Body),
		}
	case n.Match != nil:
		return &ast.ExprStmt{X: c.match(n.Match)}
	case n.Block != nil:
		return c.block(n.Block)
	case n.Expr != nil:
		return &ast.ExprStmt{X: c.expr(n.Expr)}
	}
	return nil
}

func (c *converter) ifStmt(n *ifNode) *ast.IfStmt {
	s := &ast.IfStmt{Cond: c.expr(n.Cond), Then: c.block(n.Then)}
	if n.Else != nil {
		switch {
		case n.Else.If != nil:
			s.Else = c.ifStmt(n.Else.If)
		case n.Else.Block != nil:
			s.Else = c.block(n.Else.Block)
		}
	}
	return s
}

// expr folds the operator chain left-associatively. It returns a nil
// interface, never a typed nil, for a missing expression.
func (c *converter) expr(n *exprNode) ast.Node {
	if n == nil {
		return nil
	}
	left := c.unary(n.Left)
	for _, op := range n.Ops {
		left = &ast.BinaryExpr{
			Left:  left,
			Op:    c.token(op.Pos, op.Op),
			OpStr: op.Op,
			Right: c.unary(op.Right),
		}
	}
	return left
}

func (c *converter) unary(n *unaryNode) ast.Node {
	x := c.postfix(n.X)
	if n.Op == "" {
		return x
	}
	return &ast.UnaryExpr{Op: c.token(n.Pos, n.Op), OpStr: n.Op, X: x}
}

func (c *converter) postfix(n *postfixNode) ast.Node {
	x := c.primary(n.Primary)
	for _, s := range n.Suffixes {
		switch {
		case s.Member != nil:
			x = &ast.MemberExpr{Target: x, Member: c.name(s.Member)}
		case s.Call != nil:
			call := &ast.CallExpr{Callee: x}
			for _, a := range s.Call.Args {
				call.Args = append(call.Args, c.expr(a))
			}
			x = call
		}
	}
	return x
}

func (c *converter) primary(n *primaryNode) ast.Node {
	switch {
	case n.Literal != nil:
		return c.literal(n.Literal)
	case n.Lambda != nil:
		return &ast.Lambda{Params: c.params(n.Lambda.Params), Body: c.block(n.Lambda.Body)}
	case n.Match != nil:
		return c.match(n.Match)
	case n.Ident != nil:
		return &ast.Ident{Name: c.name(n.Ident)}
	case n.Paren != nil:
		return c.expr(n.Paren)
	}
	return nil
}

func (c *converter) literal(n *literalNode) *ast.Literal {
	var (
		kind ast.LitKind
		raw  string
	)
	switch {
	case n.Float != nil:
		kind, raw = ast.LitFloat, *n.Float
	case n.Int != nil:
		kind, raw = ast.LitInt, *n.Int
	case n.String != nil:
		kind, raw = ast.LitString, *n.String
	case n.Char != nil:
		kind, raw = ast.LitChar, *n.Char
	case n.Bool != nil:
		kind, raw = ast.LitBool, *n.Bool
	}
	return &ast.Literal{LitKind: kind, Value: c.token(n.Pos, raw), Raw: raw}
}

func (c *converter) match(n *matchNode) *ast.MatchExpr {
	m := &ast.MatchExpr{Subject: c.expr(n.Subject)}
	for _, arm := range n.Arms {
		a := &ast.MatchArm{Pattern: c.pattern(arm.Pattern), Guard: c.expr(arm.Guard)}
		switch {
		case arm.Body.Block != nil:
			a.Body = c.block(arm.Body.Block)
		case arm.Body.Expr != nil:
			a.Body = c.expr(arm.Body.Expr)
		}
		m.Arms = append(m.Arms, a)
	}
	return m
}

func (c *converter) pattern(n *patternNode) ast.Node {
	if n.Literal != nil {
		return c.literal(n.Literal)
	}
	v := n.Variant
	callee := &ast.Ident{Name: c.name(v.Name)}
	if len(v.Bindings) == 0 {
		return callee
	}
	call := &ast.CallExpr{Callee: callee}
	for _, b := range v.Bindings {
		call.Args = append(call.Args, &ast.Ident{Name: c.name(b)})
	}
	return call
}
