package ast

// File is the root of a parsed source file.
type File struct {
	Name  string
	Decls []Node
}

// FuncDecl is a named function or method. Body is nil for trait signatures.
type FuncDecl struct {
	Name   Token
	Params []*Param
	Result *TypeRef
	Body   *Block
}

type Param struct {
	Name Token
	Type *TypeRef
}

// VarDecl is a `let` binding.
type VarDecl struct {
	Name Token
	Type *TypeRef
	Init Node
}

type ConstDecl struct {
	Name Token
	Type *TypeRef
	Init Node
}

type TypeAlias struct {
	Name   Token
	Target *TypeRef
}

type StructDecl struct {
	Name   Token
	Fields []*Field
}

type TraitDecl struct {
	Name    Token
	Methods []*FuncDecl
}

// ImplDecl is an inherent `impl Type { ... }` block.
type ImplDecl struct {
	Name    Token
	Methods []*FuncDecl
}

// ImplTraitDecl is `impl Trait for Type { ... }`. It is highlighted by the
// trait name.
type ImplTraitDecl struct {
	Trait   Token
	Target  Token
	Methods []*FuncDecl
}

type Field struct {
	Name Token
	Type *TypeRef
}

type EnumDecl struct {
	Name     Token
	Variants []*Variant
}

type Variant struct {
	Name    Token
	Payload *TypeRef
}

// TypeRef names a type, optionally with type arguments.
type TypeRef struct {
	Name Token
	Args []*TypeRef
}

type Ident struct {
	Name Token
}

// MemberExpr is `Target.Member`.
type MemberExpr struct {
	Target Node
	Member Token
}

type Literal struct {
	LitKind LitKind
	Value   Token
	Raw     string
}

type Block struct {
	Stmts []Node
}

type ReturnStmt struct {
	Value Node
}

type ExprStmt struct {
	X Node
}

// IfStmt has an Else that is either nil, a *Block or another *IfStmt.
type IfStmt struct {
	Cond Node
	Then *Block
	Else Node
}

type WhileStmt struct {
	Cond Node
	Body *Block
}

// ForRange is `for Var in Start..End { Body }`.
type ForRange struct {
	Var   Token
	Start Node
	End   Node
	Body  *Block
}

type BinaryExpr struct {
	Left  Node
	Op    Token
	OpStr string
	Right Node
}

type UnaryExpr struct {
	Op    Token
	OpStr string
	X     Node
}

type CallExpr struct {
	Callee Node
	Args   []Node
}

// DestructDecl is `let (a, b) = Init else { ... };`.
type DestructDecl struct {
	Names []Token
	Init  Node
	Else  *Block
}

type MatchExpr struct {
	Subject Node
	Arms    []*MatchArm
}

type MatchArm struct {
	Pattern Node
	Guard   Node
	Body    Node
}

// Lambda is an anonymous `fn(params) { ... }` expression.
type Lambda struct {
	Params []*Param
	Body   *Block
}

func (*File) Kind() Kind          { return KindFile }
func (*FuncDecl) Kind() Kind      { return KindFuncDecl }
func (*Param) Kind() Kind         { return KindParam }
func (*VarDecl) Kind() Kind       { return KindVarDecl }
func (*ConstDecl) Kind() Kind     { return KindConstDecl }
func (*TypeAlias) Kind() Kind     { return KindTypeAlias }
func (*StructDecl) Kind() Kind    { return KindStructDecl }
func (*TraitDecl) Kind() Kind     { return KindTraitDecl }
func (*ImplDecl) Kind() Kind      { return KindImplDecl }
func (*ImplTraitDecl) Kind() Kind { return KindImplTraitDecl }
func (*Field) Kind() Kind         { return KindField }
func (*EnumDecl) Kind() Kind      { return KindEnumDecl }
func (*Variant) Kind() Kind       { return KindVariant }
func (*TypeRef) Kind() Kind       { return KindTypeRef }
func (*Ident) Kind() Kind         { return KindIdent }
func (*MemberExpr) Kind() Kind    { return KindMemberExpr }
func (*Literal) Kind() Kind       { return KindLiteral }
func (*Block) Kind() Kind         { return KindBlock }
func (*ReturnStmt) Kind() Kind    { return KindReturnStmt }
func (*ExprStmt) Kind() Kind      { return KindExprStmt }
func (*IfStmt) Kind() Kind        { return KindIfStmt }
func (*WhileStmt) Kind() Kind     { return KindWhileStmt }
func (*ForRange) Kind() Kind      { return KindForRange }
func (*BinaryExpr) Kind() Kind    { return KindBinaryExpr }
func (*UnaryExpr) Kind() Kind     { return KindUnaryExpr }
func (*CallExpr) Kind() Kind      { return KindCallExpr }
func (*DestructDecl) Kind() Kind  { return KindDestructDecl }
func (*MatchExpr) Kind() Kind     { return KindMatchExpr }
func (*MatchArm) Kind() Kind      { return KindMatchArm }
func (*Lambda) Kind() Kind        { return KindLambda }

func (*File) Span() Token            { return NoToken }
func (n *FuncDecl) Span() Token      { return n.Name }
func (n *Param) Span() Token         { return n.Name }
func (n *VarDecl) Span() Token       { return n.Name }
func (n *ConstDecl) Span() Token     { return n.Name }
func (n *TypeAlias) Span() Token     { return n.Name }
func (n *StructDecl) Span() Token    { return n.Name }
func (n *TraitDecl) Span() Token     { return n.Name }
func (n *ImplDecl) Span() Token      { return n.Name }
func (n *ImplTraitDecl) Span() Token { return n.Trait }
func (n *Field) Span() Token         { return n.Name }
func (n *EnumDecl) Span() Token      { return n.Name }
func (n *Variant) Span() Token       { return n.Name }
func (n *TypeRef) Span() Token       { return n.Name }
func (n *Ident) Span() Token         { return n.Name }
func (n *MemberExpr) Span() Token    { return n.Member }
func (n *Literal) Span() Token       { return n.Value }
func (*Block) Span() Token           { return NoToken }
func (*ReturnStmt) Span() Token      { return NoToken }
func (*ExprStmt) Span() Token        { return NoToken }
func (*IfStmt) Span() Token          { return NoToken }
func (*WhileStmt) Span() Token       { return NoToken }
func (*ForRange) Span() Token        { return NoToken }
func (*BinaryExpr) Span() Token      { return NoToken }
func (*UnaryExpr) Span() Token       { return NoToken }
func (*CallExpr) Span() Token        { return NoToken }
func (*DestructDecl) Span() Token    { return NoToken }
func (*MatchExpr) Span() Token       { return NoToken }
func (*MatchArm) Span() Token        { return NoToken }
func (*Lambda) Span() Token          { return NoToken }

func (n *File) Children() []Node { return collect(nil, n.Decls...) }

func (n *FuncDecl) Children() []Node {
	out := collect(nil, n.Params...)
	out = collect(out, n.Result)
	return collect(out, n.Body)
}

func (n *Param) Children() []Node     { return collect(nil, n.Type) }
func (n *VarDecl) Children() []Node   { return collect(collect(nil, n.Type), n.Init) }
func (n *ConstDecl) Children() []Node { return collect(collect(nil, n.Type), n.Init) }
func (n *TypeAlias) Children() []Node { return collect(nil, n.Target) }

func (n *StructDecl) Children() []Node    { return collect(nil, n.Fields...) }
func (n *TraitDecl) Children() []Node     { return collect(nil, n.Methods...) }
func (n *ImplDecl) Children() []Node      { return collect(nil, n.Methods...) }
func (n *ImplTraitDecl) Children() []Node { return collect(nil, n.Methods...) }
func (n *Field) Children() []Node         { return collect(nil, n.Type) }
func (n *EnumDecl) Children() []Node      { return collect(nil, n.Variants...) }
func (n *Variant) Children() []Node       { return collect(nil, n.Payload) }
func (n *TypeRef) Children() []Node       { return collect(nil, n.Args...) }
func (*Ident) Children() []Node           { return nil }
func (n *MemberExpr) Children() []Node    { return collect(nil, n.Target) }
func (*Literal) Children() []Node         { return nil }
func (n *Block) Children() []Node         { return collect(nil, n.Stmts...) }
func (n *ReturnStmt) Children() []Node    { return collect(nil, n.Value) }
func (n *ExprStmt) Children() []Node      { return collect(nil, n.X) }

func (n *IfStmt) Children() []Node {
	out := collect(nil, n.Cond)
	out = collect(out, n.Then)
	return collect(out, n.Else)
}

func (n *WhileStmt) Children() []Node { return collect(collect(nil, n.Cond), n.Body) }

func (n *ForRange) Children() []Node {
	return collect(collect(nil, n.Start, n.End), n.Body)
}

func (n *BinaryExpr) Children() []Node { return collect(nil, n.Left, n.Right) }
func (n *UnaryExpr) Children() []Node  { return collect(nil, n.X) }

func (n *CallExpr) Children() []Node {
	return collect(collect(nil, n.Callee), n.Args...)
}

func (n *DestructDecl) Children() []Node {
	return collect(collect(nil, n.Init), n.Else)
}

func (n *MatchExpr) Children() []Node {
	return collect(collect(nil, n.Subject), n.Arms...)
}

func (n *MatchArm) Children() []Node {
	return collect(nil, n.Pattern, n.Guard, n.Body)
}

func (n *Lambda) Children() []Node {
	return collect(collect(nil, n.Params...), n.Body)
}

func (*File) node()          {}
func (*FuncDecl) node()      {}
func (*Param) node()         {}
func (*VarDecl) node()       {}
func (*ConstDecl) node()     {}
func (*TypeAlias) node()     {}
func (*StructDecl) node()    {}
func (*TraitDecl) node()     {}
func (*ImplDecl) node()      {}
func (*ImplTraitDecl) node() {}
func (*Field) node()         {}
func (*EnumDecl) node()      {}
func (*Variant) node()       {}
func (*TypeRef) node()       {}
func (*Ident) node()         {}
func (*MemberExpr) node()    {}
func (*Literal) node()       {}
func (*Block) node()         {}
func (*ReturnStmt) node()    {}
func (*ExprStmt) node()      {}
func (*IfStmt) node()        {}
func (*WhileStmt) node()     {}
func (*ForRange) node()      {}
func (*BinaryExpr) node()    {}
func (*UnaryExpr) node()     {}
func (*CallExpr) node()      {}
func (*DestructDecl) node()  {}
func (*MatchExpr) node()     {}
func (*MatchArm) node()      {}
func (*Lambda) node()        {}
