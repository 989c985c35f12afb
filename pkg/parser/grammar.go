package parser

import "github.com/alecthomas/participle/v2/lexer"

// The grammar types mirror the surface syntax; convert.go lowers them into
// pkg/ast nodes.

type fileNode struct {
	Items []*itemNode `@@*`
}

type itemNode struct {
	Func      *funcNode      `  @@`
	Struct    *structNode    `| @@`
	Trait     *traitNode     `| @@`
	Impl      *implNode      `| @@`
	Enum      *enumNode      `| @@`
	TypeAlias *typeAliasNode `| @@`
	Const     *constNode     `| @@`
	Destruct  *destructNode  `| @@`
	Let       *letNode       `| @@`
}

type nameNode struct {
	Pos   lexer.Position
	Value string `@Ident`
}

type funcNode struct {
	Name   *nameNode    `"fn" @@`
	Params []*paramNode `"(" ( @@ ( "," @@ )* )? ")"`
	Result *typeNode    `( "->" @@ )?`
	Body   *blockNode   `( @@ | ";" )`
}

type paramNode struct {
	Name *nameNode `@@ ":"`
	Type *typeNode `@@`
}

type typeNode struct {
	Name *nameNode   `@@`
	Args []*typeNode `( "<" @@ ( "," @@ )* ">" )?`
}

type structNode struct {
	Name   *nameNode    `"struct" @@ "{"`
	Fields []*fieldNode `( @@ ","? )* "}"`
}

type fieldNode struct {
	Name *nameNode `@@ ":"`
	Type *typeNode `@@`
}

type traitNode struct {
	Name    *nameNode   `"trait" @@ "{"`
	Methods []*funcNode `@@* "}"`
}

type implNode struct {
	Name    *nameNode   `"impl" @@`
	For     *nameNode   `( "for" @@ )?`
	Methods []*funcNode `"{" @@* "}"`
}

type enumNode struct {
	Name     *nameNode      `"enum" @@ "{"`
	Variants []*variantNode `( @@ ","? )* "}"`
}

type variantNode struct {
	Name    *nameNode `@@`
	Payload *typeNode `( "(" @@ ")" )?`
}

type typeAliasNode struct {
	Name   *nameNode `"type" @@ "="`
	Target *typeNode `@@ ";"`
}

type constNode struct {
	Name  *nameNode `"const" @@`
	Type  *typeNode `( ":" @@ )?`
	Value *exprNode `"=" @@ ";"`
}

type letNode struct {
	Name  *nameNode `"let" @@`
	Type  *typeNode `( ":" @@ )?`
	Value *exprNode `"=" @@ ";"`
}

type destructNode struct {
	Names []*nameNode `"let" "(" @@ ( "," @@ )* ")"`
	Value *exprNode   `"=" @@`
	Else  *blockNode  `( "else" @@ )? ";"`
}

type blockNode struct {
	Open  bool        `@"{"`
	Stmts []*stmtNode `@@* "}"`
}

type stmtNode struct {
	Const    *constNode    `  @@`
	Destruct *destructNode `| @@`
	Let      *letNode      `| @@`
	Return   *returnNode   `| @@`
	If       *ifNode       `| @@`
	While    *whileNode    `| @@`
	For      *forNode      `| @@`
	Match    *matchNode    `| @@ ";"?`
	Block    *blockNode    `| @@`
	Expr     *exprNode     `| @@ ";"`
}

type returnNode struct {
	Keyword bool      `@"return"`
	Value   *exprNode `@@? ";"`
}

type ifNode struct {
	Cond *exprNode  `"if" @@`
	Then *blockNode `@@`
	Else *elseNode  `( "else" @@ )?`
}

type elseNode struct {
	If    *ifNode    `  @@`
	Block *blockNode `| @@`
}

type whileNode struct {
	Cond *exprNode  `"while" @@`
	Body *blockNode `@@`
}

type forNode struct {
	Var   *nameNode  `"for" @@ "in"`
	Start *exprNode  `@@ ".."`
	End   *exprNode  `@@`
	Body  *blockNode `@@`
}

// exprNode is a flat operator chain; precedence is not modelled since it has
// no effect on highlighting.
type exprNode struct {
	Left *unaryNode `@@`
	Ops  []*opNode  `@@*`
}

type opNode struct {
	Pos   lexer.Position
	Op    string     `@( "||" | "&&" | "==" | "!=" | "<=" | ">=" | "<" | ">" | "+" | "-" | "*" | "/" | "%" | "=" )`
	Right *unaryNode `@@`
}

type unaryNode struct {
	Pos lexer.Position
	Op  string       `( @"-" | @"!" )?`
	X   *postfixNode `@@`
}

type postfixNode struct {
	Primary  *primaryNode  `@@`
	Suffixes []*suffixNode `@@*`
}

type suffixNode struct {
	Member *nameNode   `  "." @@`
	Call   *callSuffix `| @@`
}

type callSuffix struct {
	Open bool        `@"("`
	Args []*exprNode `( @@ ( "," @@ )* )? ")"`
}

type primaryNode struct {
	Literal *literalNode `  @@`
	Lambda  *lambdaNode  `| @@`
	Match   *matchNode   `| @@`
	Ident   *nameNode    `| @@`
	Paren   *exprNode    `| "(" @@ ")"`
}

type literalNode struct {
	Pos    lexer.Position
	Float  *string `  @Float`
	Int    *string `| @Int`
	String *string `| @String`
	Char   *string `| @Char`
	Bool   *string `| @( "true" | "false" )`
}

type lambdaNode struct {
	Params []*paramNode `"fn" "(" ( @@ ( "," @@ )* )? ")"`
	Body   *blockNode   `@@`
}

type matchNode struct {
	Subject *exprNode  `"match" @@ "{"`
	Arms    []*armNode `( @@ ","? )* "}"`
}

type armNode struct {
	Pattern *patternNode `@@`
	Guard   *exprNode    `( "if" @@ )?`
	Body    *armBody     `"=>" @@`
}

type armBody struct {
	Block *blockNode `  @@`
	Expr  *exprNode  `| @@`
}

type patternNode struct {
	Literal *literalNode    `  @@`
	Variant *variantPattern `| @@`
}

type variantPattern struct {
	Name     *nameNode   `@@`
	Bindings []*nameNode `( "(" @@ ( "," @@ )* ")" )?`
}
