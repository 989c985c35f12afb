// Package parser turns .zc source text into a pkg/ast tree.
package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// LexerRules defines the token classes of the .zc language. Keywords are
	// lexed as Ident and matched by value in the grammar.
	LexerRules = lexer.Rules{
		"Root": {
			{"Comment", `//[^\n]*|/\*(?:[^*]|\*+[^*/])*\*+/`, nil},
			{"String", `"(?:\\.|[^"\\\n])*"`, nil},
			{"Char", `'(?:\\.|[^'\\\n])'`, nil},
			{"Float", `\d+\.\d+`, nil},
			{"Int", `\d+`, nil},
			{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
			// multi-character operators must come before their prefixes
			{"Punct", `==|!=|<=|>=|&&|\|\||=>|->|\.\.|[-+*/%<>=!.,;:(){}\[\]]`, nil},
			{"whitespace", `\s+`, nil},
		},
	}

	// ZcLexer is the lexer for .zc sources
	ZcLexer = lexer.MustStateful(LexerRules)

	zcParser = participle.MustBuild[fileNode](
		participle.Lexer(ZcLexer),
		participle.Elide("whitespace", "Comment"),
		participle.UseLookahead(64),
	)
)
