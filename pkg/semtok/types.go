package semtok

import "fmt"

// TokenType indexes into the legend's token type list.
type TokenType uint32

const (
	TokenVariable TokenType = iota
	TokenFunction
	TokenStruct
	TokenKeyword
	TokenString
	TokenNumber
	TokenComment
	TokenTypeKind
	TokenEnum
	TokenMember
	TokenOperator
	TokenParameter
	TokenMacro
	TokenTypeParameter
)

// TokenModifier is a bit set over the legend's modifier list.
type TokenModifier uint32

const ModifierNone TokenModifier = 0

const (
	ModifierDeclaration TokenModifier = 1 << iota
	ModifierReadonly
)

var tokenTypeNames = [...]string{
	TokenVariable:      "variable",
	TokenFunction:      "function",
	TokenStruct:        "struct",
	TokenKeyword:       "keyword",
	TokenString:        "string",
	TokenNumber:        "number",
	TokenComment:       "comment",
	TokenTypeKind:      "type",
	TokenEnum:          "enum",
	TokenMember:        "member",
	TokenOperator:      "operator",
	TokenParameter:     "parameter",
	TokenMacro:         "macro",
	TokenTypeParameter: "typeParameter",
}

var tokenModifierNames = [...]string{
	"declaration",
	"readonly",
}

func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", uint32(t))
}

// Names lists the modifiers set in m, in legend order.
func (m TokenModifier) Names() []string {
	var out []string
	for i, name := range tokenModifierNames {
		if m&(1<<i) != 0 {
			out = append(out, name)
		}
	}
	return out
}

// Legend is what the server advertises in its initialize result.
type Legend struct {
	TokenTypes     []string `json:"tokenTypes" yaml:"tokenTypes"`
	TokenModifiers []string `json:"tokenModifiers" yaml:"tokenModifiers"`
}

// DefaultLegend returns a fresh copy of the legend.
func DefaultLegend() Legend {
	return Legend{
		TokenTypes:     append([]string(nil), tokenTypeNames[:]...),
		TokenModifiers: append([]string(nil), tokenModifierNames[:]...),
	}
}

// Token is one classified span with a 0-based line and UTF-16 column.
type Token struct {
	Line      uint32        `json:"line" yaml:"line"`
	Column    uint32        `json:"column" yaml:"column"`
	Length    uint32        `json:"length" yaml:"length"`
	Type      TokenType     `json:"type" yaml:"type"`
	Modifiers TokenModifier `json:"modifiers" yaml:"modifiers"`
}
