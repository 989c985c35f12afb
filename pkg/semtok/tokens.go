package semtok

import (
	"slices"
	"sort"

	"gitlab.com/tozd/go/errors"
)

// DefaultInitialCapacity is the buffer size reserved for a request.
const DefaultInitialCapacity = 4096

// ErrTokenLimit is returned when a document produces more tokens than the
// configured ceiling.
var ErrTokenLimit = errors.Base("semantic token limit exceeded")

// Buffer collects tokens for a single request. It is not safe for
// concurrent use.
type Buffer struct {
	tokens []Token
	limit  int
	err    error
}

// NewBuffer returns a buffer with room for initial tokens. A limit of zero
// or less disables the ceiling.
func NewBuffer(initial, limit int) *Buffer {
	if initial <= 0 {
		initial = DefaultInitialCapacity
	}
	if limit > 0 && initial > limit {
		initial = limit
	}
	return &Buffer{tokens: make([]Token, 0, initial), limit: limit}
}

// Push appends a token. Tokens with a negative line, column or length are
// dropped. Once the ceiling is hit every later push is ignored and Err
// reports ErrTokenLimit.
func (me *Buffer) Push(line, col, length int, typ TokenType, mods TokenModifier) {
	if line < 0 || col < 0 || length < 0 || me.err != nil {
		return
	}
	if me.limit > 0 && len(me.tokens) >= me.limit {
		me.err = errors.WithDetails(ErrTokenLimit, "limit", me.limit)
		return
	}
	if len(me.tokens) == cap(me.tokens) {
		me.tokens = slices.Grow(me.tokens, cap(me.tokens))
	}
	me.tokens = append(me.tokens, Token{
		Line:      uint32(line),
		Column:    uint32(col),
		Length:    uint32(length),
		Type:      typ,
		Modifiers: mods,
	})
}

func (me *Buffer) Len() int {
	return len(me.tokens)
}

// Tokens returns the tokens in emission order. The slice aliases the buffer.
func (me *Buffer) Tokens() []Token {
	return me.tokens
}

func (me *Buffer) Err() error {
	return me.err
}

// Canonicalize sorts tokens by position and drops every token that shares a
// position with an earlier one. The sort is stable so the first token emitted
// for a position is the one kept. It reorders tokens in place and returns the
// shortened slice along with the number of tokens dropped.
func Canonicalize(tokens []Token) ([]Token, int) {
	if len(tokens) == 0 {
		return tokens, 0
	}

	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].Line != tokens[j].Line {
			return tokens[i].Line < tokens[j].Line
		}
		return tokens[i].Column < tokens[j].Column
	})

	n := 1
	for i := 1; i < len(tokens); i++ {
		prev := tokens[n-1]
		if tokens[i].Line == prev.Line && tokens[i].Column == prev.Column {
			continue
		}
		tokens[n] = tokens[i]
		n++
	}
	return tokens[:n], len(tokens) - n
}

// Encode delta-encodes tokens, which must already be canonical.
func Encode(tokens []Token) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)

	var prevLine, prevCol uint32
	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.Column
		if deltaLine == 0 {
			deltaStart = tok.Column - prevCol
		}
		data = append(data, deltaLine, deltaStart, tok.Length, uint32(tok.Type), uint32(tok.Modifiers))
		prevLine, prevCol = tok.Line, tok.Column
	}
	return data
}

// Decode reverses Encode.
func Decode(data []uint32) ([]Token, error) {
	if len(data)%5 != 0 {
		return nil, errors.Errorf("token data length %d is not a multiple of 5", len(data))
	}

	tokens := make([]Token, 0, len(data)/5)

	var line, col uint32
	for i := 0; i < len(data); i += 5 {
		if data[i] == 0 {
			col += data[i+1]
		} else {
			line += data[i]
			col = data[i+1]
		}
		tokens = append(tokens, Token{
			Line:      line,
			Column:    col,
			Length:    data[i+2],
			Type:      TokenType(data[i+3]),
			Modifiers: TokenModifier(data[i+4]),
		})
	}
	return tokens, nil
}

// Span is a half-open range of LSP positions.
type Span struct {
	StartLine, StartChar uint32
	EndLine, EndChar     uint32
}

func (s Span) contains(tok Token) bool {
	if tok.Line < s.StartLine || (tok.Line == s.StartLine && tok.Column < s.StartChar) {
		return false
	}
	if tok.Line > s.EndLine || (tok.Line == s.EndLine && tok.Column >= s.EndChar) {
		return false
	}
	return true
}

// Filter keeps the tokens starting inside span, preserving order.
func Filter(tokens []Token, span Span) []Token {
	out := tokens[:0]
	for _, tok := range tokens {
		if span.contains(tok) {
			out = append(out, tok)
		}
	}
	return out
}
