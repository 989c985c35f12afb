package position

import (
	"fmt"
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// Place is a 0-based line and UTF-16 character offset, the LSP position unit.
type Place struct {
	Line      int
	Character int
}

type Range struct {
	Start Place
	End   Place
}

// RawPosition represents a position in the source text
type RawPosition struct {
	// Offset is the byte offset in the source text
	Offset int
	// Text is the actual text at this position
	Text string
}

func NewBasicPosition(text string, offset int) RawPosition {
	return RawPosition{Text: text, Offset: offset}
}

// ID returns a unique identifier for this position based on offset and text
func (p RawPosition) ID() string {
	return fmt.Sprintf("%s@%d", p.Text, p.Offset)
}

// Length returns the length of the text in UTF-16 code units.
func (p RawPosition) Length() int {
	return UTF16Len(p.Text)
}

func (p RawPosition) String() string {
	return p.ID()
}

// UTF16Len counts the UTF-16 code units needed to encode s. Invalid bytes
// count as one unit each, the same as U+FFFD.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if utf16.RuneLen(r) == 2 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// Index maps byte offsets of a source text to LSP places.
type Index struct {
	text  string
	lines []int // byte offset of each line start
}

func NewIndex(text string) *Index {
	lines := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &Index{text: text, lines: lines}
}

// LineCount returns the number of lines, counting a trailing empty line.
func (me *Index) LineCount() int {
	return len(me.lines)
}

// Place converts a byte offset to a 0-based line and UTF-16 column. Offsets
// are clamped to the text; an offset inside a multi-byte rune resolves to the
// start of that rune.
func (me *Index) Place(offset int) Place {
	if offset < 0 {
		offset = 0
	}
	if offset > len(me.text) {
		offset = len(me.text)
	}

	line := sort.Search(len(me.lines), func(i int) bool { return me.lines[i] > offset }) - 1
	start := me.lines[line]

	for offset > start && offset < len(me.text) && !utf8.RuneStart(me.text[offset]) {
		offset--
	}

	return Place{Line: line, Character: UTF16Len(me.text[start:offset])}
}

// Range returns the place range covered by p.
func (me *Index) Range(p RawPosition) Range {
	return Range{
		Start: me.Place(p.Offset),
		End:   me.Place(p.Offset + len(p.Text)),
	}
}

// GetLineAndColumn calculates the 0-based line and UTF-16 column of p in text.
func (p RawPosition) GetLineAndColumn(text string) (line, col int) {
	pl := NewIndex(text).Place(p.Offset)
	return pl.Line, pl.Character
}
