package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/walteh/semls/pkg/position"
)

func TestGetLineAndColumn(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		offset   int
		wantLine int
		wantCol  int
	}{
		{
			name:     "empty text",
			text:     "",
			offset:   0,
			wantLine: 0,
			wantCol:  0,
		},
		{
			name:     "single line",
			text:     "Hello, World!",
			offset:   7,
			wantLine: 0,
			wantCol:  7,
		},
		{
			name:     "second line",
			text:     "Hello\nWorld\nTest zzz",
			offset:   8,
			wantLine: 1,
			wantCol:  2,
		},
		{
			name:     "start of line",
			text:     "ab\ncd",
			offset:   3,
			wantLine: 1,
			wantCol:  0,
		},
		{
			name:     "two byte rune counts once",
			text:     "é = x",
			offset:   5,
			wantLine: 0,
			wantCol:  4,
		},
		{
			name:     "astral rune counts twice",
			text:     "\"😀\" x",
			offset:   7,
			wantLine: 0,
			wantCol:  5,
		},
		{
			name:     "offset past end is clamped",
			text:     "abc",
			offset:   10,
			wantLine: 0,
			wantCol:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, col := position.NewBasicPosition("", tt.offset).GetLineAndColumn(tt.text)
			assert.Equal(t, tt.wantLine, line, "line mismatch")
			assert.Equal(t, tt.wantCol, col, "column mismatch")
		})
	}
}

func TestUTF16Len(t *testing.T) {
	assert.Equal(t, 0, position.UTF16Len(""))
	assert.Equal(t, 4, position.UTF16Len("main"))
	assert.Equal(t, 3, position.UTF16Len("日本語"))
	assert.Equal(t, 4, position.UTF16Len("😀😀"))
}

func TestIndexRange(t *testing.T) {
	idx := position.NewIndex("let x = 1;\nlet café = 2;\n")
	assert.Equal(t, 3, idx.LineCount())

	got := idx.Range(position.NewBasicPosition("café", 15))
	assert.Equal(t, position.Range{
		Start: position.Place{Line: 1, Character: 4},
		End:   position.Place{Line: 1, Character: 8},
	}, got)
}
