package parser

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/semls/pkg/ast"
	"github.com/walteh/semls/pkg/position"
)

// ErrSyntax wraps every error caused by malformed source text.
var ErrSyntax = errors.Base("syntax error")

// Parse parses a .zc source file. Column positions in the returned tree are
// measured in UTF-16 code units.
func Parse(ctx context.Context, filename string, src []byte) (*ast.File, error) {
	start := time.Now()

	tree, err := zcParser.ParseBytes(filename, src)
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrSyntax, err.Error())
	}

	c := &converter{index: position.NewIndex(string(src))}
	file := c.file(filename, tree)

	zerolog.Ctx(ctx).Trace().
		Str("filename", filename).
		Int("decls", len(file.Decls)).
		Dur("took", time.Since(start)).
		Msg("parsed file")

	return file, nil
}

// ParseString is Parse for string input.
func ParseString(ctx context.Context, filename, src string) (*ast.File, error) {
	return Parse(ctx, filename, []byte(src))
}
