package index

import (
	"context"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
)

// LoadWorkspace indexes every file under root matching one of the include
// patterns. Files that cannot be read are reported together; files that fail
// to parse are indexed without a syntax tree.
func (me *Index) LoadWorkspace(ctx context.Context, root string, include []string) (int, error) {
	fsys := afero.NewIOFS(afero.NewBasePathFs(me.fs, root))

	seen := make(map[string]struct{})
	var errs error

	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return len(seen), errors.Errorf("invalid include pattern %q", pattern)
		}

		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return len(seen), errors.Errorf("globbing %q in %s: %w", pattern, root, err)
		}

		for _, match := range matches {
			path := filepath.Join(root, filepath.FromSlash(match))
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}

			if err := me.Reload(ctx, path); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
	}

	zerolog.Ctx(ctx).Info().Str("root", root).Int("files", len(seen)).Msg("indexed workspace")

	return len(seen), errs
}
