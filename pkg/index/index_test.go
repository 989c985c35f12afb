package index_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/semls/pkg/index"
	"github.com/walteh/semls/pkg/parser"
)

func TestNormalizeURI(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{name: "file_uri", uri: "file:///ws/a.zc", expected: "/ws/a.zc"},
		{name: "escaped_file_uri", uri: "file:///ws/my%20file.zc", expected: "/ws/my file.zc"},
		{name: "short_file_uri", uri: "file:/private/a.zc", expected: "/private/a.zc"},
		{name: "plain_path", uri: "/ws/./b.zc", expected: "/ws/b.zc"},
		{name: "untitled", uri: "untitled:Untitled-1", expected: "untitled:Untitled-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, index.NormalizeURI(tt.uri))
		})
	}

	assert.Equal(t, "file:///ws/a.zc", index.PathToURI("/ws/a.zc"))
}

func TestOpenChangeClose(t *testing.T) {
	ctx := context.Background()
	idx := index.New(afero.NewMemMapFs(), parser.Parse)

	doc := idx.Open(ctx, "file:///ws/a.zc", 1, "fn main() {}")
	require.NotNil(t, doc.AST)
	assert.True(t, doc.Open)
	assert.Equal(t, "/ws/a.zc", doc.Path)

	file, ok := idx.Resolve("file:///ws/a.zc")
	require.True(t, ok)
	require.Len(t, file.Decls, 1)

	// a broken edit leaves no syntax tree
	doc, err := idx.Change(ctx, "file:///ws/a.zc", 2, "fn main( {")
	require.NoError(t, err)
	assert.Nil(t, doc.AST)
	assert.Error(t, doc.ParseErr)
	_, ok = idx.Resolve("file:///ws/a.zc")
	assert.False(t, ok)

	doc, err = idx.Change(ctx, "file:///ws/a.zc", 3, "fn main() {}\nfn other() {}")
	require.NoError(t, err)
	require.NotNil(t, doc.AST)
	assert.Len(t, doc.AST.Decls, 2)

	// older versions never replace newer ones
	doc, err = idx.Change(ctx, "file:///ws/a.zc", 2, "")
	require.NoError(t, err)
	assert.Equal(t, int32(3), doc.Version)

	idx.Close(ctx, "file:///ws/a.zc")
	_, ok = idx.Get("file:///ws/a.zc")
	assert.False(t, ok, "a closed document missing on disk should be dropped")
}

func TestChangeUnknownDocument(t *testing.T) {
	idx := index.New(afero.NewMemMapFs(), parser.Parse)

	_, err := idx.Change(context.Background(), "file:///nope.zc", 1, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, index.ErrUnknownDocument)
}

func TestCloseFallsBackToDisk(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/ws/a.zc", []byte("const A = 1;"), 0o644))

	idx := index.New(fs, parser.Parse)
	idx.Open(ctx, "file:///ws/a.zc", 1, "fn edited() {}")

	// the editor owns the document, so a disk reload is ignored
	require.NoError(t, idx.Reload(ctx, "/ws/a.zc"))
	doc, ok := idx.Get("/ws/a.zc")
	require.True(t, ok)
	assert.Equal(t, "fn edited() {}", doc.Content)

	idx.Close(ctx, "file:///ws/a.zc")
	doc, ok = idx.Get("/ws/a.zc")
	require.True(t, ok)
	assert.False(t, doc.Open)
	assert.Equal(t, "const A = 1;", doc.Content)
}

func TestLoadWorkspace(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/ws/sub/deep", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/ws/a.zc", []byte("fn a() {}"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/ws/sub/b.zc", []byte("fn b() {}"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/ws/sub/deep/c.zc", []byte("fn c( {"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/ws/readme.md", []byte("# hi"), 0o644))

	idx := index.New(fs, parser.Parse)
	n, err := idx.LoadWorkspace(ctx, "/ws", []string{"**/*.zc"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"/ws/a.zc", "/ws/sub/b.zc", "/ws/sub/deep/c.zc"}, idx.Paths())

	_, ok := idx.Resolve("file:///ws/sub/b.zc")
	assert.True(t, ok)
	_, ok = idx.Resolve("file:///ws/sub/deep/c.zc")
	assert.False(t, ok, "unparseable files are indexed without a tree")
}

func TestLoadWorkspaceInvalidPattern(t *testing.T) {
	idx := index.New(afero.NewMemMapFs(), parser.Parse)
	_, err := idx.LoadWorkspace(context.Background(), "/ws", []string{"[a-"})
	require.Error(t, err)
}

func TestWatcherReloadsChangedFiles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "node_modules"), 0o755))

	idx := index.New(afero.NewOsFs(), parser.Parse)
	w, err := index.NewWatcher(ctx, idx, index.WatchOptions{
		Debounce:   10 * time.Millisecond,
		Exclude:    []string{"node_modules"},
		Extensions: []string{".zc"},
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch(dir))

	path := filepath.Join(dir, "main.zc")
	require.NoError(t, os.WriteFile(path, []byte("fn main() {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	assert.Eventually(t, func() bool {
		_, ok := idx.Resolve(path)
		return ok
	}, 5*time.Second, 10*time.Millisecond, "new file should be indexed")

	require.NoError(t, os.Remove(path))
	assert.Eventually(t, func() bool {
		_, ok := idx.Get(path)
		return !ok
	}, 5*time.Second, 10*time.Millisecond, "deleted file should leave the index")

	assert.NotContains(t, idx.Paths(), filepath.Join(dir, "notes.txt"))
}

func TestWatcherFlushReadsThroughIndexFs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fs := afero.NewMemMapFs()
	path := "/ws/lib/only_in_memory.zc"
	require.NoError(t, afero.WriteFile(fs, path, []byte("fn main() {}"), 0o644))

	idx := index.New(fs, parser.Parse)
	w, err := index.NewWatcher(ctx, idx, index.WatchOptions{Extensions: []string{".zc"}})
	require.NoError(t, err)
	defer w.Close()

	w.FlushPaths(path)
	_, ok := idx.Resolve(path)
	require.True(t, ok, "a file present on the index file system should be reloaded")

	require.NoError(t, fs.Remove(path))
	w.FlushPaths(path)
	_, ok = idx.Get(path)
	assert.False(t, ok, "a file missing from the index file system should be removed")
}
