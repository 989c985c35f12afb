// Package index keeps the latest text and syntax tree of every known .zc
// document, whether open in the editor or loaded from the workspace.
package index

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/semls/pkg/ast"
	"github.com/walteh/semls/pkg/metrics"
)

var ErrUnknownDocument = errors.Base("unknown document")

const (
	sourceEditor = "editor"
	sourceDisk   = "disk"
)

// Document is an immutable snapshot. Updates replace the whole value.
type Document struct {
	URI     string
	Path    string
	Version int32
	Content string
	// AST is nil when the content failed to parse.
	AST      *ast.File
	ParseErr error
	// Open reports whether the editor owns the content.
	Open bool
}

// ParseFunc turns source text into a syntax tree.
type ParseFunc func(ctx context.Context, filename string, src []byte) (*ast.File, error)

// Index maps normalized document paths to their latest snapshot.
type Index struct {
	mu    sync.RWMutex
	docs  map[string]*Document
	fs    afero.Fs
	parse ParseFunc
}

func New(fs afero.Fs, parse ParseFunc) *Index {
	return &Index{
		docs:  make(map[string]*Document),
		fs:    fs,
		parse: parse,
	}
}

func (me *Index) build(ctx context.Context, uri string, version int32, content string, open bool, source string) *Document {
	path := NormalizeURI(uri)
	doc := &Document{
		URI:     uri,
		Path:    path,
		Version: version,
		Content: content,
		Open:    open,
	}

	start := time.Now()
	file, err := me.parse(ctx, path, []byte(content))
	metrics.ParseDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ParseFailuresTotal.WithLabelValues(source).Inc()
		zerolog.Ctx(ctx).Debug().Err(err).Str("uri", uri).Msg("document failed to parse")
		doc.ParseErr = err
		return doc
	}
	doc.AST = file
	return doc
}

func (me *Index) store(doc *Document) {
	me.docs[doc.Path] = doc
	metrics.DocumentsIndexed.Set(float64(len(me.docs)))
}

// Open records a document opened in the editor.
func (me *Index) Open(ctx context.Context, uri string, version int32, text string) *Document {
	doc := me.build(ctx, uri, version, text, true, sourceEditor)

	me.mu.Lock()
	defer me.mu.Unlock()
	me.store(doc)
	return doc
}

// Change replaces the full text of an open document. Out-of-order versions
// are ignored.
func (me *Index) Change(ctx context.Context, uri string, version int32, text string) (*Document, error) {
	path := NormalizeURI(uri)

	me.mu.RLock()
	prev, ok := me.docs[path]
	me.mu.RUnlock()
	if !ok || !prev.Open {
		return nil, errors.WithDetails(ErrUnknownDocument, "uri", uri)
	}

	doc := me.build(ctx, uri, version, text, true, sourceEditor)

	me.mu.Lock()
	defer me.mu.Unlock()
	if cur, ok := me.docs[path]; ok && cur.Version > version {
		zerolog.Ctx(ctx).Debug().Str("uri", uri).Int32("version", version).Int32("current", cur.Version).Msg("ignoring stale change")
		return cur, nil
	}
	me.store(doc)
	return doc, nil
}

// Close hands a document back to the file system. If it can no longer be
// read from disk it is dropped.
func (me *Index) Close(ctx context.Context, uri string) {
	path := NormalizeURI(uri)

	me.mu.Lock()
	doc, ok := me.docs[path]
	if ok {
		closed := *doc
		closed.Open = false
		me.docs[path] = &closed
	}
	me.mu.Unlock()

	if err := me.Reload(ctx, path); err != nil {
		me.Remove(path)
	}
}

// Reload re-reads path from the file system unless the editor owns it.
func (me *Index) Reload(ctx context.Context, path string) error {
	path = NormalizeURI(path)

	me.mu.RLock()
	cur, ok := me.docs[path]
	me.mu.RUnlock()
	if ok && cur.Open {
		return nil
	}

	content, err := afero.ReadFile(me.fs, path)
	if err != nil {
		return errors.Errorf("reading %s: %w", path, err)
	}

	doc := me.build(ctx, PathToURI(path), 0, string(content), false, sourceDisk)

	me.mu.Lock()
	defer me.mu.Unlock()
	if cur, ok := me.docs[path]; ok && cur.Open {
		return nil
	}
	me.store(doc)
	return nil
}

// Remove drops a document unless the editor owns it.
func (me *Index) Remove(path string) {
	path = NormalizeURI(path)

	me.mu.Lock()
	defer me.mu.Unlock()
	if cur, ok := me.docs[path]; ok && cur.Open {
		return
	}
	delete(me.docs, path)
	metrics.DocumentsIndexed.Set(float64(len(me.docs)))
}

func (me *Index) Get(uri string) (*Document, bool) {
	me.mu.RLock()
	defer me.mu.RUnlock()
	doc, ok := me.docs[NormalizeURI(uri)]
	return doc, ok
}

// Resolve returns the syntax tree of uri. A document that failed to parse
// resolves to false.
func (me *Index) Resolve(uri string) (*ast.File, bool) {
	doc, ok := me.Get(uri)
	if !ok || doc.AST == nil {
		return nil, false
	}
	return doc.AST, true
}

func (me *Index) Len() int {
	me.mu.RLock()
	defer me.mu.RUnlock()
	return len(me.docs)
}

// Paths lists the indexed paths in sorted order.
func (me *Index) Paths() []string {
	me.mu.RLock()
	out := make([]string, 0, len(me.docs))
	for p := range me.docs {
		out = append(out, p)
	}
	me.mu.RUnlock()

	sort.Strings(out)
	return out
}
