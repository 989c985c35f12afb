package index

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/time/rate"

	"github.com/walteh/semls/pkg/metrics"
)

type WatchOptions struct {
	Debounce time.Duration
	// Exclude holds glob patterns matched against directory and file base names.
	Exclude []string
	// Extensions limits which files trigger a reload, e.g. ".zc".
	Extensions []string
	// ReparsePerSecond bounds watcher-driven re-parses; zero means unlimited.
	ReparsePerSecond float64
}

// Watcher keeps the index in sync with files changed outside the editor.
type Watcher struct {
	ctx       context.Context
	index     *Index
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	exclude   []glob.Glob
	exts      map[string]bool
	limiter   *rate.Limiter

	pending   map[string]struct{}
	pendingMu sync.Mutex
	timer     *time.Timer
	flushMu   sync.Mutex
}

func NewWatcher(ctx context.Context, idx *Index, opts WatchOptions) (*Watcher, error) {
	exclude := make([]glob.Glob, 0, len(opts.Exclude))
	for _, pattern := range opts.Exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Errorf("compiling exclude pattern %q: %w", pattern, err)
		}
		exclude = append(exclude, g)
	}

	exts := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" {
			exts[ext] = true
		}
	}

	limit := rate.Inf
	if opts.ReparsePerSecond > 0 {
		limit = rate.Limit(opts.ReparsePerSecond)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		ctx:       ctx,
		index:     idx,
		fsWatcher: fsw,
		debounce:  opts.Debounce,
		exclude:   exclude,
		exts:      exts,
		limiter:   rate.NewLimiter(limit, 1),
		pending:   make(map[string]struct{}),
	}, nil
}

// Watch registers roots recursively and starts processing events. Directory
// discovery and reloads go through the index's afero.Fs; fsnotify itself only
// sees the OS file system, so roots must also exist on disk.
func (w *Watcher) Watch(roots ...string) error {
	for _, root := range roots {
		if err := w.watchRecursive(root); err != nil {
			return err
		}
	}

	go w.run()
	return nil
}

func (w *Watcher) watchRecursive(root string) error {
	return afero.Walk(w.index.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && w.excluded(path) {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return errors.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) run() {
	logger := zerolog.Ctx(w.ctx)
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			metrics.WatcherEventsTotal.Inc()

			if event.Has(fsnotify.Create) {
				if isDir, err := afero.IsDir(w.index.fs, event.Name); err == nil && isDir {
					if !w.excluded(event.Name) {
						if err := w.watchRecursive(event.Name); err != nil {
							logger.Warn().Err(err).Str("path", event.Name).Msg("failed to watch new directory")
						}
					}
					continue
				}
			}

			if !w.relevant(event.Name) {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.schedule(event.Name)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logger.Error().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) schedule(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[path] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	w.flushMu.Lock()
	defer w.flushMu.Unlock()

	logger := zerolog.Ctx(w.ctx)
	for _, path := range paths {
		if err := w.limiter.Wait(w.ctx); err != nil {
			return
		}

		if _, err := w.index.fs.Stat(path); errors.Is(err, fs.ErrNotExist) {
			w.index.Remove(path)
			logger.Debug().Str("path", path).Msg("removed deleted file from index")
			continue
		}

		if err := w.index.Reload(w.ctx, path); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("failed to reload file")
			continue
		}
		logger.Debug().Str("path", path).Msg("reloaded file")
	}
}

func (w *Watcher) excluded(path string) bool {
	base := filepath.Base(path)
	for _, g := range w.exclude {
		if g.Match(base) {
			return true
		}
	}
	return false
}

func (w *Watcher) relevant(path string) bool {
	if w.excluded(path) {
		return false
	}
	if len(w.exts) == 0 {
		return true
	}
	return w.exts[strings.ToLower(filepath.Ext(path))]
}

func (w *Watcher) Close() error {
	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pendingMu.Unlock()

	return w.fsWatcher.Close()
}
