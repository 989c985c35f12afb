package index

// FlushPaths runs one debounce flush for paths without waiting on fsnotify.
func (w *Watcher) FlushPaths(paths ...string) {
	w.pendingMu.Lock()
	for _, path := range paths {
		w.pending[path] = struct{}{}
	}
	w.pendingMu.Unlock()

	w.flush()
}
