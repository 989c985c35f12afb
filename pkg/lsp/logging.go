package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/creachadair/jrpc2"

	"github.com/walteh/semls/pkg/lsp/protocol"
)

const clientLogQueue = 256

// ClientLogWriter turns zerolog JSON lines into window/logMessage
// notifications. Lines written while detached, or while the queue is full,
// are dropped; Write never blocks on the connection.
type ClientLogWriter struct {
	queue chan protocol.LogMessageParams

	mu   sync.Mutex
	done chan struct{}
}

func NewClientLogWriter() *ClientLogWriter {
	return &ClientLogWriter{
		queue: make(chan protocol.LogMessageParams, clientLogQueue),
	}
}

// Attach forwards queued lines to srv until ctx ends or the writer is
// detached. A previous connection is detached first.
func (w *ClientLogWriter) Attach(ctx context.Context, srv *jrpc2.Server) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done != nil {
		close(w.done)
	}
	done := make(chan struct{})
	w.done = done

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case msg := <-w.queue:
				// a stopped server rejects pushes; nothing to report them to
				_ = srv.Notify(ctx, protocol.MethodWindowLogMessage, msg)
			}
		}
	}()
}

func (w *ClientLogWriter) Detach() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done != nil {
		close(w.done)
		w.done = nil
	}
}

func (w *ClientLogWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	attached := w.done != nil
	w.mu.Unlock()
	if !attached {
		return len(p), nil
	}

	msg, ok := ParseLogLine(p)
	if !ok {
		return len(p), nil
	}

	select {
	case w.queue <- msg:
	default:
	}
	return len(p), nil
}

// ParseLogLine converts one zerolog JSON line into a log message. The
// message text is followed by the remaining fields as sorted key=value
// pairs.
func ParseLogLine(p []byte) (protocol.LogMessageParams, bool) {
	var entry map[string]any
	if err := json.Unmarshal(p, &entry); err != nil {
		return protocol.LogMessageParams{}, false
	}

	level := extractField(entry, "level", "")
	msg := extractField(entry, "message", "")
	delete(entry, "time")

	keys := make([]string, 0, len(entry))
	for k := range entry {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(msg)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, entry[k])
	}

	return protocol.LogMessageParams{
		Type:    protocol.ParseMessageTypeFromZerolog(level),
		Message: strings.TrimSpace(sb.String()),
	}, true
}

func extractField(entry map[string]any, key, defaultValue string) string {
	if v, ok := entry[key].(string); ok {
		delete(entry, key)
		return v
	}
	return defaultValue
}
