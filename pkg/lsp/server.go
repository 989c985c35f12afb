// Package lsp serves semantic tokens for .zc documents over JSON-RPC.
package lsp

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/creachadair/jrpc2/handler"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/semls/pkg/config"
	"github.com/walteh/semls/pkg/index"
	"github.com/walteh/semls/pkg/lsp/protocol"
	"github.com/walteh/semls/pkg/metrics"
	"github.com/walteh/semls/pkg/parser"
)

type Options struct {
	Version string
	// ClientLog, when set, is attached to the connection once it starts so
	// log lines reach the editor.
	ClientLog *ClientLogWriter
	RPCLog    []jrpc2.RPCLogger
}

// Server represents an LSP server instance
type Server struct {
	id   string
	ctx  context.Context
	stop context.CancelFunc

	cfg   *config.Config
	opts  Options
	index *index.Index

	initialized atomic.Bool
	shutdown    atomic.Bool

	mu      sync.Mutex
	root    string
	watcher *index.Watcher
}

// NewServer builds a server whose documents are read through fs. ctx bounds
// the lifetime of background work such as the workspace watcher.
func NewServer(ctx context.Context, fs afero.Fs, cfg *config.Config, opts Options) *Server {
	if cfg == nil {
		cfg = config.Defaults()
	}

	id := uuid.NewString()
	ctx = zerolog.Ctx(ctx).With().Str("server_id", id).Logger().WithContext(ctx)
	ctx, stop := context.WithCancel(ctx)

	return &Server{
		id:    id,
		ctx:   ctx,
		stop:  stop,
		cfg:   cfg,
		opts:  opts,
		index: index.New(fs, parser.Parse),
	}
}

func (me *Server) ID() string {
	return me.id
}

func (me *Server) Index() *index.Index {
	return me.index
}

// Root is the workspace directory reported by the client, if any.
func (me *Server) Root() string {
	me.mu.Lock()
	defer me.mu.Unlock()
	return me.root
}

// Handlers is the method table served by the connection.
func (me *Server) Handlers() handler.Map {
	return handler.Map{
		protocol.MethodInitialize:          me.guard(handler.New(me.Initialize)),
		protocol.MethodInitialized:         me.guard(handler.New(me.Initialized)),
		protocol.MethodShutdown:            me.guard(me.Shutdown),
		protocol.MethodExit:                me.guard(me.Exit),
		protocol.MethodDidOpen:             me.guard(handler.New(me.DidOpen)),
		protocol.MethodDidChange:           me.guard(handler.New(me.DidChange)),
		protocol.MethodDidSave:             me.guard(handler.New(me.DidSave)),
		protocol.MethodDidClose:            me.guard(handler.New(me.DidClose)),
		protocol.MethodSemanticTokensFull:  me.guard(handler.New(me.SemanticTokensFull)),
		protocol.MethodSemanticTokensRange: me.guard(handler.New(me.SemanticTokensRange)),
	}
}

// guard enforces the initialize/shutdown lifecycle for calls. Notifications
// always pass so no edit is lost.
func (me *Server) guard(h handler.Func) handler.Func {
	return func(ctx context.Context, req *jrpc2.Request) (any, error) {
		ctx = protocol.ApplyRequestToZerolog(ctx, req)

		if !req.IsNotification() {
			switch {
			case me.shutdown.Load():
				return nil, protocol.ErrShutdown
			case req.Method() == protocol.MethodInitialize:
				if me.initialized.Load() {
					return nil, protocol.ErrAlreadyInitialized
				}
			case !me.initialized.Load():
				return nil, protocol.ErrServerNotInitialized
			}
		}

		return h(ctx, req)
	}
}

// ServerOptions returns the jrpc2 options Serve uses. Handlers run one at a
// time so document edits apply in arrival order.
func (me *Server) ServerOptions() *jrpc2.ServerOptions {
	rpcLog := protocol.NewMultiRPCLogger(&protocol.RPCLogger{}, &metricsRPCLogger{})
	for _, l := range me.opts.RPCLog {
		rpcLog.AddLogger(l)
	}

	return &jrpc2.ServerOptions{
		RPCLog:      rpcLog,
		AllowPush:   true,
		Concurrency: 1,
		NewContext: func() context.Context {
			return me.ctx
		},
	}
}

// Start begins serving on ch without blocking.
func (me *Server) Start(ch channel.Channel) *jrpc2.Server {
	srv := jrpc2.NewServer(me.Handlers(), me.ServerOptions()).Start(ch)
	if me.opts.ClientLog != nil {
		me.opts.ClientLog.Attach(me.ctx, srv)
	}
	return srv
}

// Serve speaks LSP framing over r and w until the client exits or the
// stream closes, then releases every resource.
func (me *Server) Serve(r io.Reader, w io.WriteCloser) error {
	zerolog.Ctx(me.ctx).Info().Str("version", me.opts.Version).Msg("language server starting")

	err := me.Start(channel.LSP(r, w)).Wait()
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		err = errors.Errorf("serving language server: %w", err)
	}

	return multierr.Append(err, me.Close())
}

func (me *Server) Close() error {
	me.stop()

	me.mu.Lock()
	w := me.watcher
	me.watcher = nil
	me.mu.Unlock()

	if me.opts.ClientLog != nil {
		me.opts.ClientLog.Detach()
	}
	if w != nil {
		return w.Close()
	}
	return nil
}

type metricsRPCLogger struct{}

func (me *metricsRPCLogger) LogRequest(ctx context.Context, req *jrpc2.Request) {
	metrics.RPCRequestsTotal.WithLabelValues(req.Method()).Inc()
}

func (me *metricsRPCLogger) LogResponse(ctx context.Context, res *jrpc2.Response) {
	if res.Error() != nil {
		metrics.RPCErrorsTotal.Inc()
	}
}
