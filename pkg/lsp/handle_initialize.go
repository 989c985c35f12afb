package lsp

import (
	"context"

	"github.com/creachadair/jrpc2"
	"github.com/rs/zerolog"

	"github.com/walteh/semls/pkg/index"
	"github.com/walteh/semls/pkg/lsp/protocol"
	"github.com/walteh/semls/pkg/semtok"
)

// Capabilities lists what the server advertises. The legend order is the
// wire contract for every token type and modifier index.
func Capabilities() protocol.ServerCapabilities {
	legend := semtok.DefaultLegend()
	return protocol.ServerCapabilities{
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			OpenClose: true,
			Change:    protocol.SyncFull,
			Save:      &protocol.SaveOptions{IncludeText: false},
		},
		SemanticTokensProvider: &protocol.SemanticTokensOptions{
			Legend: protocol.SemanticTokensLegend{
				TokenTypes:     legend.TokenTypes,
				TokenModifiers: legend.TokenModifiers,
			},
			Range: true,
			Full:  true,
		},
	}
}

func workspaceRoot(params *protocol.InitializeParams) string {
	switch {
	case params.RootURI != "":
		return index.NormalizeURI(string(params.RootURI))
	case len(params.WorkspaceFolders) > 0:
		return index.NormalizeURI(string(params.WorkspaceFolders[0].URI))
	case params.RootPath != "":
		return index.NormalizeURI(params.RootPath)
	}
	return ""
}

func (me *Server) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	logger := zerolog.Ctx(ctx)

	client := "unknown"
	if params.ClientInfo != nil {
		client = params.ClientInfo.Name
	}

	root := workspaceRoot(params)
	logger.Info().Str("client", client).Str("root", root).Msg("initializing server")

	me.mu.Lock()
	me.root = root
	me.mu.Unlock()

	if root != "" {
		me.indexWorkspace(ctx, root)
	}

	me.initialized.Store(true)

	return &protocol.InitializeResult{
		Capabilities: Capabilities(),
		ServerInfo: &protocol.ServerInfo{
			Name:    "semls",
			Version: me.opts.Version,
		},
	}, nil
}

// indexWorkspace loads every included file and, if enabled, starts watching
// root. Failures here degrade to editor-only documents.
func (me *Server) indexWorkspace(ctx context.Context, root string) {
	logger := zerolog.Ctx(ctx)

	n, err := me.index.LoadWorkspace(ctx, root, me.cfg.Include)
	if err != nil {
		logger.Warn().Err(err).Str("root", root).Msg("indexing workspace")
	}
	logger.Debug().Int("documents", n).Msg("workspace indexed")

	if !me.cfg.Watch.Enabled {
		return
	}

	w, err := index.NewWatcher(me.ctx, me.index, me.cfg.WatchOptions())
	if err != nil {
		logger.Warn().Err(err).Msg("creating workspace watcher")
		return
	}
	if err := w.Watch(root); err != nil {
		logger.Warn().Err(err).Str("root", root).Msg("watching workspace")
		_ = w.Close()
		return
	}

	me.mu.Lock()
	prev := me.watcher
	me.watcher = w
	me.mu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}
}

func (me *Server) Initialized(ctx context.Context, _ *protocol.InitializedParams) error {
	zerolog.Ctx(ctx).Debug().Msg("client initialized")
	return nil
}

func (me *Server) Shutdown(ctx context.Context, _ *jrpc2.Request) (any, error) {
	zerolog.Ctx(ctx).Info().Msg("shutting down")
	me.shutdown.Store(true)

	me.mu.Lock()
	w := me.watcher
	me.watcher = nil
	me.mu.Unlock()

	if w != nil {
		if err := w.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("closing workspace watcher")
		}
	}
	return nil, nil
}

func (me *Server) Exit(ctx context.Context, _ *jrpc2.Request) (any, error) {
	if !me.shutdown.Load() {
		zerolog.Ctx(ctx).Warn().Msg("exit without shutdown")
	}
	if srv := jrpc2.ServerFromContext(ctx); srv != nil {
		go srv.Stop()
	}
	return nil, nil
}
