package lsp

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/semls/pkg/index"
	"github.com/walteh/semls/pkg/lsp/protocol"
	"github.com/walteh/semls/pkg/semtok"
)

func (me *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	doc := me.index.Open(ctx, string(item.URI), item.Version, item.Text)

	zerolog.Ctx(ctx).Debug().
		Str("uri", string(item.URI)).
		Int32("version", item.Version).
		Bool("parsed", doc.AST != nil).
		Msg("document opened")
	return nil
}

// DidChange applies full-text sync: only the last change matters.
func (me *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}

	uri := string(params.TextDocument.URI)
	text := params.ContentChanges[len(params.ContentChanges)-1].Text

	_, err := me.index.Change(ctx, uri, params.TextDocument.Version, text)
	if errors.Is(err, index.ErrUnknownDocument) {
		zerolog.Ctx(ctx).Warn().Str("uri", uri).Msg("change for a document that was never opened")
		me.index.Open(ctx, uri, params.TextDocument.Version, text)
		return nil
	}
	return err
}

func (me *Server) DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := string(params.TextDocument.URI)

	// open documents already carry the saved text
	if err := me.index.Reload(ctx, uri); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("uri", uri).Msg("reloading saved document")
	}
	return nil
}

func (me *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	me.index.Close(ctx, string(params.TextDocument.URI))
	return nil
}

func (me *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (json.RawMessage, error) {
	uri := string(params.TextDocument.URI)
	out, err := semtok.Full(ctx, me.index, uri, me.cfg.TokenOptions())
	return me.tokensReply(ctx, uri, out, err)
}

func (me *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (json.RawMessage, error) {
	uri := string(params.TextDocument.URI)
	span := semtok.Span{
		StartLine: params.Range.Start.Line,
		StartChar: params.Range.Start.Character,
		EndLine:   params.Range.End.Line,
		EndChar:   params.Range.End.Character,
	}
	out, err := semtok.Range(ctx, me.index, uri, span, me.cfg.TokenOptions())
	return me.tokensReply(ctx, uri, out, err)
}

// tokensReply never fails the request: the editor keeps its previous
// highlighting when it receives an empty result.
func (me *Server) tokensReply(ctx context.Context, uri string, out []byte, err error) (json.RawMessage, error) {
	if err != nil {
		ev := zerolog.Ctx(ctx).Error()
		if errors.Is(err, semtok.ErrTokenLimit) {
			ev = zerolog.Ctx(ctx).Warn()
		}
		ev.Err(err).Str("uri", uri).Msg("building semantic tokens")
		return json.RawMessage(semtok.EmptyResult), nil
	}
	return json.RawMessage(out), nil
}
