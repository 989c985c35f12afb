package semtok

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/walteh/semls/pkg/ast"
	"github.com/walteh/semls/pkg/metrics"
)

// EmptyResult is the response for documents without a syntax tree.
var EmptyResult = []byte(`{"data":[]}`)

// Resolver hands out the current syntax tree of a document.
type Resolver interface {
	Resolve(uri string) (*ast.File, bool)
}

type Options struct {
	InitialCapacity int
	MaxTokens       int
}

// Result is the outcome of running the pipeline over one file.
type Result struct {
	Tokens     []Token
	Emitted    int
	Duplicates int
}

// Response is the JSON body of a semantic tokens reply.
type Response struct {
	Data []uint32 `json:"data"`
}

// Tokenize walks file and returns its canonical token list.
func Tokenize(ctx context.Context, file *ast.File, opts Options) (*Result, error) {
	_, span := metrics.Tracer.Start(ctx, "semtok.walk")
	defer span.End()

	buf := NewBuffer(opts.InitialCapacity, opts.MaxTokens)
	Walk(buf, file)
	if err := buf.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	emitted := buf.Len()
	tokens, dups := Canonicalize(buf.Tokens())

	span.SetAttributes(
		attribute.Int("semtok.emitted", emitted),
		attribute.Int("semtok.duplicates", dups),
	)

	return &Result{Tokens: tokens, Emitted: emitted, Duplicates: dups}, nil
}

// Marshal encodes tokens into a response body.
func Marshal(tokens []Token) ([]byte, error) {
	data := Encode(tokens)
	out, err := json.Marshal(Response{Data: data})
	if err != nil {
		return nil, errors.Errorf("marshalling semantic tokens: %w", err)
	}
	return out, nil
}

// Full builds the textDocument/semanticTokens/full body for uri.
func Full(ctx context.Context, r Resolver, uri string, opts Options) ([]byte, error) {
	return build(ctx, "full", r, uri, opts, nil)
}

// Range is Full restricted to tokens that start inside span.
func Range(ctx context.Context, r Resolver, uri string, span Span, opts Options) ([]byte, error) {
	return build(ctx, "range", r, uri, opts, &span)
}

func build(ctx context.Context, method string, r Resolver, uri string, opts Options, within *Span) (out []byte, err error) {
	start := time.Now()
	ctx, span := metrics.Tracer.Start(ctx, "semtok."+method, trace.WithAttributes(attribute.String("uri", uri)))
	defer span.End()

	result := metrics.ResultTokens
	defer func() {
		if err != nil {
			result = metrics.ResultError
			span.RecordError(err)
		}
		metrics.SemanticTokenRequests.WithLabelValues(method, result).Inc()
		metrics.SemanticTokenDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}()

	file, ok := r.Resolve(uri)
	if !ok || file == nil {
		result = metrics.ResultEmpty
		zerolog.Ctx(ctx).Debug().Str("uri", uri).Msg("no syntax tree, returning empty tokens")
		return EmptyResult, nil
	}

	res, err := Tokenize(ctx, file, opts)
	if err != nil {
		return nil, errors.Errorf("tokenizing %s: %w", uri, err)
	}

	metrics.TokensEmittedTotal.Add(float64(res.Emitted))
	metrics.TokensDeduplicatedTotal.Add(float64(res.Duplicates))

	tokens := res.Tokens
	if within != nil {
		tokens = Filter(tokens, *within)
	}

	_, encodeSpan := metrics.Tracer.Start(ctx, "semtok.encode")
	out, err = Marshal(tokens)
	encodeSpan.End()
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("uri", uri).
		Int("emitted", res.Emitted).
		Int("duplicates", res.Duplicates).
		Int("tokens", len(tokens)).
		Msg("built semantic tokens")

	return out, nil
}
