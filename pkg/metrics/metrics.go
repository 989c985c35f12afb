// Package metrics holds the process-wide Prometheus collectors and the
// OpenTelemetry tracer used by the token pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

const (
	ResultTokens = "tokens"
	ResultEmpty  = "empty"
	ResultError  = "error"
)

// Tracer delegates to whichever global provider SetupTracing installs.
var Tracer = otel.Tracer("github.com/walteh/semls/pkg/semtok")

var (
	SemanticTokenRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "semls_semantic_token_requests_total",
		Help: "Semantic token requests by LSP method and outcome.",
	}, []string{"method", "result"})

	SemanticTokenDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "semls_semantic_token_seconds",
		Help:    "Time spent building a semantic token response.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	TokensEmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "semls_tokens_emitted_total",
		Help: "Tokens accepted into request buffers.",
	})

	TokensDeduplicatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "semls_tokens_deduplicated_total",
		Help: "Tokens dropped because an earlier token shared their position.",
	})

	DocumentsIndexed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "semls_documents_indexed",
		Help: "Documents currently held by the index.",
	})

	ParseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "semls_parse_seconds",
		Help:    "Time spent parsing a document.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})

	ParseFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "semls_parse_failures_total",
		Help: "Documents that failed to parse.",
	}, []string{"source"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "semls_watcher_events_total",
		Help: "File system events received by the workspace watcher.",
	})

	RPCRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "semls_rpc_requests_total",
		Help: "JSON-RPC messages received, by method.",
	}, []string{"method"})

	RPCErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "semls_rpc_errors_total",
		Help: "JSON-RPC responses carrying an error.",
	})
)
