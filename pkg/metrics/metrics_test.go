package metrics_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/walteh/semls/pkg/metrics"
)

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	rsp, err := http.Get(url)
	require.NoError(t, err)
	defer rsp.Body.Close()
	body, err := io.ReadAll(rsp.Body)
	require.NoError(t, err)
	return rsp.StatusCode, string(body)
}

func TestListenServesMetrics(t *testing.T) {
	ctx := context.Background()

	srv, err := metrics.Listen(ctx, "127.0.0.1:0")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, srv.Shutdown(ctx))
	}()

	metrics.SemanticTokenRequests.WithLabelValues("full", metrics.ResultEmpty).Inc()

	status, body := get(t, "http://"+srv.Addr()+"/health")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"up"}`, body)

	status, body = get(t, "http://"+srv.Addr()+"/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `semls_semantic_token_requests_total{method="full",result="empty"}`)
	assert.Contains(t, body, "semls_documents_indexed")
}

func TestListenRejectsBadAddress(t *testing.T) {
	_, err := metrics.Listen(context.Background(), "not-an-address")
	require.Error(t, err)
}

func TestSetupTracing(t *testing.T) {
	defer otel.SetTracerProvider(noop.NewTracerProvider())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// the exporter dials lazily, so no collector is needed until spans flush
	shutdown, err := metrics.SetupTracing(ctx, "127.0.0.1:4317")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	_, span := metrics.Tracer.Start(ctx, "semtok.full")
	assert.True(t, span.SpanContext().IsValid(), "spans should come from the installed provider")
	span.End()

	// nothing is listening, so only bound how long the flush may take
	flushCtx, flushCancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer flushCancel()
	_ = shutdown(flushCtx)
}
