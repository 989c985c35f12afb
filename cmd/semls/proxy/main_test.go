package proxy_test

import (
	"context"
	"io"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/semls/cmd/semls/proxy"
)

func TestProxyCopiesBothWays(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	socketPath := filepath.Join(t.TempDir(), "semls.sock")
	listener, err := net.Listen("unix", socketPath)
	require.NoError(t, err)
	defer listener.Close()

	stdinR, stdinW := io.Pipe()
	stdoutR, stdoutW := io.Pipe()

	proxyDone := make(chan error, 1)
	go func() {
		proxyDone <- (&proxy.Handler{}).Run(ctx, socketPath, stdinR, stdoutW)
	}()

	serverConn, err := listener.Accept()
	require.NoError(t, err)

	// stdin -> socket
	go func() {
		_, _ = io.WriteString(stdinW, "Content-Length: 2\r\n\r\n{}")
	}()
	buf := make([]byte, len("Content-Length: 2\r\n\r\n{}"))
	_, err = io.ReadFull(serverConn, buf)
	require.NoError(t, err)
	assert.Equal(t, "Content-Length: 2\r\n\r\n{}", string(buf))

	// socket -> stdout
	go func() {
		_, _ = serverConn.Write([]byte("pong"))
	}()
	out := make([]byte, 4)
	_, err = io.ReadFull(stdoutR, out)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(out))

	require.NoError(t, serverConn.Close())

	select {
	case err := <-proxyDone:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("proxy did not stop after the server closed")
	}
}

func TestProxyMissingSocket(t *testing.T) {
	err := (&proxy.Handler{}).Run(context.Background(), filepath.Join(t.TempDir(), "none.sock"), nil, io.Discard)
	require.Error(t, err)
}
