package serve_lsp

import (
	"context"
	"io"
	"io/fs"
	"net"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/semls/pkg/config"
	"github.com/walteh/semls/pkg/debug"
	"github.com/walteh/semls/pkg/lsp"
	"github.com/walteh/semls/pkg/metrics"
)

type Handler struct {
	debug        bool
	configPath   string
	logToClient  bool
	metricsAddr  string
	otlpEndpoint string
	socket       string
}

func NewServeLSPCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "serve-lsp",
		Short: "start the language server on stdin/stdout",
	}

	cmd.Flags().BoolVar(&me.debug, "debug", false, "enable debug logging")
	cmd.Flags().StringVar(&me.configPath, "config", config.FileName, "path to the configuration file")
	cmd.Flags().BoolVar(&me.logToClient, "log-to-client", false, "forward log lines to the editor as window/logMessage")
	cmd.Flags().StringVar(&me.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().StringVar(&me.otlpEndpoint, "otlp-endpoint", "", "export traces to this OTLP/gRPC endpoint")
	cmd.Flags().StringVar(&me.socket, "socket", "", "listen on this unix socket instead of stdin/stdout")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), cmd.Root().Version, os.Stdin, os.Stdout, cmd.ErrOrStderr())
	}

	return cmd
}

// Load reads the configuration file and applies flag overrides.
func (me *Handler) Load(afs afero.Fs) (*config.Config, error) {
	cfg, err := config.Load(afs, me.configPath)
	if err != nil {
		return nil, err
	}
	if me.metricsAddr != "" {
		cfg.Metrics.Addr = me.metricsAddr
	}
	if me.otlpEndpoint != "" {
		cfg.Tracing.OTLPEndpoint = me.otlpEndpoint
	}
	if me.debug {
		cfg.LogLevel = zerolog.LevelDebugValue
	}
	return cfg, nil
}

func (me *Handler) Run(ctx context.Context, version string, stdin io.Reader, stdout io.WriteCloser, stderr io.Writer) (err error) {
	afs := afero.NewOsFs()

	cfg, err := me.Load(afs)
	if err != nil {
		return errors.Errorf("loading configuration: %w", err)
	}

	// stdout carries the protocol, so logs go to stderr and optionally the editor
	var clientLog *lsp.ClientLogWriter
	var extra []io.Writer
	if me.logToClient {
		clientLog = lsp.NewClientLogWriter()
		extra = append(extra, clientLog)
	}
	logger := debug.NewConsoleLogger(stderr, cfg.Level(), !color.NoColor, extra...)
	ctx = logger.WithContext(ctx)

	var shutdowns []func(context.Context) error
	defer func() {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		for _, fn := range shutdowns {
			err = multierr.Append(err, fn(sctx))
		}
	}()

	if cfg.Metrics.Addr != "" {
		srv, err := metrics.Listen(ctx, cfg.Metrics.Addr)
		if err != nil {
			return errors.Errorf("starting metrics server: %w", err)
		}
		shutdowns = append(shutdowns, srv.Shutdown)
	}

	if cfg.Tracing.OTLPEndpoint != "" {
		shutdown, err := metrics.SetupTracing(ctx, cfg.Tracing.OTLPEndpoint)
		if err != nil {
			return errors.Errorf("setting up tracing: %w", err)
		}
		shutdowns = append(shutdowns, shutdown)
	}

	serve := func(r io.Reader, w io.WriteCloser) error {
		server := lsp.NewServer(ctx, afs, cfg, lsp.Options{
			Version:   version,
			ClientLog: clientLog,
		})
		return server.Serve(r, w)
	}

	if me.socket != "" {
		return me.serveSocket(ctx, serve)
	}

	if err := serve(stdin, stdout); err != nil {
		return errors.Errorf("error running language server: %w", err)
	}

	return nil
}

// serveSocket accepts one client at a time until ctx ends. Each connection
// gets a fresh server.
func (me *Handler) serveSocket(ctx context.Context, serve func(io.Reader, io.WriteCloser) error) error {
	if err := os.Remove(me.socket); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Errorf("removing stale socket: %w", err)
	}

	ln, err := net.Listen("unix", me.socket)
	if err != nil {
		return errors.Errorf("listening on %s: %w", me.socket, err)
	}
	defer ln.Close()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	zerolog.Ctx(ctx).Info().Str("socket", me.socket).Msg("waiting for clients")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return errors.Errorf("accepting client: %w", err)
		}

		zerolog.Ctx(ctx).Info().Msg("client connected")
		if err := serve(conn, conn); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("client session ended with error")
		}
	}
}
