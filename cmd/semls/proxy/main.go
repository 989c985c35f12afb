package proxy

import (
	"context"
	"io"
	"net"
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

type Handler struct{}

// NewProxyCommand bridges an editor's stdio to a server started with
// `serve-lsp --socket`, so a long-running server can be debugged while the
// editor still speaks stdio.
func NewProxyCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "proxy <socket-path>",
		Short: "connect stdin/stdout to a language server listening on a unix socket",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), args[0], os.Stdin, os.Stdout)
	}

	return cmd
}

// Run copies in both directions until either side closes.
func (me *Handler) Run(ctx context.Context, socketPath string, stdin io.Reader, stdout io.Writer) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return errors.Errorf("connecting to %s: %w", socketPath, err)
	}
	defer conn.Close()

	done := make(chan error, 2)

	go func() {
		_, err := io.Copy(conn, stdin)
		done <- err
	}()

	go func() {
		_, err := io.Copy(stdout, conn)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, net.ErrClosed) {
			return errors.Errorf("proxying %s: %w", socketPath, err)
		}
		return nil
	case <-ctx.Done():
		return nil
	}
}
