package lsp

import (
	"context"
	"errors"
	"io"
	"net"
	"os"

	"go.lsp.dev/jsonrpc2"
	"golang.org/x/sync/errgroup"
)

// Serve runs the server on rwc until the client exits, the stream closes or
// ctx is cancelled. Requests are handled one at a time in arrival order.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))
	conn.Go(ctx, s.Handler())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		<-conn.Done()
		if err := conn.Err(); !isClosed(err) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-s.Exited():
		case <-gctx.Done():
		}
		if err := conn.Close(); err != nil && !isClosed(err) {
			s.logger.Debug("closing connection", "error", err)
		}
		return nil
	})

	err := g.Wait()
	s.logger.Info("connection closed")
	return err
}

// isClosed reports errors that only mean the peer or we hung up
func isClosed(err error) bool {
	return err == nil ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, os.ErrClosed) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, context.Canceled)
}

// StdIO returns a stream over the process's stdin and stdout
func StdIO() io.ReadWriteCloser {
	return stdrwc{}
}

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
