package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/lets-cli/lets-ls/internal/lsp"
	"github.com/lets-cli/lets-ls/internal/workspace"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the Language Server Protocol on stdio",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	config := loadConfig(viper.GetViper())

	logger, closer, err := newLogger(config, os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	a, err := newApp(afero.NewOsFs(), config, logger, true)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return err
	}
	defer a.Close()

	server := lsp.NewServer(lsp.Config{
		Version:   version,
		Store:     workspace.NewStore(),
		Completer: a.completer,
		Definer:   a.definer,
		Logger:    logger,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "version", version, "pid", os.Getpid())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// the watcher lives as long as the connection
		defer stop()
		return server.Serve(gctx, lsp.StdIO())
	})
	if a.watcher != nil {
		g.Go(func() error {
			return a.watcher.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
