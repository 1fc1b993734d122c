package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/lets-cli/lets-ls/internal/analysis"
	"github.com/lets-cli/lets-ls/internal/features"
	"github.com/lets-cli/lets-ls/internal/workspace"
)

// app bundles the analysis core and the feature handlers built on it
type app struct {
	fs        afero.Fs
	analyzer  *analysis.Analyzer
	completer *features.Completer
	definer   *features.Definer

	// watcher is set when mixin listings are cached; it must be run
	watcher *workspace.CachedLister
}

// newApp wires the components. With watch set, mixin listings are cached
// and kept fresh with file system notifications; this needs the OS
// filesystem.
func newApp(fs afero.Fs, config Config, logger *slog.Logger, watch bool) (*app, error) {
	analyzer, err := analysis.New(analysis.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	listerConfig := workspace.DefaultListerConfig()
	if config.MixinsMaxDepth > 0 {
		listerConfig.MaxDepth = config.MixinsMaxDepth
	}
	lister := workspace.NewMixinLister(fs, listerConfig)

	a := &app{fs: fs, analyzer: analyzer}

	var files features.FileLister = lister
	if watch {
		cached, err := workspace.NewCachedLister(lister, logger)
		if err != nil {
			logger.Warn("mixin listings will not be cached", "error", err)
		} else {
			a.watcher = cached
			files = cached
		}
	}

	logger.Debug("analyzer ready", "mixins_max_depth", listerConfig.MaxDepth, "cached", a.watcher != nil)

	a.completer = features.NewCompleter(analyzer, files, logger)
	a.definer = features.NewDefiner(analyzer, workspace.NewResolver(fs), logger)
	return a, nil
}

// readDocument loads a file for the inspect commands
func (a *app) readDocument(path string) (string, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func (a *app) Close() {
	if a.watcher != nil {
		a.watcher.Close()
	}
	a.analyzer.Close()
}
