package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// CachedLister memoizes mixin listings per directory and drops an entry
// when a file or directory below it is created, removed or renamed.
// Listings are only cached while their directories are watched.
type CachedLister struct {
	lister    *MixinLister
	logger    *slog.Logger
	fsWatcher *fsnotify.Watcher

	mu      sync.Mutex
	entries map[string][]string
}

// NewCachedLister wraps lister. The lister must read the OS filesystem,
// which is the only one fsnotify can observe.
func NewCachedLister(lister *MixinLister, logger *slog.Logger) (*CachedLister, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CachedLister{
		lister:    lister,
		logger:    logger,
		fsWatcher: fsWatcher,
		entries:   make(map[string][]string),
	}, nil
}

// List returns the cached listing of root, walking it on a miss
func (c *CachedLister) List(root string) ([]string, error) {
	root = filepath.Clean(root)

	c.mu.Lock()
	defer c.mu.Unlock()

	if files, ok := c.entries[root]; ok {
		return append([]string(nil), files...), nil
	}

	files, dirs, err := c.lister.scan(root)
	if err != nil {
		return nil, err
	}

	if err := c.watchAll(dirs); err != nil {
		c.logger.Debug("not caching mixin listing", "root", root, "error", err)
		return files, nil
	}

	c.entries[root] = files
	return append([]string(nil), files...), nil
}

// watchAll adds every directory to the watcher. On failure the directories
// added by this call are removed again.
func (c *CachedLister) watchAll(dirs []string) error {
	for i, dir := range dirs {
		if err := c.fsWatcher.Add(dir); err != nil {
			for _, added := range dirs[:i] {
				_ = c.fsWatcher.Remove(added)
			}
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return nil
}

// Invalidate forgets every listing that contains path
func (c *CachedLister) Invalidate(path string) {
	path = filepath.Clean(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	for root := range c.entries {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			delete(c.entries, root)
		}
	}
}

// Run applies file system events until ctx is done or the lister is closed
func (c *CachedLister) Run(ctx context.Context) error {
	for {
		select {
		case event, ok := <-c.fsWatcher.Events:
			if !ok {
				return nil
			}
			if !changesListing(event) {
				continue
			}
			c.logger.Debug("mixin candidates changed", "path", event.Name, "op", event.Op.String())
			c.Invalidate(event.Name)

		case err, ok := <-c.fsWatcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("watcher error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}

// Close stops watching
func (c *CachedLister) Close() error {
	return c.fsWatcher.Close()
}

// changesListing reports events that can add or remove a listed file.
// Writes and permission changes leave the listing as it is.
func changesListing(event fsnotify.Event) bool {
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
