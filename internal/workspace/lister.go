package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

var errListLimit = errors.New("list limit reached")

// ListerConfig holds configuration for the mixin lister
type ListerConfig struct {
	MaxDepth    int
	MaxFiles    int
	HiddenFiles bool
	Extensions  []string
	IgnoreDirs  []string
}

// DefaultListerConfig returns the configuration used by the server
func DefaultListerConfig() ListerConfig {
	return ListerConfig{
		MaxDepth:   2,
		MaxFiles:   500,
		Extensions: []string{".yaml", ".yml"},
		IgnoreDirs: []string{"node_modules", "vendor", ".git", ".lets"},
	}
}

// MixinLister finds YAML files that could be included as mixins
type MixinLister struct {
	fs     afero.Fs
	config ListerConfig
}

// NewMixinLister creates a lister over fs. A nil fs means the OS filesystem.
func NewMixinLister(fs afero.Fs, config ListerConfig) *MixinLister {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if len(config.Extensions) == 0 {
		config.Extensions = DefaultListerConfig().Extensions
	}
	return &MixinLister{fs: fs, config: config}
}

// List walks root and returns slash-separated paths relative to root, sorted.
// Unreadable entries are skipped.
func (l *MixinLister) List(root string) ([]string, error) {
	files, _, err := l.scan(root)
	return files, err
}

// scan lists files like List and also returns every directory it entered,
// root included
func (l *MixinLister) scan(root string) ([]string, []string, error) {
	info, err := l.fs.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat root path: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("not a directory: %s", root)
	}

	var files []string
	dirs := []string{root}

	err = afero.Walk(l.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Continue walking
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil || relPath == "." {
			return nil
		}

		depth := strings.Count(relPath, string(filepath.Separator))
		if info.IsDir() {
			if l.skipDir(info.Name(), depth) {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
			return nil
		}

		if l.config.MaxDepth > 0 && depth > l.config.MaxDepth {
			return nil
		}
		if !l.config.HiddenFiles && isHidden(info.Name()) {
			return nil
		}
		if !info.Mode().IsRegular() || !l.hasExtension(info.Name()) {
			return nil
		}

		files = append(files, filepath.ToSlash(relPath))
		if l.config.MaxFiles > 0 && len(files) >= l.config.MaxFiles {
			return errListLimit
		}
		return nil
	})
	if err != nil && !errors.Is(err, errListLimit) && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("failed to list %s: %w", root, err)
	}

	sort.Strings(files)
	return files, dirs, nil
}

// skipDir reports whether a directory at depth (0 for direct children of
// the root) is pruned
func (l *MixinLister) skipDir(name string, depth int) bool {
	if l.config.MaxDepth > 0 && depth >= l.config.MaxDepth {
		return true
	}
	if !l.config.HiddenFiles && isHidden(name) {
		return true
	}
	for _, ignored := range l.config.IgnoreDirs {
		if name == ignored {
			return true
		}
	}
	return false
}

func (l *MixinLister) hasExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range l.config.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
