package workspace

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// Resolver maps a mixin filename to an existing file next to the document
type Resolver struct {
	fs afero.Fs
}

// NewResolver creates a resolver over fs. A nil fs means the OS filesystem.
func NewResolver(fs afero.Fs) *Resolver {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Resolver{fs: fs}
}

// Resolve joins name onto the directory of docPath and reports whether a
// regular file exists there. Absolute names are used as they are.
func (r *Resolver) Resolve(docPath, name string) (string, bool) {
	if docPath == "" || name == "" {
		return "", false
	}

	target := filepath.FromSlash(name)
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(docPath), target)
	}
	target = filepath.Clean(target)

	info, err := r.fs.Stat(target)
	if err != nil || info.IsDir() {
		return "", false
	}

	return target, true
}
