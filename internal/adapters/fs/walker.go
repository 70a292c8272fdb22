// Package fs provides file system adapters for walking and hashing source trees.
package fs

import (
	"errors"
	iofs "io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/fusionary/internal/core/domain"
)

// defaultIgnores are directory names that never contribute to a source tree.
var defaultIgnores = []string{".git", "node_modules", domain.FusionaryDirName}

// Walker provides file walking functionality.
type Walker struct {
	ignores []string
}

// NewWalker creates a new Walker skipping the default directories and ignores.
func NewWalker(ignores ...string) *Walker {
	return &Walker{ignores: append(append([]string(nil), defaultIgnores...), ignores...)}
}

// WalkFiles yields every regular file below root in lexical order.
// A missing root yields nothing. Other walk errors are yielded once and end the walk.
func (w *Walker) WalkFiles(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && w.ignored(d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil && !errors.Is(err, iofs.ErrNotExist) {
			yield("", err)
		}
	}
}

func (w *Walker) ignored(name string) bool {
	for _, ignore := range w.ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
