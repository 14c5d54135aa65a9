// Package media stores post artifacts (cover images, attachments) outside
// the database. The core only ever removes artifacts, and removal is
// best-effort: a missing or unremovable file must never fail the caller's
// transaction.
package media

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Store removes stored artifacts by their relative path.
type Store interface {
	Remove(path string) error
}

type fsStore struct {
	root string
}

// NewFSStore returns a Store rooted at dir.
func NewFSStore(dir string) Store {
	return &fsStore{root: dir}
}

func (s *fsStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	full := filepath.Join(s.root, filepath.Clean("/"+path))
	err := os.Remove(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
