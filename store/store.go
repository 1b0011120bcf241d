/*
Package store provides path-addressed access to the image and table files
shown on the sign.

Paths are written the way the tables store them, rooted with a leading slash
such as "/img/Scroll/ScrollStart.bmp".
*/
package store

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
)

// ErrNoPath is returned when asked to open an empty path.
var ErrNoPath = errors.New("store: empty path")

// Store opens files by path.
type Store interface {
	Open(name string) (io.ReadCloser, error)
}

type fsStore struct {
	fsys fs.FS
}

// FS returns a Store reading from fsys.
func FS(fsys fs.FS) Store {
	return &fsStore{fsys: fsys}
}

// Dir returns a Store reading from the directory root on disk.
func Dir(root string) Store {
	return FS(os.DirFS(root))
}

// Clean converts a table path into a name valid for fs.FS.
func Clean(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

func (s *fsStore) Open(name string) (io.ReadCloser, error) {
	if name == "" {
		return nil, ErrNoPath
	}
	return s.fsys.Open(Clean(name))
}
