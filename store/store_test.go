package store

import (
	"errors"
	"io/fs"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tables := []struct {
		in, out string
	}{
		{"/img/a.bmp", "img/a.bmp"},
		{"img/a.bmp", "img/a.bmp"},
		{"//img/../img/./a.bmp", "img/a.bmp"},
		{"/../../etc/passwd", "etc/passwd"},
		{"/", ""},
	}

	for _, table := range tables {
		assert.Equal(t, table.out, Clean(table.in), table.in)
	}
}

func TestFS(t *testing.T) {
	s := FS(fstest.MapFS{
		"img/a.bmp": &fstest.MapFile{Data: []byte("abc")},
	})

	rc, err := s.Open("/img/a.bmp")
	require.NoError(t, err)
	defer rc.Close()

	b, err := ioutil.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(b))

	_, err = s.Open("/img/missing.bmp")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = s.Open("")
	assert.Equal(t, ErrNoPath, err)
}

func TestDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "list"), 0755))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "list", "a.csv"), []byte("ID\n"), 0644))

	rc, err := Dir(dir).Open("/list/a.csv")
	require.NoError(t, err)
	assert.NoError(t, rc.Close())
}
