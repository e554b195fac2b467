package testfs

import (
	"os"
	"path/filepath"
	"testing/fstest"

	"github.com/foxboron/go-bootoption/efivarfs"
	"github.com/foxboron/go-bootoption/efivarfs/fswrapper"
	"github.com/spf13/afero"
)

// TestFS deals with providing a layer controllable layer we can use for
// integration tests.

// This is the a wrapper around MapFS to easily inject data and convert it to afero.fs
type TestFS struct {
	*efivarfs.EFIFS
	mapfs fstest.MapFS
}

func NewTestFS() *TestFS {
	return &TestFS{
		EFIFS: &efivarfs.EFIFS{FSWrapper: fswrapper.NewMemoryWrapper()},
		mapfs: fstest.MapFS{},
	}
}

// Convert fstest.MapFS to afero.Fs
func fromMapFS(files fstest.MapFS) afero.Fs {
	memfs := afero.NewMemMapFs()
	for name, file := range files {
		if file.Mode.IsDir() {
			memfs.MkdirAll(name, file.Mode.Perm())
			continue
		}
		// We ignore the error here as if the directory exists it should be fine.
		memfs.MkdirAll(filepath.Dir(name), 0755)
		f, err := memfs.OpenFile(name, os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			continue
		}
		f.Write(file.Data)
		f.Close()
	}
	return memfs
}

// With allows you to compose several overlay files into the in-memory filesystem.
func (f *TestFS) With(files ...fstest.MapFS) *TestFS {
	for _, mapfs := range files {
		for path, file := range mapfs {
			f.mapfs[path] = file
		}
	}
	return f
}

// Open opens TestFS as Efivarfs
func (f *TestFS) Open() *efivarfs.Efivarfs {
	f.SetFS(fromMapFS(f.mapfs))
	return efivarfs.Open(f)
}
