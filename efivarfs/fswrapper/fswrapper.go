package fswrapper

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/foxboron/go-bootoption/efi/attr"
	"github.com/foxboron/go-bootoption/efi/attributes"
	"github.com/foxboron/go-bootoption/efi/util"
	"github.com/foxboron/go-bootoption/internal/logger"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// This package is the lowest layer of the filesystem abstraction.
// It ensures we have a filesystem api with WriteFile/ReadFile/OpenFile as this
// is not supported by io/fs nor afero.Fs at the moment.

// This should largely be considered a patch layer on top of our virtual filesystems!

var (
	errImmutable = attr.ErrIsImmutable
)

type FSWrapper struct {
	unsetimmutable bool
	immutable      bool
	root           string
	fs             afero.Fs
}

func (e *FSWrapper) CheckImmutable() {
	e.immutable = true
}

func (e *FSWrapper) UnsetImmutable() {
	e.unsetimmutable = true
}

func NewMemoryWrapper() *FSWrapper {
	return &FSWrapper{
		root: attributes.Efivars,
		fs:   afero.NewMemMapFs(),
	}
}

func NewFSWrapper() *FSWrapper {
	return &FSWrapper{
		root: attributes.Efivars,
		fs:   afero.NewOsFs(),
	}
}

// SetFS replaces the backing filesystem.
func (t *FSWrapper) SetFS(fs afero.Fs) {
	t.fs = fs
}

// SetRoot changes the efivarfs mount point, /sys/firmware/efi/efivars by
// default.
func (t *FSWrapper) SetRoot(dir string) {
	t.root = dir
}

func (t *FSWrapper) Root() string {
	return t.root
}

func (t *FSWrapper) inMemory() bool {
	_, ok := t.fs.(*afero.MemMapFs)
	return ok
}

// plainFiles is true unless we are writing to the efivarfs mount, which
// replaces a variable on every write.
func (t *FSWrapper) plainFiles() bool {
	return t.inMemory() || t.root != attributes.Efivars
}

func (t *FSWrapper) isimmutable(efivar string) error {
	if !t.immutable || t.inMemory() {
		return nil
	}
	err := attr.IsImmutable(efivar)
	switch {
	case errors.Is(err, attr.ErrIsImmutable):
		if !t.unsetimmutable {
			return errImmutable
		}
		logger.Debugf("unsetting immutable flag on %s", efivar)
		if err := attr.UnsetImmutable(efivar); err != nil {
			return errors.Wrap(err, "couldn't unset immutable bit")
		}
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return err
	}
	return nil
}

func (t *FSWrapper) Open(name string) (fs.File, error) {
	return t.fs.Open(name)
}

func (t *FSWrapper) ReadFile(name string) ([]byte, error) {
	return afero.ReadFile(t.fs, name)
}

func (t *FSWrapper) ParseEfivars(f io.Reader, size int) (attributes.Attributes, *bytes.Buffer, error) {
	var attrs attributes.Attributes
	if size < attributes.SizeofAttributes {
		return 0, nil, errors.Errorf("efi variable is %d bytes, too short for attributes", size)
	}
	if err := binary.Read(f, binary.LittleEndian, &attrs); err != nil {
		return 0, nil, errors.Wrap(err, "could not read file")
	}
	buf := make([]byte, size-attributes.SizeofAttributes)
	if _, err := io.ReadFull(f, buf); err != nil {
		return 0, nil, errors.Wrap(err, "could not read efi variable")
	}
	return attrs, bytes.NewBuffer(buf), nil
}

// For a full path instead of the inferred efivars path
func (t *FSWrapper) ReadEfivarsFile(filename string) (attributes.Attributes, *bytes.Buffer, error) {
	f, err := t.fs.Open(filename)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		return 0, nil, errors.Wrap(err, "could not stat file descriptor")
	}
	return t.ParseEfivars(f, int(stat.Size()))
}

func (t *FSWrapper) efivarPath(name string, guid util.EFIGUID) string {
	return path.Join(t.root, fmt.Sprintf("%s-%s", name, guid.Format()))
}

func (t *FSWrapper) ReadEfivarsWithGuid(filename string, guid util.EFIGUID) (attributes.Attributes, *bytes.Buffer, error) {
	return t.ReadEfivarsFile(t.efivarPath(filename, guid))
}

// Write an EFI variable to sysfs
func (t *FSWrapper) WriteEfivarsWithGuid(name string, attrs attributes.Attributes, b []byte, guid util.EFIGUID) error {
	efivar := t.efivarPath(name, guid)
	if err := t.isimmutable(efivar); err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE
	if attrs&attributes.EFI_VARIABLE_APPEND_WRITE != 0 {
		flags |= os.O_APPEND
	} else if t.plainFiles() {
		flags |= os.O_TRUNC
	}
	if t.inMemory() {
		t.fs.MkdirAll(t.root, 0755)
	}
	f, err := t.fs.OpenFile(efivar, flags, 0644)
	if err != nil {
		return errors.Wrap(err, "couldn't open file")
	}
	defer f.Close()
	buf := append(attrs.Bytes(), b...)
	if n, err := f.Write(buf); err != nil {
		return errors.Wrap(err, "couldn't write efi variable")
	} else if n != len(buf) {
		return errors.New("could not write the entire buffer")
	}
	logger.Debugf("wrote %d bytes to %s", len(buf), efivar)
	return nil
}

// RemoveEfivarsWithGuid deletes an EFI variable.
func (t *FSWrapper) RemoveEfivarsWithGuid(name string, guid util.EFIGUID) error {
	efivar := t.efivarPath(name, guid)
	if err := t.isimmutable(efivar); err != nil {
		return err
	}
	if err := t.fs.Remove(efivar); err != nil {
		return errors.Wrapf(err, "couldn't remove efi variable %s", name)
	}
	logger.Debugf("removed %s", efivar)
	return nil
}
