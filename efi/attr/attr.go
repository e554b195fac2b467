// Package attr deals with the immutable inode flag the kernel sets on most
// efivarfs files.
package attr

import (
	"os"

	"github.com/pkg/errors"
)

// FS_IMMUTABLE_FL from linux/fs.h
const FS_IMMUTABLE_FL int32 = 0x00000010

var ErrIsImmutable = errors.New("file is immutable")

// IsImmutable returns ErrIsImmutable if the immutable flag is set on the
// file at path.
func IsImmutable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	flags, err := getFlags(f)
	if err != nil {
		return err
	}
	if flags&FS_IMMUTABLE_FL != 0 {
		return ErrIsImmutable
	}
	return nil
}

// UnsetImmutable clears the immutable flag on the file at path.
func UnsetImmutable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	flags, err := getFlags(f)
	if err != nil {
		return err
	}
	if flags&FS_IMMUTABLE_FL == 0 {
		return nil
	}
	return setFlags(f, flags&^FS_IMMUTABLE_FL)
}
