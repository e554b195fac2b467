package attr

import (
	"os"

	"golang.org/x/sys/unix"
)

func getFlags(f *os.File) (int32, error) {
	flags, err := unix.IoctlGetInt(int(f.Fd()), unix.FS_IOC_GETFLAGS)
	return int32(flags), err
}

func setFlags(f *os.File, flags int32) error {
	return unix.IoctlSetPointerInt(int(f.Fd()), unix.FS_IOC_SETFLAGS, int(flags))
}
