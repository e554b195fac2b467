//go:build !linux

package attr

import "os"

// No efivarfs outside of linux, nothing is ever immutable.
func getFlags(f *os.File) (int32, error) {
	return 0, nil
}

func setFlags(f *os.File, flags int32) error {
	return nil
}
