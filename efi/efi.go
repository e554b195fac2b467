package efi

// Top level API for boot entries

import (
	"os"

	"github.com/foxboron/go-bootoption/efi/device"
	"github.com/foxboron/go-bootoption/efivar"
	"github.com/foxboron/go-bootoption/efivarfs"
	"github.com/foxboron/go-bootoption/internal/logger"
	"github.com/pkg/errors"
)

// System opens the efivarfs of the running system.
func System() *efivarfs.Efivarfs {
	return efivarfs.NewFS().CheckImmutable().UnsetImmutable().Open()
}

// GetBootEntry reads a Boot#### variable by name, e.g. "Boot0001".
func GetBootEntry(e *efivarfs.Efivarfs, entry string) (*device.LoadOption, error) {
	n, err := efivar.ParseBootNumber(entry)
	if err != nil {
		return nil, err
	}
	return e.GetLoadOption(n, true)
}

// GetBootEntries returns the load options in boot order. Entries that are
// missing or fail to parse are logged and skipped.
func GetBootEntries(e *efivarfs.Efivarfs, detailed bool) ([]*device.LoadOption, error) {
	order, err := e.GetBootOrder()
	if err != nil {
		return nil, err
	}
	var ret []*device.LoadOption
	for _, n := range order {
		opt, err := e.GetLoadOption(n, detailed)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logger.Warnf("%s is in the boot order but does not exist", n)
			continue
		case err != nil:
			logger.Warnf("could not read %s: %v", n, err)
			continue
		}
		ret = append(ret, opt)
	}
	return ret, nil
}
