package efivarfs

import (
	"os"

	"github.com/foxboron/go-bootoption/efi/device"
	"github.com/foxboron/go-bootoption/efivar"
	"github.com/foxboron/go-bootoption/internal/logger"
	"github.com/pkg/errors"
)

// This is the high-level abstraction of efivarfs. It gives you the easy
// variable access and auxillary functions you should expect from a library like
// this.

var (
	ErrNoFreeBootNumber       = errors.New("no unused boot number")
	ErrFirmwareUINotSupported = errors.New("firmware does not support booting to the firmware UI")
	ErrLoadOptionDoesNotExist = errors.New("load option does not exist")
)

const maxBootNumber = efivar.BootNumber(0x007F)

type Efivarfs struct {
	EFIVars
}

func Open(e EFIVars) *Efivarfs {
	return &Efivarfs{e}
}

// GetBootOrder returns the BootOrder variable. A missing variable is an
// empty boot order.
func (e *Efivarfs) GetBootOrder() ([]efivar.BootNumber, error) {
	var order bootOrder
	if err := e.GetVar(efivar.BootOrder, &order); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return order, nil
}

// SetBootOrder writes the BootOrder variable, dropping repeated entries.
func (e *Efivarfs) SetBootOrder(order []efivar.BootNumber) error {
	seen := map[efivar.BootNumber]bool{}
	var o bootOrder
	for _, n := range order {
		if seen[n] {
			logger.Warnf("%s is repeated in boot order, skipping", n)
			continue
		}
		seen[n] = true
		o = append(o, n)
	}
	return e.WriteVar(efivar.BootOrder, o)
}

// AddToBootOrder inserts n at index, or appends it if index is out of
// range. Nothing is done if n is already in the boot order or there is no
// Boot#### variable for it.
func (e *Efivarfs) AddToBootOrder(n efivar.BootNumber, index int) error {
	exists, err := e.LoadOptionExists(n)
	if err != nil {
		return err
	}
	if !exists {
		logger.Warnf("not adding %s to boot order, variable does not exist", n)
		return nil
	}
	order, err := e.GetBootOrder()
	if err != nil {
		return err
	}
	for _, o := range order {
		if o == n {
			logger.Infof("%s is already in boot order", n)
			return nil
		}
	}
	if index < 0 || index > len(order) {
		index = len(order)
	}
	order = append(order[:index], append([]efivar.BootNumber{n}, order[index:]...)...)
	return e.SetBootOrder(order)
}

func (e *Efivarfs) RemoveFromBootOrder(n efivar.BootNumber) error {
	order, err := e.GetBootOrder()
	if err != nil {
		return err
	}
	var ret []efivar.BootNumber
	for _, o := range order {
		if o != n {
			ret = append(ret, o)
		}
	}
	if len(ret) == len(order) {
		return nil
	}
	return e.SetBootOrder(ret)
}

func (e *Efivarfs) GetBootCurrent() (efivar.BootNumber, error) {
	var n efiuint16
	if err := e.GetVar(efivar.BootCurrent, &n); err != nil {
		return 0, err
	}
	return efivar.BootNumber(n), nil
}

func (e *Efivarfs) GetBootNext() (efivar.BootNumber, error) {
	var n efiuint16
	if err := e.GetVar(efivar.BootNext, &n); err != nil {
		return 0, err
	}
	return efivar.BootNumber(n), nil
}

func (e *Efivarfs) SetBootNext(n efivar.BootNumber) error {
	return e.WriteVar(efivar.BootNext, efiuint16(n))
}

func (e *Efivarfs) GetTimeout() (uint16, error) {
	var n efiuint16
	if err := e.GetVar(efivar.Timeout, &n); err != nil {
		return 0, err
	}
	return uint16(n), nil
}

func (e *Efivarfs) SetTimeout(seconds uint16) error {
	return e.WriteVar(efivar.Timeout, efiuint16(seconds))
}

// GetLoadOption reads Boot####. Without detailed only the attributes and
// description are decoded.
func (e *Efivarfs) GetLoadOption(n efivar.BootNumber, detailed bool) (*device.LoadOption, error) {
	var opt *device.LoadOption
	if detailed {
		opt = &device.LoadOption{}
		if err := e.GetVar(n.Efivar(), opt); err != nil {
			return nil, err
		}
	} else {
		var s loadOptionSummary
		if err := e.GetVar(n.Efivar(), &s); err != nil {
			return nil, err
		}
		opt = s.LoadOption
	}
	opt.BootNumber = n
	return opt, nil
}

func (e *Efivarfs) WriteLoadOption(n efivar.BootNumber, opt *device.LoadOption) error {
	if err := e.WriteVar(n.Efivar(), opt); err != nil {
		return err
	}
	opt.BootNumber = n
	return nil
}

// LoadOptionExists reports whether Boot#### is set.
func (e *Efivarfs) LoadOptionExists(n efivar.BootNumber) (bool, error) {
	var b efibytes
	err := e.GetVar(n.Efivar(), &b)
	switch {
	case err == nil, errors.Is(err, ErrIncorrectAttributes):
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	}
	return false, err
}

// DeleteLoadOption removes Boot#### and drops it from the boot order.
func (e *Efivarfs) DeleteLoadOption(n efivar.BootNumber) error {
	exists, err := e.LoadOptionExists(n)
	if err != nil {
		return err
	}
	if !exists {
		return errors.Wrapf(ErrLoadOptionDoesNotExist, "%s", n)
	}
	if err := e.DeleteVar(n.Efivar()); err != nil {
		return err
	}
	return e.RemoveFromBootOrder(n)
}

// NextFreeBootNumber returns the lowest boot number below 0x7F that has no
// Boot#### variable.
func (e *Efivarfs) NextFreeBootNumber() (efivar.BootNumber, error) {
	for n := efivar.BootNumber(0); n < maxBootNumber; n++ {
		exists, err := e.LoadOptionExists(n)
		if err != nil {
			return 0, err
		}
		if !exists {
			return n, nil
		}
	}
	return 0, ErrNoFreeBootNumber
}

// CreateLoadOption writes opt to the next free Boot#### variable and
// optionally prepends it to the boot order.
func (e *Efivarfs) CreateLoadOption(opt *device.LoadOption, addToOrder bool) (efivar.BootNumber, error) {
	n, err := e.NextFreeBootNumber()
	if err != nil {
		return 0, err
	}
	if err := e.WriteLoadOption(n, opt); err != nil {
		return 0, err
	}
	logger.Infof("created %s %q", n, opt.Description)
	if addToOrder {
		if err := e.AddToBootOrder(n, 0); err != nil {
			return n, err
		}
	}
	return n, nil
}

// SetRebootToFirmwareUI asks the firmware to stop in its setup UI on the
// next boot.
func (e *Efivarfs) SetRebootToFirmwareUI() error {
	var supported efiuint64
	if err := e.GetVar(efivar.OsIndicationsSupported, &supported); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrFirmwareUINotSupported
		}
		return err
	}
	if uint64(supported)&efivar.EFI_OS_INDICATIONS_BOOT_TO_FW_UI == 0 {
		return ErrFirmwareUINotSupported
	}
	var indications efiuint64
	if err := e.GetVar(efivar.OsIndications, &indications); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	indications |= efiuint64(efivar.EFI_OS_INDICATIONS_BOOT_TO_FW_UI)
	return e.WriteVar(efivar.OsIndications, indications)
}
