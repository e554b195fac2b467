package efivar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidVariableName = errors.New("invalid boot variable name")

// BootNumber is the #### in a Boot#### variable name.
type BootNumber uint16

// NoBootNumber marks a load option that was not read from a Boot#### variable.
const NoBootNumber BootNumber = 0xFFFF

func (b BootNumber) VariableName() string {
	return fmt.Sprintf("Boot%04X", uint16(b))
}

func (b BootNumber) String() string {
	return b.VariableName()
}

// Efivar returns the variable descriptor for Boot####.
func (b BootNumber) Efivar() Efivar {
	v := BootEntry
	v.Name = b.VariableName()
	return v
}

// ParseBootNumber accepts "Boot0001", "0x1" and "1", all interpreted as hex.
func ParseBootNumber(s string) (BootNumber, error) {
	h := s
	switch {
	case len(h) > 4 && strings.EqualFold(h[:4], "boot"):
		h = h[4:]
	case len(h) > 2 && strings.EqualFold(h[:2], "0x"):
		h = h[2:]
	}
	if len(h) == 0 || len(h) > 4 {
		return 0, errors.Wrapf(ErrInvalidVariableName, "%q", s)
	}
	n, err := strconv.ParseUint(h, 16, 16)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidVariableName, "%q", s)
	}
	return BootNumber(n), nil
}
