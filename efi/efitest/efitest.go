// Package efitest provides efivarfs fixtures for tests.
package efitest

import (
	"fmt"
	"path"
	"testing/fstest"

	"github.com/foxboron/go-bootoption/efi/attributes"
	"github.com/foxboron/go-bootoption/efi/util"
)

const nvbsrt = attributes.EFI_VARIABLE_NON_VOLATILE |
	attributes.EFI_VARIABLE_BOOTSERVICE_ACCESS |
	attributes.EFI_VARIABLE_RUNTIME_ACCESS

const bsrt = attributes.EFI_VARIABLE_BOOTSERVICE_ACCESS |
	attributes.EFI_VARIABLE_RUNTIME_ACCESS

// Efivar returns a MapFS holding one variable file as efivarfs presents it,
// attributes first.
func Efivar(name string, guid util.EFIGUID, attrs attributes.Attributes, data []byte) fstest.MapFS {
	p := path.Join(attributes.Efivars, fmt.Sprintf("%s-%s", name, guid.Format()))
	return fstest.MapFS{
		p: {Data: append(attrs.Bytes(), data...)},
	}
}

func globalVar(name string, attrs attributes.Attributes, data []byte) fstest.MapFS {
	return Efivar(name, attributes.EFI_GLOBAL_VARIABLE, attrs, data)
}

func uint16s(values ...uint16) []byte {
	b := make([]byte, 0, 2*len(values))
	for _, v := range values {
		b = append(b, byte(v), byte(v>>8))
	}
	return b
}
