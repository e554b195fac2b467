package efivarfs

import (
	"bytes"
	"encoding/binary"

	"github.com/foxboron/go-bootoption/efi/device"
	"github.com/foxboron/go-bootoption/efivar"
	"github.com/pkg/errors"
)

// This package contains misc types we might promote to something more sane at a later point.
// Currently only used internally to serialize/deserialize values we need to native Go types.

type efiuint16 uint16

func (e *efiuint16) Unmarshal(b *bytes.Buffer) error {
	if b.Len() != 2 {
		return errors.Errorf("expected 2 bytes, got %d", b.Len())
	}
	*e = efiuint16(binary.LittleEndian.Uint16(b.Bytes()))
	return nil
}

func (e efiuint16) Marshal(b *bytes.Buffer) error {
	return binary.Write(b, binary.LittleEndian, uint16(e))
}

type efiuint64 uint64

func (e *efiuint64) Unmarshal(b *bytes.Buffer) error {
	if b.Len() != 8 {
		return errors.Errorf("expected 8 bytes, got %d", b.Len())
	}
	*e = efiuint64(binary.LittleEndian.Uint64(b.Bytes()))
	return nil
}

func (e efiuint64) Marshal(b *bytes.Buffer) error {
	return binary.Write(b, binary.LittleEndian, uint64(e))
}

// bootOrder is an array of UINT16 boot numbers.
type bootOrder []efivar.BootNumber

func (o *bootOrder) Unmarshal(b *bytes.Buffer) error {
	if b.Len()%2 != 0 {
		return errors.Errorf("BootOrder has odd length %d", b.Len())
	}
	order := make(bootOrder, b.Len()/2)
	if err := binary.Read(b, binary.LittleEndian, order); err != nil {
		return err
	}
	*o = order
	return nil
}

func (o bootOrder) Marshal(b *bytes.Buffer) error {
	return binary.Write(b, binary.LittleEndian, []efivar.BootNumber(o))
}

// efibytes discards nothing and interprets nothing.
type efibytes []byte

func (e *efibytes) Unmarshal(b *bytes.Buffer) error {
	*e = append(efibytes{}, b.Bytes()...)
	return nil
}

func (e efibytes) Marshal(b *bytes.Buffer) error {
	_, err := b.Write(e)
	return err
}

// loadOptionSummary reads only the attributes and description of a load
// option.
type loadOptionSummary struct {
	*device.LoadOption
}

func (l *loadOptionSummary) Unmarshal(b *bytes.Buffer) error {
	opt, err := device.ParseLoadOption(b.Bytes(), false)
	if err != nil {
		return err
	}
	l.LoadOption = opt
	return nil
}
