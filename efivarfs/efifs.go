package efivarfs

import (
	"bytes"

	"github.com/foxboron/go-bootoption/efi/attr"
	"github.com/foxboron/go-bootoption/efi/attributes"
	"github.com/foxboron/go-bootoption/efivar"
	"github.com/foxboron/go-bootoption/efivarfs/fswrapper"
	"github.com/pkg/errors"
)

// This package deals with the interface actually writing the variables properly
// to the efivarfs backend.

var (
	ErrImmutable           = attr.ErrIsImmutable
	ErrIncorrectAttributes = errors.New("efivar has the wrong attributes")
)

// EFIVars is the interface for interacting with writing and getting EFI variables.
type EFIVars interface {
	GetVar(efivar.Efivar, efivar.Unmarshallable) error
	GetVarWithAttributes(efivar.Efivar, efivar.Unmarshallable) (attributes.Attributes, error)
	WriteVar(efivar.Efivar, efivar.Marshallable) error
	DeleteVar(efivar.Efivar) error
}

// EFIFS is a struct that combines reading variables from the file system while also ensuring we are
// handling the immutable bit efivarfs puts on variables.
type EFIFS struct {
	*fswrapper.FSWrapper
}

var _ EFIVars = &EFIFS{}

// NewFS creates a new instance of *EFIFS
func NewFS() *EFIFS {
	return &EFIFS{
		fswrapper.NewFSWrapper(),
	}
}

// NewMemoryFS creates an *EFIFS backed by an in-memory filesystem.
func NewMemoryFS() *EFIFS {
	return &EFIFS{
		fswrapper.NewMemoryWrapper(),
	}
}

// Open returns a initialization Efivarfs for high-level abstractions.
func (f *EFIFS) Open() *Efivarfs {
	return &Efivarfs{f}
}

// Check if file is immutable before writing to the file.
// Returns ErrImmutable if the file is immutable.
func (f *EFIFS) CheckImmutable() *EFIFS {
	f.FSWrapper.CheckImmutable()
	return f
}

// UnsetImmutable implicitly when writing towards a file.
func (f *EFIFS) UnsetImmutable() *EFIFS {
	f.FSWrapper.UnsetImmutable()
	return f
}

// WithRoot reads and writes variables below dir instead of the efivarfs
// mount point.
func (f *EFIFS) WithRoot(dir string) *EFIFS {
	f.FSWrapper.SetRoot(dir)
	return f
}

// GetVar parses and unmarshalls a EFI variable.
func (t *EFIFS) GetVar(v efivar.Efivar, e efivar.Unmarshallable) error {
	if _, err := t.GetVarWithAttributes(v, e); err != nil {
		return err
	}
	return nil
}

// GetVarWithAttributes parses and unmarshalls a EFI variable, while also
// returning the parsed attributes.
func (t *EFIFS) GetVarWithAttributes(v efivar.Efivar, e efivar.Unmarshallable) (attributes.Attributes, error) {
	attrs, buf, err := t.ReadEfivarsWithGuid(v.Name, v.GUID)
	if err != nil {
		return 0, err
	}

	if !v.Attributes.Equal(attrs) {
		return attrs, errors.Wrapf(ErrIncorrectAttributes, "%s has attributes 0x%08X, expected 0x%08X", v.Name, uint32(attrs), uint32(v.Attributes))
	}

	if err := e.Unmarshal(buf); err != nil {
		return 0, errors.Wrapf(err, "could not parse %s", v.Name)
	}

	return attrs, nil
}

// WriteVar writes an EFI variables to the EFIFS.
func (t *EFIFS) WriteVar(v efivar.Efivar, e efivar.Marshallable) error {
	var b bytes.Buffer
	if err := e.Marshal(&b); err != nil {
		return errors.Wrapf(err, "could not serialize %s", v.Name)
	}
	return t.WriteEfivarsWithGuid(v.Name, v.Attributes, b.Bytes(), v.GUID)
}

// DeleteVar removes an EFI variable from the EFIFS.
func (t *EFIFS) DeleteVar(v efivar.Efivar) error {
	return t.RemoveEfivarsWithGuid(v.Name, v.GUID)
}
