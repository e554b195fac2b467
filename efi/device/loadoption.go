package device

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"

	"github.com/foxboron/go-bootoption/efi/util"
	"github.com/foxboron/go-bootoption/efivar"
	"github.com/pkg/errors"
)

// Section 3.1.3 Load Options
type LoadOptionAttributes uint32

const (
	LoadOptionActive         LoadOptionAttributes = 0x00000001
	LoadOptionForceReconnect LoadOptionAttributes = 0x00000002
	LoadOptionHidden         LoadOptionAttributes = 0x00000008
	LoadOptionCategoryApp    LoadOptionAttributes = 0x00000100
)

func (a LoadOptionAttributes) Active() bool {
	return a&LoadOptionActive != 0
}

func (a LoadOptionAttributes) Hidden() bool {
	return a&LoadOptionHidden != 0
}

func (a *LoadOptionAttributes) set(bit LoadOptionAttributes, on bool) {
	if on {
		*a |= bit
	} else {
		*a &^= bit
	}
}

func (a *LoadOptionAttributes) SetActive(on bool) {
	a.set(LoadOptionActive, on)
}

func (a *LoadOptionAttributes) SetHidden(on bool) {
	a.set(LoadOptionHidden, on)
}

// LoadOption is an EFI_LOAD_OPTION as stored in a Boot#### variable.
//
// A shallow parse only fills Attributes and Description, DevicePathList is
// nil and the option can not be serialized.
type LoadOption struct {
	BootNumber     efivar.BootNumber
	Attributes     LoadOptionAttributes
	Description    string
	DevicePathList *DevicePathList
	OptionalData   OptionalData
}

var (
	_ efivar.Marshallable   = &LoadOption{}
	_ efivar.Unmarshallable = &LoadOption{}
)

// ParseLoadOption decodes a load option. Unless detailed is set the device
// path list and optional data are skipped.
func ParseLoadOption(b []byte, detailed bool) (*LoadOption, error) {
	c := util.NewCursor(b)
	opt := &LoadOption{BootNumber: efivar.NoBootNumber}
	attrs, err := c.ReadUint32()
	if err != nil {
		return nil, errors.Wrap(err, "could not read load option attributes")
	}
	opt.Attributes = LoadOptionAttributes(attrs)
	listLength, err := c.ReadUint16()
	if err != nil {
		return nil, errors.Wrap(err, "could not read device path list length")
	}
	if opt.Description, _, err = util.ReadUCS2(c); err != nil {
		return nil, errors.Wrap(err, "could not read load option description")
	}
	if !detailed {
		return opt, nil
	}
	list, err := c.ReadBytes(int(listLength))
	if err != nil {
		return nil, errors.Wrap(err, "could not read device path list")
	}
	if opt.DevicePathList, err = ParseDevicePathList(list); err != nil {
		return nil, err
	}
	opt.OptionalData = c.ReadRemaining()
	return opt, nil
}

func ReadLoadOption(r io.Reader, detailed bool) (*LoadOption, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseLoadOption(b, detailed)
}

// NewLoadOption composes an active load option booting the file described
// by loader.
func NewLoadOption(description string, loader *Loader) (*LoadOption, error) {
	opt := &LoadOption{
		BootNumber: efivar.NoBootNumber,
		Attributes: LoadOptionActive,
	}
	if err := opt.SetDescription(description); err != nil {
		return nil, err
	}
	list, err := loader.DevicePathList()
	if err != nil {
		return nil, err
	}
	opt.DevicePathList = list
	return opt, nil
}

func (l *LoadOption) SetDescription(description string) error {
	b, err := util.EncodeUCS2(description, false)
	if err != nil {
		return errors.Wrap(err, "could not encode description")
	}
	if len(b) < 2 {
		return ErrEmptyDescription
	}
	l.Description = description
	return nil
}

func (l *LoadOption) SetOptionalData(b []byte) {
	l.OptionalData = append(OptionalData{}, b...)
}

// SetOptionalString stores s as ASCII, or UCS-2 when ucs2 is set.
func (l *LoadOption) SetOptionalString(s string, ucs2 bool) error {
	o, err := EncodeOptionalData(s, ucs2, l.IsClover())
	if err != nil {
		return err
	}
	l.OptionalData = o
	return nil
}

func (l *LoadOption) RemoveOptionalData() {
	l.OptionalData = nil
}

func (l *LoadOption) OptionalDataString() (string, bool) {
	return l.OptionalData.Text()
}

func (l *LoadOption) OptionalDataHexView() string {
	return util.HexView(l.OptionalData)
}

// IsClover is true when the option boots the Clover bootloader, which
// expects null terminated ASCII optional data.
func (l *LoadOption) IsClover() bool {
	if l.DevicePathList == nil {
		return false
	}
	p, ok := l.DevicePathList.FilePath()
	return ok && strings.Contains(strings.ToLower(p), cloverLoader)
}

func (l *LoadOption) Descriptions() []string {
	if l.DevicePathList == nil {
		return nil
	}
	return l.DevicePathList.Descriptions()
}

func (l *LoadOption) Marshal(b *bytes.Buffer) error {
	if l.DevicePathList == nil {
		return ErrNoDevicePathList
	}
	desc, err := util.EncodeUCS2(l.Description, true)
	if err != nil {
		return errors.Wrap(err, "could not encode description")
	}
	list := l.DevicePathList.Bytes()
	if len(list) > 0xFFFF {
		return errors.Wrapf(ErrNodeTooLarge, "device path list is %d bytes", len(list))
	}
	binary.Write(b, binary.LittleEndian, uint32(l.Attributes))
	binary.Write(b, binary.LittleEndian, uint16(len(list)))
	b.Write(desc)
	b.Write(list)
	b.Write(l.OptionalData)
	return nil
}

func (l *LoadOption) Bytes() ([]byte, error) {
	var b bytes.Buffer
	if err := l.Marshal(&b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Unmarshal does a detailed parse of the variable data.
func (l *LoadOption) Unmarshal(b *bytes.Buffer) error {
	opt, err := ParseLoadOption(b.Bytes(), true)
	if err != nil {
		return err
	}
	n := l.BootNumber
	*l = *opt
	l.BootNumber = n
	return nil
}
