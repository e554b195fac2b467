package device

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/foxboron/go-bootoption/efi/util"
)

// Subtypes of ACPI Device
// Section 10.3.3 - ACPI Device Path
const (
	_ DevicePathSubType = iota
	ACPIDevice
	ExpandedACPIDevice
	ACPIADRDevice
)

const (
	eisaPnpVendor = 0x41D0
	pciRootBridge = "PNP0A03"
)

// eisaPnpID decodes a compressed EISA id. Only the PNP vendor prefix is
// recognised.
func eisaPnpID(id uint32) (string, bool) {
	if id&0xFFFF != eisaPnpVendor {
		return "", false
	}
	return fmt.Sprintf("PNP%04X", id>>16), true
}

type ACPIDevicePath struct {
	EFIDevicePath
	HID uint32
	UID uint32
}

func (a *ACPIDevicePath) Format() string {
	uid := strconv.FormatUint(uint64(a.UID), 10)
	id, ok := eisaPnpID(a.HID)
	switch {
	case !ok:
		return format("Acpi", fmt.Sprintf("0x%08X", a.HID), uid)
	case id == pciRootBridge:
		return format("PciBus", uid)
	default:
		return format("Acpi", id, uid)
	}
}

type ExpandedACPIDevicePath struct {
	EFIDevicePath
	HID uint32
	UID uint32
	CID uint32
	// HIDStr overrides HID when set.
	HIDStr string
}

func (a *ExpandedACPIDevicePath) Format() string {
	hid, ok := eisaPnpID(a.HID)
	if !ok {
		hid = fmt.Sprintf("0x%08X", a.HID)
	}
	if a.HIDStr != "" {
		hid = a.HIDStr
	}
	cid, ok := eisaPnpID(a.CID)
	if !ok {
		cid = fmt.Sprintf("0x%08X", a.CID)
	}
	return format("Acpi", hid, cid, strconv.FormatUint(uint64(a.UID), 10))
}

// asciiField returns the first null terminated string in b, or "" when it
// is empty or not ASCII.
func asciiField(b []byte) string {
	if i := bytes.IndexByte(b, 0x00); i >= 0 {
		b = b[:i]
	}
	for _, c := range b {
		if c >= 0x80 {
			return ""
		}
	}
	return string(b)
}

func ParseACPIDevicePath(efi *EFIDevicePath) (DevicePath, error) {
	c := util.NewCursor(efi.Data)
	var err error
	switch efi.SubType {
	case ACPIDevice:
		a := &ACPIDevicePath{EFIDevicePath: *efi}
		for _, i := range []*uint32{&a.HID, &a.UID} {
			if *i, err = c.ReadUint32(); err != nil {
				return nil, malformed("ACPI", efi, err)
			}
		}
		return a, nil
	case ExpandedACPIDevice:
		a := &ExpandedACPIDevicePath{EFIDevicePath: *efi}
		for _, i := range []*uint32{&a.HID, &a.UID, &a.CID} {
			if *i, err = c.ReadUint32(); err != nil {
				return nil, malformed("expanded ACPI", efi, err)
			}
		}
		a.HIDStr = asciiField(c.ReadRemaining())
		return a, nil
	}
	return nil, nil
}
