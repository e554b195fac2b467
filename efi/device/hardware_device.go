package device

import (
	"fmt"

	"github.com/foxboron/go-bootoption/efi/util"
)

// Subtypes of Hardware Device
// Section 10.3.2 - Hardware Device Path
const (
	_ DevicePathSubType = iota
	HardwarePCI
	HardwarePCCARD
	HardwareMemoryMapped
	HardwareVendor
	HardwareController
	HardwareBMC
)

// VenHw nodes with this GUID carry a UCS-2 string as vendor data.
var vendorStringGUID = util.MustParseGUID("2D6447EF-3BC9-41A0-AC19-4D51D01B4CE6")

type PCIDevicePath struct {
	EFIDevicePath
	Function uint8
	Device   uint8
}

func (p *PCIDevicePath) Format() string {
	return format("Pci", fmt.Sprintf("0x%02X:%X", p.Device, p.Function))
}

type VendorHardwareDevicePath struct {
	EFIDevicePath
	GUID       util.EFIGUID
	VendorData []byte
}

func (v *VendorHardwareDevicePath) Format() string {
	data := hexData(v.VendorData)
	if v.GUID == vendorStringGUID {
		if s, err := util.DecodeUCS2(v.VendorData); err == nil {
			data = quoted(s)
		}
	}
	return format("VenHw", v.GUID.String(), data)
}

func ParseHardwareDevicePath(efi *EFIDevicePath) (DevicePath, error) {
	c := util.NewCursor(efi.Data)
	var err error
	switch efi.SubType {
	case HardwarePCI:
		p := &PCIDevicePath{EFIDevicePath: *efi}
		if p.Function, err = c.ReadUint8(); err != nil {
			return nil, malformed("PCI", efi, err)
		}
		if p.Device, err = c.ReadUint8(); err != nil {
			return nil, malformed("PCI", efi, err)
		}
		return p, nil
	case HardwareVendor:
		v := &VendorHardwareDevicePath{EFIDevicePath: *efi}
		if v.GUID, err = c.ReadGUID(); err != nil {
			return nil, malformed("vendor hardware", efi, err)
		}
		v.VendorData = c.ReadRemaining()
		return v, nil
	}
	return nil, nil
}
