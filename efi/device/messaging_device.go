package device

import (
	"fmt"
	"strings"

	"github.com/foxboron/go-bootoption/efi/util"
	"github.com/foxboron/go-bootoption/internal/logger"
)

// Subtypes of Messaging Device Path
// Section 10.3.4
const (
	_ DevicePathSubType = iota
	MessagingATAPI
	MessagingSCSI
	MessagingFibreChannel
	Messaging1394
	MessagingUSB
	MessagingI2O
	_
	_
	MessagingInfiniBand
	MessagingVendor
	MessagingMACAddress
	MessagingIPv4
	MessagingIPv6
	MessagingUART
	MessagingUSBClass
	MessagingUSBWWID
	MessagingLogicalUnit
	MessagingSATA
	MessagingISCSI
	MessagingVLAN
	MessagingFibreChannelEx
	MessagingSASEx
	MessagingNVMe
)

const maxUSBSerialLength = 128

type USBMessagingDevicePath struct {
	EFIDevicePath
	USBParentPortNumber uint8
	Interface           uint8
}

func (u *USBMessagingDevicePath) Format() string {
	return format("Usb", fmt.Sprintf("0x%X", u.USBParentPortNumber), fmt.Sprintf("0x%X", u.Interface))
}

type MACAddressDevicePath struct {
	EFIDevicePath
	Address       [32]byte
	InterfaceType uint8
}

// MACAddress renders the address as colon separated hex. Six bytes are used
// unless bytes 6 and 7 are set.
func (m *MACAddressDevicePath) MACAddress() string {
	n := 8
	if m.Address[6] == 0 && m.Address[7] == 0 {
		n = 6
	}
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("%02X", m.Address[i])
	}
	return strings.Join(parts, ":")
}

func (m *MACAddressDevicePath) Format() string {
	return format("Mac", m.MACAddress(), fmt.Sprintf("0x%X", m.InterfaceType))
}

// Address fields are not decoded.
type IPv4DevicePath struct {
	EFIDevicePath
}

func (i *IPv4DevicePath) Format() string {
	return format("IPv4", hexData(i.Data))
}

type IPv6DevicePath struct {
	EFIDevicePath
}

func (i *IPv6DevicePath) Format() string {
	return format("IPv6", hexData(i.Data))
}

type USBClassDevicePath struct {
	EFIDevicePath
	VendorID       uint16
	ProductID      uint16
	DeviceClass    uint8
	DeviceSubClass uint8
	DeviceProtocol uint8
}

func (u *USBClassDevicePath) Format() string {
	return format("Usb", fmt.Sprintf("0x%04X", u.VendorID), fmt.Sprintf("0x%04X", u.ProductID))
}

type USBWWIDDevicePath struct {
	EFIDevicePath
	Interface    uint16
	VendorID     uint16
	ProductID    uint16
	SerialNumber []byte
}

func (u *USBWWIDDevicePath) Format() string {
	serial := hexData(u.SerialNumber)
	if s, err := decodeUnterminatedUCS2(u.SerialNumber); err == nil {
		serial = quoted(s)
	}
	return format("Usb", serial, fmt.Sprintf("0x%04X", u.VendorID), fmt.Sprintf("0x%04X", u.ProductID), fmt.Sprintf("0x%X", u.Interface))
}

type LogicalUnitDevicePath struct {
	EFIDevicePath
	LUN uint8
}

func (l *LogicalUnitDevicePath) Format() string {
	return format("Unit", fmt.Sprint(l.LUN))
}

type SATADevicePath struct {
	EFIDevicePath
	HBAPortNumber            uint16
	PortMultiplierPortNumber uint16
	LUN                      uint16
}

func (s *SATADevicePath) Format() string {
	return format("Sata", fmt.Sprintf("0x%X", s.HBAPortNumber), fmt.Sprintf("0x%04X", s.PortMultiplierPortNumber), fmt.Sprintf("0x%X", s.LUN))
}

type NVMeDevicePath struct {
	EFIDevicePath
	NamespaceID uint32
	EUI64       uint64
}

func (n *NVMeDevicePath) Format() string {
	return format("Nvme", fmt.Sprintf("0x%X", n.NamespaceID), fmt.Sprintf("0x%016X", n.EUI64))
}

func ParseMessagingDevicePath(efi *EFIDevicePath) (DevicePath, error) {
	c := util.NewCursor(efi.Data)
	var err error
	switch efi.SubType {
	case MessagingUSB:
		u := &USBMessagingDevicePath{EFIDevicePath: *efi}
		for _, d := range []*uint8{&u.USBParentPortNumber, &u.Interface} {
			if *d, err = c.ReadUint8(); err != nil {
				return nil, malformed("USB", efi, err)
			}
		}
		return u, nil
	case MessagingMACAddress:
		m := &MACAddressDevicePath{EFIDevicePath: *efi}
		addr, err := c.ReadBytes(len(m.Address))
		if err != nil {
			return nil, malformed("MAC address", efi, err)
		}
		copy(m.Address[:], addr)
		if m.InterfaceType, err = c.ReadUint8(); err != nil {
			return nil, malformed("MAC address", efi, err)
		}
		return m, nil
	case MessagingIPv4:
		return &IPv4DevicePath{*efi}, nil
	case MessagingIPv6:
		return &IPv6DevicePath{*efi}, nil
	case MessagingUSBClass:
		u := &USBClassDevicePath{EFIDevicePath: *efi}
		for _, d := range []*uint16{&u.VendorID, &u.ProductID} {
			if *d, err = c.ReadUint16(); err != nil {
				return nil, malformed("USB class", efi, err)
			}
		}
		for _, d := range []*uint8{&u.DeviceClass, &u.DeviceSubClass, &u.DeviceProtocol} {
			if *d, err = c.ReadUint8(); err != nil {
				return nil, malformed("USB class", efi, err)
			}
		}
		return u, nil
	case MessagingUSBWWID:
		u := &USBWWIDDevicePath{EFIDevicePath: *efi}
		for _, d := range []*uint16{&u.Interface, &u.VendorID, &u.ProductID} {
			if *d, err = c.ReadUint16(); err != nil {
				return nil, malformed("USB WWID", efi, err)
			}
		}
		u.SerialNumber = c.ReadRemaining()
		if len(u.SerialNumber) > maxUSBSerialLength {
			logger.Warnf("USB WWID serial number is %d bytes, exceeds %d", len(u.SerialNumber), maxUSBSerialLength)
		}
		return u, nil
	case MessagingLogicalUnit:
		l := &LogicalUnitDevicePath{EFIDevicePath: *efi}
		if l.LUN, err = c.ReadUint8(); err != nil {
			return nil, malformed("logical unit", efi, err)
		}
		return l, nil
	case MessagingSATA:
		s := &SATADevicePath{EFIDevicePath: *efi}
		for _, d := range []*uint16{&s.HBAPortNumber, &s.PortMultiplierPortNumber, &s.LUN} {
			if *d, err = c.ReadUint16(); err != nil {
				return nil, malformed("SATA", efi, err)
			}
		}
		return s, nil
	case MessagingNVMe:
		n := &NVMeDevicePath{EFIDevicePath: *efi}
		if n.NamespaceID, err = c.ReadUint32(); err != nil {
			return nil, malformed("NVMe", efi, err)
		}
		if n.EUI64, err = c.ReadUint64(); err != nil {
			return nil, malformed("NVMe", efi, err)
		}
		return n, nil
	}
	return nil, nil
}
