package device

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/foxboron/go-bootoption/internal/logger"
	"github.com/pkg/errors"
)

var (
	ErrMalformedNode              = errors.New("malformed device path node")
	ErrUnsupportedSignatureType   = errors.New("unsupported hard drive signature type")
	ErrEmptyDescription           = errors.New("load option description is empty")
	ErrNodeTooLarge               = errors.New("device path node too large")
	ErrNoDevicePathList           = errors.New("load option has no device path list")
	ErrUnsupportedPartitionFormat = errors.New("unsupported partition format")
)

// Section 10.3 Device Path Nodes
type DevicePathType uint8

const (
	_ DevicePathType = iota
	Hardware
	ACPI
	MessagingDevicePath
	MediaDevicePath
	BIOSBootSpecificationDevicePath
	EndOfHardwareDevicePath DevicePathType = 127
)

// Section 10.3.1 Generic Device Path Structures
type DevicePathSubType uint8

// Table 45. Device Path End Structure
// Subtypes of EndofHardwareDevicePath
const (
	NewDevicePath   DevicePathSubType = 1
	NoNewDevicePath DevicePathSubType = 255
)

const (
	SizeofDevicePathHeader = 4
	MaxDevicePathPayload   = 0xFFFF - SizeofDevicePathHeader
)

// Section 10.2 EFI Device Path Protocol
//
// Data holds the node payload, everything after the 4 byte header. The
// decoded fields of a variant are derived from it once and never change.
type EFIDevicePath struct {
	Type    DevicePathType
	SubType DevicePathSubType
	Length  uint16
	Data    []byte
}

// DevicePath is a single node in a device path.
type DevicePath interface {
	Node() *EFIDevicePath
	Format() string
}

func (e *EFIDevicePath) Node() *EFIDevicePath {
	return e
}

// Format renders nodes we have no decoder for.
func (e *EFIDevicePath) Format() string {
	return format(fmt.Sprint(e.Type), fmt.Sprint(e.SubType), hexData(e.Data))
}

func (e *EFIDevicePath) IsEnd() bool {
	return e.Type == EndOfHardwareDevicePath && (e.SubType == NoNewDevicePath || e.SubType == NewDevicePath)
}

func newEFIDevicePath(t DevicePathType, st DevicePathSubType, data []byte) (EFIDevicePath, error) {
	if len(data) > MaxDevicePathPayload {
		return EFIDevicePath{}, errors.Wrapf(ErrNodeTooLarge, "%d byte payload", len(data))
	}
	return EFIDevicePath{
		Type:    t,
		SubType: st,
		Length:  uint16(len(data) + SizeofDevicePathHeader),
		Data:    data,
	}, nil
}

// RawDevicePath is a node with an unknown type and subtype. Only the payload
// is kept.
type RawDevicePath struct {
	EFIDevicePath
}

// EndDevicePath terminates a device path instance (NewDevicePath) or the
// whole device path (NoNewDevicePath).
type EndDevicePath struct {
	EFIDevicePath
}

func (e *EndDevicePath) Format() string {
	return format("End", fmt.Sprintf("0x%02X", uint8(e.SubType)))
}

func NewEndDevicePath() *EndDevicePath {
	return &EndDevicePath{EFIDevicePath{
		Type:    EndOfHardwareDevicePath,
		SubType: NoNewDevicePath,
		Length:  SizeofDevicePathHeader,
	}}
}

// DevicePathBytes serializes a node, header included.
func DevicePathBytes(d DevicePath) []byte {
	n := d.Node()
	var b bytes.Buffer
	b.WriteByte(uint8(n.Type))
	b.WriteByte(uint8(n.SubType))
	binary.Write(&b, binary.LittleEndian, uint16(len(n.Data)+SizeofDevicePathHeader))
	b.Write(n.Data)
	return b.Bytes()
}

// ParseDevicePathNode decodes a node from its header fields and payload.
// Unknown nodes are returned as *RawDevicePath.
func ParseDevicePathNode(t DevicePathType, st DevicePathSubType, data []byte) (DevicePath, error) {
	efi, err := newEFIDevicePath(t, st, data)
	if err != nil {
		return nil, err
	}
	var d DevicePath
	switch t {
	case Hardware:
		d, err = ParseHardwareDevicePath(&efi)
	case ACPI:
		d, err = ParseACPIDevicePath(&efi)
	case MessagingDevicePath:
		d, err = ParseMessagingDevicePath(&efi)
	case MediaDevicePath:
		d, err = ParseMediaDevicePath(&efi)
	case EndOfHardwareDevicePath:
		if efi.IsEnd() {
			d = &EndDevicePath{efi}
		}
	}
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = &RawDevicePath{efi}
	}
	logger.Debugf("device path (%d:%d) %s", t, st, d.Format())
	return d, nil
}

func malformed(name string, efi *EFIDevicePath, err error) error {
	return errors.Wrapf(ErrMalformedNode, "%s (%d:%d), %d byte payload: %v", name, efi.Type, efi.SubType, len(efi.Data), err)
}

func format(title string, fields ...string) string {
	return title + "(" + strings.Join(fields, ",") + ")"
}

func hexData(b []byte) string {
	return fmt.Sprintf("0x%X", b)
}

func quoted(s string) string {
	return `"` + s + `"`
}
