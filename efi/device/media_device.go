package device

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/foxboron/go-bootoption/efi/util"
	"github.com/pkg/errors"
)

// Subtypes of Media Device
// Section 10.3.5 - Media Device Path
const (
	_ DevicePathSubType = iota
	HardDriveMediaDevice
	CDRomMediaDevice
	VendorMediaDevice
	FileTypeMediaDevice
	MediaProtocolDevice
	PIWGFirmwareFileDevice
	PIWGFirmwareVolumeDevice
	RelativeOffsetRangeDevice
	RAMDiskDevice
)

// Vendor media GUID Apple firmware uses to tag APFS volumes. The vendor
// data is the volume UUID.
var AppleAPFSVolumeGUID = util.EFIGUID{
	Data1: 0xBE74FCF7,
	Data2: 0x0B7C,
	Data3: 0x49F3,
	Data4: [8]uint8{0x91, 0x47, 0x01, 0xF4, 0x04, 0x2E, 0x68, 0x42},
}

const sizeofHardDrivePayload = 4 + 8 + 8 + 16 + 1 + 1

type PartitionFormat uint8

const (
	PartitionFormatMBR PartitionFormat = 0x01
	PartitionFormatGPT PartitionFormat = 0x02
)

func (p PartitionFormat) String() string {
	switch p {
	case PartitionFormatMBR:
		return "MBR"
	case PartitionFormatGPT:
		return "GPT"
	}
	return fmt.Sprintf("PartitionFormat(%d)", uint8(p))
}

type HardDriveMediaDevicePath struct {
	EFIDevicePath
	PartitionNumber uint32
	PartitionStart  uint64
	PartitionSize   uint64
	Signature       HardDriveSignature
	PartitionFormat PartitionFormat
}

// NewHardDriveMediaDevicePath builds a hard drive node. The signature type
// must match the partition format.
func NewHardDriveMediaDevicePath(number uint32, start, size uint64, pf PartitionFormat, sig HardDriveSignature) (*HardDriveMediaDevicePath, error) {
	switch {
	case pf == PartitionFormatMBR && sig.Type == SignatureTypeMBR:
	case pf == PartitionFormatGPT && sig.Type == SignatureTypeGUID:
	default:
		return nil, errors.Wrapf(ErrUnsupportedSignatureType, "signature type %d for %s partition", sig.Type, pf)
	}
	var b bytes.Buffer
	for _, v := range []interface{}{number, start, size, sig.Data, uint8(pf), uint8(sig.Type)} {
		binary.Write(&b, binary.LittleEndian, v)
	}
	efi, err := newEFIDevicePath(MediaDevicePath, HardDriveMediaDevice, b.Bytes())
	if err != nil {
		return nil, err
	}
	return &HardDriveMediaDevicePath{
		EFIDevicePath:   efi,
		PartitionNumber: number,
		PartitionStart:  start,
		PartitionSize:   size,
		Signature:       sig,
		PartitionFormat: pf,
	}, nil
}

func (h *HardDriveMediaDevicePath) Format() string {
	number := fmt.Sprint(h.PartitionNumber)
	start := fmt.Sprintf("0x%X", h.PartitionStart)
	size := fmt.Sprintf("0x%X", h.PartitionSize)
	switch h.PartitionFormat {
	case PartitionFormatMBR:
		if sig, ok := h.Signature.MBR(); ok {
			return format("Hd", number, "MBR", fmt.Sprintf("0x%08X", sig), start, size)
		}
	case PartitionFormatGPT:
		if g, ok := h.Signature.GUID(); ok {
			return format("Hd", number, "GPT", g.String(), start, size)
		}
	}
	return format("Hd", hexData(h.Data))
}

type VendorMediaDevicePath struct {
	EFIDevicePath
	GUID       util.EFIGUID
	VendorData []byte
}

// APFSVolumeUUID returns the volume UUID of an Apple APFS vendor node.
func (v *VendorMediaDevicePath) APFSVolumeUUID() (util.EFIGUID, bool) {
	if v.GUID != AppleAPFSVolumeGUID || len(v.VendorData) < util.SizeofGUID {
		return util.EFIGUID{}, false
	}
	g, err := util.DecodeGUID(v.VendorData[:util.SizeofGUID])
	return g, err == nil
}

func (v *VendorMediaDevicePath) Format() string {
	if g, ok := v.APFSVolumeUUID(); ok {
		return format("Apfs", g.String())
	}
	return format("VenMedia", v.GUID.String(), hexData(v.VendorData))
}

type FileTypeMediaDevicePath struct {
	EFIDevicePath
	PathName string
}

// NewFileTypeMediaDevicePath builds a file path node from a path relative to
// the root of the partition. Forward slashes become backslashes and the
// result always starts with a single backslash.
func NewFileTypeMediaDevicePath(path string) (*FileTypeMediaDevicePath, error) {
	p := strings.ReplaceAll("/"+path, "/", `\`)
	p = strings.ReplaceAll(p, `\\`, `\`)
	b, err := util.EncodeUCS2(p, true)
	if err != nil {
		return nil, errors.Wrapf(err, "file path %q", path)
	}
	efi, err := newEFIDevicePath(MediaDevicePath, FileTypeMediaDevice, b)
	if err != nil {
		return nil, errors.Wrapf(err, "file path %q", path)
	}
	return &FileTypeMediaDevicePath{EFIDevicePath: efi, PathName: p}, nil
}

func (f *FileTypeMediaDevicePath) Format() string {
	return format("File", quoted(f.PathName))
}

func ParseMediaDevicePath(efi *EFIDevicePath) (DevicePath, error) {
	c := util.NewCursor(efi.Data)
	var err error
	switch efi.SubType {
	case HardDriveMediaDevice:
		m := &HardDriveMediaDevicePath{EFIDevicePath: *efi}
		if c.Remaining() < sizeofHardDrivePayload {
			return nil, malformed("hard drive", efi, errors.Wrapf(util.ErrTruncated, "need %d bytes", sizeofHardDrivePayload))
		}
		m.PartitionNumber, _ = c.ReadUint32()
		m.PartitionStart, _ = c.ReadUint64()
		m.PartitionSize, _ = c.ReadUint64()
		sig, _ := c.ReadBytes(16)
		copy(m.Signature.Data[:], sig)
		pf, _ := c.ReadUint8()
		m.PartitionFormat = PartitionFormat(pf)
		st, _ := c.ReadUint8()
		m.Signature.Type = SignatureType(st)
		switch m.Signature.Type {
		case SignatureTypeMBR, SignatureTypeGUID:
		default:
			return nil, errors.Wrapf(ErrUnsupportedSignatureType, "signature type %d", st)
		}
		return m, nil
	case VendorMediaDevice:
		v := &VendorMediaDevicePath{EFIDevicePath: *efi}
		if v.GUID, err = c.ReadGUID(); err != nil {
			return nil, malformed("vendor media", efi, err)
		}
		v.VendorData = c.ReadRemaining()
		return v, nil
	case FileTypeMediaDevice:
		f := &FileTypeMediaDevicePath{EFIDevicePath: *efi}
		if f.PathName, err = util.DecodeUCS2(efi.Data); err != nil {
			return nil, errors.Wrap(err, "could not decode file path")
		}
		return f, nil
	}
	return nil, nil
}
