package device

import (
	"encoding/binary"

	"github.com/foxboron/go-bootoption/efi/util"
)

type SignatureType uint8

const (
	NoSignature       SignatureType = 0x00
	SignatureTypeMBR  SignatureType = 0x01
	SignatureTypeGUID SignatureType = 0x02
)

// HardDriveSignature is the 16 byte partition signature of a hard drive
// node. MBR signatures use the first 4 bytes, the rest is zero.
type HardDriveSignature struct {
	Type SignatureType
	Data [16]byte
}

func NewMBRSignature(sig uint32) HardDriveSignature {
	s := HardDriveSignature{Type: SignatureTypeMBR}
	binary.LittleEndian.PutUint32(s.Data[:4], sig)
	return s
}

func NewGUIDSignature(g util.EFIGUID) HardDriveSignature {
	s := HardDriveSignature{Type: SignatureTypeGUID}
	copy(s.Data[:], g.Bytes())
	return s
}

// MBR returns the 32-bit disk signature of an MBR signature.
func (s HardDriveSignature) MBR() (uint32, bool) {
	if s.Type != SignatureTypeMBR {
		return 0, false
	}
	return binary.LittleEndian.Uint32(s.Data[:4]), true
}

// GUID returns the partition GUID of a GPT signature.
func (s HardDriveSignature) GUID() (util.EFIGUID, bool) {
	if s.Type != SignatureTypeGUID {
		return util.EFIGUID{}, false
	}
	g, _ := util.DecodeGUID(s.Data[:])
	return g, true
}
