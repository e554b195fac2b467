package util

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Appendix A - GUID and Time Formats
//
// Data1, Data2 and Data3 are stored little-endian, Data4 is stored as-is.
// The field values are the numbers as they appear in the canonical text
// form.
type EFIGUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]uint8
}

const SizeofGUID = 16

// DecodeGUID converts the 16 byte on-disk form into an EFIGUID.
func DecodeGUID(b []byte) (EFIGUID, error) {
	if len(b) != SizeofGUID {
		return EFIGUID{}, errors.Wrapf(ErrInvalidLength, "guid is %d bytes, should be %d", len(b), SizeofGUID)
	}
	var g EFIGUID
	g.Data1 = binary.LittleEndian.Uint32(b[0:4])
	g.Data2 = binary.LittleEndian.Uint16(b[4:6])
	g.Data3 = binary.LittleEndian.Uint16(b[6:8])
	copy(g.Data4[:], b[8:16])
	return g, nil
}

// Bytes returns the 16 byte on-disk form.
func (e EFIGUID) Bytes() []byte {
	b := make([]byte, SizeofGUID)
	binary.LittleEndian.PutUint32(b[0:4], e.Data1)
	binary.LittleEndian.PutUint16(b[4:6], e.Data2)
	binary.LittleEndian.PutUint16(b[6:8], e.Data3)
	copy(b[8:], e.Data4[:])
	return b
}

// String returns the canonical uppercase form.
func (e EFIGUID) String() string {
	return fmt.Sprintf("%08X-%04X-%04X-%X-%X", e.Data1, e.Data2, e.Data3, e.Data4[:2], e.Data4[2:])
}

// Format returns the lowercase form used in efivarfs file names.
func (e EFIGUID) Format() string {
	return fmt.Sprintf("%08x-%04x-%04x-%x-%x", e.Data1, e.Data2, e.Data3, e.Data4[:2], e.Data4[2:])
}

// UUID returns the big-endian host representation.
func (e EFIGUID) UUID() uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], e.Data1)
	binary.BigEndian.PutUint16(u[4:6], e.Data2)
	binary.BigEndian.PutUint16(u[6:8], e.Data3)
	copy(u[8:], e.Data4[:])
	return u
}

// GUIDFromUUID converts a host UUID, which is big-endian throughout, into
// the mixed-endian EFI layout.
func GUIDFromUUID(u uuid.UUID) EFIGUID {
	var g EFIGUID
	g.Data1 = binary.BigEndian.Uint32(u[0:4])
	g.Data2 = binary.BigEndian.Uint16(u[4:6])
	g.Data3 = binary.BigEndian.Uint16(u[6:8])
	copy(g.Data4[:], u[8:16])
	return g
}

// ParseGUID parses the hyphenated XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX
// form, in either case.
func ParseGUID(s string) (EFIGUID, error) {
	if len(s) != 36 {
		return EFIGUID{}, errors.Wrapf(ErrInvalidFormat, "guid %q", s)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return EFIGUID{}, errors.Wrapf(ErrInvalidFormat, "guid %q: %v", s, err)
	}
	return GUIDFromUUID(u), nil
}

func MustParseGUID(s string) EFIGUID {
	g, err := ParseGUID(s)
	if err != nil {
		panic(err)
	}
	return g
}
