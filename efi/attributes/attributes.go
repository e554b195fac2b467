package attributes

import (
	"encoding/binary"

	"github.com/foxboron/go-bootoption/efi/util"
)

// Section 8.2 Variable Services
type Attributes uint32

var SizeofAttributes = 4

const (
	EFI_VARIABLE_NON_VOLATILE                          Attributes = 0x00000001
	EFI_VARIABLE_BOOTSERVICE_ACCESS                    Attributes = 0x00000002
	EFI_VARIABLE_RUNTIME_ACCESS                        Attributes = 0x00000004
	EFI_VARIABLE_HARDWARE_ERROR_RECORD                 Attributes = 0x00000008
	EFI_VARIABLE_AUTHENTICATED_WRITE_ACCESS            Attributes = 0x00000010 // Deprecated, we only reserve it
	EFI_VARIABLE_TIME_BASED_AUTHENTICATED_WRITE_ACCESS Attributes = 0x00000020
	EFI_VARIABLE_APPEND_WRITE                          Attributes = 0x00000040
	EFI_VARIABLE_ENHANCED_AUTHENTICATED_ACCESS         Attributes = 0x00000080 // Uses the EFI_VARIABLE_AUTHENTICATION_3 struct
)

// NV -> Non-Volatile
// BS -> Boot Services
// RT -> Runtime Services

var EFI_GLOBAL_VARIABLE = util.EFIGUID{Data1: 0x8BE4DF61, Data2: 0x93CA, Data3: 0x11d2, Data4: [8]uint8{0xAA, 0x0D, 0x00, 0xE0, 0x98, 0x03, 0x2B, 0x8C}}

var (
	Efivars = "/sys/firmware/efi/efivars"
)

// Bytes returns the little-endian prefix efivarfs stores before the
// variable data.
func (a Attributes) Bytes() []byte {
	b := make([]byte, SizeofAttributes)
	binary.LittleEndian.PutUint32(b, uint32(a))
	return b
}

// Equal compares attributes, ignoring EFI_VARIABLE_APPEND_WRITE which is a
// write flag and never reported back by the firmware.
func (a Attributes) Equal(b Attributes) bool {
	return a&^EFI_VARIABLE_APPEND_WRITE == b&^EFI_VARIABLE_APPEND_WRITE
}
