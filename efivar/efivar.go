package efivar

import (
	"bytes"

	"github.com/foxboron/go-bootoption/efi/attributes"
	"github.com/foxboron/go-bootoption/efi/util"
)

type Efivar struct {
	Name       string
	GUID       util.EFIGUID
	Attributes attributes.Attributes
}

// Definitions for standard EFI variables
var (
	// The boot option that was selected for the current boot.
	BootCurrent = Efivar{"BootCurrent", attributes.EFI_GLOBAL_VARIABLE,
		attributes.EFI_VARIABLE_BOOTSERVICE_ACCESS |
			attributes.EFI_VARIABLE_RUNTIME_ACCESS}

	// The boot option for the next boot only.
	BootNext = Efivar{"BootNext", attributes.EFI_GLOBAL_VARIABLE,
		attributes.EFI_VARIABLE_NON_VOLATILE |
			attributes.EFI_VARIABLE_BOOTSERVICE_ACCESS |
			attributes.EFI_VARIABLE_RUNTIME_ACCESS}

	// The ordered boot option load list.
	BootOrder = Efivar{"BootOrder", attributes.EFI_GLOBAL_VARIABLE,
		attributes.EFI_VARIABLE_NON_VOLATILE |
			attributes.EFI_VARIABLE_BOOTSERVICE_ACCESS |
			attributes.EFI_VARIABLE_RUNTIME_ACCESS}

	// A boot load option. #### is a printed hex value. No 0x or h is
	// included in the hex value.
	BootEntry = Efivar{"Boot####", attributes.EFI_GLOBAL_VARIABLE,
		attributes.EFI_VARIABLE_NON_VOLATILE |
			attributes.EFI_VARIABLE_BOOTSERVICE_ACCESS |
			attributes.EFI_VARIABLE_RUNTIME_ACCESS}

	// The firmware's boot managers timeout, in seconds, before initiating
	// the default boot selection.
	Timeout = Efivar{"Timeout", attributes.EFI_GLOBAL_VARIABLE,
		attributes.EFI_VARIABLE_NON_VOLATILE |
			attributes.EFI_VARIABLE_BOOTSERVICE_ACCESS |
			attributes.EFI_VARIABLE_RUNTIME_ACCESS}

	// Allows the OS to request the firmware to enable certain features and
	// to take certain actions.
	OsIndications = Efivar{"OsIndications", attributes.EFI_GLOBAL_VARIABLE,
		attributes.EFI_VARIABLE_NON_VOLATILE |
			attributes.EFI_VARIABLE_BOOTSERVICE_ACCESS |
			attributes.EFI_VARIABLE_RUNTIME_ACCESS}

	// Allows the firmware to indicate supported features and actions to
	// the OS. Should be treated as read-only.
	OsIndicationsSupported = Efivar{"OsIndicationsSupported", attributes.EFI_GLOBAL_VARIABLE,
		attributes.EFI_VARIABLE_BOOTSERVICE_ACCESS |
			attributes.EFI_VARIABLE_RUNTIME_ACCESS}
)

// Section 8.5.4 Exchanging information between the OS and Firmware
const (
	EFI_OS_INDICATIONS_BOOT_TO_FW_UI uint64 = 0x0000000000000001
)

// Marshallable is an interface to marshal efi variables
type Marshallable interface {
	Marshal(buf *bytes.Buffer) error
}

// Unmarshallable is an interface to unmarshal efi variables
type Unmarshallable interface {
	Unmarshal(data *bytes.Buffer) error
}
