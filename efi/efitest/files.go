package efitest

import "testing/fstest"

func BootOrder(order ...uint16) fstest.MapFS {
	return globalVar("BootOrder", nvbsrt, uint16s(order...))
}

func BootCurrent(n uint16) fstest.MapFS {
	return globalVar("BootCurrent", bsrt, uint16s(n))
}

func BootNext(n uint16) fstest.MapFS {
	return globalVar("BootNext", nvbsrt, uint16s(n))
}

func Timeout(seconds uint16) fstest.MapFS {
	return globalVar("Timeout", nvbsrt, uint16s(seconds))
}

// LoadOption is Boot#### holding data.
func LoadOption(n uint16, data []byte) fstest.MapFS {
	return globalVar(bootName(n), nvbsrt, data)
}

func OsIndicationsSupported(v uint64) fstest.MapFS {
	return globalVar("OsIndicationsSupported", bsrt, []byte{
		byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24),
		byte(v >> 32), byte(v >> 40), byte(v >> 48), byte(v >> 56),
	})
}

func bootName(n uint16) string {
	const hex = "0123456789ABCDEF"
	return "Boot" + string([]byte{hex[n>>12&0xF], hex[n>>8&0xF], hex[n>>4&0xF], hex[n&0xF]})
}

// An option as written by macOS: "Mac OS X" on GPT partition 1 of the
// startup disk, booting \System\Library\CoreServices\boot.efi.
var MacOSLoadOption = []byte{
	0x01, 0x00, 0x00, 0x00, // active
	0x7e, 0x00, // device path list length
	'M', 0, 'a', 0, 'c', 0, ' ', 0, 'O', 0, 'S', 0, ' ', 0, 'X', 0, 0, 0,
	// Hd(1,GPT,01234567-89AB-CDEF-0123-456789ABCDEF,0x28,0x64000)
	0x04, 0x01, 0x2a, 0x00,
	0x01, 0x00, 0x00, 0x00,
	0x28, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x40, 0x06, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x67, 0x45, 0x23, 0x01, 0xab, 0x89, 0xef, 0xcd, 0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef,
	0x02, 0x02,
	// File("\System\Library\CoreServices\boot.efi")
	0x04, 0x04, 0x50, 0x00,
	'\\', 0, 'S', 0, 'y', 0, 's', 0, 't', 0, 'e', 0, 'm', 0,
	'\\', 0, 'L', 0, 'i', 0, 'b', 0, 'r', 0, 'a', 0, 'r', 0, 'y', 0,
	'\\', 0, 'C', 0, 'o', 0, 'r', 0, 'e', 0, 'S', 0, 'e', 0, 'r', 0, 'v', 0, 'i', 0, 'c', 0, 'e', 0, 's', 0,
	'\\', 0, 'b', 0, 'o', 0, 'o', 0, 't', 0, '.', 0, 'e', 0, 'f', 0, 'i', 0, 0, 0,
	// End
	0x7f, 0xff, 0x04, 0x00,
}
