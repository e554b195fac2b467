package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/foxboron/go-bootoption/efi/device"
	"github.com/foxboron/go-bootoption/efivar"
)

func formatAttributes(a device.LoadOptionAttributes) string {
	var flags []string
	if a.Active() {
		flags = append(flags, "active")
	}
	if a.Hidden() {
		flags = append(flags, "hidden")
	}
	if a&device.LoadOptionForceReconnect != 0 {
		flags = append(flags, "force-reconnect")
	}
	if a&device.LoadOptionCategoryApp != 0 {
		flags = append(flags, "app")
	}
	if len(flags) == 0 {
		return fmt.Sprintf("0x%08X", uint32(a))
	}
	return fmt.Sprintf("0x%08X (%s)", uint32(a), strings.Join(flags, ", "))
}

func formatBootOrder(order []efivar.BootNumber) string {
	s := make([]string, len(order))
	for i, n := range order {
		s[i] = fmt.Sprintf("%04X", uint16(n))
	}
	return strings.Join(s, ",")
}

func printLoadOption(w io.Writer, opt *device.LoadOption) {
	if opt.BootNumber == efivar.NoBootNumber {
		fmt.Fprintf(w, "Load option: %s\n", opt.Description)
	} else {
		fmt.Fprintf(w, "%s: %s\n", opt.BootNumber, opt.Description)
	}
	fmt.Fprintf(w, "\tAttributes: %s\n", formatAttributes(opt.Attributes))

	l := opt.DevicePathList
	if l == nil {
		return
	}
	for _, d := range l.Descriptions() {
		fmt.Fprintf(w, "\tDevice path: %s\n", d)
	}
	if l.Truncated() {
		fmt.Fprintln(w, "\tDevice path list is truncated")
	}
	if n, ok := l.PartitionNumber(); ok {
		fmt.Fprintf(w, "\tPartition number: %d\n", n)
	}
	if g, ok := l.PartitionUUID(); ok {
		fmt.Fprintf(w, "\tPartition UUID: %s\n", g.UUID())
	}
	if sig, ok := l.MBRSignature(); ok {
		fmt.Fprintf(w, "\tMBR signature: 0x%08X\n", sig)
	}
	if g, ok := l.APFSVolumeUUID(); ok {
		fmt.Fprintf(w, "\tAPFS volume: %s\n", g.UUID())
	}
	if mac, ok := l.MACAddress(); ok {
		fmt.Fprintf(w, "\tMAC address: %s\n", mac)
	}
	if p, ok := l.FilePath(); ok {
		fmt.Fprintf(w, "\tFile path: %s\n", p)
	}
	if len(opt.OptionalData) == 0 {
		return
	}
	if s, ok := opt.OptionalDataString(); ok {
		fmt.Fprintf(w, "\tOptional data: %q\n", s)
		return
	}
	fmt.Fprintln(w, "\tOptional data:")
	for _, line := range strings.Split(opt.OptionalDataHexView(), "\n") {
		fmt.Fprintf(w, "\t\t%s\n", line)
	}
}
