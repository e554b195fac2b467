package util

import (
	"fmt"
	"strings"
)

const (
	hexViewGroups   = 8
	hexViewRowBytes = hexViewGroups * 2
)

// HexView renders b as rows of 16 bytes in eight 2 byte groups, followed by
// the printable ASCII characters of the row. Bytes outside 0x21-0x7E are
// shown as '.'. An empty buffer renders as the empty string.
func HexView(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	var out strings.Builder
	for row := 0; row < len(b); row += hexViewRowBytes {
		end := row + hexViewRowBytes
		if end > len(b) {
			end = len(b)
		}
		line := b[row:end]
		groups := 0
		for i := 0; i < len(line); i += 2 {
			if i+1 < len(line) {
				fmt.Fprintf(&out, "%02x%02x ", line[i], line[i+1])
			} else {
				fmt.Fprintf(&out, "%02x   ", line[i])
			}
			groups++
		}
		for ; groups < hexViewGroups; groups++ {
			out.WriteString("     ")
		}
		out.WriteByte(' ')
		for _, c := range line {
			if c >= 0x21 && c <= 0x7E {
				out.WriteByte(c)
			} else {
				out.WriteByte('.')
			}
		}
		if end < len(b) {
			out.WriteByte('\n')
		}
	}
	return out.String()
}
