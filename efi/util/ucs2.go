package util

import (
	"encoding/binary"

	"github.com/foxboron/go-bootoption/internal/logger"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
)

// UEFI strings are UCS-2: one 16-bit little-endian unit per character, no
// surrogate pairs, terminated by a zero unit.

const (
	minUCS2 = 0x20
	maxUCS2 = 0xD7FF
)

var ucs2 = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// scanUCS2 validates code units up to the terminator and returns the byte
// length of the string including the terminator.
func scanUCS2(b []byte) (int, error) {
	if len(b) < 2 {
		return 0, errors.Wrapf(ErrUnterminated, "%d bytes", len(b))
	}
	for i := 0; i+1 < len(b); i += 2 {
		u := binary.LittleEndian.Uint16(b[i:])
		if u == 0 {
			return i + 2, nil
		}
		if u < minUCS2 || u > maxUCS2 {
			return 0, errors.Wrapf(ErrInvalidCodepoint, "0x%04X at offset %d", u, i)
		}
	}
	return 0, errors.Wrapf(ErrUnterminated, "no terminator in %d bytes", len(b))
}

func transcodeUCS2(b []byte) (string, error) {
	s, err := ucs2.NewDecoder().Bytes(b)
	if err != nil {
		return "", errors.Wrap(err, "could not decode UCS-2")
	}
	return string(s), nil
}

// DecodeUCS2 decodes a null terminated UCS-2 string. Bytes after the
// terminator are logged and ignored.
func DecodeUCS2(b []byte) (string, error) {
	n, err := scanUCS2(b)
	if err != nil {
		return "", err
	}
	if rest := len(b) - n; rest > 0 {
		logger.Warnf("unexpected %d trailing bytes after UCS-2 string", rest)
	}
	return transcodeUCS2(b[:n-2])
}

// ReadUCS2 reads a null terminated UCS-2 string from the cursor. The raw
// bytes including the terminator are returned along with the string.
func ReadUCS2(c *Cursor) (string, []byte, error) {
	n, err := scanUCS2(c.buf[c.off:])
	if err != nil {
		return "", nil, err
	}
	raw, err := c.ReadBytes(n)
	if err != nil {
		return "", nil, err
	}
	s, err := transcodeUCS2(raw[:n-2])
	if err != nil {
		return "", nil, err
	}
	return s, raw, nil
}

// EncodeUCS2 encodes s as UCS-2. Every character must fit a single code unit
// in the range 0x20-0xD7FF.
func EncodeUCS2(s string, nullTerminated bool) ([]byte, error) {
	for _, r := range s {
		if r <= 0x19 || r >= 0xD800 {
			return nil, errors.Wrapf(ErrOutOfRange, "%U in %q", r, s)
		}
	}
	b, err := ucs2.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, errors.Wrap(err, "could not encode UCS-2")
	}
	if nullTerminated {
		b = append(b, 0x00, 0x00)
	}
	return b, nil
}

// EncodeASCII returns s as bytes, failing on anything outside 7-bit ASCII.
func EncodeASCII(s string) ([]byte, error) {
	for _, r := range s {
		if r >= 0x80 {
			return nil, errors.Wrapf(ErrOutOfRange, "%U is not ASCII", r)
		}
	}
	return []byte(s), nil
}
