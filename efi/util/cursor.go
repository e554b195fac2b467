package util

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Cursor is a bounds checked little-endian reader over a byte slice.
// The underlying slice is never modified.
type Cursor struct {
	buf []byte
	off int
}

func NewCursor(b []byte) *Cursor {
	return &Cursor{buf: b}
}

func (c *Cursor) take(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, errors.Wrapf(ErrTruncated, "need %d bytes at offset %d, have %d", n, c.off, c.Remaining())
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *Cursor) ReadUint8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *Cursor) ReadUint64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadBytes returns a copy of the next n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	b, err := c.take(n)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, b...), nil
}

// ReadRemaining consumes everything left in the buffer. It never fails.
func (c *Cursor) ReadRemaining() []byte {
	b := append([]byte{}, c.buf[c.off:]...)
	c.off = len(c.buf)
	return b
}

func (c *Cursor) ReadGUID() (EFIGUID, error) {
	b, err := c.take(SizeofGUID)
	if err != nil {
		return EFIGUID{}, err
	}
	return DecodeGUID(b)
}

// Seek moves the read offset, clamped to the buffer bounds.
func (c *Cursor) Seek(offset int) {
	switch {
	case offset < 0:
		c.off = 0
	case offset > len(c.buf):
		c.off = len(c.buf)
	default:
		c.off = offset
	}
}

func (c *Cursor) Offset() int {
	return c.off
}

func (c *Cursor) Remaining() int {
	return len(c.buf) - c.off
}

func (c *Cursor) Len() int {
	return len(c.buf)
}
