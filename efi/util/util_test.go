package util

import (
	"bytes"
	"testing"

	"github.com/foxboron/go-bootoption/internal/logger"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidUcs2String(t *testing.T) {
	// This is "arch.efi", as encoded by a Dell laptop's firmware.
	value := []byte{
		97, 0,
		114, 0,
		99, 0,
		104, 0,
		46, 0,
		101, 0,
		102, 0,
		105, 0,
		0, 0,
	}

	expected := "arch.efi"
	actual, err := DecodeUCS2(value)

	if err != nil {
		t.Fatal(err)
	}

	if actual != expected {
		t.Fatalf(
			"DecodeUCS2(%v) returned %v (%v), expected %v (%v).",
			value,
			actual,
			[]byte(actual),
			expected,
			[]byte(expected),
		)
	}
}

func TestParseInvalidUcs2String(t *testing.T) {
	// This is "arch.efi", missing the final null strings.
	value := []byte{
		97, 0,
		114, 0,
		99, 0,
		104, 0,
		46, 0,
		101, 0,
		102, 0,
		105, 0,
	}

	_, err := DecodeUCS2(value)
	if !errors.Is(err, ErrUnterminated) {
		t.Fatalf("DecodeUCS2 did not err with a non-null-terminated string: %v", err)
	}
}

func TestDecodeUcs2Errors(t *testing.T) {
	_, err := DecodeUCS2([]byte{0x00})
	require.ErrorIs(t, err, ErrUnterminated)

	_, err = DecodeUCS2(nil)
	require.ErrorIs(t, err, ErrUnterminated)

	// tab
	_, err = DecodeUCS2([]byte{0x41, 0x00, 0x09, 0x00, 0x00, 0x00})
	require.ErrorIs(t, err, ErrInvalidCodepoint)

	// lone surrogate
	_, err = DecodeUCS2([]byte{0x00, 0xD8, 0x00, 0x00})
	require.ErrorIs(t, err, ErrInvalidCodepoint)
}

func TestDecodeUcs2TrailingBytes(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.SetDefault(logger.NewBufferLogger(&buf))
	defer logger.SetDefault(prev)

	s, err := DecodeUCS2([]byte{0x41, 0x00, 0x00, 0x00, 0xff, 0xff})
	require.NoError(t, err)
	assert.Equal(t, "A", s)
	assert.Contains(t, buf.String(), "level=warning")
	assert.Contains(t, buf.String(), "unexpected 2 trailing bytes after UCS-2 string")

	buf.Reset()
	_, err = DecodeUCS2([]byte{0x41, 0x00, 0x00, 0x00})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestUcs2RoundTrip(t *testing.T) {
	for _, s := range []string{"", "macOS", "Windows Boot Manager", "ÆØÅ ÿ世퟾", `\EFI\BOOT\BOOTX64.EFI`} {
		b, err := EncodeUCS2(s, true)
		require.NoError(t, err)
		require.Len(t, b, 2*len([]rune(s))+2)
		got, err := DecodeUCS2(b)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestEncodeUcs2OutOfRange(t *testing.T) {
	_, err := EncodeUCS2("a\x00b", true)
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = EncodeUCS2("\U0001F600", false)
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = EncodeUCS2("\uE000", false)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestEncodeUcs2Unterminated(t *testing.T) {
	b, err := EncodeUCS2("ab", false)
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 0, 'b', 0}, b)
}

func TestReadUcs2(t *testing.T) {
	c := NewCursor([]byte{'h', 0, 'i', 0, 0, 0, 0xAA})
	s, raw, err := ReadUCS2(c)
	require.NoError(t, err)
	assert.Equal(t, "hi", s)
	assert.Equal(t, []byte{'h', 0, 'i', 0, 0, 0}, raw)
	assert.Equal(t, 1, c.Remaining())
}

func TestEncodeASCII(t *testing.T) {
	b, err := EncodeASCII("-v keepsyms=1")
	require.NoError(t, err)
	assert.True(t, bytes.Equal([]byte("-v keepsyms=1"), b))

	_, err = EncodeASCII("naïve")
	require.ErrorIs(t, err, ErrOutOfRange)
}
