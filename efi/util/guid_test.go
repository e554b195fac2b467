package util

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var canonicalGUID = regexp.MustCompile(`^[0-9A-F]{8}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{12}$`)

func TestDecodeGUID(t *testing.T) {
	apfs := []byte{0xf7, 0xfc, 0x74, 0xbe, 0x7c, 0x0b, 0xf3, 0x49, 0x91, 0x47, 0x01, 0xf4, 0x04, 0x2e, 0x68, 0x42}
	g, err := DecodeGUID(apfs)
	require.NoError(t, err)
	assert.Equal(t, "BE74FCF7-0B7C-49F3-9147-01F4042E6842", g.String())
	assert.Equal(t, apfs, g.Bytes())
}

func TestDecodeGUIDLength(t *testing.T) {
	_, err := DecodeGUID(make([]byte, 15))
	require.ErrorIs(t, err, ErrInvalidLength)
	_, err = DecodeGUID(make([]byte, 17))
	require.ErrorIs(t, err, ErrInvalidLength)
}

func TestParseGUIDFromHostUUID(t *testing.T) {
	g, err := ParseGUID("01234567-89AB-CDEF-0123-456789ABCDEF")
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x67, 0x45, 0x23, 0x01,
		0xAB, 0x89,
		0xEF, 0xCD,
		0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF,
	}, g.Bytes())
	assert.Equal(t, "01234567-89AB-CDEF-0123-456789ABCDEF", g.String())
	assert.Equal(t, uuid.MustParse("01234567-89ab-cdef-0123-456789abcdef"), g.UUID())
}

func TestParseGUIDInvalid(t *testing.T) {
	for _, s := range []string{
		"",
		"01234567-89AB-CDEF-0123-456789ABCDE",
		"01234567-89AB-CDEF-0123-456789ABCDEFF",
		"0123456789ABCDEF0123456789ABCDEF",
		"{01234567-89AB-CDEF-0123-456789ABCDEF}",
		"0123456G-89AB-CDEF-0123-456789ABCDEF",
		"01234567+89AB-CDEF-0123-456789ABCDEF",
	} {
		_, err := ParseGUID(s)
		require.ErrorIs(t, err, ErrInvalidFormat, s)
	}
}

func TestGUIDRoundTrip(t *testing.T) {
	guids := []EFIGUID{
		{},
		{0x8BE4DF61, 0x93CA, 0x11d2, [8]uint8{0xAA, 0x0D, 0x00, 0xE0, 0x98, 0x03, 0x2B, 0x8C}},
		{0xFFFFFFFF, 0xFFFF, 0xFFFF, [8]uint8{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		GUIDFromUUID(uuid.New()),
		GUIDFromUUID(uuid.New()),
	}
	for _, g := range guids {
		s := g.String()
		require.Regexp(t, canonicalGUID, s)
		back, err := ParseGUID(s)
		require.NoError(t, err)
		assert.Equal(t, g, back)

		decoded, err := DecodeGUID(g.Bytes())
		require.NoError(t, err)
		assert.Equal(t, g, decoded)

		assert.Equal(t, g, GUIDFromUUID(g.UUID()))
	}
}

func TestGUIDFormat(t *testing.T) {
	g := MustParseGUID("8BE4DF61-93CA-11D2-AA0D-00E098032B8C")
	assert.Equal(t, "8be4df61-93ca-11d2-aa0d-00e098032b8c", g.Format())
}
