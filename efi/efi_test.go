package efi

import (
	"bytes"
	"testing"

	"github.com/foxboron/go-bootoption/efi/efitest"
	"github.com/foxboron/go-bootoption/efivar"
	"github.com/foxboron/go-bootoption/efivarfs/testfs"
	"github.com/foxboron/go-bootoption/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBootEntries(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.SetDefault(logger.NewBufferLogger(&buf))
	defer logger.SetDefault(prev)

	e := testfs.NewTestFS().
		With(
			efitest.BootOrder(3, 1, 2),
			efitest.LoadOption(1, efitest.MacOSLoadOption),
			efitest.LoadOption(2, []byte{0x01, 0x00}),
			efitest.LoadOption(3, efitest.MacOSLoadOption),
		).
		Open()

	entries, err := GetBootEntries(e, true)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, efivar.BootNumber(3), entries[0].BootNumber)
	assert.Equal(t, efivar.BootNumber(1), entries[1].BootNumber)
	assert.NotNil(t, entries[0].DevicePathList)
	assert.Contains(t, buf.String(), "could not read Boot0002")

	entries, err = GetBootEntries(e, false)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Nil(t, entries[0].DevicePathList)
}

func TestGetBootEntriesMissing(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.SetDefault(logger.NewBufferLogger(&buf))
	defer logger.SetDefault(prev)

	e := testfs.NewTestFS().With(efitest.BootOrder(7)).Open()
	entries, err := GetBootEntries(e, false)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Contains(t, buf.String(), "Boot0007 is in the boot order but does not exist")
}

func TestGetBootEntry(t *testing.T) {
	e := testfs.NewTestFS().With(efitest.LoadOption(0x10, efitest.MacOSLoadOption)).Open()
	opt, err := GetBootEntry(e, "Boot0010")
	require.NoError(t, err)
	assert.Equal(t, "Mac OS X", opt.Description)

	_, err = GetBootEntry(e, "Boot")
	require.ErrorIs(t, err, efivar.ErrInvalidVariableName)
}
