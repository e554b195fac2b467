package efivarfs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/foxboron/go-bootoption/efi/attributes"
	"github.com/foxboron/go-bootoption/efi/device"
	"github.com/foxboron/go-bootoption/efi/efitest"
	"github.com/foxboron/go-bootoption/efivar"
	"github.com/foxboron/go-bootoption/efivarfs"
	"github.com/foxboron/go-bootoption/efivarfs/testfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const macOSDescription = `\Hd(1,GPT,01234567-89AB-CDEF-0123-456789ABCDEF,0x28,0x64000)\File("\System\Library\CoreServices\boot.efi")`

func TestGetBootOrder(t *testing.T) {
	e := testfs.NewTestFS().With(efitest.BootOrder(1, 0, 3)).Open()
	order, err := e.GetBootOrder()
	require.NoError(t, err)
	assert.Equal(t, []efivar.BootNumber{1, 0, 3}, order)
}

func TestGetBootOrderMissing(t *testing.T) {
	e := testfs.NewTestFS().Open()
	order, err := e.GetBootOrder()
	require.NoError(t, err)
	assert.Empty(t, order)
}

func TestGetBootOrderIncorrectAttributes(t *testing.T) {
	e := testfs.NewTestFS().
		With(efitest.Efivar("BootOrder", attributes.EFI_GLOBAL_VARIABLE, attributes.EFI_VARIABLE_NON_VOLATILE, []byte{0x01, 0x00})).
		Open()
	_, err := e.GetBootOrder()
	require.ErrorIs(t, err, efivarfs.ErrIncorrectAttributes)
}

func TestSetBootOrder(t *testing.T) {
	e := testfs.NewTestFS().With(efitest.BootOrder(1, 0, 3)).Open()
	require.NoError(t, e.SetBootOrder([]efivar.BootNumber{3, 1, 3, 2}))
	order, err := e.GetBootOrder()
	require.NoError(t, err)
	assert.Equal(t, []efivar.BootNumber{3, 1, 2}, order)
}

func TestAddToBootOrder(t *testing.T) {
	e := testfs.NewTestFS().
		With(
			efitest.BootOrder(0),
			efitest.LoadOption(0, efitest.MacOSLoadOption),
			efitest.LoadOption(1, efitest.MacOSLoadOption),
		).
		Open()

	require.NoError(t, e.AddToBootOrder(1, 0))
	order, err := e.GetBootOrder()
	require.NoError(t, err)
	assert.Equal(t, []efivar.BootNumber{1, 0}, order)

	// Already present
	require.NoError(t, e.AddToBootOrder(0, 0))
	// No Boot0005
	require.NoError(t, e.AddToBootOrder(5, 0))

	order, err = e.GetBootOrder()
	require.NoError(t, err)
	assert.Equal(t, []efivar.BootNumber{1, 0}, order)
}

func TestRemoveFromBootOrder(t *testing.T) {
	e := testfs.NewTestFS().With(efitest.BootOrder(1, 0, 3)).Open()
	require.NoError(t, e.RemoveFromBootOrder(0))
	require.NoError(t, e.RemoveFromBootOrder(7))
	order, err := e.GetBootOrder()
	require.NoError(t, err)
	assert.Equal(t, []efivar.BootNumber{1, 3}, order)
}

func TestBootNextCurrentTimeout(t *testing.T) {
	e := testfs.NewTestFS().
		With(efitest.BootCurrent(2), efitest.BootNext(3), efitest.Timeout(5)).
		Open()

	current, err := e.GetBootCurrent()
	require.NoError(t, err)
	assert.Equal(t, efivar.BootNumber(2), current)

	next, err := e.GetBootNext()
	require.NoError(t, err)
	assert.Equal(t, efivar.BootNumber(3), next)

	require.NoError(t, e.SetBootNext(4))
	next, err = e.GetBootNext()
	require.NoError(t, err)
	assert.Equal(t, efivar.BootNumber(4), next)

	timeout, err := e.GetTimeout()
	require.NoError(t, err)
	assert.Equal(t, uint16(5), timeout)

	require.NoError(t, e.SetTimeout(10))
	timeout, err = e.GetTimeout()
	require.NoError(t, err)
	assert.Equal(t, uint16(10), timeout)
}

func TestGetLoadOption(t *testing.T) {
	e := testfs.NewTestFS().With(efitest.LoadOption(0x80, efitest.MacOSLoadOption)).Open()

	opt, err := e.GetLoadOption(0x80, true)
	require.NoError(t, err)
	assert.Equal(t, efivar.BootNumber(0x80), opt.BootNumber)
	assert.Equal(t, "Mac OS X", opt.Description)
	assert.Equal(t, []string{macOSDescription}, opt.Descriptions())

	opt, err = e.GetLoadOption(0x80, false)
	require.NoError(t, err)
	assert.Equal(t, efivar.BootNumber(0x80), opt.BootNumber)
	assert.Equal(t, "Mac OS X", opt.Description)
	assert.Nil(t, opt.DevicePathList)

	_, err = e.GetLoadOption(0x81, true)
	require.Error(t, err)
}

func TestCreateLoadOption(t *testing.T) {
	f := testfs.NewTestFS().
		With(
			efitest.BootOrder(0),
			efitest.LoadOption(0, efitest.MacOSLoadOption),
		)
	e := f.Open()

	opt, err := device.ParseLoadOption(efitest.MacOSLoadOption, true)
	require.NoError(t, err)
	require.NoError(t, opt.SetDescription("Linux"))
	require.NoError(t, opt.SetOptionalString("quiet", false))

	n, err := e.CreateLoadOption(opt, true)
	require.NoError(t, err)
	assert.Equal(t, efivar.BootNumber(1), n)
	assert.Equal(t, efivar.BootNumber(1), opt.BootNumber)

	order, err := e.GetBootOrder()
	require.NoError(t, err)
	assert.Equal(t, []efivar.BootNumber{1, 0}, order)

	got, err := e.GetLoadOption(1, true)
	require.NoError(t, err)
	assert.Equal(t, "Linux", got.Description)
	assert.Equal(t, []string{macOSDescription}, got.Descriptions())
	s, ok := got.OptionalDataString()
	require.True(t, ok)
	assert.Equal(t, "quiet", s)

	attrs, buf, err := f.ReadEfivarsWithGuid("Boot0001", attributes.EFI_GLOBAL_VARIABLE)
	require.NoError(t, err)
	assert.Equal(t, efivar.BootEntry.Attributes, attrs)
	b, err := opt.Bytes()
	require.NoError(t, err)
	assert.Equal(t, b, buf.Bytes())
}

func TestNextFreeBootNumber(t *testing.T) {
	e := testfs.NewTestFS().
		With(
			efitest.LoadOption(0, efitest.MacOSLoadOption),
			efitest.LoadOption(1, efitest.MacOSLoadOption),
			efitest.LoadOption(3, efitest.MacOSLoadOption),
		).
		Open()
	n, err := e.NextFreeBootNumber()
	require.NoError(t, err)
	assert.Equal(t, efivar.BootNumber(2), n)
}

func TestNextFreeBootNumberExhausted(t *testing.T) {
	f := testfs.NewTestFS()
	for i := uint16(0); i < 0x7F; i++ {
		f.With(efitest.LoadOption(i, efitest.MacOSLoadOption))
	}
	_, err := f.Open().NextFreeBootNumber()
	require.ErrorIs(t, err, efivarfs.ErrNoFreeBootNumber)
}

func TestDeleteLoadOption(t *testing.T) {
	e := testfs.NewTestFS().
		With(
			efitest.BootOrder(1, 0),
			efitest.LoadOption(0, efitest.MacOSLoadOption),
			efitest.LoadOption(1, efitest.MacOSLoadOption),
		).
		Open()

	require.NoError(t, e.DeleteLoadOption(1))

	exists, err := e.LoadOptionExists(1)
	require.NoError(t, err)
	assert.False(t, exists)

	order, err := e.GetBootOrder()
	require.NoError(t, err)
	assert.Equal(t, []efivar.BootNumber{0}, order)

	require.ErrorIs(t, e.DeleteLoadOption(1), efivarfs.ErrLoadOptionDoesNotExist)
}

func TestSetRebootToFirmwareUI(t *testing.T) {
	f := testfs.NewTestFS().With(efitest.OsIndicationsSupported(0x1 | 0x4))
	e := f.Open()
	require.NoError(t, e.SetRebootToFirmwareUI())

	attrs, buf, err := f.ReadEfivarsWithGuid("OsIndications", attributes.EFI_GLOBAL_VARIABLE)
	require.NoError(t, err)
	assert.Equal(t, efivar.OsIndications.Attributes, attrs)
	assert.Equal(t, []byte{0x01, 0, 0, 0, 0, 0, 0, 0}, buf.Bytes())
}

func TestSetRebootToFirmwareUIUnsupported(t *testing.T) {
	e := testfs.NewTestFS().With(efitest.OsIndicationsSupported(0x4)).Open()
	require.ErrorIs(t, e.SetRebootToFirmwareUI(), efivarfs.ErrFirmwareUINotSupported)

	e = testfs.NewTestFS().Open()
	require.ErrorIs(t, e.SetRebootToFirmwareUI(), efivarfs.ErrFirmwareUINotSupported)
}

func TestEfivarfsRoot(t *testing.T) {
	dir := t.TempDir()
	e := efivarfs.NewFS().WithRoot(dir).Open()

	require.NoError(t, e.SetBootOrder([]efivar.BootNumber{2, 1}))
	b, err := os.ReadFile(filepath.Join(dir, "BootOrder-8be4df61-93ca-11d2-aa0d-00e098032b8c"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x07, 0x00, 0x00, 0x00, 0x02, 0x00, 0x01, 0x00}, b)

	order, err := e.GetBootOrder()
	require.NoError(t, err)
	assert.Equal(t, []efivar.BootNumber{2, 1}, order)

	opt, err := device.ParseLoadOption(efitest.MacOSLoadOption, true)
	require.NoError(t, err)
	require.NoError(t, e.WriteLoadOption(1, opt))
	require.NoError(t, e.DeleteLoadOption(1))
	_, err = os.Stat(filepath.Join(dir, "Boot0001-8be4df61-93ca-11d2-aa0d-00e098032b8c"))
	assert.True(t, os.IsNotExist(err))

	order, err = e.GetBootOrder()
	require.NoError(t, err)
	assert.Equal(t, []efivar.BootNumber{2}, order)
}
