package device

import (
	"strings"

	"github.com/foxboron/go-bootoption/efi/util"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Loader describes where a boot loader lives: the partition holding it and
// its path relative to the partition root. Start and size are in logical
// blocks.
type Loader struct {
	PartitionFormat PartitionFormat
	PartitionNumber uint32
	PartitionStart  uint64
	PartitionSize   uint64
	// Set for GPT partitions
	PartitionUUID uuid.UUID
	// Set for MBR partitions
	MBRSignature uint32
	FilePath     string
}

func (l *Loader) Signature() (HardDriveSignature, error) {
	switch l.PartitionFormat {
	case PartitionFormatMBR:
		return NewMBRSignature(l.MBRSignature), nil
	case PartitionFormatGPT:
		return NewGUIDSignature(util.GUIDFromUUID(l.PartitionUUID)), nil
	}
	return HardDriveSignature{}, errors.Wrapf(ErrUnsupportedPartitionFormat, "%s", l.PartitionFormat)
}

func (l *Loader) HardDriveMediaDevicePath() (*HardDriveMediaDevicePath, error) {
	sig, err := l.Signature()
	if err != nil {
		return nil, err
	}
	return NewHardDriveMediaDevicePath(l.PartitionNumber, l.PartitionStart, l.PartitionSize, l.PartitionFormat, sig)
}

func (l *Loader) FileTypeMediaDevicePath() (*FileTypeMediaDevicePath, error) {
	return NewFileTypeMediaDevicePath(l.FilePath)
}

// DevicePathList composes hard drive, file path and end nodes.
func (l *Loader) DevicePathList() (*DevicePathList, error) {
	hd, err := l.HardDriveMediaDevicePath()
	if err != nil {
		return nil, err
	}
	file, err := l.FileTypeMediaDevicePath()
	if err != nil {
		return nil, err
	}
	return NewDevicePathList(hd, file), nil
}

func (l *Loader) IsClover() bool {
	return strings.Contains(strings.ToLower(l.FilePath), cloverLoader)
}
