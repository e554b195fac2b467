// Package loader resolves a boot loader on a partition of a disk or disk
// image into the descriptor used to compose load options.
package loader

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/diskfs/go-diskfs"
	"github.com/diskfs/go-diskfs/partition/gpt"
	"github.com/diskfs/go-diskfs/partition/mbr"
	"github.com/foxboron/go-bootoption/efi/device"
	"github.com/foxboron/go-bootoption/internal/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrNoPartitionTable = errors.New("no supported partition table")
	ErrNoSuchPartition  = errors.New("no such partition")
)

// Offset of the 32-bit disk signature in the MBR
const mbrSignatureOffset = 0x1B8

// FromImage reads the partition table of image, which can be a block device
// or a disk image, and describes filePath on the given 1-based partition.
func FromImage(image string, partition int, filePath string) (*device.Loader, error) {
	d, err := diskfs.Open(image, diskfs.WithOpenMode(diskfs.ReadOnly))
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", image)
	}
	defer d.Close()

	table, err := d.GetPartitionTable()
	if err != nil {
		return nil, errors.Wrapf(ErrNoPartitionTable, "%s: %v", image, err)
	}

	switch t := table.(type) {
	case *gpt.Table:
		if partition < 1 || partition > len(t.Partitions) {
			return nil, errors.Wrapf(ErrNoSuchPartition, "%s has %d GPT partitions, wanted %d", image, len(t.Partitions), partition)
		}
		logger.Debugf("%s: GPT, %d byte logical blocks", image, d.LogicalBlocksize)
		return FromGPTPartition(partition, t.Partitions[partition-1], filePath)
	case *mbr.Table:
		if partition < 1 || partition > len(t.Partitions) {
			return nil, errors.Wrapf(ErrNoSuchPartition, "%s has %d MBR partitions, wanted %d", image, len(t.Partitions), partition)
		}
		sig, err := readMBRSignatureFile(image)
		if err != nil {
			return nil, err
		}
		return FromMBRPartition(partition, t.Partitions[partition-1], sig, filePath), nil
	}
	return nil, errors.Wrapf(ErrNoPartitionTable, "%s: %s", image, table.Type())
}

// FromGPTPartition describes filePath on a GPT partition. Start and size are
// in logical blocks.
func FromGPTPartition(number int, p *gpt.Partition, filePath string) (*device.Loader, error) {
	u, err := uuid.Parse(p.GUID)
	if err != nil {
		return nil, errors.Wrapf(err, "partition %d has an invalid GUID %q", number, p.GUID)
	}
	return &device.Loader{
		PartitionFormat: device.PartitionFormatGPT,
		PartitionNumber: uint32(number),
		PartitionStart:  p.Start,
		PartitionSize:   p.End - p.Start + 1,
		PartitionUUID:   u,
		FilePath:        filePath,
	}, nil
}

// FromMBRPartition describes filePath on an MBR partition of the disk with
// the given signature. Start and size are in sectors.
func FromMBRPartition(number int, p *mbr.Partition, signature uint32, filePath string) *device.Loader {
	if signature == 0 {
		logger.Warnf("MBR disk signature is 0, the firmware might not find partition %d", number)
	}
	return &device.Loader{
		PartitionFormat: device.PartitionFormatMBR,
		PartitionNumber: uint32(number),
		PartitionStart:  uint64(p.Start),
		PartitionSize:   uint64(p.Size),
		MBRSignature:    signature,
		FilePath:        filePath,
	}
}

// ReadMBRSignature reads the disk signature from the first sector.
func ReadMBRSignature(r io.ReaderAt) (uint32, error) {
	var b [4]byte
	if _, err := r.ReadAt(b[:], mbrSignatureOffset); err != nil {
		return 0, errors.Wrap(err, "could not read MBR signature")
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func readMBRSignatureFile(image string) (uint32, error) {
	f, err := os.Open(image)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return ReadMBRSignature(f)
}
