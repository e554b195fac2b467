package device

import (
	"bytes"
	"strings"

	"github.com/foxboron/go-bootoption/efi/util"
	"github.com/foxboron/go-bootoption/internal/logger"
	"github.com/pkg/errors"
)

// DevicePathList is the ordered list of nodes stored in a load option. It
// may hold several instances separated by end nodes.
type DevicePathList struct {
	// raw is set when the list was parsed and is returned as-is by Bytes.
	raw       []byte
	paths     []DevicePath
	truncated bool
}

// ParseDevicePathList decodes every node in b. A node whose declared length
// runs past the end of b stops parsing without error, and the nodes read so
// far are returned. Truncated reports when this happened.
func ParseDevicePathList(b []byte) (*DevicePathList, error) {
	l := &DevicePathList{raw: append([]byte{}, b...)}
	c := util.NewCursor(l.raw)
	for c.Remaining() > 0 {
		offset := c.Offset()
		if c.Remaining() < SizeofDevicePathHeader {
			logger.Warnf("device path list: %d trailing bytes at offset %d, too short for a node header", c.Remaining(), offset)
			l.truncated = true
			break
		}
		t, _ := c.ReadUint8()
		st, _ := c.ReadUint8()
		length, _ := c.ReadUint16()
		n := int(length) - SizeofDevicePathHeader
		if n < 0 || n > c.Remaining() {
			logger.Warnf("device path list: node (%d:%d) at offset %d declares %d bytes, %d remaining", t, st, offset, length, c.Remaining()+SizeofDevicePathHeader)
			l.truncated = true
			c.Seek(c.Len())
			break
		}
		data, err := c.ReadBytes(n)
		if err != nil {
			return nil, err
		}
		d, err := ParseDevicePathNode(DevicePathType(t), DevicePathSubType(st), data)
		if err != nil {
			return nil, errors.Wrapf(err, "device path node at offset %d", offset)
		}
		l.paths = append(l.paths, d)
	}
	return l, nil
}

// NewDevicePathList composes the list pointing at a file on a partition,
// terminated by an end node.
func NewDevicePathList(hd *HardDriveMediaDevicePath, file *FileTypeMediaDevicePath) *DevicePathList {
	return &DevicePathList{
		paths: []DevicePath{hd, file, NewEndDevicePath()},
	}
}

func (l *DevicePathList) Paths() []DevicePath {
	return append([]DevicePath{}, l.paths...)
}

func (l *DevicePathList) Len() int {
	return len(l.paths)
}

// Truncated is true if parsing stopped at a malformed node.
func (l *DevicePathList) Truncated() bool {
	return l.truncated
}

func (l *DevicePathList) Bytes() []byte {
	if l.raw != nil {
		return append([]byte{}, l.raw...)
	}
	var b bytes.Buffer
	for _, d := range l.paths {
		b.Write(DevicePathBytes(d))
	}
	return b.Bytes()
}

// Descriptions renders one string per device path instance, each node
// prefixed with a backslash.
func (l *DevicePathList) Descriptions() []string {
	var ret []string
	var sb strings.Builder
	flush := func() {
		if sb.Len() > 0 {
			ret = append(ret, sb.String())
			sb.Reset()
		}
	}
	for _, d := range l.paths {
		if d.Node().IsEnd() {
			flush()
			continue
		}
		sb.WriteString(`\`)
		sb.WriteString(d.Format())
	}
	flush()
	return ret
}

// Last returns the last node of type T in the list.
func Last[T DevicePath](l *DevicePathList) (T, bool) {
	for i := len(l.paths) - 1; i >= 0; i-- {
		if d, ok := l.paths[i].(T); ok {
			return d, true
		}
	}
	var zero T
	return zero, false
}

func (l *DevicePathList) PartitionUUID() (util.EFIGUID, bool) {
	hd, ok := Last[*HardDriveMediaDevicePath](l)
	if !ok {
		return util.EFIGUID{}, false
	}
	return hd.Signature.GUID()
}

func (l *DevicePathList) PartitionNumber() (uint32, bool) {
	hd, ok := Last[*HardDriveMediaDevicePath](l)
	if !ok {
		return 0, false
	}
	return hd.PartitionNumber, true
}

func (l *DevicePathList) MBRSignature() (uint32, bool) {
	hd, ok := Last[*HardDriveMediaDevicePath](l)
	if !ok {
		return 0, false
	}
	return hd.Signature.MBR()
}

func (l *DevicePathList) APFSVolumeUUID() (util.EFIGUID, bool) {
	v, ok := Last[*VendorMediaDevicePath](l)
	if !ok {
		return util.EFIGUID{}, false
	}
	return v.APFSVolumeUUID()
}

func (l *DevicePathList) MACAddress() (string, bool) {
	m, ok := Last[*MACAddressDevicePath](l)
	if !ok {
		return "", false
	}
	return m.MACAddress(), true
}

func (l *DevicePathList) FilePath() (string, bool) {
	f, ok := Last[*FileTypeMediaDevicePath](l)
	if !ok {
		return "", false
	}
	return f.PathName, true
}
