package device

import (
	"bytes"
	"strings"

	"github.com/foxboron/go-bootoption/efi/util"
	"github.com/foxboron/go-bootoption/internal/logger"
	"github.com/pkg/errors"
)

const cloverLoader = "cloverx64.efi"

var newlines = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// OptionalData is the free form data trailing a load option.
type OptionalData []byte

// Text makes a best effort at decoding the data as ASCII or UCS-2.
func (o OptionalData) Text() (string, bool) {
	b := []byte(o)
	if len(b) > 1 && b[len(b)-1] == 0 && b[len(b)-2] == 0 {
		b = b[:len(b)-2]
	}
	if len(b) == 0 {
		return "", false
	}
	i := bytes.IndexByte(b, 0x00)
	if i < 0 {
		i = len(b)
	}
	if i > len(b)-2 && isASCII(b) {
		// A lone trailing NUL is a C terminator, not part of the text.
		s := newlines.Replace(strings.TrimRight(string(b), "\x00"))
		logger.Debugf("optional data decoded as ASCII: %q", s)
		return s, true
	}
	if s, err := decodeUnterminatedUCS2(b); err == nil {
		s = newlines.Replace(s)
		logger.Debugf("optional data decoded as UCS-2: %q", s)
		return s, true
	}
	logger.Debugf("optional data is not a string: %x", []byte(o))
	return "", false
}

func (o OptionalData) HexView() string {
	return util.HexView(o)
}

// EncodeOptionalData encodes s without a terminator. Clover wants its ASCII
// arguments followed by two null bytes.
func EncodeOptionalData(s string, ucs2, clover bool) (OptionalData, error) {
	if ucs2 {
		b, err := util.EncodeUCS2(s, false)
		if err != nil {
			return nil, errors.Wrap(err, "could not encode optional data as UCS-2")
		}
		return b, nil
	}
	b, err := util.EncodeASCII(s)
	if err != nil {
		return nil, errors.Wrap(err, "could not encode optional data as ASCII")
	}
	if clover {
		logger.Warnf("optional data for Clover, appending 2 null bytes")
		b = append(b, 0x00, 0x00)
	}
	return b, nil
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// decodeUnterminatedUCS2 decodes a UCS-2 string that may lack its terminator.
func decodeUnterminatedUCS2(b []byte) (string, error) {
	s, err := util.DecodeUCS2(b)
	if errors.Is(err, util.ErrUnterminated) && len(b)%2 == 0 {
		return util.DecodeUCS2(append(b[:len(b):len(b)], 0x00, 0x00))
	}
	return s, err
}
