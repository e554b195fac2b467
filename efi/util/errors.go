package util

import "github.com/pkg/errors"

var (
	ErrTruncated        = errors.New("not enough bytes remaining")
	ErrInvalidLength    = errors.New("invalid length")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrUnterminated     = errors.New("string is not null terminated")
	ErrInvalidCodepoint = errors.New("invalid UCS-2 code unit")
	ErrOutOfRange       = errors.New("character out of range for encoding")
)
