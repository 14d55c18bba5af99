package wire

import (
	"errors"
	"io"
)

var (
	ErrMalformedVarInt = errors.New("malformed varint")
	ErrStringTooLong   = errors.New("string too long")
	ErrNegativeLength  = errors.New("negative length")
	ErrUnexpectedEOF   = io.ErrUnexpectedEOF
)
