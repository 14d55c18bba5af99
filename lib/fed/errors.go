package fed

import "errors"

const (
	// MaxFrameLength is the largest length prefix accepted: three varint bytes.
	MaxFrameLength = 2097151
	// MaxUncompressedLength bounds the declared size of a compressed payload.
	MaxUncompressedLength = 8 << 20
)

var (
	ErrFrameTooLarge             = errors.New("frame too large")
	ErrDecompressionSizeMismatch = errors.New("decompressed size does not match declared length")
	ErrCompressionEnabled        = errors.New("compression is already enabled")
	ErrEncryptionEnabled         = errors.New("encryption is already enabled")
	ErrInvalidThreshold          = errors.New("compression threshold must not be negative")
	ErrClosed                    = errors.New("codec is closed")
)
