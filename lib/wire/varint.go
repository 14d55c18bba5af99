package wire

import (
	"fmt"
	"io"
)

const (
	MaxVarIntLen  = 5
	MaxVarLongLen = 10

	// the last group of a varint carries 4 value bits, of a varlong only 1
	lastVarIntGroup  = 0x0F
	lastVarLongGroup = 0x01
)

// VarIntSize returns the number of bytes v occupies on the wire.
func VarIntSize(v int32) int {
	u := uint32(v)
	n := 1
	for u >= 0x80 {
		u >>= 7
		n++
	}
	return n
}

func VarLongSize(v int64) int {
	u := uint64(v)
	n := 1
	for u >= 0x80 {
		u >>= 7
		n++
	}
	return n
}

// AppendVarInt appends the 7-bit group encoding of v to b.
func AppendVarInt(b []byte, v int32) []byte {
	u := uint32(v)
	for u >= 0x80 {
		b = append(b, byte(u)|0x80)
		u >>= 7
	}
	return append(b, byte(u))
}

func AppendVarLong(b []byte, v int64) []byte {
	u := uint64(v)
	for u >= 0x80 {
		b = append(b, byte(u)|0x80)
		u >>= 7
	}
	return append(b, byte(u))
}

// ConsumeVarInt decodes a varint from the front of b and returns it along with
// the number of bytes used.
func ConsumeVarInt(b []byte) (int32, int, error) {
	var v uint32
	for i := 0; i < MaxVarIntLen; i++ {
		if i >= len(b) {
			return 0, 0, ErrMalformedVarInt
		}
		if i == MaxVarIntLen-1 && b[i] > lastVarIntGroup {
			return 0, 0, ErrMalformedVarInt
		}
		v |= uint32(b[i]&0x7F) << (7 * i)
		if b[i]&0x80 == 0 {
			return int32(v), i + 1, nil
		}
	}
	return 0, 0, ErrMalformedVarInt
}

func ConsumeVarLong(b []byte) (int64, int, error) {
	var v uint64
	for i := 0; i < MaxVarLongLen; i++ {
		if i >= len(b) {
			return 0, 0, ErrMalformedVarInt
		}
		if i == MaxVarLongLen-1 && b[i] > lastVarLongGroup {
			return 0, 0, ErrMalformedVarInt
		}
		v |= uint64(b[i]&0x7F) << (7 * i)
		if b[i]&0x80 == 0 {
			return int64(v), i + 1, nil
		}
	}
	return 0, 0, ErrMalformedVarInt
}

// ReadVarInt reads a varint one byte at a time. Used by stream framing, where
// the frame boundary isn't known until the length prefix is read. A clean end
// of stream before the first byte is io.EOF; ending after it is
// ErrMalformedVarInt wrapping ErrUnexpectedEOF.
func ReadVarInt(r interface{ ReadByte() (byte, error) }) (int32, error) {
	var v uint32
	for i := 0; i < MaxVarIntLen; i++ {
		c, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && i > 0 {
				err = fmt.Errorf("%w: %w", ErrMalformedVarInt, ErrUnexpectedEOF)
			}
			return 0, err
		}
		if i == MaxVarIntLen-1 && c > lastVarIntGroup {
			return 0, ErrMalformedVarInt
		}
		v |= uint32(c&0x7F) << (7 * i)
		if c&0x80 == 0 {
			return int32(v), nil
		}
	}
	return 0, ErrMalformedVarInt
}
