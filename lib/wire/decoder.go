package wire

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"
)

// DefaultMaxStringLength is the protocol's general string limit in characters.
const DefaultMaxStringLength = 32767

// Decoder is a read cursor over one packet payload. All state is the position
// into the backing slice; nothing is buffered.
type Decoder struct {
	buf []byte
	pos int
}

func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b}
}

func (T *Decoder) Reset(b []byte) {
	T.buf = b
	T.pos = 0
}

func (T *Decoder) Position() int {
	return T.pos
}

func (T *Decoder) Length() int {
	return len(T.buf)
}

func (T *Decoder) Len() int {
	return len(T.buf) - T.pos
}

func (T *Decoder) next(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegativeLength
	}
	if len(T.buf)-T.pos < n {
		T.pos = len(T.buf)
		return nil, ErrUnexpectedEOF
	}
	b := T.buf[T.pos : T.pos+n]
	T.pos += n
	return b, nil
}

func (T *Decoder) Uint8() (uint8, error) {
	b, err := T.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (T *Decoder) Int8() (int8, error) {
	v, err := T.Uint8()
	return int8(v), err
}

func (T *Decoder) Bool() (bool, error) {
	v, err := T.Uint8()
	return v != 0, err
}

func (T *Decoder) Uint16() (uint16, error) {
	b, err := T.next(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (T *Decoder) Int16() (int16, error) {
	v, err := T.Uint16()
	return int16(v), err
}

func (T *Decoder) Uint32() (uint32, error) {
	b, err := T.next(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (T *Decoder) Int32() (int32, error) {
	v, err := T.Uint32()
	return int32(v), err
}

func (T *Decoder) Uint64() (uint64, error) {
	b, err := T.next(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (T *Decoder) Int64() (int64, error) {
	v, err := T.Uint64()
	return int64(v), err
}

func (T *Decoder) Float32() (float32, error) {
	v, err := T.Uint32()
	return math.Float32frombits(v), err
}

func (T *Decoder) Float64() (float64, error) {
	v, err := T.Uint64()
	return math.Float64frombits(v), err
}

func (T *Decoder) VarInt() (int32, error) {
	v, n, err := ConsumeVarInt(T.buf[T.pos:])
	if err != nil {
		return 0, err
	}
	T.pos += n
	return v, nil
}

func (T *Decoder) VarLong() (int64, error) {
	v, n, err := ConsumeVarLong(T.buf[T.pos:])
	if err != nil {
		return 0, err
	}
	T.pos += n
	return v, nil
}

// length reads a varint that prefixes a run of bytes or elements.
func (T *Decoder) length() (int, error) {
	n, err := T.VarInt()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, ErrNegativeLength
	}
	return int(n), nil
}

// String reads a string limited to DefaultMaxStringLength characters.
func (T *Decoder) String() (string, error) {
	return T.StringMax(DefaultMaxStringLength)
}

// StringMax reads a varint length prefixed UTF-8 string of at most max
// characters.
func (T *Decoder) StringMax(max int) (string, error) {
	n, err := T.length()
	if err != nil {
		return "", err
	}
	// a character is at most 3 bytes in the protocol's UTF-16 based counting
	if n > max*3 {
		return "", ErrStringTooLong
	}
	b, err := T.next(n)
	if err != nil {
		return "", err
	}
	if utf8.RuneCount(b) > max {
		return "", ErrStringTooLong
	}
	return string(b), nil
}

// ByteArray reads a varint length prefixed byte array. The result aliases the
// decoder's buffer.
func (T *Decoder) ByteArray() ([]byte, error) {
	n, err := T.length()
	if err != nil {
		return nil, err
	}
	return T.next(n)
}

// Bytes reads exactly n bytes. The result aliases the decoder's buffer.
func (T *Decoder) Bytes(n int) ([]byte, error) {
	return T.next(n)
}

// Remaining consumes and returns everything left in the payload.
func (T *Decoder) Remaining() []byte {
	b := T.buf[T.pos:]
	T.pos = len(T.buf)
	return b
}

func (T *Decoder) UUID() (uuid.UUID, error) {
	var id uuid.UUID
	b, err := T.next(len(id))
	if err != nil {
		return id, err
	}
	copy(id[:], b)
	return id, nil
}

func (T *Decoder) BlockPosition() (Position, error) {
	v, err := T.Int64()
	if err != nil {
		return Position{}, err
	}
	return UnpackPosition(v), nil
}

func (T *Decoder) Angle() (Angle, error) {
	v, err := T.Uint8()
	return Angle(v), err
}
