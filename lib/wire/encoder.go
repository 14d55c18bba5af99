package wire

import (
	"encoding/binary"
	"math"

	"github.com/google/uuid"
)

// Encoder appends primitives to a byte slice. It never fails on its own; the
// error returns on the packet level only come from value validation.
type Encoder struct {
	buf []byte
}

func NewEncoder(b []byte) *Encoder {
	return &Encoder{buf: b[:0]}
}

func (T *Encoder) Reset(b []byte) {
	T.buf = b[:0]
}

func (T *Encoder) Bytes() []byte {
	return T.buf
}

func (T *Encoder) Len() int {
	return len(T.buf)
}

func (T *Encoder) Uint8(v uint8) {
	T.buf = append(T.buf, v)
}

func (T *Encoder) Int8(v int8) {
	T.Uint8(uint8(v))
}

func (T *Encoder) Bool(v bool) {
	if v {
		T.Uint8(1)
	} else {
		T.Uint8(0)
	}
}

func (T *Encoder) Uint16(v uint16) {
	T.buf = binary.BigEndian.AppendUint16(T.buf, v)
}

func (T *Encoder) Int16(v int16) {
	T.Uint16(uint16(v))
}

func (T *Encoder) Uint32(v uint32) {
	T.buf = binary.BigEndian.AppendUint32(T.buf, v)
}

func (T *Encoder) Int32(v int32) {
	T.Uint32(uint32(v))
}

func (T *Encoder) Uint64(v uint64) {
	T.buf = binary.BigEndian.AppendUint64(T.buf, v)
}

func (T *Encoder) Int64(v int64) {
	T.Uint64(uint64(v))
}

func (T *Encoder) Float32(v float32) {
	T.Uint32(math.Float32bits(v))
}

func (T *Encoder) Float64(v float64) {
	T.Uint64(math.Float64bits(v))
}

func (T *Encoder) VarInt(v int32) {
	T.buf = AppendVarInt(T.buf, v)
}

func (T *Encoder) VarLong(v int64) {
	T.buf = AppendVarLong(T.buf, v)
}

func (T *Encoder) String(v string) {
	T.VarInt(int32(len(v)))
	T.buf = append(T.buf, v...)
}

func (T *Encoder) ByteArray(v []byte) {
	T.VarInt(int32(len(v)))
	T.buf = append(T.buf, v...)
}

// Raw appends v without a length prefix.
func (T *Encoder) Raw(v []byte) {
	T.buf = append(T.buf, v...)
}

func (T *Encoder) UUID(v uuid.UUID) {
	T.buf = append(T.buf, v[:]...)
}

func (T *Encoder) BlockPosition(v Position) {
	T.Int64(v.Pack())
}

func (T *Encoder) Angle(v Angle) {
	T.Uint8(uint8(v))
}
