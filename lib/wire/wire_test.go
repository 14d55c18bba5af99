package wire

import (
	"io"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestVarInt_RoundTrip(t *testing.T) {
	values := []int32{0, 1, 2, 127, 128, 255, 300, 25565, 2097151, 2147483647, -1, -2147483648}
	for _, v := range values {
		b := AppendVarInt(nil, v)
		require.Equal(t, VarIntSize(v), len(b))
		require.LessOrEqual(t, len(b), MaxVarIntLen)

		got, n, err := ConsumeVarInt(b)
		require.NoError(t, err)
		require.Equal(t, len(b), n)
		require.Equal(t, v, got)
	}
}

func TestVarInt_KnownEncodings(t *testing.T) {
	require.Equal(t, []byte{0x00}, AppendVarInt(nil, 0))
	require.Equal(t, []byte{0x7f}, AppendVarInt(nil, 127))
	require.Equal(t, []byte{0x80, 0x01}, AppendVarInt(nil, 128))
	require.Equal(t, []byte{0xdd, 0xc7, 0x01}, AppendVarInt(nil, 25565))
	require.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0x07}, AppendVarInt(nil, math.MaxInt32))
	require.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}, AppendVarInt(nil, -1))
}

func TestVarInt_TooLong(t *testing.T) {
	_, _, err := ConsumeVarInt([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0x01})
	require.ErrorIs(t, err, ErrMalformedVarInt)

	_, _, err = ConsumeVarLong([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01})
	require.ErrorIs(t, err, ErrMalformedVarInt)
}

func TestVarInt_Overflow(t *testing.T) {
	// five bytes, but the last group sets bits above bit 31
	_, _, err := ConsumeVarInt([]byte{0xff, 0xff, 0xff, 0xff, 0x7f})
	require.ErrorIs(t, err, ErrMalformedVarInt)
	_, _, err = ConsumeVarInt([]byte{0x80, 0x80, 0x80, 0x80, 0x10})
	require.ErrorIs(t, err, ErrMalformedVarInt)

	_, err = ReadVarInt(strings.NewReader(string([]byte{0xff, 0xff, 0xff, 0xff, 0x7f})))
	require.ErrorIs(t, err, ErrMalformedVarInt)

	_, _, err = ConsumeVarLong([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x02})
	require.ErrorIs(t, err, ErrMalformedVarInt)

	v, n, err := ConsumeVarLong(AppendVarLong(nil, math.MinInt64))
	require.NoError(t, err)
	require.Equal(t, MaxVarLongLen, n)
	require.Equal(t, int64(math.MinInt64), v)
}

func TestVarInt_Truncated(t *testing.T) {
	_, _, err := ConsumeVarInt([]byte{0x80, 0x80})
	require.ErrorIs(t, err, ErrMalformedVarInt)

	d := NewDecoder([]byte{0xff})
	_, err = d.VarInt()
	require.ErrorIs(t, err, ErrMalformedVarInt)
}

func TestVarLong_RoundTrip(t *testing.T) {
	values := []int64{0, 1, 127, 128, 2147483647, 9223372036854775807, -1, -9223372036854775808}
	for _, v := range values {
		b := AppendVarLong(nil, v)
		require.Equal(t, VarLongSize(v), len(b))
		require.LessOrEqual(t, len(b), MaxVarLongLen)

		got, n, err := ConsumeVarLong(b)
		require.NoError(t, err)
		require.Equal(t, len(b), n)
		require.Equal(t, v, got)
	}
}

func TestReadVarInt_Stream(t *testing.T) {
	r := strings.NewReader(string([]byte{0xdd, 0xc7, 0x01, 0x80}))
	v, err := ReadVarInt(r)
	require.NoError(t, err)
	require.Equal(t, int32(25565), v)

	_, err = ReadVarInt(r)
	require.ErrorIs(t, err, ErrMalformedVarInt)
	require.ErrorIs(t, err, ErrUnexpectedEOF)

	_, err = ReadVarInt(r)
	require.ErrorIs(t, err, io.EOF)
}

func TestDecoder_Primitives(t *testing.T) {
	id := uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5")
	pos := Position{X: -12, Y: 64, Z: 3000}

	var e Encoder
	e.Bool(true)
	e.Int8(-3)
	e.Uint16(25565)
	e.Int32(-100000)
	e.Int64(1 << 40)
	e.Float32(1.5)
	e.Float64(-2.25)
	e.String("héllo")
	e.ByteArray([]byte{1, 2, 3})
	e.UUID(id)
	e.BlockPosition(pos)
	e.Angle(64)
	e.Raw([]byte{9, 9})

	d := NewDecoder(e.Bytes())
	b, err := d.Bool()
	require.NoError(t, err)
	require.True(t, b)
	i8, err := d.Int8()
	require.NoError(t, err)
	require.Equal(t, int8(-3), i8)
	u16, err := d.Uint16()
	require.NoError(t, err)
	require.Equal(t, uint16(25565), u16)
	i32, err := d.Int32()
	require.NoError(t, err)
	require.Equal(t, int32(-100000), i32)
	i64, err := d.Int64()
	require.NoError(t, err)
	require.Equal(t, int64(1<<40), i64)
	f32, err := d.Float32()
	require.NoError(t, err)
	require.Equal(t, float32(1.5), f32)
	f64, err := d.Float64()
	require.NoError(t, err)
	require.Equal(t, -2.25, f64)
	s, err := d.String()
	require.NoError(t, err)
	require.Equal(t, "héllo", s)
	ba, err := d.ByteArray()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, ba)
	gotID, err := d.UUID()
	require.NoError(t, err)
	require.Equal(t, id, gotID)
	gotPos, err := d.BlockPosition()
	require.NoError(t, err)
	require.Equal(t, pos, gotPos)
	a, err := d.Angle()
	require.NoError(t, err)
	require.Equal(t, float32(90), a.Degrees())
	require.Equal(t, []byte{9, 9}, d.Remaining())
	require.Equal(t, 0, d.Len())
}

func TestDecoder_UnexpectedEOF(t *testing.T) {
	d := NewDecoder([]byte{0x00, 0x01})
	_, err := d.Int32()
	require.ErrorIs(t, err, ErrUnexpectedEOF)

	var e Encoder
	e.VarInt(10)
	e.Raw([]byte("abc"))
	d.Reset(e.Bytes())
	_, err = d.String()
	require.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestDecoder_StringTooLong(t *testing.T) {
	var e Encoder
	e.String(strings.Repeat("a", 17))
	d := NewDecoder(e.Bytes())
	_, err := d.StringMax(16)
	require.ErrorIs(t, err, ErrStringTooLong)

	d.Reset(e.Bytes())
	s, err := d.StringMax(17)
	require.NoError(t, err)
	require.Len(t, s, 17)
}

func TestDecoder_NegativeLength(t *testing.T) {
	var e Encoder
	e.VarInt(-1)
	d := NewDecoder(e.Bytes())
	_, err := d.ByteArray()
	require.ErrorIs(t, err, ErrNegativeLength)
}
