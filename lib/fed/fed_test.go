package fed

import (
	"bytes"
	"io"
	"net"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"gfx.cafe/gfx/mcwire/lib/crypt"
	"gfx.cafe/gfx/mcwire/lib/wire"
)

var secret = []byte("0123456789abcdef")

func plainFrame(payload []byte) []byte {
	return append(wire.AppendVarInt(nil, int32(len(payload))), payload...)
}

func compressedFrame(t *testing.T, payload []byte, declared int) []byte {
	t.Helper()
	var z bytes.Buffer
	w := zlib.NewWriter(&z)
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	body := append(wire.AppendVarInt(nil, int32(declared)), z.Bytes()...)
	return plainFrame(body)
}

// serve writes raw to the server end of a pipe in one Write and closes it.
func serve(t *testing.T, raw []byte) (*Codec, *errgroup.Group) {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() {
		_ = client.Close()
	})

	var g errgroup.Group
	g.Go(func() error {
		defer server.Close()
		_, err := server.Write(raw)
		return err
	})
	return NewCodec(client), &g
}

func TestCodec_RoundTrip(t *testing.T) {
	a, b := net.Pipe()
	ca, cb := NewCodec(a), NewCodec(b)
	defer ca.Close()
	defer cb.Close()

	var g errgroup.Group
	g.Go(func() error {
		return ca.WriteFrame([]byte{0x00, 'h', 'i'})
	})
	got, err := cb.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 'h', 'i'}, got)
	require.NoError(t, g.Wait())
}

func TestCodec_CompressionToggleCrossing(t *testing.T) {
	first := []byte{0x03, 0x80, 0x02} // SetCompression(256)
	second := bytes.Repeat([]byte("abcd"), 100)

	raw := append(plainFrame(first), compressedFrame(t, second, len(second))...)
	c, g := serve(t, raw)

	got, err := c.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, first, got)

	require.NoError(t, c.EnableCompression(256))

	got, err = c.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, second, got)

	_, err = c.ReadFrame()
	require.ErrorIs(t, err, io.EOF)
	require.NoError(t, g.Wait())
}

func TestCodec_CompressionSentinel(t *testing.T) {
	payload := []byte{0x23, 1, 2, 3}
	raw := plainFrame(append([]byte{0x00}, payload...))
	c, g := serve(t, raw)
	require.NoError(t, c.EnableCompression(256))

	got, err := c.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, payload, got)
	require.NoError(t, g.Wait())
}

func TestCodec_DecompressionSizeMismatch(t *testing.T) {
	payload := []byte("hello, world")
	for _, declared := range []int{len(payload) + 5, len(payload) - 5} {
		c, g := serve(t, compressedFrame(t, payload, declared))
		require.NoError(t, c.EnableCompression(0))

		_, err := c.ReadFrame()
		require.ErrorIs(t, err, ErrDecompressionSizeMismatch)
		require.NoError(t, c.Close())
		require.NoError(t, g.Wait())
	}
}

func TestCodec_EncryptionToggleCrossing(t *testing.T) {
	first := []byte{0x01, 0xaa}
	second := []byte{0x02, 0xbb, 0xcc}

	encrypter, _, err := crypt.NewStreams(secret)
	require.NoError(t, err)
	tail := plainFrame(second)
	encrypter.XORKeyStream(tail, tail)

	// both frames arrive in one read, so the second sits in the buffer
	// before encryption is enabled
	c, g := serve(t, append(plainFrame(first), tail...))

	got, err := c.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, first, got)

	require.NoError(t, c.EnableEncryption(secret))
	require.True(t, c.Encrypted())

	got, err = c.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, second, got)
	require.NoError(t, g.Wait())
}

func TestCodec_FullPipeline(t *testing.T) {
	a, b := net.Pipe()
	ca, cb := NewCodec(a), NewCodec(b)
	defer ca.Close()
	defer cb.Close()

	for _, c := range []*Codec{ca, cb} {
		require.NoError(t, c.EnableCompression(64))
		require.NoError(t, c.EnableEncryption(secret))
	}

	small := []byte{0x12, 1, 2, 3}
	large := append([]byte{0x13}, bytes.Repeat([]byte{7}, 500)...)

	var g errgroup.Group
	g.Go(func() error {
		if err := ca.WriteFrame(small); err != nil {
			return err
		}
		return ca.WriteFrame(large)
	})

	got, err := cb.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, small, got)

	got, err = cb.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, large, got)
	require.NoError(t, g.Wait())
}

func TestCodec_FrameTooLarge(t *testing.T) {
	c, g := serve(t, wire.AppendVarInt(nil, MaxFrameLength+1))
	_, err := c.ReadFrame()
	require.ErrorIs(t, err, ErrFrameTooLarge)
	require.NoError(t, c.Close())
	require.NoError(t, g.Wait())
}

func TestCodec_Truncated(t *testing.T) {
	c, g := serve(t, []byte{0x05, 0x00, 0x01})
	_, err := c.ReadFrame()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.NoError(t, g.Wait())
}

func TestCodec_EnableTwice(t *testing.T) {
	a, b := net.Pipe()
	defer b.Close()
	c := NewCodec(a)
	defer c.Close()

	_, enabled := c.Compression()
	require.False(t, enabled)

	require.ErrorIs(t, c.EnableCompression(-1), ErrInvalidThreshold)
	require.NoError(t, c.EnableCompression(128))
	require.ErrorIs(t, c.EnableCompression(256), ErrCompressionEnabled)

	threshold, enabled := c.Compression()
	require.True(t, enabled)
	require.Equal(t, 128, threshold)

	require.ErrorIs(t, c.EnableEncryption([]byte{1}), crypt.ErrSecretLength)
	require.NoError(t, c.EnableEncryption(secret))
	require.ErrorIs(t, c.EnableEncryption(secret), ErrEncryptionEnabled)
}

func TestCodec_WriteAfterClose(t *testing.T) {
	a, b := net.Pipe()
	defer b.Close()
	c := NewCodec(a)
	require.NoError(t, c.Close())
	require.ErrorIs(t, c.WriteFrame([]byte{0}), ErrClosed)
}
