package fed

import (
	"fmt"

	"gfx.cafe/util/go/bufpool"

	"gfx.cafe/gfx/mcwire/lib/wire"
)

// WriteFrame frames payload (varint packet id followed by the body) under the
// current rules and writes it to the socket.
func (T *Codec) WriteFrame(payload []byte) error {
	T.mu.Lock()
	defer T.mu.Unlock()
	if T.closed {
		return ErrClosed
	}

	buf := bufpool.Get(len(payload) + 2*wire.MaxVarIntLen)
	buf.Reset()
	defer bufpool.Put(buf)

	var header [2 * wire.MaxVarIntLen]byte
	var length int
	threshold := T.threshold.Load()
	switch {
	case threshold < 0:
		length = len(payload)
		if length > MaxFrameLength {
			break
		}
		buf.Write(wire.AppendVarInt(header[:0], int32(length)))
		buf.Write(payload)
	case int64(len(payload)) < threshold:
		length = len(payload) + 1
		if length > MaxFrameLength {
			break
		}
		h := wire.AppendVarInt(header[:0], int32(length))
		buf.Write(append(h, 0))
		buf.Write(payload)
	default:
		compressed := bufpool.Get(len(payload))
		compressed.Reset()
		defer bufpool.Put(compressed)

		T.deflater.Reset(compressed)
		if _, err := T.deflater.Write(payload); err != nil {
			return err
		}
		if err := T.deflater.Close(); err != nil {
			return err
		}

		length = wire.VarIntSize(int32(len(payload))) + compressed.Len()
		if length > MaxFrameLength {
			break
		}
		h := wire.AppendVarInt(header[:0], int32(length))
		h = wire.AppendVarInt(h, int32(len(payload)))
		buf.Write(h)
		buf.Write(compressed.Bytes())
	}
	if length > MaxFrameLength {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, length)
	}

	frame := buf.Bytes()
	if T.encrypter != nil {
		T.encrypter.XORKeyStream(frame, frame)
	}
	_, err := T.conn.Write(frame)
	return err
}
