package fed

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"gfx.cafe/gfx/mcwire/lib/wire"
)

// ReadFrame blocks for the next frame and returns its payload: the varint
// packet id followed by the body. The returned slice is not reused.
//
// A clean end of stream between frames is reported as io.EOF; anything cut
// short inside a frame is io.ErrUnexpectedEOF.
func (T *Codec) ReadFrame() ([]byte, error) {
	length, err := wire.ReadVarInt(&T.reader)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, wire.ErrNegativeLength
	}
	if length > MaxFrameLength {
		return nil, fmt.Errorf("%w: length prefix %d", ErrFrameTooLarge, length)
	}

	frame := make([]byte, length)
	if _, err = io.ReadFull(&T.reader, frame); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	if T.threshold.Load() < 0 {
		return frame, nil
	}
	return T.inflate(frame)
}

func (T *Codec) inflate(frame []byte) ([]byte, error) {
	dataLength, n, err := wire.ConsumeVarInt(frame)
	if err != nil {
		return nil, err
	}
	body := frame[n:]
	if dataLength == 0 {
		return body, nil
	}
	if dataLength < 0 || dataLength > MaxUncompressedLength {
		return nil, fmt.Errorf("%w: data length %d", ErrFrameTooLarge, dataLength)
	}

	src := bytes.NewReader(body)
	if T.inflater == nil {
		T.inflater, err = zlib.NewReader(src)
	} else {
		err = T.inflater.(zlib.Resetter).Reset(src, nil)
	}
	if err != nil {
		return nil, err
	}

	payload := make([]byte, dataLength)
	if _, err = io.ReadFull(T.inflater, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: declared %d bytes", ErrDecompressionSizeMismatch, dataLength)
		}
		return nil, err
	}

	var extra [1]byte
	m, err := T.inflater.Read(extra[:])
	if m != 0 {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrDecompressionSizeMismatch, dataLength)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return payload, nil
}
