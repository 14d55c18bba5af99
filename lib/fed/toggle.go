package fed

import (
	"bytes"
	"crypto/cipher"
	"io"

	"github.com/klauspost/compress/zlib"

	"gfx.cafe/gfx/mcwire/lib/crypt"
)

func (T *Codec) EnableCompression(threshold int) error {
	if threshold < 0 {
		return ErrInvalidThreshold
	}

	T.mu.Lock()
	defer T.mu.Unlock()
	if T.threshold.Load() >= 0 {
		return ErrCompressionEnabled
	}
	T.deflater = zlib.NewWriter(io.Discard)
	T.threshold.Store(int64(threshold))
	return nil
}

func (T *Codec) EnableEncryption(secret []byte) error {
	encrypter, decrypter, err := crypt.NewStreams(secret)
	if err != nil {
		return err
	}

	T.mu.Lock()
	defer T.mu.Unlock()
	if T.encrypter != nil {
		return ErrEncryptionEnabled
	}
	T.encrypter = encrypter

	// bytes already read ahead from the socket were sent under the new cipher
	buffered, err := T.reader.Peek(T.reader.Buffered())
	if err != nil {
		return err
	}
	pending := make([]byte, len(buffered))
	decrypter.XORKeyStream(pending, buffered)

	T.reader.Reset(io.MultiReader(
		bytes.NewReader(pending),
		cipher.StreamReader{S: decrypter, R: T.conn},
	))
	return nil
}
