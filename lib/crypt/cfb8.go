package crypt

import "crypto/cipher"

type cfb8 struct {
	block    cipher.Block
	register []byte
	out      []byte
	decrypt  bool
}

// NewCFB8Encrypter returns a cipher.Stream running block in 8 bit cipher
// feedback mode. iv must be one block long.
func NewCFB8Encrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, false)
}

func NewCFB8Decrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, true)
}

func newCFB8(block cipher.Block, iv []byte, decrypt bool) *cfb8 {
	size := block.BlockSize()
	if len(iv) != size {
		panic("crypt: iv length must equal block size")
	}
	register := make([]byte, size)
	copy(register, iv)
	return &cfb8{
		block:    block,
		register: register,
		out:      make([]byte, size),
		decrypt:  decrypt,
	}
}

func (T *cfb8) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("crypt: output smaller than input")
	}
	last := len(T.register) - 1
	for i, in := range src {
		T.block.Encrypt(T.out, T.register)
		out := in ^ T.out[0]

		// the ciphertext byte is shifted in, on either side
		feedback := out
		if T.decrypt {
			feedback = in
		}
		copy(T.register, T.register[1:])
		T.register[last] = feedback

		dst[i] = out
	}
}
