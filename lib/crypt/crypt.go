// Package crypt holds the login handshake primitives: the shared secret, the
// AES/CFB8 stream pair keyed from it, RSA wrapping of the secret and the
// session server hash.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"errors"
	"fmt"
	"math/big"
)

const SharedSecretLength = 16

var (
	ErrSecretLength = errors.New("shared secret must be 16 bytes")
	ErrNotRSAKey    = errors.New("server public key is not RSA")
)

func GenerateSharedSecret() ([]byte, error) {
	secret := make([]byte, SharedSecretLength)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	return secret, nil
}

// NewStreams returns the encrypt and decrypt streams for secret. The secret is
// both the AES key and the initial shift register.
func NewStreams(secret []byte) (encrypt, decrypt cipher.Stream, err error) {
	if len(secret) != SharedSecretLength {
		return nil, nil, ErrSecretLength
	}
	block, err := aes.NewCipher(secret)
	if err != nil {
		return nil, nil, err
	}
	return NewCFB8Encrypter(block, secret), NewCFB8Decrypter(block, secret), nil
}

// EncryptSecret wraps the shared secret and the server's verify token with the
// DER encoded public key from the encryption request.
func EncryptSecret(publicKey, secret, verifyToken []byte) (encSecret, encToken []byte, err error) {
	parsed, err := x509.ParsePKIXPublicKey(publicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("parse server public key: %w", err)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, nil, ErrNotRSAKey
	}
	if encSecret, err = rsa.EncryptPKCS1v15(rand.Reader, key, secret); err != nil {
		return nil, nil, err
	}
	if encToken, err = rsa.EncryptPKCS1v15(rand.Reader, key, verifyToken); err != nil {
		return nil, nil, err
	}
	return
}

var twoTo160 = new(big.Int).Lsh(big.NewInt(1), 160)

// ServerHash is the SHA-1 of serverID, secret and publicKey, printed as a
// signed big endian number in hex without leading zeros.
func ServerHash(serverID string, secret, publicKey []byte) string {
	h := sha1.New()
	h.Write([]byte(serverID))
	h.Write(secret)
	h.Write(publicKey)
	sum := h.Sum(nil)

	n := new(big.Int).SetBytes(sum)
	if sum[0]&0x80 != 0 {
		n.Sub(n, twoTo160)
	}
	return n.Text(16)
}
