package fed

// Pipeline is the mutable part of the framing rules. Both toggles are one
// way: once enabled they stay enabled until the connection closes.
//
// Toggles take effect on the next frame in each direction. Inbound, that is
// only sound when called from the goroutine reading frames, between two
// ReadFrame calls.
type Pipeline interface {
	// EnableCompression makes every following frame carry a data length
	// prefix and compresses outbound payloads of at least threshold bytes.
	EnableCompression(threshold int) error
	// EnableEncryption wraps the stream in AES/CFB8 keyed by the shared
	// secret.
	EnableEncryption(secret []byte) error
}
