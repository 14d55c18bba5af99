// Package fed frames packets on the wire: the varint length prefix, the
// optional zlib layer and the optional AES/CFB8 layer.
package fed

import (
	"bufio"
	"crypto/cipher"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/klauspost/compress/zlib"

	"gfx.cafe/gfx/mcwire/lib/util/decorator"
)

// Codec reads and writes frames on a net.Conn. ReadFrame must only be called
// from one goroutine. WriteFrame may be called from any goroutine; frames are
// serialised and each is handed to the socket in a single Write.
type Codec struct {
	noCopy decorator.NoCopy

	conn net.Conn

	// inbound, owned by the reading goroutine
	reader   bufio.Reader
	inflater io.ReadCloser

	// -1 while compression is off
	threshold atomic.Int64

	mu        sync.Mutex
	encrypter cipher.Stream
	deflater  *zlib.Writer
	closed    bool
}

func NewCodec(conn net.Conn) *Codec {
	c := &Codec{
		conn: conn,
	}
	c.reader.Reset(conn)
	c.threshold.Store(-1)
	return c
}

func (T *Codec) LocalAddr() net.Addr {
	return T.conn.LocalAddr()
}

func (T *Codec) RemoteAddr() net.Addr {
	return T.conn.RemoteAddr()
}

// Compression reports the active threshold.
func (T *Codec) Compression() (threshold int, enabled bool) {
	v := T.threshold.Load()
	return int(v), v >= 0
}

func (T *Codec) Encrypted() bool {
	T.mu.Lock()
	defer T.mu.Unlock()
	return T.encrypter != nil
}

// Close closes the socket, which unblocks a pending ReadFrame.
func (T *Codec) Close() error {
	T.mu.Lock()
	if T.closed {
		T.mu.Unlock()
		return nil
	}
	T.closed = true
	T.mu.Unlock()

	return T.conn.Close()
}

var _ Pipeline = (*Codec)(nil)
