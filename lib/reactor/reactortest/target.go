// Package reactortest provides a recording reactor.Target for tests.
package reactortest

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"gfx.cafe/gfx/mcwire/lib/auth"
	"gfx.cafe/gfx/mcwire/lib/fed"
	"gfx.cafe/gfx/mcwire/lib/proto"
	"gfx.cafe/gfx/mcwire/lib/reactor"
)

// Target records everything a handler does to it.
type Target struct {
	Provider auth.Provider
	Joiner   auth.Joiner
	Log      *zap.Logger
	// SendErr, when set, is returned by every Send.
	SendErr error

	mu          sync.Mutex
	state       proto.State
	sent        []proto.Packet
	closed      bool
	cause       error
	threshold   int
	secret      []byte
	transitions []proto.State
}

func NewTarget(state proto.State) *Target {
	return &Target{
		Log:       zap.NewNop(),
		state:     state,
		threshold: -1,
	}
}

func (T *Target) State() proto.State {
	T.mu.Lock()
	defer T.mu.Unlock()
	return T.state
}

func (T *Target) Transition(to proto.State) error {
	T.mu.Lock()
	defer T.mu.Unlock()
	T.state = to
	T.transitions = append(T.transitions, to)
	return nil
}

func (T *Target) Pipeline() fed.Pipeline {
	return (*pipeline)(T)
}

func (T *Target) Send(_ context.Context, packet proto.Packet) error {
	if T.SendErr != nil {
		return T.SendErr
	}
	T.mu.Lock()
	defer T.mu.Unlock()
	T.sent = append(T.sent, packet)
	return nil
}

func (T *Target) Close() error {
	T.mu.Lock()
	defer T.mu.Unlock()
	T.closed = true
	return nil
}

func (T *Target) Disconnect(cause error) {
	T.mu.Lock()
	defer T.mu.Unlock()
	T.closed = true
	if T.cause == nil {
		T.cause = cause
	}
}

func (T *Target) Logger() *zap.Logger {
	return T.Log
}

func (T *Target) Session() (auth.Provider, auth.Joiner) {
	return T.Provider, T.Joiner
}

func (T *Target) Sent() []proto.Packet {
	T.mu.Lock()
	defer T.mu.Unlock()
	return append([]proto.Packet(nil), T.sent...)
}

func (T *Target) Closed() bool {
	T.mu.Lock()
	defer T.mu.Unlock()
	return T.closed
}

// Cause returns the error passed to Disconnect.
func (T *Target) Cause() error {
	T.mu.Lock()
	defer T.mu.Unlock()
	return T.cause
}

func (T *Target) Transitions() []proto.State {
	T.mu.Lock()
	defer T.mu.Unlock()
	return append([]proto.State(nil), T.transitions...)
}

// Compression returns the enabled threshold, or -1.
func (T *Target) Compression() int {
	T.mu.Lock()
	defer T.mu.Unlock()
	return T.threshold
}

// Secret returns the shared secret encryption was enabled with.
func (T *Target) Secret() []byte {
	T.mu.Lock()
	defer T.mu.Unlock()
	return T.secret
}

type pipeline Target

func (T *pipeline) EnableCompression(threshold int) error {
	if threshold < 0 {
		return fed.ErrInvalidThreshold
	}
	T.mu.Lock()
	defer T.mu.Unlock()
	if T.threshold >= 0 {
		return fed.ErrCompressionEnabled
	}
	T.threshold = threshold
	return nil
}

func (T *pipeline) EnableEncryption(secret []byte) error {
	T.mu.Lock()
	defer T.mu.Unlock()
	if T.secret != nil {
		return fed.ErrEncryptionEnabled
	}
	T.secret = append([]byte(nil), secret...)
	return nil
}

var _ reactor.Target = (*Target)(nil)
